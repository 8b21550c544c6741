package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all bot state in a single SQLite database. It is
// the default backend.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; funnel everything through one
	// connection instead of fighting over the file lock.
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS packs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            chat_id INTEGER,
            set_name TEXT,
            sticker_count INTEGER DEFAULT 0,
            status TEXT DEFAULT 'allowed',
            UNIQUE(chat_id, set_name)
        );
        CREATE TABLE IF NOT EXISTS chat_settings (
            chat_id INTEGER PRIMARY KEY,
            pack_limit INTEGER DEFAULT 50,
            reply_chance REAL DEFAULT 0.05,
            language TEXT DEFAULT 'en'
        );
        CREATE TABLE IF NOT EXISTS users (
            user_id INTEGER PRIMARY KEY,
            first_name TEXT,
            last_name TEXT,
            username TEXT,
            last_active TIMESTAMP,
            sticker_calls INTEGER DEFAULT 0,
            media_calls INTEGER DEFAULT 0,
            language TEXT DEFAULT 'en'
        );
        CREATE INDEX IF NOT EXISTS idx_packs_chat_id ON packs(chat_id);
        CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active);
        CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
    `)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetOrCreateSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	def := model.DefaultChatSettings(chatID)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO chat_settings (chat_id, pack_limit, reply_chance, language)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(chat_id) DO NOTHING
    `, chatID, def.PackLimit, def.ReplyChance, string(def.Language))
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT chat_id, pack_limit, reply_chance, language FROM chat_settings WHERE chat_id=?`, chatID)
	return scanSettings(row)
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, cs *model.ChatSettings) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO chat_settings (chat_id, pack_limit, reply_chance, language)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(chat_id) DO UPDATE SET
            pack_limit=excluded.pack_limit,
            reply_chance=excluded.reply_chance,
            language=excluded.language
    `, cs.ChatID, cs.PackLimit, cs.ReplyChance, string(cs.Language))
	return err
}

func (s *SQLiteStore) GetPack(ctx context.Context, chatID int64, setName string) (*model.Pack, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT chat_id, set_name, sticker_count, status FROM packs WHERE chat_id=? AND set_name=?`,
		chatID, setName)
	return scanPack(row)
}

func (s *SQLiteStore) InsertPackBelowLimit(ctx context.Context, p *model.Pack, limit int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO packs (chat_id, set_name, sticker_count, status)
        SELECT ?, ?, ?, 'allowed'
        WHERE (SELECT COUNT(*) FROM packs WHERE chat_id=? AND status='allowed') < ?
        ON CONFLICT(chat_id, set_name) DO NOTHING
    `, p.ChatID, p.SetName, p.StickerCount, p.ChatID, limit)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) SetPackStatus(ctx context.Context, chatID int64, setName string, status model.PackStatus) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE packs SET status=? WHERE chat_id=? AND set_name=?`,
		string(status), chatID, setName)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListPacks(ctx context.Context, chatID int64) ([]*model.Pack, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id, set_name, sticker_count, status FROM packs WHERE chat_id=? ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.Pack
	for rows.Next() {
		p, err := scanPack(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) ClearPacks(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM packs WHERE chat_id=?`, chatID)
	return err
}

func (s *SQLiteStore) CountAllowedPacks(ctx context.Context, chatID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM packs WHERE chat_id=? AND status='allowed'`, chatID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) SumAllowedStickerCounts(ctx context.Context, chatID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sticker_count), 0) FROM packs WHERE chat_id=? AND status='allowed'`, chatID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) RandomAllowedPack(ctx context.Context, chatID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT set_name FROM packs WHERE chat_id=? AND status='allowed' ORDER BY RANDOM() LIMIT 1`,
		chatID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *SQLiteStore) RecordActivity(ctx context.Context, u *model.UserStats, isMedia bool) error {
	stickerInc, mediaInc := 1, 0
	if isMedia {
		stickerInc, mediaInc = 0, 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            first_name=excluded.first_name,
            last_name=excluded.last_name,
            username=excluded.username,
            last_active=excluded.last_active,
            sticker_calls=users.sticker_calls + excluded.sticker_calls,
            media_calls=users.media_calls + excluded.media_calls
    `, u.UserID, u.FirstName, u.LastName, u.Username, u.LastActive,
		stickerInc, mediaInc, string(model.DefaultLanguage))
	return err
}

func (s *SQLiteStore) GetUser(ctx context.Context, userID int64) (*model.UserStats, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language
        FROM users WHERE user_id=?`, userID)
	return scanUser(row)
}

func (s *SQLiteStore) TopUsers(ctx context.Context, limit int) ([]*model.UserStats, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language
        FROM users ORDER BY (sticker_calls + media_calls) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.UserStats
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
