package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps all bot state in a Postgres database. Selected by
// setting DATABASE_URL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS packs (
            id BIGSERIAL PRIMARY KEY,
            chat_id BIGINT,
            set_name TEXT,
            sticker_count INTEGER DEFAULT 0,
            status TEXT DEFAULT 'allowed',
            UNIQUE(chat_id, set_name)
        )`,
		`CREATE TABLE IF NOT EXISTS chat_settings (
            chat_id BIGINT PRIMARY KEY,
            pack_limit INTEGER DEFAULT 50,
            reply_chance DOUBLE PRECISION DEFAULT 0.05,
            language TEXT DEFAULT 'en'
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            user_id BIGINT PRIMARY KEY,
            first_name TEXT,
            last_name TEXT,
            username TEXT,
            last_active TIMESTAMPTZ,
            sticker_calls INTEGER DEFAULT 0,
            media_calls INTEGER DEFAULT 0,
            language TEXT DEFAULT 'en'
        )`,
		`CREATE INDEX IF NOT EXISTS idx_packs_chat_id ON packs(chat_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetOrCreateSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	def := model.DefaultChatSettings(chatID)
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO chat_settings (chat_id, pack_limit, reply_chance, language)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (chat_id) DO NOTHING
    `, chatID, def.PackLimit, def.ReplyChance, string(def.Language))
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT chat_id, pack_limit, reply_chance, language FROM chat_settings WHERE chat_id=$1`, chatID)
	return scanSettings(row)
}

func (s *PostgresStore) SaveSettings(ctx context.Context, cs *model.ChatSettings) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO chat_settings (chat_id, pack_limit, reply_chance, language)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (chat_id) DO UPDATE SET
            pack_limit=EXCLUDED.pack_limit,
            reply_chance=EXCLUDED.reply_chance,
            language=EXCLUDED.language
    `, cs.ChatID, cs.PackLimit, cs.ReplyChance, string(cs.Language))
	return err
}

func (s *PostgresStore) GetPack(ctx context.Context, chatID int64, setName string) (*model.Pack, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT chat_id, set_name, sticker_count, status FROM packs WHERE chat_id=$1 AND set_name=$2`,
		chatID, setName)
	return scanPack(row)
}

func (s *PostgresStore) InsertPackBelowLimit(ctx context.Context, p *model.Pack, limit int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO packs (chat_id, set_name, sticker_count, status)
        SELECT $1, $2, $3, 'allowed'
        WHERE (SELECT COUNT(*) FROM packs WHERE chat_id=$1 AND status='allowed') < $4
        ON CONFLICT (chat_id, set_name) DO NOTHING
    `, p.ChatID, p.SetName, p.StickerCount, limit)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) SetPackStatus(ctx context.Context, chatID int64, setName string, status model.PackStatus) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE packs SET status=$1 WHERE chat_id=$2 AND set_name=$3`,
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

func (s *PostgresStore) ListPacks(ctx context.Context, chatID int64) ([]*model.Pack, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id, set_name, sticker_count, status FROM packs WHERE chat_id=$1 ORDER BY id`, chatID)
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

func (s *PostgresStore) ClearPacks(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM packs WHERE chat_id=$1`, chatID)
	return err
}

func (s *PostgresStore) CountAllowedPacks(ctx context.Context, chatID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM packs WHERE chat_id=$1 AND status='allowed'`, chatID).Scan(&n)
	return n, err
}

func (s *PostgresStore) SumAllowedStickerCounts(ctx context.Context, chatID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sticker_count), 0) FROM packs WHERE chat_id=$1 AND status='allowed'`, chatID).Scan(&n)
	return n, err
}

func (s *PostgresStore) RandomAllowedPack(ctx context.Context, chatID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT set_name FROM packs WHERE chat_id=$1 AND status='allowed' ORDER BY RANDOM() LIMIT 1`,
		chatID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *PostgresStore) RecordActivity(ctx context.Context, u *model.UserStats, isMedia bool) error {
	stickerInc, mediaInc := 1, 0
	if isMedia {
		stickerInc, mediaInc = 0, 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id) DO UPDATE SET
            first_name=EXCLUDED.first_name,
            last_name=EXCLUDED.last_name,
            username=EXCLUDED.username,
            last_active=EXCLUDED.last_active,
            sticker_calls=users.sticker_calls + EXCLUDED.sticker_calls,
            media_calls=users.media_calls + EXCLUDED.media_calls
    `, u.UserID, u.FirstName, u.LastName, u.Username, u.LastActive,
		stickerInc, mediaInc, string(model.DefaultLanguage))
	return err
}

func (s *PostgresStore) GetUser(ctx context.Context, userID int64) (*model.UserStats, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language
        FROM users WHERE user_id=$1`, userID)
	return scanUser(row)
}

func (s *PostgresStore) TopUsers(ctx context.Context, limit int) ([]*model.UserStats, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, first_name, last_name, username, last_active, sticker_calls, media_calls, language
        FROM users ORDER BY (sticker_calls + media_calls) DESC LIMIT $1`, limit)
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
