package repository

import (
	"database/sql"
	"errors"

	"github.com/FogoReed/random-stickers-bot/internal/model"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPack(row rowScanner) (*model.Pack, error) {
	var p model.Pack
	var status string
	if err := row.Scan(&p.ChatID, &p.SetName, &p.StickerCount, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Status = model.PackStatus(status)
	return &p, nil
}

func scanUser(row rowScanner) (*model.UserStats, error) {
	var u model.UserStats
	var lang string
	err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Username,
		&u.LastActive, &u.StickerCalls, &u.MediaCalls, &lang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Language = model.Language(lang)
	return &u, nil
}

func scanSettings(row rowScanner) (*model.ChatSettings, error) {
	var s model.ChatSettings
	var lang string
	if err := row.Scan(&s.ChatID, &s.PackLimit, &s.ReplyChance, &lang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.Language = model.Language(lang)
	return &s, nil
}
