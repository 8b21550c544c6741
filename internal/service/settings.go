package service

import (
	"context"
	"fmt"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

// SettingsService manages per-chat configuration. Reads materialize a
// default row for chats the bot has never seen, so callers never deal
// with a missing-settings case.
type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetOrCreate returns the chat settings, inserting the defaults on
// first contact with a chat.
func (s *SettingsService) GetOrCreate(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	return s.repo.GetOrCreateSettings(ctx, chatID)
}

func (s *SettingsService) PackLimit(ctx context.Context, chatID int64) (int, error) {
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return 0, err
	}
	return cs.PackLimit, nil
}

func (s *SettingsService) ReplyChance(ctx context.Context, chatID int64) (float64, error) {
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return 0, err
	}
	return cs.ReplyChance, nil
}

func (s *SettingsService) Language(ctx context.Context, chatID int64) (model.Language, error) {
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return model.DefaultLanguage, err
	}
	return cs.Language, nil
}

// SetPackLimit stores a new pack limit, keeping the other settings as
// they are. Packs already registered above a lowered limit stay.
func (s *SettingsService) SetPackLimit(ctx context.Context, chatID int64, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("pack limit must be positive, got %d", limit)
	}
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	cs.PackLimit = limit
	return s.repo.SaveSettings(ctx, cs)
}

// SetReplyChance stores a new reply probability in [0,1], keeping the
// other settings as they are.
func (s *SettingsService) SetReplyChance(ctx context.Context, chatID int64, chance float64) error {
	if chance < 0 || chance > 1 {
		return fmt.Errorf("reply chance must be within [0,1], got %v", chance)
	}
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	cs.ReplyChance = chance
	return s.repo.SaveSettings(ctx, cs)
}

// SetLanguage stores the chat interface language.
func (s *SettingsService) SetLanguage(ctx context.Context, chatID int64, lang model.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	cs, err := s.GetOrCreate(ctx, chatID)
	if err != nil {
		return err
	}
	cs.Language = lang
	return s.repo.SaveSettings(ctx, cs)
}
