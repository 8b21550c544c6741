package service

import (
	"context"
	"errors"
	"log"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

// RegisterOutcome describes what happened to the pack of an incoming
// sticker.
type RegisterOutcome int

const (
	PackAdded RegisterOutcome = iota
	IgnoredNoPackName
	IgnoredBanned
	IgnoredLimitReached
	IgnoredDuplicate
)

func (o RegisterOutcome) String() string {
	switch o {
	case PackAdded:
		return "added"
	case IgnoredNoPackName:
		return "no pack name"
	case IgnoredBanned:
		return "banned"
	case IgnoredLimitReached:
		return "limit reached"
	case IgnoredDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// StickerCounter resolves how many stickers a pack holds. A failure is
// tolerated: the pack is registered with count 0.
type StickerCounter interface {
	StickerCount(ctx context.Context, setName string) (int, error)
}

// PackService maintains the per-chat registry of known sticker packs.
type PackService struct {
	repo     repository.PackRepository
	settings *SettingsService
	counter  StickerCounter
}

func NewPackService(repo repository.PackRepository, settings *SettingsService, counter StickerCounter) *PackService {
	return &PackService{repo: repo, settings: settings, counter: counter}
}

// RegisterSticker records the pack an incoming sticker belongs to,
// honoring bans and the per-chat pack limit. The limit check and the
// insert happen in one atomic repository call, so concurrent stickers
// cannot push a chat over its limit.
func (s *PackService) RegisterSticker(ctx context.Context, chatID int64, setName string) (RegisterOutcome, error) {
	if setName == "" {
		return IgnoredNoPackName, nil
	}

	existing, err := s.repo.GetPack(ctx, chatID, setName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return IgnoredNoPackName, err
	}
	limit, err := s.settings.PackLimit(ctx, chatID)
	if err != nil {
		return IgnoredNoPackName, err
	}

	if existing != nil {
		if existing.Status == model.PackBanned {
			return IgnoredBanned, nil
		}
		count, err := s.repo.CountAllowedPacks(ctx, chatID)
		if err != nil {
			return IgnoredNoPackName, err
		}
		if count >= limit {
			return IgnoredLimitReached, nil
		}
		return IgnoredDuplicate, nil
	}

	count := 0
	if s.counter != nil {
		n, err := s.counter.StickerCount(ctx, setName)
		if err != nil {
			log.Printf("chat_id=%d: sticker count lookup for %q failed: %v", chatID, setName, err)
		} else {
			count = n
		}
	}

	pack := &model.Pack{ChatID: chatID, SetName: setName, StickerCount: count, Status: model.PackAllowed}
	inserted, err := s.repo.InsertPackBelowLimit(ctx, pack, limit)
	if err != nil {
		return IgnoredNoPackName, err
	}
	if inserted {
		log.Printf("chat_id=%d: added pack %q (%d stickers)", chatID, setName, count)
		return PackAdded, nil
	}

	// Lost a race: either another event inserted the pack first or the
	// chat filled up to its limit in the meantime.
	if _, err := s.repo.GetPack(ctx, chatID, setName); err == nil {
		return IgnoredDuplicate, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return IgnoredNoPackName, err
	}
	return IgnoredLimitReached, nil
}

// Ban marks a pack as banned. Returns false when the pack is unknown in
// the chat; no row is created.
func (s *PackService) Ban(ctx context.Context, chatID int64, setName string) (bool, error) {
	return s.repo.SetPackStatus(ctx, chatID, setName, model.PackBanned)
}

// Unban marks a pack as allowed again. Returns false when the pack is
// unknown in the chat.
func (s *PackService) Unban(ctx context.Context, chatID int64, setName string) (bool, error) {
	return s.repo.SetPackStatus(ctx, chatID, setName, model.PackAllowed)
}

// List returns all packs of the chat in insertion order.
func (s *PackService) List(ctx context.Context, chatID int64) ([]*model.Pack, error) {
	return s.repo.ListPacks(ctx, chatID)
}

// Clear wipes the chat's pack registry. Chat settings are untouched.
func (s *PackService) Clear(ctx context.Context, chatID int64) error {
	return s.repo.ClearPacks(ctx, chatID)
}

// PickRandomAllowed returns a uniformly random allowed pack name or
// repository.ErrNotFound when the chat has none.
func (s *PackService) PickRandomAllowed(ctx context.Context, chatID int64) (string, error) {
	return s.repo.RandomAllowedPack(ctx, chatID)
}

func (s *PackService) CountAllowed(ctx context.Context, chatID int64) (int, error) {
	return s.repo.CountAllowedPacks(ctx, chatID)
}

func (s *PackService) SumStickerCounts(ctx context.Context, chatID int64) (int, error) {
	return s.repo.SumAllowedStickerCounts(ctx, chatID)
}
