package repository

import (
	"context"
	"errors"

	"github.com/FogoReed/random-stickers-bot/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SettingsRepository persists per-chat configuration.
type SettingsRepository interface {
	// GetOrCreateSettings returns the settings row for the chat,
	// inserting the defaults first if the chat has never been seen.
	GetOrCreateSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error)
	SaveSettings(ctx context.Context, s *model.ChatSettings) error
}

// PackRepository persists the per-chat sticker pack registry.
type PackRepository interface {
	GetPack(ctx context.Context, chatID int64, setName string) (*model.Pack, error)
	// InsertPackBelowLimit inserts the pack only while the chat holds
	// fewer than limit allowed packs. The check and the insert are one
	// atomic statement. Returns false without error when nothing was
	// inserted, either because the limit is reached or because the pack
	// already exists.
	InsertPackBelowLimit(ctx context.Context, p *model.Pack, limit int) (bool, error)
	// SetPackStatus flips the status and reports whether a row matched.
	// No row is created for an unknown pack.
	SetPackStatus(ctx context.Context, chatID int64, setName string, status model.PackStatus) (bool, error)
	// ListPacks returns all packs of the chat in insertion order.
	ListPacks(ctx context.Context, chatID int64) ([]*model.Pack, error)
	ClearPacks(ctx context.Context, chatID int64) error
	CountAllowedPacks(ctx context.Context, chatID int64) (int, error)
	SumAllowedStickerCounts(ctx context.Context, chatID int64) (int, error)
	// RandomAllowedPack returns a uniformly random allowed pack name or
	// ErrNotFound when the chat has none.
	RandomAllowedPack(ctx context.Context, chatID int64) (string, error)
}

// UserRepository persists global user activity counters.
type UserRepository interface {
	// RecordActivity upserts the user row: identity fields and
	// last-active are overwritten, exactly one of the two counters is
	// incremented depending on isMedia.
	RecordActivity(ctx context.Context, u *model.UserStats, isMedia bool) error
	GetUser(ctx context.Context, userID int64) (*model.UserStats, error)
	// TopUsers returns up to limit users ordered by total activity
	// (sticker calls plus media calls) descending.
	TopUsers(ctx context.Context, limit int) ([]*model.UserStats, error)
}

// Store bundles the repositories backed by a single database.
type Store interface {
	SettingsRepository
	PackRepository
	UserRepository
	Close() error
}
