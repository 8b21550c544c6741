package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

// EventType classifies an inbound chat message for the reply engine.
type EventType int

const (
	EventSticker EventType = iota
	EventText
	EventMedia
)

// Event is an inbound chat message stripped down to what the reply
// engine needs.
type Event struct {
	Type         EventType
	ChatID       int64
	MessageID    int
	MediaGroupID string
	User         model.UserStats
	// StickerSet is the pack name, set on sticker events only. Empty
	// when the sticker does not belong to a pack.
	StickerSet string
}

// ReplyResult tells the caller what the engine did with an event.
type ReplyResult int

const (
	ReplyNone ReplyResult = iota
	ReplySent
	ReplyNoPacks
	ReplySuppressed
)

// StickerSender delivers a sticker reply to a chat.
type StickerSender interface {
	SendSticker(ctx context.Context, chatID int64, fileID string, replyTo int) error
}

// StickerPicker resolves a pack name to the file ids of its stickers.
type StickerPicker interface {
	StickerFileIDs(ctx context.Context, setName string) ([]string, error)
}

// ReplyService decides whether an inbound message earns a sticker
// reply. Text messages reply with the chat's configured probability,
// other media always reply, stickers feed the pack registry instead.
type ReplyService struct {
	settings *SettingsService
	packs    *PackService
	users    *UserService
	groups   *MediaGroupCache
	picker   StickerPicker
	sender   StickerSender
	now      func() time.Time
}

func NewReplyService(settings *SettingsService, packs *PackService, users *UserService,
	groups *MediaGroupCache, picker StickerPicker, sender StickerSender) *ReplyService {
	return &ReplyService{
		settings: settings,
		packs:    packs,
		users:    users,
		groups:   groups,
		picker:   picker,
		sender:   sender,
		now:      time.Now,
	}
}

// HandleEvent runs one inbound message through the reply decision
// machine. Errors are storage-level only; everything user-visible comes
// back in the ReplyResult.
func (s *ReplyService) HandleEvent(ctx context.Context, ev Event) (ReplyResult, error) {
	if ev.Type == EventSticker {
		if err := s.users.Record(ctx, &ev.User, false); err != nil {
			return ReplyNone, err
		}
		outcome, err := s.packs.RegisterSticker(ctx, ev.ChatID, ev.StickerSet)
		if err != nil {
			return ReplyNone, err
		}
		if outcome != PackAdded {
			log.Printf("chat_id=%d: pack %q not added: %s", ev.ChatID, ev.StickerSet, outcome)
		}
		return ReplyNone, nil
	}

	// Album tails are dropped wholesale, activity counters included.
	if ev.MediaGroupID != "" && s.groups.ShouldSuppress(ev.MediaGroupID, s.now()) {
		return ReplySuppressed, nil
	}

	switch ev.Type {
	case EventText:
		if err := s.users.Record(ctx, &ev.User, false); err != nil {
			return ReplyNone, err
		}
		// The chance is read fresh per event so admin changes apply
		// immediately.
		chance, err := s.settings.ReplyChance(ctx, ev.ChatID)
		if err != nil {
			return ReplyNone, err
		}
		roll := rand.Float64()
		if roll >= chance {
			return ReplyNone, nil
		}
		log.Printf("chat_id=%d: reply triggered (roll=%.3f, chance=%.3f)", ev.ChatID, roll, chance)
		return s.SendRandomSticker(ctx, ev.ChatID, ev.MessageID)
	case EventMedia:
		if err := s.users.Record(ctx, &ev.User, true); err != nil {
			return ReplyNone, err
		}
		return s.SendRandomSticker(ctx, ev.ChatID, ev.MessageID)
	}
	return ReplyNone, nil
}

// SendRandomSticker picks an allowed pack and replies with a random
// sticker from it. Lookup and delivery failures degrade to a logged
// no-op; only storage errors propagate.
func (s *ReplyService) SendRandomSticker(ctx context.Context, chatID int64, replyTo int) (ReplyResult, error) {
	setName, err := s.packs.PickRandomAllowed(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Printf("chat_id=%d: no saved packs for sending sticker", chatID)
		return ReplyNoPacks, nil
	}
	if err != nil {
		return ReplyNone, err
	}
	fileIDs, err := s.picker.StickerFileIDs(ctx, setName)
	if err != nil {
		log.Printf("chat_id=%d: sticker set %q lookup failed: %v", chatID, setName, err)
		return ReplyNone, nil
	}
	if len(fileIDs) == 0 {
		log.Printf("chat_id=%d: sticker set %q is empty", chatID, setName)
		return ReplyNone, nil
	}
	fileID := fileIDs[rand.Intn(len(fileIDs))]
	if err := s.sender.SendSticker(ctx, chatID, fileID, replyTo); err != nil {
		log.Printf("chat_id=%d: send sticker from %q: %v", chatID, setName, err)
		return ReplyNone, nil
	}
	log.Printf("chat_id=%d: sent sticker from pack %q", chatID, setName)
	return ReplySent, nil
}
