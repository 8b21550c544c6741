package service

import (
	"context"
	"testing"

	"github.com/FogoReed/random-stickers-bot/internal/model"
)

type fakeSender struct {
	sent []struct {
		ChatID  int64
		FileID  string
		ReplyTo int
	}
	err error
}

func (f *fakeSender) SendSticker(ctx context.Context, chatID int64, fileID string, replyTo int) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct {
		ChatID  int64
		FileID  string
		ReplyTo int
	}{chatID, fileID, replyTo})
	return nil
}

type fakePicker struct {
	ids map[string][]string
	err error
}

func (f *fakePicker) StickerFileIDs(ctx context.Context, setName string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids[setName], nil
}

type replyFixture struct {
	store  *memStore
	svc    *ReplyService
	sender *fakeSender
}

func newReplyFixture(t *testing.T) *replyFixture {
	t.Helper()
	store := newMemStore()
	settings := NewSettingsService(store)
	packs := NewPackService(store, settings, &fakeCounter{counts: map[string]int{"cats": 3}})
	users := NewUserService(store)
	sender := &fakeSender{}
	picker := &fakePicker{ids: map[string][]string{"cats": {"f1", "f2", "f3"}}}
	svc := NewReplyService(settings, packs, users, NewMediaGroupCache(), picker, sender)
	return &replyFixture{store: store, svc: svc, sender: sender}
}

func textEvent(chatID, userID int64, msgID int) Event {
	return Event{
		Type:      EventText,
		ChatID:    chatID,
		MessageID: msgID,
		User:      model.UserStats{UserID: userID, FirstName: "Ann"},
	}
}

func TestReplyService_ZeroChanceNeverReplies(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")
	if err := f.svc.settings.SetReplyChance(ctx, 1, 0); err != nil {
		t.Fatalf("set chance: %v", err)
	}

	for i := 0; i < 1000; i++ {
		res, err := f.svc.HandleEvent(ctx, textEvent(1, 7, i+1))
		if err != nil {
			t.Fatalf("handle event: %v", err)
		}
		if res != ReplyNone {
			t.Fatalf("chance 0 replied on event %d: %v", i, res)
		}
	}
	if len(f.sender.sent) != 0 {
		t.Fatalf("expected no stickers sent, got %d", len(f.sender.sent))
	}
	u, _ := f.store.GetUser(ctx, 7)
	if u.StickerCalls != 1000 {
		t.Fatalf("expected 1000 recorded text events, got %d", u.StickerCalls)
	}
}

func TestReplyService_FullChanceAlwaysReplies(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")
	if err := f.svc.settings.SetReplyChance(ctx, 1, 1); err != nil {
		t.Fatalf("set chance: %v", err)
	}

	for i := 0; i < 50; i++ {
		res, err := f.svc.HandleEvent(ctx, textEvent(1, 7, i+1))
		if err != nil {
			t.Fatalf("handle event: %v", err)
		}
		if res != ReplySent {
			t.Fatalf("chance 1 did not reply on event %d: %v", i, res)
		}
	}
	if len(f.sender.sent) != 50 {
		t.Fatalf("expected 50 stickers sent, got %d", len(f.sender.sent))
	}
	if f.sender.sent[0].ReplyTo != 1 {
		t.Fatalf("sticker must reply to the triggering message")
	}
}

func TestReplyService_FullChanceNoPacks(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.settings.SetReplyChance(ctx, 1, 1)

	res, err := f.svc.HandleEvent(ctx, textEvent(1, 7, 1))
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if res != ReplyNoPacks {
		t.Fatalf("expected no-packs signal, got %v", res)
	}
}

func TestReplyService_MediaAlwaysReplies(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")
	// Reply chance stays at the default; media ignores it.

	ev := Event{Type: EventMedia, ChatID: 1, MessageID: 5, User: model.UserStats{UserID: 7}}
	res, err := f.svc.HandleEvent(ctx, ev)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if res != ReplySent {
		t.Fatalf("media event must always reply, got %v", res)
	}
	u, _ := f.store.GetUser(ctx, 7)
	if u.MediaCalls != 1 || u.StickerCalls != 0 {
		t.Fatalf("expected media counter 1/0, got %d/%d", u.MediaCalls, u.StickerCalls)
	}
}

func TestReplyService_MediaGroupSuppression(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")

	ev := Event{Type: EventMedia, ChatID: 1, MessageID: 5, MediaGroupID: "album1", User: model.UserStats{UserID: 7}}
	if res, _ := f.svc.HandleEvent(ctx, ev); res != ReplySent {
		t.Fatalf("first album item must reply, got %v", res)
	}
	ev.MessageID = 6
	res, err := f.svc.HandleEvent(ctx, ev)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if res != ReplySuppressed {
		t.Fatalf("second album item must be suppressed, got %v", res)
	}

	// Suppressed events skip the activity ledger too.
	u, _ := f.store.GetUser(ctx, 7)
	if u.MediaCalls != 1 {
		t.Fatalf("suppressed event updated counters: %d", u.MediaCalls)
	}
	if len(f.sender.sent) != 1 {
		t.Fatalf("expected a single sticker, got %d", len(f.sender.sent))
	}
}

func TestReplyService_StickerEventFeedsRegistry(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()

	ev := Event{Type: EventSticker, ChatID: 1, MessageID: 2, StickerSet: "cats", User: model.UserStats{UserID: 7, FirstName: "Ann"}}
	res, err := f.svc.HandleEvent(ctx, ev)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if res != ReplyNone {
		t.Fatalf("sticker events never reply, got %v", res)
	}
	if _, err := f.store.GetPack(ctx, 1, "cats"); err != nil {
		t.Fatalf("pack not registered: %v", err)
	}
	u, _ := f.store.GetUser(ctx, 7)
	if u.StickerCalls != 1 || u.MediaCalls != 0 {
		t.Fatalf("expected sticker counter 1/0, got %d/%d", u.StickerCalls, u.MediaCalls)
	}
}

func TestReplyService_SendFailureDegrades(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")
	f.sender.err = context.DeadlineExceeded

	res, err := f.svc.SendRandomSticker(ctx, 1, 3)
	if err != nil {
		t.Fatalf("send failures must not propagate: %v", err)
	}
	if res != ReplyNone {
		t.Fatalf("expected ReplyNone on delivery failure, got %v", res)
	}
}

func TestReplyService_ChanceReadFreshPerEvent(t *testing.T) {
	f := newReplyFixture(t)
	ctx := context.Background()
	f.svc.packs.RegisterSticker(ctx, 1, "cats")

	f.svc.settings.SetReplyChance(ctx, 1, 0)
	if res, _ := f.svc.HandleEvent(ctx, textEvent(1, 7, 1)); res != ReplyNone {
		t.Fatalf("chance 0 must not reply")
	}
	f.svc.settings.SetReplyChance(ctx, 1, 1)
	if res, _ := f.svc.HandleEvent(ctx, textEvent(1, 7, 2)); res != ReplySent {
		t.Fatalf("raised chance must apply immediately")
	}
}
