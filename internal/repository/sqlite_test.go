package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FogoReed/random-stickers-bot/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_GetOrCreateSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cs, err := s.GetOrCreateSettings(ctx, 1)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if cs.PackLimit != model.DefaultPackLimit || cs.ReplyChance != model.DefaultReplyChance || cs.Language != model.DefaultLanguage {
		t.Fatalf("unexpected defaults: %+v", cs)
	}

	cs.PackLimit = 7
	if err := s.SaveSettings(ctx, cs); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A second get must return the stored row, not re-create defaults.
	again, err := s.GetOrCreateSettings(ctx, 1)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.PackLimit != 7 {
		t.Fatalf("expected stored limit 7, got %d", again.PackLimit)
	}
}

func TestSQLite_InsertPackBelowLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &model.Pack{ChatID: 1, SetName: "A", StickerCount: 10, Status: model.PackAllowed}
	b := &model.Pack{ChatID: 1, SetName: "B", StickerCount: 5, Status: model.PackAllowed}
	c := &model.Pack{ChatID: 1, SetName: "C", StickerCount: 3, Status: model.PackAllowed}

	if ok, err := s.InsertPackBelowLimit(ctx, a, 2); err != nil || !ok {
		t.Fatalf("insert A: ok=%v err=%v", ok, err)
	}
	if ok, err := s.InsertPackBelowLimit(ctx, b, 2); err != nil || !ok {
		t.Fatalf("insert B: ok=%v err=%v", ok, err)
	}
	// At the limit the insert must be a no-op.
	if ok, err := s.InsertPackBelowLimit(ctx, c, 2); err != nil || ok {
		t.Fatalf("insert C at limit: ok=%v err=%v", ok, err)
	}
	if _, err := s.GetPack(ctx, 1, "C"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("C must not exist, got %v", err)
	}
	// Duplicates report not-inserted even below the limit.
	if ok, err := s.InsertPackBelowLimit(ctx, a, 10); err != nil || ok {
		t.Fatalf("duplicate insert: ok=%v err=%v", ok, err)
	}

	if n, err := s.CountAllowedPacks(ctx, 1); err != nil || n != 2 {
		t.Fatalf("count: %d (%v)", n, err)
	}
	if sum, err := s.SumAllowedStickerCounts(ctx, 1); err != nil || sum != 15 {
		t.Fatalf("sum: %d (%v)", sum, err)
	}
}

func TestSQLite_BannedPacksFreeUpTheLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "A"}, 1)
	if ok, _ := s.SetPackStatus(ctx, 1, "A", model.PackBanned); !ok {
		t.Fatalf("ban A")
	}
	// Only allowed packs count against the limit.
	if ok, err := s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "B"}, 1); err != nil || !ok {
		t.Fatalf("insert B after banning A: ok=%v err=%v", ok, err)
	}
}

func TestSQLite_SetPackStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if ok, err := s.SetPackStatus(ctx, 1, "ghost", model.PackBanned); err != nil || ok {
		t.Fatalf("status on unknown pack: ok=%v err=%v", ok, err)
	}

	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "cats"}, 50)
	if ok, err := s.SetPackStatus(ctx, 1, "cats", model.PackBanned); err != nil || !ok {
		t.Fatalf("ban: ok=%v err=%v", ok, err)
	}
	p, err := s.GetPack(ctx, 1, "cats")
	if err != nil {
		t.Fatalf("get pack: %v", err)
	}
	if p.Status != model.PackBanned {
		t.Fatalf("expected banned, got %s", p.Status)
	}
}

func TestSQLite_ListAndClearPacks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "cats"}, 50)
	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "dogs"}, 50)
	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 2, SetName: "birds"}, 50)

	packs, err := s.ListPacks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(packs) != 2 || packs[0].SetName != "cats" || packs[1].SetName != "dogs" {
		t.Fatalf("unexpected list: %+v", packs)
	}

	if err := s.ClearPacks(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if packs, _ := s.ListPacks(ctx, 1); len(packs) != 0 {
		t.Fatalf("chat 1 not cleared")
	}
	if packs, _ := s.ListPacks(ctx, 2); len(packs) != 1 {
		t.Fatalf("chat 2 must be untouched")
	}
}

func TestSQLite_RandomAllowedPack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.RandomAllowedPack(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "cats"}, 50)
	s.InsertPackBelowLimit(ctx, &model.Pack{ChatID: 1, SetName: "dogs"}, 50)
	s.SetPackStatus(ctx, 1, "dogs", model.PackBanned)

	for i := 0; i < 20; i++ {
		name, err := s.RandomAllowedPack(ctx, 1)
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if name != "cats" {
			t.Fatalf("banned pack %q returned", name)
		}
	}
}

func TestSQLite_RecordActivityMerges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	u := &model.UserStats{UserID: 1, FirstName: "Ann", Username: "ann", LastActive: now}
	if err := s.RecordActivity(ctx, u, false); err != nil {
		t.Fatalf("record: %v", err)
	}
	u.Username = "ann_new"
	u.LastActive = now.Add(time.Minute)
	if err := s.RecordActivity(ctx, u, true); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := s.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.StickerCalls != 1 || got.MediaCalls != 1 {
		t.Fatalf("expected counters 1/1, got %d/%d", got.StickerCalls, got.MediaCalls)
	}
	if got.Username != "ann_new" {
		t.Fatalf("identity not updated: %q", got.Username)
	}
}

func TestSQLite_TopUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		s.RecordActivity(ctx, &model.UserStats{UserID: 1, FirstName: "Ann", LastActive: now}, false)
	}
	s.RecordActivity(ctx, &model.UserStats{UserID: 2, FirstName: "Bob", LastActive: now}, true)
	for i := 0; i < 5; i++ {
		s.RecordActivity(ctx, &model.UserStats{UserID: 3, FirstName: "Cat", LastActive: now}, true)
	}

	top, err := s.TopUsers(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].UserID != 3 || top[1].UserID != 1 {
		t.Fatalf("unexpected order: %+v", top)
	}
}

func TestSQLite_GetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetUser(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
