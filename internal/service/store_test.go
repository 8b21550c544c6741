package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

// memStore is an in-memory repository.Store with the same semantics as
// the SQL-backed ones.
type memStore struct {
	mu       sync.Mutex
	settings map[int64]*model.ChatSettings
	packs    []*model.Pack
	users    map[int64]*model.UserStats
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		settings: map[int64]*model.ChatSettings{},
		users:    map[int64]*model.UserStats{},
	}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) GetOrCreateSettings(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.settings[chatID]; ok {
		copy := *s
		return &copy, nil
	}
	s := model.DefaultChatSettings(chatID)
	m.settings[chatID] = s
	copy := *s
	return &copy, nil
}

func (m *memStore) SaveSettings(ctx context.Context, s *model.ChatSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *s
	m.settings[s.ChatID] = &copy
	return nil
}

func (m *memStore) GetPack(ctx context.Context, chatID int64, setName string) (*model.Pack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packs {
		if p.ChatID == chatID && p.SetName == setName {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) InsertPackBelowLimit(ctx context.Context, p *model.Pack, limit int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	allowed := 0
	for _, existing := range m.packs {
		if existing.ChatID == p.ChatID && existing.SetName == p.SetName {
			return false, nil
		}
		if existing.ChatID == p.ChatID && existing.Status == model.PackAllowed {
			allowed++
		}
	}
	if allowed >= limit {
		return false, nil
	}
	copy := *p
	m.packs = append(m.packs, &copy)
	return true, nil
}

func (m *memStore) SetPackStatus(ctx context.Context, chatID int64, setName string, status model.PackStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packs {
		if p.ChatID == chatID && p.SetName == setName {
			p.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListPacks(ctx context.Context, chatID int64) ([]*model.Pack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Pack
	for _, p := range m.packs {
		if p.ChatID == chatID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *memStore) ClearPacks(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*model.Pack
	for _, p := range m.packs {
		if p.ChatID != chatID {
			kept = append(kept, p)
		}
	}
	m.packs = kept
	return nil
}

func (m *memStore) CountAllowedPacks(ctx context.Context, chatID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.packs {
		if p.ChatID == chatID && p.Status == model.PackAllowed {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SumAllowedStickerCounts(ctx context.Context, chatID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0
	for _, p := range m.packs {
		if p.ChatID == chatID && p.Status == model.PackAllowed {
			sum += p.StickerCount
		}
	}
	return sum, nil
}

func (m *memStore) RandomAllowedPack(ctx context.Context, chatID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for _, p := range m.packs {
		if p.ChatID == chatID && p.Status == model.PackAllowed {
			names = append(names, p.SetName)
		}
	}
	if len(names) == 0 {
		return "", repository.ErrNotFound
	}
	return names[rand.Intn(len(names))], nil
}

func (m *memStore) RecordActivity(ctx context.Context, u *model.UserStats, isMedia bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[u.UserID]
	if !ok {
		existing = &model.UserStats{UserID: u.UserID, Language: model.DefaultLanguage}
		m.users[u.UserID] = existing
	}
	existing.FirstName = u.FirstName
	existing.LastName = u.LastName
	existing.Username = u.Username
	existing.LastActive = u.LastActive
	if isMedia {
		existing.MediaCalls++
	} else {
		existing.StickerCalls++
	}
	return nil
}

func (m *memStore) GetUser(ctx context.Context, userID int64) (*model.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) TopUsers(ctx context.Context, limit int) ([]*model.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.UserStats
	for _, u := range m.users {
		copy := *u
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StickerCalls+out[i].MediaCalls > out[j].StickerCalls+out[j].MediaCalls
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
