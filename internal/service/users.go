package service

import (
	"context"
	"time"

	"github.com/FogoReed/random-stickers-bot/internal/model"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

// UserService tracks global per-user activity counters.
type UserService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// Record upserts the user's identity fields and bumps exactly one of
// the two activity counters: media calls when isMedia, sticker calls
// otherwise.
func (s *UserService) Record(ctx context.Context, u *model.UserStats, isMedia bool) error {
	u.LastActive = s.now()
	return s.repo.RecordActivity(ctx, u, isMedia)
}

// Top returns up to n users ordered by total activity descending.
func (s *UserService) Top(ctx context.Context, n int) ([]*model.UserStats, error) {
	return s.repo.TopUsers(ctx, n)
}
