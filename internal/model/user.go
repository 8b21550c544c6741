package model

import "time"

// UserStats is the global activity row for a Telegram user. Identity
// fields are last-write-wins; the two counters only ever grow.
type UserStats struct {
	UserID       int64
	FirstName    string
	LastName     string
	Username     string
	LastActive   time.Time
	StickerCalls int
	MediaCalls   int
	Language     Language
}

// DisplayName resolves the name shown in leaderboards: @username when
// available, first name otherwise.
func (u *UserStats) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}
