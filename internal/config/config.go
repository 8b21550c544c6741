package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	// TelegramToken authenticates against the Bot API.
	TelegramToken string `env:"TOKEN,required"`
	// DatabaseURL switches storage to Postgres when set; otherwise the
	// bot keeps its state in the SQLite file at SQLitePath.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"packs.db"`
	// LookupTimeout bounds sticker-set lookups so a slow Telegram call
	// never stalls pack registration.
	LookupTimeout time.Duration `env:"STICKER_LOOKUP_TIMEOUT" envDefault:"5s"`
	// PollTimeout is the long-poll timeout passed to getUpdates.
	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"30s"`
}

// FromEnv loads configuration from environment variables. TOKEN is
// required; everything else has a default.
func FromEnv() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}
