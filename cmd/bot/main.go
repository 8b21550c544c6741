package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/FogoReed/random-stickers-bot/internal/app"
	"github.com/FogoReed/random-stickers-bot/internal/config"
	"github.com/FogoReed/random-stickers-bot/internal/repository"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	var store repository.Store
	if cfg.DatabaseURL != "" {
		store, err = repository.NewPostgresStore(cfg.DatabaseURL)
	} else {
		store, err = repository.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	log.Println("bot started")
	application := app.New(cfg, store)
	if err := application.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
