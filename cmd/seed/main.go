// Package main seeds the initial login account.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"petstock/internal/core/id"
	"petstock/internal/domain/auth"
	"petstock/internal/infrastructure/config"
	"petstock/internal/infrastructure/storage/postgres"
	"petstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}
	if name == "" {
		name = email
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepo(txManager)

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalw("failed to hash password", "error", err)
	}

	u := &auth.User{
		ID:           id.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := userRepo.Create(ctx, u); err != nil {
		log.Fatalw("failed to create user", "error", err)
	}

	log.Infow("user created", "id", u.ID, "email", u.Email)
}
