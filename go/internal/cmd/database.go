package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/dbconfig"
)

func setupDatabase(ctx context.Context) (*sql.DB, error) {
	dbConfig, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	database, err := sql.Open("postgres", dbConfig.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("database", dbConfig.String()).Msg("connected to database")
	return database, nil
}
