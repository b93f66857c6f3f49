package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/clients/postgrest"
	"github.com/mcdev12/mockdraft/go/internal/board"
	"github.com/mcdev12/mockdraft/go/internal/config"
	"github.com/mcdev12/mockdraft/go/internal/draft"
	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/gateway"
	"github.com/mcdev12/mockdraft/go/internal/draft/outbox"
	"github.com/mcdev12/mockdraft/go/internal/draft/persistence"
	"github.com/mcdev12/mockdraft/go/internal/prospects"
)

type Services struct {
	Gateway *gateway.Service
	Session *draft.Session
	Outbox  *outbox.Worker

	closers []func() error
}

// Close releases everything setupServices opened, in reverse order
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to close resource")
		}
	}
}

func setupServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	// Wire up dependency injection chain
	// Source → prospects App → Session (bridge, publishers) → Gateway
	services := &Services{}

	source, err := setupSource(ctx, cfg, services)
	if err != nil {
		services.Close()
		return nil, err
	}
	prospectsApp := prospects.NewApp(source)

	store, err := persistence.OpenSQLite(cfg.StatePath)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	services.closers = append(services.closers, store.Close)

	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	publishers := events.Fanout{connections}

	var health outbox.HealthChecker = outbox.DisabledHealthChecker{}
	if cfg.NATS.Enabled {
		jsConfig := outbox.DefaultJetStreamConfig()
		jsConfig.URL = cfg.NATS.URL
		js, err := outbox.NewJetStreamPublisher(ctx, jsConfig)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to connect event relay: %w", err)
		}
		services.closers = append(services.closers, js.Close)

		metrics := outbox.NewMemoryMetrics()
		services.Outbox = outbox.NewWorker(js, metrics, outbox.DefaultConfig())
		publishers = append(publishers, services.Outbox)
		health = outbox.NewRelayHealthChecker(services.Outbox, js, metrics)
	}

	services.Session = draft.NewSession(cfg.SessionConfig(), nil, store, publishers)
	room := prospectsApp.LoadDraftRoom(ctx)
	if err := services.Session.Seed(ctx, room.Players, room.Order); err != nil {
		// the room still serves an empty ledger; the operator sees why
		log.Error().Err(err).Msg("failed to build pick ledger")
	}

	bigBoard := board.New(prospectsApp.BoardPlayers(ctx), cfg.Draft.BoardSizes)

	services.Gateway = gateway.NewService(gateway.Deps{
		Session:     services.Session,
		Board:       bigBoard,
		Prospects:   prospectsApp,
		Connections: connections,
		Publisher:   publishers,
		Health:      health,
	})

	return services, nil
}

func setupSource(ctx context.Context, cfg *config.Config, services *Services) (prospects.Source, error) {
	switch cfg.Source {
	case config.SourceREST:
		client := postgrest.NewClient(cfg.PostgREST.URL, cfg.PostgREST.APIKey)
		client.SetRateLimit(cfg.PostgREST.RateLimit)
		log.Info().Str("url", cfg.PostgREST.URL).Msg("using PostgREST prospect source")
		return prospects.NewRESTSource(client), nil
	default:
		database, err := setupDatabase(ctx)
		if err != nil {
			return nil, err
		}
		services.closers = append(services.closers, database.Close)
		return prospects.NewRepository(database), nil
	}
}
