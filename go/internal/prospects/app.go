package prospects

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// DraftRoom is everything a draft session is seeded with
type DraftRoom struct {
	Players []models.Player
	Order   []models.DraftSlot
}

// App handles prospect loading on top of a Source
type App struct {
	source Source
}

// NewApp creates a new prospects App
func NewApp(source Source) *App {
	return &App{source: source}
}

// LoadDraftRoom fetches the active pool and the draft order concurrently.
// A failed fetch is logged and yields empty collections.
func (a *App) LoadDraftRoom(ctx context.Context) DraftRoom {
	var room DraftRoom
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, err := a.source.ListActivePlayers(gctx)
		if err != nil {
			return err
		}
		room.Players = players
		return nil
	})
	g.Go(func() error {
		order, err := a.source.ListDraftOrder(gctx)
		if err != nil {
			return err
		}
		room.Order = order
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load draft room, starting empty")
		return DraftRoom{Players: []models.Player{}, Order: []models.DraftSlot{}}
	}

	log.Info().
		Int("players", len(room.Players)).
		Int("slots", len(room.Order)).
		Msg("draft room loaded")
	return room
}

// BoardPlayers returns every player for the big board, empty on failure
func (a *App) BoardPlayers(ctx context.Context) []models.Player {
	players, err := a.source.ListAllPlayers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load big board players")
		return []models.Player{}
	}
	return players
}

// Profile looks up a player for a profile page
func (a *App) Profile(ctx context.Context, slug string) (*models.Player, error) {
	return a.source.GetPlayerBySlug(ctx, slug)
}
