package prospects

import (
	"context"
	"fmt"

	"github.com/mcdev12/mockdraft/go/clients/postgrest"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// RESTSource reads prospects through the hosted PostgREST API
type RESTSource struct {
	client *postgrest.Client
}

func NewRESTSource(client *postgrest.Client) *RESTSource {
	return &RESTSource{client: client}
}

func (s *RESTSource) players(ctx context.Context, q postgrest.Query) ([]models.Player, error) {
	players := []models.Player{}
	if err := s.client.Select(ctx, postgrest.PlayersTable, q, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *RESTSource) ListActivePlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.players(ctx, postgrest.Query{
		Eq:    map[string]string{"status": models.PlayerStatusActive},
		Order: "rank.asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active players: %w", err)
	}
	return players, nil
}

func (s *RESTSource) ListAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.players(ctx, postgrest.Query{Order: "rank.asc"})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *RESTSource) GetPlayerBySlug(ctx context.Context, slug string) (*models.Player, error) {
	players, err := s.players(ctx, postgrest.Query{
		Eq:    map[string]string{"slug": slug},
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%s: %w", slug, ErrPlayerNotFound)
	}
	return &players[0], nil
}

func (s *RESTSource) ListDraftOrder(ctx context.Context) ([]models.DraftSlot, error) {
	var order []models.DraftSlot
	err := s.client.Select(ctx, postgrest.DraftOrderTable, postgrest.Query{Order: "slot_number.asc"}, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft order: %w", err)
	}
	for i := range order {
		if order[i].Needs == nil {
			order[i].Needs = []string{}
		}
	}
	return order, nil
}
