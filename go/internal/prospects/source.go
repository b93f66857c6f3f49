// Package prospects reads players and the draft order from the hosted backend.
package prospects

import (
	"context"
	"errors"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// ErrPlayerNotFound is returned when no player has the requested slug
var ErrPlayerNotFound = errors.New("player not found")

// Source is the read-only prospect backend
type Source interface {
	// ListActivePlayers returns players with status active, rank ascending
	ListActivePlayers(ctx context.Context) ([]models.Player, error)
	// ListAllPlayers returns every player, rank ascending
	ListAllPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayerBySlug(ctx context.Context, slug string) (*models.Player, error)
	// ListDraftOrder returns the real draft order, slot number ascending
	ListDraftOrder(ctx context.Context) ([]models.DraftSlot, error)
}
