// Package persistence mirrors the draft session into durable storage so an
// in-progress draft survives a restart.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Storage keys, one per mirrored piece of session state
const (
	KeyDraftedPlayers = "drafted_players"
	KeyGameState      = "game_state"
	KeyMaxRounds      = "max_rounds"
	KeyDraftOrder     = "draft_order"
)

// Keys lists every key a snapshot occupies
var Keys = []string{KeyDraftedPlayers, KeyGameState, KeyMaxRounds, KeyDraftOrder}

// ErrCorruptSnapshot is returned when stored state is partial or cannot be parsed
var ErrCorruptSnapshot = errors.New("corrupt session snapshot")

// Snapshot is the durable part of a draft session. The pool is not stored;
// it is derived again from freshly fetched players on restore.
type Snapshot struct {
	Drafted   []models.Player
	Phase     models.Phase
	MaxRounds int
	Order     []models.DraftSlot
}

// Bridge saves and restores snapshots.
// Load returns nil, nil when nothing has been saved.
type Bridge interface {
	Save(ctx context.Context, s Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Clear(ctx context.Context) error
}

// Encode renders a snapshot as the four stored values
func Encode(s Snapshot) (map[string]string, error) {
	drafted := s.Drafted
	if drafted == nil {
		drafted = []models.Player{}
	}
	draftedJSON, err := json.Marshal(drafted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal drafted players: %w", err)
	}

	order := s.Order
	if order == nil {
		order = []models.DraftSlot{}
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft order: %w", err)
	}

	return map[string]string{
		KeyDraftedPlayers: string(draftedJSON),
		KeyGameState:      s.Phase.StoredValue(),
		KeyMaxRounds:      strconv.Itoa(s.MaxRounds),
		KeyDraftOrder:     string(orderJSON),
	}, nil
}

// Decode parses stored values back into a snapshot.
// No keys at all means no saved session; some but not all keys is corruption.
func Decode(values map[string]string) (*Snapshot, error) {
	present := 0
	for _, k := range Keys {
		if _, ok := values[k]; ok {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present != len(Keys) {
		return nil, fmt.Errorf("%d of %d keys present: %w", present, len(Keys), ErrCorruptSnapshot)
	}

	phase, ok := models.PhaseFromStored(values[KeyGameState])
	if !ok {
		return nil, fmt.Errorf("unknown phase %q: %w", values[KeyGameState], ErrCorruptSnapshot)
	}

	rounds, err := strconv.Atoi(values[KeyMaxRounds])
	if err != nil {
		return nil, fmt.Errorf("max rounds %q: %w", values[KeyMaxRounds], ErrCorruptSnapshot)
	}

	var drafted []models.Player
	if err := json.Unmarshal([]byte(values[KeyDraftedPlayers]), &drafted); err != nil {
		return nil, fmt.Errorf("drafted players: %v: %w", err, ErrCorruptSnapshot)
	}

	var order []models.DraftSlot
	if err := json.Unmarshal([]byte(values[KeyDraftOrder]), &order); err != nil {
		return nil, fmt.Errorf("draft order: %v: %w", err, ErrCorruptSnapshot)
	}

	return &Snapshot{
		Drafted:   drafted,
		Phase:     phase,
		MaxRounds: rounds,
		Order:     order,
	}, nil
}
