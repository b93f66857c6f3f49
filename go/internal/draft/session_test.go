package draft

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/ledger"
	"github.com/mcdev12/mockdraft/go/internal/draft/persistence"
	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *eventRecorder) Publish(_ context.Context, e *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) count(t events.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

var positions = []string{"QB", "RB", "WR", "TE", "OT", "IOL", "EDGE", "DL", "LB", "CB", "S"}

func testPlayers(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		rank := i + 1
		players[i] = models.Player{
			ID:       int64(100 + i),
			Name:     fmt.Sprintf("Prospect %03d", i),
			Position: positions[i%len(positions)],
			College:  "State",
			Rank:     &rank,
			Status:   models.PlayerStatusActive,
		}
	}
	return players
}

// testOrder builds rounds x teams real slots; team names are Team00..TeamNN
func testOrder(teams, rounds int) []models.DraftSlot {
	var order []models.DraftSlot
	n := 1
	for r := 1; r <= rounds; r++ {
		for i := 0; i < teams; i++ {
			name := fmt.Sprintf("Team%02d", i)
			order = append(order, models.DraftSlot{
				ID:               int64(n),
				SlotNumber:       n,
				PickNumber:       i + 1,
				Round:            r,
				TeamName:         name,
				TeamAbbr:         fmt.Sprintf("T%02d", i),
				OriginalTeamName: name,
				CurrentTeamName:  name,
				Needs:            []string{positions[i%len(positions)]},
			})
			n++
		}
	}
	return order
}

type harness struct {
	session *Session
	clock   *clockwork.FakeClock
	store   *persistence.MemoryStore
	events  *eventRecorder
	players []models.Player
	order   []models.DraftSlot
}

func newHarness(t *testing.T, teams, rounds, players int) *harness {
	t.Helper()
	h := &harness{
		clock:   clockwork.NewFakeClock(),
		store:   persistence.NewMemoryStore(),
		events:  &eventRecorder{},
		players: testPlayers(players),
		order:   testOrder(teams, rounds),
	}
	h.session = h.reopen(t)
	return h
}

// reopen builds a new session over the same store, as a process restart would
func (h *harness) reopen(t *testing.T) *Session {
	t.Helper()
	s := NewSession(DefaultConfig(), h.clock, h.store, h.events)
	require.NoError(t, s.Seed(context.Background(), h.players, h.order))
	return s
}

func (h *harness) awaitPhase(t *testing.T, phase models.Phase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.session.Phase() == phase
	}, time.Second, 5*time.Millisecond)
}

func assertDisjoint(t *testing.T, s *Session) {
	t.Helper()
	inPool := pool.IDsOf(s.Available("", pool.PositionAll))
	for _, p := range s.Drafted() {
		assert.False(t, inPool.Has(p.ID), "player %d both drafted and available", p.ID)
	}
}

func TestStart(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()

	assert.False(t, h.session.SelectPlayer(ctx, 100), "no selections in SETUP")
	assert.False(t, h.session.Start(ctx, 5), "5 is not a round option")
	assert.Equal(t, models.PhaseSetup, h.session.Phase())
	assert.Equal(t, 0, h.store.Saves(), "SETUP is never saved")

	require.True(t, h.session.Start(ctx, 2))
	assert.False(t, h.session.Start(ctx, 1), "already started")

	v := h.session.View()
	assert.Equal(t, models.PhaseActive, v.Phase)
	assert.Equal(t, 8, v.TotalPicks)
	require.NotNil(t, v.OnTheClock)
	assert.Equal(t, "Team00", v.OnTheClock.CurrentTeamName)
	assert.Equal(t, 1, h.events.count(events.TypeDraftStarted))

	got, ok := h.store.Value(persistence.KeyGameState)
	require.True(t, ok)
	assert.Equal(t, "DRAFT", got)
}

func TestStart_RequiresDraftOrder(t *testing.T) {
	s := NewSession(DefaultConfig(), clockwork.NewFakeClock(), persistence.NewMemoryStore(), nil)
	require.NoError(t, s.Seed(context.Background(), testPlayers(5), nil))
	assert.False(t, s.Start(context.Background(), 1))
	assert.Equal(t, models.PhaseSetup, s.Phase())
}

func TestSelectPlayer(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))

	require.True(t, h.session.SelectPlayer(ctx, 105))
	assert.False(t, h.session.SelectPlayer(ctx, 105), "already drafted")
	assert.False(t, h.session.SelectPlayer(ctx, 9999), "not in pool")

	v := h.session.View()
	assert.Equal(t, 1, v.PicksMade)
	assert.Equal(t, 39, v.Available)
	assert.True(t, v.CanUndo)
	assert.Equal(t, "Team01", v.OnTheClock.CurrentTeamName)
	assertDisjoint(t, h.session)

	results := h.session.Results()
	require.Len(t, results, 4)
	require.NotNil(t, results[0].Player)
	assert.Equal(t, int64(105), results[0].Player.ID)
	assert.Nil(t, results[1].Player)
}

func TestSelectThenUndo_RestoresExactly(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 3))

	// some picks that stay
	require.True(t, h.session.SelectPlayer(ctx, 110))
	require.True(t, h.session.SelectPlayer(ctx, 101))

	beforePool := h.session.Available("", pool.PositionAll)
	beforeDrafted := h.session.Drafted()

	picks := []int64{120, 100, 139, 115, 102}
	for _, id := range picks {
		require.True(t, h.session.SelectPlayer(ctx, id))
		assertDisjoint(t, h.session)
	}
	for range picks {
		require.True(t, h.session.Undo(ctx))
		assertDisjoint(t, h.session)
	}

	assert.Equal(t, beforePool, h.session.Available("", pool.PositionAll), "undone players return to their prior position")
	assert.Equal(t, beforeDrafted, h.session.Drafted())
	assert.Equal(t, len(picks), h.events.count(events.TypeSelectionUndone))
}

func TestUndo_EmptyHistoryIsNoop(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))

	before := h.session.View()
	assert.False(t, h.session.Undo(ctx))
	assert.Equal(t, before, h.session.View())
	assert.Equal(t, 0, h.events.count(events.TypeSelectionUndone))
}

func TestFullFirstRound_MovesToRecap(t *testing.T) {
	h := newHarness(t, 32, 7, 300)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))

	var selected []int64
	for i := 0; i < 32; i++ {
		id := int64(100 + i*3)
		require.True(t, h.session.SelectPlayer(ctx, id), "pick %d", i+1)
		selected = append(selected, id)
	}
	assert.False(t, h.session.SelectPlayer(ctx, 101), "draft is full")
	assert.Equal(t, models.PhaseActive, h.session.Phase(), "recap waits for the delay")
	assert.True(t, h.session.View().RecapPending)

	h.clock.Advance(DefaultRecapDelay)
	h.awaitPhase(t, models.PhaseRecap)

	available := pool.IDsOf(h.session.Available("", pool.PositionAll))
	for _, id := range selected {
		assert.False(t, available.Has(id))
	}
	assert.Len(t, h.session.Drafted(), 32)
	assert.Equal(t, 1, h.events.count(events.TypeDraftCompleted))

	h.clock.Advance(time.Minute)
	assert.Equal(t, 1, h.events.count(events.TypeDraftCompleted), "recap fires exactly once")
	assert.False(t, h.session.Undo(ctx), "recap is terminal")

	got, _ := h.store.Value(persistence.KeyGameState)
	assert.Equal(t, "RESULTS", got)
}

func TestUndo_CancelsPendingRecap(t *testing.T) {
	h := newHarness(t, 2, 7, 10)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))
	require.True(t, h.session.SelectPlayer(ctx, 100))
	require.True(t, h.session.SelectPlayer(ctx, 101))
	require.True(t, h.session.View().RecapPending)

	require.True(t, h.session.Undo(ctx))
	assert.False(t, h.session.View().RecapPending)

	h.clock.Advance(time.Second)
	// give a stray timer goroutine the chance to run
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, models.PhaseActive, h.session.Phase())
	assert.Equal(t, 0, h.events.count(events.TypeDraftCompleted))

	// completing again schedules a fresh transition
	require.True(t, h.session.SelectPlayer(ctx, 105))
	h.clock.Advance(DefaultRecapDelay)
	h.awaitPhase(t, models.PhaseRecap)
	assert.Equal(t, 1, h.events.count(events.TypeDraftCompleted))
}

func TestConfirmTrade_Atomic(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 7))
	require.True(t, h.session.SelectPlayer(ctx, 100)) // Team01 on the clock

	before := h.session.Slots()
	future := ledger.FutureSlotNumber(2026, 2, 3)
	outbound := []int{6, 10}    // Team01's round 2 and 3 picks
	inbound := []int{4, future} // Team03's round 1 pick and a 2026 pick

	require.True(t, h.session.ConfirmTrade(ctx, outbound, inbound, "Team03"))
	after := h.session.Slots()
	require.Len(t, after, len(before))

	changed := map[int]string{6: "Team03", 10: "Team03", 4: "Team01", future: "Team01"}
	for i := range after {
		want, traded := changed[after[i].SlotNumber]
		if !traded {
			assert.Equal(t, before[i], after[i], "slot %d untouched", after[i].SlotNumber)
			continue
		}
		assert.Equal(t, want, after[i].CurrentTeamName)
		assert.Equal(t, before[i].OriginalTeamName, after[i].OriginalTeamName)
	}

	slot6 := after[5]
	assert.Equal(t, []string{"TE"}, slot6.Needs, "outbound slots take the partner's needs")
	assert.Equal(t, 1, h.events.count(events.TypeTradeConfirmed))
}

func TestConfirmTrade_NotUndoable(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 2))
	require.True(t, h.session.SelectPlayer(ctx, 100))
	require.True(t, h.session.ConfirmTrade(ctx, []int{6}, nil, "Team02"))

	require.True(t, h.session.Undo(ctx))
	slots := h.session.Slots()
	assert.Equal(t, "Team02", slots[5].CurrentTeamName, "undo only reverts the selection")
}

func TestConfirmTrade_Preconditions(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	assert.False(t, h.session.ConfirmTrade(ctx, []int{1}, nil, "Team01"), "not active")

	require.True(t, h.session.Start(ctx, 1))
	require.True(t, h.session.SelectPlayer(ctx, 100))
	before := h.session.Slots()

	cases := []struct {
		name     string
		outbound []int
		inbound  []int
		partner  string
	}{
		{"nothing chosen", nil, nil, "Team02"},
		{"no partner", []int{6}, nil, ""},
		{"partner on the clock", []int{6}, nil, "Team01"},
		{"consumed slot", nil, []int{1}, "Team00"},
		{"not owned", []int{3}, nil, "Team02"},
		{"unknown slot", []int{12345}, nil, "Team02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, h.session.ConfirmTrade(ctx, tc.outbound, tc.inbound, tc.partner))
			assert.Equal(t, before, h.session.Slots())
		})
	}
	assert.Equal(t, 0, h.events.count(events.TypeTradeConfirmed))
}

func TestConfirmTrade_TeamLosesPick(t *testing.T) {
	// team A holds slots 1, 5 and 9 and has no future picks
	order := []models.DraftSlot{}
	owners := []string{"A", "B", "C", "D", "A", "B", "C", "D", "A", "B", "C", "D"}
	for i, team := range owners {
		order = append(order, models.DraftSlot{
			SlotNumber: i + 1, Round: 1, TeamName: team, CurrentTeamName: team, OriginalTeamName: team,
		})
	}
	cfg := DefaultConfig()
	cfg.Ledger.FutureYears = 0
	s := NewSession(cfg, clockwork.NewFakeClock(), persistence.NewMemoryStore(), nil)
	require.NoError(t, s.Seed(context.Background(), testPlayers(20), order))
	require.True(t, s.Start(context.Background(), 1))

	require.True(t, s.ConfirmTrade(context.Background(), []int{5}, nil, "B"))

	var aSlots, bSlots int
	for _, slot := range s.Slots() {
		switch slot.CurrentTeamName {
		case "A":
			aSlots++
		case "B":
			bSlots++
		}
		if slot.SlotNumber == 5 {
			assert.Equal(t, "B", slot.CurrentTeamName)
			assert.Equal(t, "A", slot.OriginalTeamName)
		}
	}
	assert.Equal(t, 2, aSlots)
	assert.Equal(t, 4, bSlots)
}

func TestTradeBoard(t *testing.T) {
	h := newHarness(t, 4, 2, 40)
	ctx := context.Background()
	_, ok := h.session.TradeBoard()
	assert.False(t, ok)

	require.True(t, h.session.Start(ctx, 2))
	require.True(t, h.session.SelectPlayer(ctx, 100))
	require.True(t, h.session.SelectPlayer(ctx, 101))

	board, ok := h.session.TradeBoard()
	require.True(t, ok)
	assert.Equal(t, "Team02", board.Team)
	assert.Equal(t, []int{2025, 2026, 2027}, board.Years)
	for _, s := range board.Assets {
		assert.NotContains(t, []int{1, 2}, s.SlotNumber, "consumed slots are not tradeable")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 3))
	for _, id := range []int64{103, 100, 117} {
		require.True(t, h.session.SelectPlayer(ctx, id))
	}
	require.True(t, h.session.ConfirmTrade(ctx, []int{8}, []int{ledger.FutureSlotNumber(2027, 1, 0)}, "Team00"))

	want := h.session.View()
	restored := h.reopen(t)
	got := restored.View()

	assert.Equal(t, want.Phase, got.Phase)
	assert.Equal(t, want.Rounds, got.Rounds)
	assert.Equal(t, want.Drafted, got.Drafted)
	assert.Equal(t, want.OnTheClock, got.OnTheClock)
	assert.Equal(t, h.session.Slots(), restored.Slots())
	assert.Equal(t, h.session.Available("", pool.PositionAll), restored.Available("", pool.PositionAll))
	assert.False(t, got.CanUndo, "history is not persisted")
}

func TestRestore_DerivesPoolFromFreshPlayers(t *testing.T) {
	h := newHarness(t, 4, 7, 10)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))
	require.True(t, h.session.SelectPlayer(ctx, 102))

	// the source now has an extra prospect and a corrected name
	h.players = append(h.players, models.Player{ID: 500, Name: "Late Riser", Position: "QB"})
	h.players[0].Name = "Renamed Prospect"
	restored := h.reopen(t)

	available := restored.Available("", pool.PositionAll)
	assert.Len(t, available, 10)
	assert.Equal(t, "Renamed Prospect", available[0].Name)
	assert.Equal(t, int64(500), available[len(available)-1].ID)
	assert.Equal(t, int64(102), restored.Drafted()[0].ID)
	assertDisjoint(t, restored)
}

func TestRestore_CorruptSnapshotStartsFresh(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed order", persistence.KeyDraftOrder, "[{"},
		{"unknown phase", persistence.KeyGameState, "HALFTIME"},
		{"round limit", persistence.KeyMaxRounds, "5"},
		{"too many drafted", persistence.KeyMaxRounds, "1"},
		{"duplicate slots", persistence.KeyDraftOrder, `[{"slot_number":1,"current_team_name":"A","round":1},{"slot_number":1,"current_team_name":"B","round":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 2, 7, 20)
			ctx := context.Background()
			require.True(t, h.session.Start(ctx, 2))
			for _, id := range []int64{100, 101, 102} {
				require.True(t, h.session.SelectPlayer(ctx, id))
			}
			h.store.Set(tt.key, tt.value)

			restored := h.reopen(t)
			v := restored.View()
			assert.Equal(t, models.PhaseSetup, v.Phase)
			assert.Empty(t, v.Drafted)
			assert.Equal(t, 20, v.Available)
			assert.Len(t, restored.Slots(), 14+2*7*2)
		})
	}
}

func TestRestore_EmptyLedgerStartsFresh(t *testing.T) {
	h := newHarness(t, 2, 7, 10)
	ctx := context.Background()
	require.NoError(t, h.store.Save(ctx, persistence.Snapshot{
		Drafted:   []models.Player{},
		Phase:     models.PhaseActive,
		MaxRounds: 1,
		Order:     []models.DraftSlot{},
	}))

	h.session = h.reopen(t)
	assert.Equal(t, models.PhaseSetup, h.session.Phase())
	assert.Len(t, h.session.Slots(), 14+2*7*2)

	h.clock.Advance(DefaultRecapDelay)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, models.PhaseSetup, h.session.Phase(), "no recap is scheduled for an empty saved draft")
}

func TestRestore_CompleteActiveDraftSchedulesRecap(t *testing.T) {
	h := newHarness(t, 2, 7, 10)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))
	require.True(t, h.session.SelectPlayer(ctx, 100))
	require.True(t, h.session.SelectPlayer(ctx, 101))
	// snapshot is ACTIVE and complete, as if the process stopped during the delay
	got, _ := h.store.Value(persistence.KeyGameState)
	require.Equal(t, "DRAFT", got)

	h.session.Reset(ctx) // stops the old session's timer
	require.NoError(t, h.store.Save(ctx, persistence.Snapshot{
		Drafted:   h.players[:2],
		Phase:     models.PhaseActive,
		MaxRounds: 1,
		Order:     mustSlots(t, h.order),
	}))

	h.session = h.reopen(t)
	assert.True(t, h.session.View().RecapPending)
	h.clock.Advance(DefaultRecapDelay)
	h.awaitPhase(t, models.PhaseRecap)
}

func mustSlots(t *testing.T, order []models.DraftSlot) []models.DraftSlot {
	t.Helper()
	l, err := ledger.Build(order, ledger.DefaultOptions())
	require.NoError(t, err)
	return l.Slots()
}

func TestReset(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 2))
	originalSlots := h.session.Slots()
	require.True(t, h.session.SelectPlayer(ctx, 100))
	require.True(t, h.session.ConfirmTrade(ctx, []int{6}, []int{3}, "Team02"))

	h.session.Reset(ctx)

	v := h.session.View()
	assert.Equal(t, models.PhaseSetup, v.Phase)
	assert.Equal(t, 2, v.Rounds, "round limit is kept for the next start")
	assert.Empty(t, v.Drafted)
	assert.Equal(t, 40, v.Available)
	assert.False(t, v.CanUndo)
	assert.Equal(t, originalSlots, h.session.Slots())

	snap, err := h.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 1, h.events.count(events.TypeDraftReset))

	restored := h.reopen(t)
	assert.Equal(t, models.PhaseSetup, restored.Phase())
}

func TestAvailable_Filters(t *testing.T) {
	h := newHarness(t, 4, 7, 40)
	ctx := context.Background()
	require.True(t, h.session.Start(ctx, 1))
	require.True(t, h.session.SelectPlayer(ctx, 100)) // a QB

	qbs := h.session.Available("", "QB")
	for _, p := range qbs {
		assert.Equal(t, "QB", p.Position)
		assert.NotEqual(t, int64(100), p.ID)
	}
	assert.Len(t, qbs, 3)

	assert.Len(t, h.session.Available("PROSPECT 01", pool.PositionAll), 10)
	assert.Empty(t, h.session.Available("nobody", pool.PositionAll))
}
