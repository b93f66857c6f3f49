package prospects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/clients/postgrest"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

func newTestREST(t *testing.T) *RESTSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/rest/v1/players":
			switch {
			case q.Get("slug") == "eq.cam-ward":
				_, _ = w.Write([]byte(`[{"id":1,"name":"Cam Ward","position":"QB","college":"Miami","slug":"cam-ward","hometown":"West Columbia, TX","hs_stars":3}]`))
			case q.Get("slug") != "":
				_, _ = w.Write([]byte(`[]`))
			case q.Get("status") == "eq.active":
				_, _ = w.Write([]byte(`[{"id":1,"name":"Cam Ward","position":"QB","rank":1},{"id":2,"name":"Abdul Carter","position":"EDGE","rank":2}]`))
			default:
				_, _ = w.Write([]byte(`[{"id":1,"name":"Cam Ward"},{"id":2,"name":"Abdul Carter"},{"id":3,"name":"Retired Guy","status":"inactive"}]`))
			}
		case "/rest/v1/draft_order":
			assert.Equal(t, "slot_number.asc", q.Get("order"))
			_, _ = w.Write([]byte(`[{"id":1,"pick_number":1,"slot_number":1,"round":1,"team_name":"Titans","team_abbr":"TEN"},{"id":2,"pick_number":2,"slot_number":2,"round":1,"team_name":"Browns","team_abbr":"CLE","needs":["QB"]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return NewRESTSource(postgrest.NewClient(srv.URL, "anon"))
}

func TestRESTSource(t *testing.T) {
	src := newTestREST(t)
	ctx := context.Background()

	active, err := src.ListActivePlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := src.ListAllPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	p, err := src.GetPlayerBySlug(ctx, "cam-ward")
	require.NoError(t, err)
	require.NotNil(t, p.Hometown)
	assert.Equal(t, "West Columbia, TX", *p.Hometown)
	assert.Equal(t, 3, p.StarCount())

	_, err = src.GetPlayerBySlug(ctx, "nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	order, err := src.ListDraftOrder(ctx)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, []string{}, order[0].Needs)
	assert.Equal(t, []string{"QB"}, order[1].Needs)
}

type failingSource struct {
	Source
	err error
}

func (f failingSource) ListDraftOrder(context.Context) ([]models.DraftSlot, error) {
	return nil, f.err
}

func (f failingSource) ListAllPlayers(context.Context) ([]models.Player, error) {
	return nil, f.err
}

func TestLoadDraftRoom(t *testing.T) {
	app := NewApp(newTestREST(t))
	room := app.LoadDraftRoom(context.Background())
	assert.Len(t, room.Players, 2)
	assert.Len(t, room.Order, 2)
	assert.Len(t, app.BoardPlayers(context.Background()), 3)
}

func TestLoadDraftRoom_FailureYieldsEmpty(t *testing.T) {
	app := NewApp(failingSource{Source: newTestREST(t), err: errors.New("backend down")})

	room := app.LoadDraftRoom(context.Background())
	assert.NotNil(t, room.Players)
	assert.Empty(t, room.Players)
	assert.Empty(t, room.Order)
	assert.Empty(t, app.BoardPlayers(context.Background()))
}
