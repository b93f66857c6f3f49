package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/prospects"
)

type startRequest struct {
	Rounds int `json:"rounds"`
}

type pickRequest struct {
	PlayerID int64 `json:"player_id"`
}

type tradeRequest struct {
	Outbound []int  `json:"outbound"`
	Inbound  []int  `json:"inbound"`
	Partner  string `json:"partner"`
}

func (s *Service) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	position := q.Get("position")
	if position != "" && !pool.ValidPosition(position) {
		writeError(w, http.StatusBadRequest, "unknown position "+position)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Available(q.Get("search"), position))
}

func (s *Service) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if s.prospects == nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	player, err := s.prospects.Profile(r.Context(), slug)
	if errors.Is(err, prospects.ErrPlayerNotFound) {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to load player profile")
		writeError(w, http.StatusBadGateway, "failed to load player")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Service) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.View())
}

func (s *Service) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied := s.session.Start(r.Context(), req.Rounds)
	writeAction(w, applied, s.session.View())
}

func (s *Service) handleSelectPlayer(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied := s.session.SelectPlayer(r.Context(), req.PlayerID)
	if applied {
		s.closeNegotiation()
	}
	writeAction(w, applied, s.session.View())
}

func (s *Service) handleUndo(w http.ResponseWriter, r *http.Request) {
	applied := s.session.Undo(r.Context())
	if applied {
		s.closeNegotiation()
	}
	writeAction(w, applied, s.session.View())
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset(r.Context())
	s.closeNegotiation()
	writeAction(w, true, s.session.View())
}

func (s *Service) handleConfirmTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied := s.session.ConfirmTrade(r.Context(), req.Outbound, req.Inbound, req.Partner)
	if applied {
		s.closeNegotiation()
	}
	writeAction(w, applied, s.session.View())
}

func (s *Service) handleRound(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		writeError(w, http.StatusBadRequest, "round must be a positive integer")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.session.RoundSlots(round)))
}

// handleTeam serves the team dashboard. With ?year= it lists the slots the
// team owns in that year instead, future picks included.
func (s *Service) handleTeam(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		slots := s.session.OwnedBy(team, year)
		if slots == nil {
			slots = []models.DraftSlot{}
		}
		writeJSON(w, http.StatusOK, slots)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.session.TeamPicks(team)))
}

func (s *Service) handleResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.session.Results()))
}

func nonNil(rows []models.DraftResult) []models.DraftResult {
	if rows == nil {
		return []models.DraftResult{}
	}
	return rows
}
