package gateway

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/board"
	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

type sizeRequest struct {
	Size int `json:"size"`
}

type boardView struct {
	board.View
	Available []models.Player `json:"available"`
}

func (s *Service) boardView(r *http.Request) boardView {
	q := r.URL.Query()
	return boardView{
		View:      s.board.View(),
		Available: s.board.Available(q.Get("search"), q.Get("position")),
	}
}

// mutateBoard applies fn and publishes BoardCompleted when it fills the board
func (s *Service) mutateBoard(w http.ResponseWriter, r *http.Request, fn func() bool) {
	wasComplete := s.board.Complete()
	applied := fn()
	v := s.boardView(r)
	if applied && !wasComplete && v.Mode == board.ModeResults {
		s.publishBoardCompleted(r, v.View)
	}
	writeAction(w, applied, v)
}

func (s *Service) publishBoardCompleted(r *http.Request, v board.View) {
	ids := make([]int64, len(v.Ranked))
	for i, p := range v.Ranked {
		ids[i] = p.ID
	}
	event, err := events.New(s.session.ID(), events.TypeBoardCompleted, events.BoardCompletedPayload{
		Title:     v.Title,
		Size:      v.Size,
		PlayerIDs: ids,
	}, s.session.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to build board event")
		return
	}
	if err := s.publisher.Publish(r.Context(), event); err != nil {
		log.Warn().Err(err).Msg("failed to publish board event")
	}
}

func (s *Service) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.boardView(r))
}

func (s *Service) handleBoardSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mutateBoard(w, r, func() bool { return s.board.SelectSize(req.Size) })
}

func (s *Service) handleBoardAdd(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mutateBoard(w, r, func() bool { return s.board.Add(req.PlayerID) })
}

func (s *Service) handleBoardRemove(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mutateBoard(w, r, func() bool { return s.board.Remove(req.PlayerID) })
}

func (s *Service) handleBoardBack(w http.ResponseWriter, r *http.Request) {
	s.mutateBoard(w, r, s.board.BackToEditor)
}

func (s *Service) handleBoardReset(w http.ResponseWriter, r *http.Request) {
	s.mutateBoard(w, r, func() bool {
		s.board.ResetSize()
		return true
	})
}

func (s *Service) handleBoardExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := board.RenderPNG(&buf, s.board); err != nil {
		log.Error().Err(err).Msg("failed to render board")
		writeError(w, http.StatusInternalServerError, "failed to render board")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", board.FileName()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write board image")
	}
}
