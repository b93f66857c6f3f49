package gateway

import (
	"net/http"

	"github.com/mcdev12/mockdraft/go/internal/draft/trade"
)

type partnerRequest struct {
	Team string `json:"team"`
}

type yearRequest struct {
	Year int `json:"year"`
}

type toggleRequest struct {
	Slot int        `json:"slot"`
	Side trade.Side `json:"side"`
}

// tradeView is the open negotiation, or nil when none is open
type tradeView struct {
	Open        bool        `json:"open"`
	Negotiation *trade.View `json:"negotiation,omitempty"`
}

func (s *Service) currentTrade() tradeView {
	if s.negotiation == nil || s.negotiation.Closed() {
		return tradeView{}
	}
	v := s.negotiation.View()
	return tradeView{Open: true, Negotiation: &v}
}

// withNegotiation runs fn against the open negotiation under the trade lock.
// fn is skipped and the action reported as not applied when none is open.
func (s *Service) withNegotiation(w http.ResponseWriter, fn func(n *trade.Negotiation) bool) {
	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()

	applied := false
	if s.negotiation != nil && !s.negotiation.Closed() {
		applied = fn(s.negotiation)
	}
	writeAction(w, applied, s.currentTrade())
}

func (s *Service) closeNegotiation() {
	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()
	if s.negotiation != nil {
		s.negotiation.Cancel()
		s.negotiation = nil
	}
}

func (s *Service) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()
	writeJSON(w, http.StatusOK, s.currentTrade())
}

func (s *Service) handleOpenTrade(w http.ResponseWriter, r *http.Request) {
	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()

	b, ok := s.session.TradeBoard()
	if ok {
		if s.negotiation != nil {
			s.negotiation.Cancel()
		}
		s.negotiation = trade.Open(b)
	}
	writeAction(w, ok, s.currentTrade())
}

func (s *Service) handleTradePartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withNegotiation(w, func(n *trade.Negotiation) bool {
		return n.SetPartner(req.Team)
	})
}

func (s *Service) handleTradeYear(w http.ResponseWriter, r *http.Request) {
	var req yearRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withNegotiation(w, func(n *trade.Negotiation) bool {
		return n.SetYear(req.Year)
	})
}

func (s *Service) handleTradeToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withNegotiation(w, func(n *trade.Negotiation) bool {
		return n.Toggle(req.Slot, req.Side)
	})
}

func (s *Service) handleTradeConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.withNegotiation(w, func(n *trade.Negotiation) bool {
		return n.Confirm(ctx, s.session)
	})
}

func (s *Service) handleTradeCancel(w http.ResponseWriter, r *http.Request) {
	s.withNegotiation(w, func(n *trade.Negotiation) bool {
		n.Cancel()
		return true
	})
}
