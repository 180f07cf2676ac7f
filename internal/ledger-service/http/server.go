package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/dto"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/model"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/settlement"
)

var (
	ticketsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_tickets_placed_total", Help: "apostas colocadas"})
	ticketsSettled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_tickets_settled_total", Help: "liquidações por status"}, []string{"status"})
	placementsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_placements_rejected_total", Help: "rejeições por motivo"}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(ticketsPlaced, ticketsSettled, placementsRejected)
}

// Server expõe a API HTTP do ledger (tickets, quote e bankroll)
type Server struct {
	log *zap.Logger
	svc *settlement.Service
}

func NewServer(log *zap.Logger, svc *settlement.Service) *Server {
	return &Server{log: log, svc: svc}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", s.tickets)     // POST place | GET history | DELETE clear
	mux.HandleFunc("/tickets/", s.ticketByID) // POST /tickets/{id}/status | DELETE /tickets/{id}
	mux.HandleFunc("/quote", s.quote)         // POST
	mux.HandleFunc("/bankroll", s.bankroll)   // GET | PUT
	return mux
}

func (s *Server) tickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.placeBet(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, dto.HistoryResponse{Tickets: s.svc.History(r.Context())})
	case http.MethodDelete:
		s.svc.ClearHistory(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	ticket, err := s.svc.PlaceBet(r.Context(), req.Legs, req.Stake)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrEmptySlip):
			placementsRejected.WithLabelValues("empty_slip").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, settlement.ErrInvalidStake):
			placementsRejected.WithLabelValues("invalid_stake").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, settlement.ErrInsufficientBankroll):
			placementsRejected.WithLabelValues("insufficient_bankroll").Inc()
			writeError(w, http.StatusConflict, err.Error())
		default:
			s.log.Error("place bet", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	ticketsPlaced.Inc()

	balance, err := s.svc.Bankroll(r.Context())
	if err != nil {
		s.log.Warn("bankroll read after placement", zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{Ticket: *ticket, NewBalance: balance})
}

// ticketByID trata /tickets/{id} (DELETE) e /tickets/{id}/status (POST)
func (s *Server) ticketByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/tickets/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "ticketId required")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/status"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.setStatus(w, r, id)
		return
	}

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	updated := s.svc.RemoveTicket(r.Context(), rest)
	writeJSON(w, http.StatusOK, dto.HistoryResponse{Tickets: updated})
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	status := model.TicketStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := s.svc.SetTicketStatus(r.Context(), id, status)
	if err != nil {
		s.log.Error("set ticket status", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	ticketsSettled.WithLabelValues(string(status)).Inc()

	// Id desconhecido devolve o histórico inalterado (no-op, não erro)
	writeJSON(w, http.StatusOK, dto.HistoryResponse{Tickets: updated})
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	q := s.svc.QuoteSlip(req.Legs, req.Stake)
	writeJSON(w, http.StatusOK, dto.QuoteResponse{
		TotalOddsAmerican:  q.TotalOddsAmerican,
		PotentialWin:       q.PotentialWin,
		TotalPayout:        q.TotalPayout,
		ImpliedProbability: q.ImpliedProbability,
	})
}

func (s *Server) bankroll(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		balance, err := s.svc.Bankroll(r.Context())
		if err != nil {
			s.log.Error("bankroll read", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, dto.BankrollResponse{CurrentBalance: balance})
	case http.MethodPut:
		var req dto.BankrollUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := s.svc.SetBankroll(r.Context(), req.CurrentBalance); err != nil {
			s.log.Error("bankroll write", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		balance, _ := s.svc.Bankroll(r.Context())
		writeJSON(w, http.StatusOK, dto.BankrollResponse{CurrentBalance: balance})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, dto.ErrorResponse{Message: msg})
}
