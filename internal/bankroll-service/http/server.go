package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/bankroll-service/dto"
)

// Repo define a interface de operações de bankroll usadas pelo handler HTTP
type Repo interface {
	GetOrCreate(ctx context.Context) (float64, error)
	SetBalance(ctx context.Context, balance float64, reason string) (float64, error)
}

// Server expõe endpoints HTTP para o bankroll server-backed
type Server struct {
	log  *zap.Logger
	repo Repo
}

// NewServer instancia o servidor HTTP de bankroll
func NewServer(log *zap.Logger, repo Repo) *Server { return &Server{log: log, repo: repo} }

// Router retorna o mux HTTP com as rotas da API de bankroll
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bankroll", s.bankroll) // GET | PUT
	return mux
}

func (s *Server) bankroll(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getBankroll(w, r)
	case http.MethodPut:
		s.putBankroll(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// getBankroll retorna (ou cria) o saldo corrente
func (s *Server) getBankroll(w http.ResponseWriter, r *http.Request) {
	balance, err := s.repo.GetOrCreate(r.Context())
	if err != nil {
		s.log.Error("bankroll get", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.BankrollResponse{CurrentBalance: balance})
}

// putBankroll grava o saldo enviado pelo cliente (piso em zero)
func (s *Server) putBankroll(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBankrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	balance, err := s.repo.SetBalance(r.Context(), req.CurrentBalance, "api_put")
	if err != nil {
		s.log.Error("bankroll put", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.BankrollResponse{CurrentBalance: balance})
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
