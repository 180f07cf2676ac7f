package settlement

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clutchcall/ledger-platform/internal/ledger-service/bankroll"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/model"
	"github.com/clutchcall/ledger-platform/internal/ledger-service/store"
	"github.com/clutchcall/ledger-platform/pkg/contracts/events"
	"github.com/clutchcall/ledger-platform/pkg/oddsmath"
)

// Rejeições de colocação de aposta; viram mensagem para o usuário, nunca pânico
var (
	ErrEmptySlip            = errors.New("add at least one leg")
	ErrInvalidStake         = errors.New("enter a valid stake")
	ErrInsufficientBankroll = errors.New("insufficient bankroll")
)

// Publisher emite eventos de ticket; falha de publicação não bloqueia o ledger
type Publisher interface {
	PublishTicketPlaced(context.Context, events.TicketPlaced) error
	PublishTicketSettled(context.Context, events.TicketSettled) error
}

// Service coordena odds, histórico e bankroll e é dono da política de
// crédito/débito na liquidação.
//
// O mutex serializa os ciclos read-modify-write de histórico e bankroll:
// duas liquidações simultâneas sem ele poderiam clobberar uma à outra.
type Service struct {
	mu      sync.Mutex
	log     *zap.Logger
	history *store.History
	bank    bankroll.Bankroll
	publ    Publisher // opcional
}

func New(log *zap.Logger, history *store.History, bank bankroll.Bankroll, publ Publisher) *Service {
	return &Service{log: log, history: history, bank: bank, publ: publ}
}

// Quote é a prévia de um slip sem colocação
type Quote struct {
	TotalOddsAmerican  float64
	PotentialWin       float64
	TotalPayout        float64
	ImpliedProbability float64
}

// QuoteSlip calcula odds combinadas e payout sem tocar histórico nem bankroll
func (s *Service) QuoteSlip(legs []model.BetLeg, stake float64) Quote {
	odds := legOdds(legs)
	american := oddsmath.CombinedAmerican(odds)
	return Quote{
		TotalOddsAmerican:  american,
		PotentialWin:       oddsmath.PotentialWin(stake, american),
		TotalPayout:        oddsmath.TotalPayout(stake, american),
		ImpliedProbability: oddsmath.ImpliedProbability(american),
	}
}

// PlaceBet valida o slip, monta o ticket com os campos derivados fixados,
// grava no histórico e debita o stake do bankroll
func (s *Service) PlaceBet(ctx context.Context, legs []model.BetLeg, stake float64) (*model.BetTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(legs) == 0 {
		return nil, ErrEmptySlip
	}
	if math.IsNaN(stake) || math.IsInf(stake, 0) || stake <= 0 {
		return nil, ErrInvalidStake
	}

	balance, err := s.bank.Current(ctx)
	if err != nil {
		return nil, err
	}
	if stake > balance {
		return nil, ErrInsufficientBankroll
	}

	odds := legOdds(legs)
	american := oddsmath.CombinedAmerican(odds)
	potentialWin := oddsmath.PotentialWin(stake, american)

	ticket := model.BetTicket{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
		Legs:              legs,
		Stake:             stake,
		TotalOddsAmerican: american,
		PotentialWin:      potentialWin,
		TotalPayout:       stake + potentialWin,
		Status:            model.StatusPending,
	}

	s.history.Append(ctx, ticket)

	if err := s.bank.Set(ctx, balance-stake); err != nil {
		s.log.Warn("bankroll debit", zap.Error(err))
	}

	if s.publ != nil {
		e := events.TicketPlaced{
			TicketID:     ticket.ID,
			Legs:         len(ticket.Legs),
			Stake:        ticket.Stake,
			OddsAmerican: ticket.TotalOddsAmerican,
			PotentialWin: ticket.PotentialWin,
			TotalPayout:  ticket.TotalPayout,
			CreatedAt:    ticket.CreatedAt,
		}
		if err := s.publ.PublishTicketPlaced(ctx, e); err != nil {
			s.log.Warn("publish ticket_placed", zap.Error(err))
		}
	}

	s.log.Info("bet placed",
		zap.String("ticketId", ticket.ID),
		zap.Int("legs", len(ticket.Legs)),
		zap.Float64("stake", ticket.Stake),
		zap.Float64("odds", ticket.TotalOddsAmerican),
	)

	return &ticket, nil
}

// SetTicketStatus aplica a liquidação manual de um ticket.
//
// O ajuste de bankroll e a mutação do histórico partem do MESMO snapshot do
// status anterior; só a travessia da fronteira "won" tem efeito no saldo:
//
//	prev != won, new == won  → credita totalPayout
//	prev == won, new != won  → debita totalPayout (piso em zero)
//	demais transições        → saldo intacto
//
// Ticket desconhecido é no-op silencioso.
func (s *Service) SetTicketStatus(ctx context.Context, ticketID string, status model.TicketStatus) ([]model.BetTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.history.Load(ctx)
	var found *model.BetTicket
	for i := range tickets {
		if tickets[i].ID == ticketID {
			found = &tickets[i]
			break
		}
	}
	if found == nil {
		return tickets, nil
	}

	prev := found.Status

	var adjustment float64
	switch {
	case prev != model.StatusWon && status == model.StatusWon:
		adjustment = found.TotalPayout
	case prev == model.StatusWon && status != model.StatusWon:
		adjustment = -found.TotalPayout
	}

	if adjustment != 0 {
		balance, err := s.bank.Current(ctx)
		if err != nil {
			return tickets, err
		}
		next := balance + adjustment
		if next < 0 {
			next = 0
		}
		if err := s.bank.Set(ctx, next); err != nil {
			s.log.Warn("bankroll adjust", zap.Error(err))
		}
	}

	updated := s.history.SetStatus(ctx, ticketID, status)

	if s.publ != nil {
		e := events.TicketSettled{
			TicketID:   ticketID,
			OldStatus:  string(prev),
			NewStatus:  string(status),
			Adjustment: adjustment,
		}
		if err := s.publ.PublishTicketSettled(ctx, e); err != nil {
			s.log.Warn("publish ticket_settled", zap.Error(err))
		}
	}

	s.log.Info("ticket settled",
		zap.String("ticketId", ticketID),
		zap.String("from", string(prev)),
		zap.String("to", string(status)),
		zap.Float64("adjustment", adjustment),
	)

	return updated, nil
}

// History devolve o histórico, mais recente primeiro
func (s *Service) History(ctx context.Context) []model.BetTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Load(ctx)
}

// RemoveTicket tira um ticket do histórico sem mexer no bankroll
func (s *Service) RemoveTicket(ctx context.Context, ticketID string) []model.BetTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Remove(ctx, ticketID)
}

// ClearHistory apaga o histórico inteiro
func (s *Service) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear(ctx)
}

// Bankroll lê o saldo atual
func (s *Service) Bankroll(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bank.Current(ctx)
}

// SetBankroll grava um saldo informado pelo usuário (piso em zero)
func (s *Service) SetBankroll(ctx context.Context, balance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.IsNaN(balance) || math.IsInf(balance, 0) || balance < 0 {
		balance = 0
	}
	return s.bank.Set(ctx, balance)
}

func legOdds(legs []model.BetLeg) []float64 {
	odds := make([]float64, 0, len(legs))
	for _, leg := range legs {
		odds = append(odds, leg.Odds)
	}
	return odds
}
