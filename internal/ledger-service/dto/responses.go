package dto

import "github.com/clutchcall/ledger-platform/internal/ledger-service/model"

type PlaceBetResponse struct {
	Ticket     model.BetTicket `json:"ticket"`
	NewBalance float64         `json:"new_balance"`
}

type HistoryResponse struct {
	Tickets []model.BetTicket `json:"tickets"`
}

type QuoteResponse struct {
	TotalOddsAmerican  float64 `json:"totalOddsAmerican"`
	PotentialWin       float64 `json:"potentialWin"`
	TotalPayout        float64 `json:"totalPayout"`
	ImpliedProbability float64 `json:"impliedProbability"`
}

type BankrollResponse struct {
	CurrentBalance float64 `json:"current_balance"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
