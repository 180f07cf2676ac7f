package dto

import "github.com/clutchcall/ledger-platform/internal/ledger-service/model"

type PlaceBetRequest struct {
	Legs  []model.BetLeg `json:"legs"`
	Stake float64        `json:"stake"`
}

type QuoteRequest struct {
	Legs  []model.BetLeg `json:"legs"`
	Stake float64        `json:"stake"`
}

type SetStatusRequest struct {
	Status string `json:"status"` // "pending" | "won" | "lost" | "push" | "cancelled"
}

type BankrollUpdateRequest struct {
	CurrentBalance float64 `json:"current_balance"`
}
