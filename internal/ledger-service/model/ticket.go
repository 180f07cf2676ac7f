package model

// TicketStatus é o estado de liquidação de um ticket
// Qualquer transição é permitida (ajuste manual do usuário, não workflow)
type TicketStatus string

const (
	StatusPending   TicketStatus = "pending"
	StatusWon       TicketStatus = "won"
	StatusLost      TicketStatus = "lost"
	StatusPush      TicketStatus = "push"
	StatusCancelled TicketStatus = "cancelled"
)

// Valid informa se o status pertence à enumeração
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWon, StatusLost, StatusPush, StatusCancelled:
		return true
	}
	return false
}

// BetLeg é uma seleção dentro de um parlay. Imutável depois de colocada no ticket.
type BetLeg struct {
	ID        string  `json:"id"`
	Sport     string  `json:"sport"`
	Game      string  `json:"game"`
	BetType   string  `json:"betType"` // ex: "moneyline", "spread", "total"
	Selection string  `json:"selection"`
	Odds      float64 `json:"odds"`            // odds americanas
	Stake     float64 `json:"stake,omitempty"` // informativo, ignorado pelo ledger
}

// BetTicket é uma aposta registrada.
// Os campos financeiros derivados são calculados uma única vez na colocação
// e nunca recalculados; só Status muda depois.
type BetTicket struct {
	ID                string       `json:"id"`
	CreatedAt         string       `json:"createdAt"` // ISO-8601
	Legs              []BetLeg     `json:"legs"`
	Stake             float64      `json:"stake"`
	TotalOddsAmerican float64      `json:"totalOddsAmerican"`
	PotentialWin      float64      `json:"potentialWin"`
	TotalPayout       float64      `json:"totalPayout"`
	Status            TicketStatus `json:"status"`
}
