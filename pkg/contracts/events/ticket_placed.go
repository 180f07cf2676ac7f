package events

// Evento publicado no tópico "ticket_placed" quando uma aposta é registrada
type TicketPlaced struct {
	TicketID     string  `json:"ticket_id"`
	Legs         int     `json:"legs"`
	Stake        float64 `json:"stake"`
	OddsAmerican float64 `json:"odds_american"`
	PotentialWin float64 `json:"potential_win"`
	TotalPayout  float64 `json:"total_payout"`
	CreatedAt    string  `json:"created_at"`
	TsUnixMs     int64   `json:"ts_unix_ms"`
}
