package events

// Evento publicado no tópico "ticket_settled" quando o status de um ticket muda
type TicketSettled struct {
	TicketID   string  `json:"ticket_id"`
	OldStatus  string  `json:"old_status"`
	NewStatus  string  `json:"new_status"`
	Adjustment float64 `json:"adjustment"` // crédito (+) ou débito (-) aplicado ao bankroll
	TsUnixMs   int64   `json:"ts_unix_ms"`
}
