package topics

const (
	// Tickets
	TicketPlaced  = "ticket_placed"
	TicketSettled = "ticket_settled"
)
