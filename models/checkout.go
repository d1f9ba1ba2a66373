package models

// CheckoutResponse is returned to the client after a checkout session is
// requested. A processor-side failure comes back as Status "failure" with a
// message; it is not an error at the transport level.
type CheckoutResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	CheckoutID   string `json:"checkoutId,omitempty"`
	CheckoutLink string `json:"checkoutLink,omitempty"`
}

// CheckoutSessionDetails is the pass-through view of a checkout session used
// by the frontend confirmation poll.
type CheckoutSessionDetails struct {
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
	PaymentStatus string            `json:"payment_status"`
	Status        string            `json:"status"`
}

// SettlementAlert describes a captured payment that could not be turned into a
// booking. These must reach an operator; money has moved without a reservation.
type SettlementAlert struct {
	IncidentID string `json:"incidentId"`
	Reason     string `json:"reason"`
	EventID    string `json:"eventId"`
	RoomNr     string `json:"roomNr"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	EmailUser  string `json:"emailUser"`
	Amount     int64  `json:"amount"`
}
