package http

import "time"

// OrderResponse is the wire shape of one order.
type OrderResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// FireEventRequest carries optional variable writes alongside an event.
// Absent fields leave the corresponding workflow variable untouched.
type FireEventRequest struct {
	Amount           *float64 `json:"amount,omitempty"`
	ShippingAddress  *string  `json:"shipping_address,omitempty"`
	PaymentMethod    *string  `json:"payment_method,omitempty"`
	ExpediteShipping *bool    `json:"expedite_shipping,omitempty"`
}

// LegalEventsResponse lists the events an order accepts from its current
// state. Empty for terminal states.
type LegalEventsResponse struct {
	ID     string   `json:"id"`
	State  string   `json:"state"`
	Events []string `json:"events"`
}

// TransitionResponse is one committed transition in the order's history.
type TransitionResponse struct {
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Message    string    `json:"message,omitempty"`
}

// ErrorResponse is the wire shape of every error.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
