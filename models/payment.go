package models

// PaymentIntent is what the client needs to complete a card payment.
type PaymentIntent struct {
	BookingID       string  `json:"bookingId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
}
