package models

// DraftBooking is the transient state accumulated across the booking wizard
// steps. It is discarded on navigation away or after a successful submission.
type DraftBooking struct {
	ServiceID           int    `json:"serviceId"`
	ServiceDate         string `json:"serviceDate"` // YYYY-MM-DD
	ServiceTime         string `json:"serviceTime"` // 12-hour slot label, e.g. "9:00 AM"
	Address             string `json:"address"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
	PaymentMethod       string `json:"paymentMethod"`
}
