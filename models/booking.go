package models

import "time"

// Backend booking statuses. Transitions are strictly forward:
// Pending -> In Progress -> Completed, no skipping, no reversal.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Booking is the read-through, non-authoritative copy of a backend booking.
type Booking struct {
	ID           string    `json:"id"`
	ServiceType  string    `json:"serviceType"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName,omitempty"`
	CustomerID   string    `json:"customerId"`
	Address      string    `json:"address"`
	Date         string    `json:"date"` // ISO instant
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NextStatus returns the single allowed forward transition for a status.
// Completed (and anything unrecognized) has no further transition.
func NextStatus(status string) (string, bool) {
	switch status {
	case StatusPending:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	default:
		return "", false
	}
}
