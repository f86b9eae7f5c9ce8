package models

// ReviewAnnotation is a client-only rating/review attached to a booking id.
// It lives in durable client storage, is overwritten on re-save
// (last-write-wins, no merge) and is never synchronized to the backend.
type ReviewAnnotation struct {
	Rating int    `json:"rating"` // 1..5
	Review string `json:"review,omitempty"`
}

// ReviewMap keys annotations by booking id.
type ReviewMap map[string]ReviewAnnotation
