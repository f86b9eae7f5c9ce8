package models

// Provider is a bookable service provider as listed by the backend.
type Provider struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Profession string  `json:"profession"`
	Rating     float64 `json:"rating,omitempty"`
}
