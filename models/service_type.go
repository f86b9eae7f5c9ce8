package models

// ServiceOption is an entry of the fixed service catalog offered to the
// booking wizard. Profession is the provider profession the service implies
// when a provider assignment is resolved.
type ServiceOption struct {
	ID         int     `json:"id"`
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Profession string  `json:"profession"`
	Price      float64 `json:"price"`
}
