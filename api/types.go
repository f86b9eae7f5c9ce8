package api

import (
	"encoding/json"
	"time"

	"servicehub/models"
)

// AuthPayload is the login response body: the bearer token plus the
// backend-assigned user.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterCustomerInput is the customer registration request body.
type RegisterCustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// RegisterProviderInput additionally carries the provider's profession.
type RegisterProviderInput struct {
	RegisterCustomerInput
	Profession string `json:"profession"`
}

// CreateBookingInput is the booking creation request body.
type CreateBookingInput struct {
	ProviderID  string `json:"providerId"`
	ServiceType string `json:"serviceType"`
	Address     string `json:"address"`
	Date        string `json:"date"` // ISO-like datetime, YYYY-MM-DDTHH:MM:SS
}

// providerRef decodes the providerId field of a backend booking, which is
// either a bare id string or a populated {_id, name} object.
type providerRef struct {
	ID   string
	Name string
}

func (p *providerRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		p.ID = id
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.ID = obj.ID
	p.Name = obj.Name
	return nil
}

// bookingDTO mirrors the backend booking document.
type bookingDTO struct {
	ID          string      `json:"_id"`
	ServiceType string      `json:"serviceType"`
	ProviderID  providerRef `json:"providerId"`
	CustomerID  string      `json:"customerId"`
	Address     string      `json:"address"`
	Date        string      `json:"date"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (d bookingDTO) toModel() models.Booking {
	return models.Booking{
		ID:           d.ID,
		ServiceType:  d.ServiceType,
		ProviderID:   d.ProviderID.ID,
		ProviderName: d.ProviderID.Name,
		CustomerID:   d.CustomerID,
		Address:      d.Address,
		Date:         d.Date,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

// providerDTO mirrors the backend provider listing entry.
type providerDTO struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Profession string  `json:"profession"`
	Rating     float64 `json:"rating"`
}

func (d providerDTO) toModel() models.Provider {
	return models.Provider{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Profession: d.Profession,
		Rating:     d.Rating,
	}
}
