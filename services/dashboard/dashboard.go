package dashboard

import (
	"context"

	"servicehub/api"
	"servicehub/models"
)

// recentLimit caps the customer's "recent bookings" panel.
const recentLimit = 3

// providerJobLimit caps the provider's job list.
const providerJobLimit = 8

// Recommendation is a curated service suggestion shown to customers.
type Recommendation struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    int     `json:"price"`
	Rating   float64 `json:"rating"`
}

// CustomerDashboard is everything the customer landing view needs.
type CustomerDashboard struct {
	Recent          []models.Booking
	Pending         int
	InProgress      int
	Completed       int
	Recommendations []Recommendation
}

// ProviderDashboard is the provider's job queue, newest first.
type ProviderDashboard struct {
	Jobs []models.Booking
}

// AdminDashboard carries the platform-wide aggregate figures.
type AdminDashboard struct {
	TotalUsers      int
	ActiveProviders int
	TotalBookings   int
	TotalRevenue    int
}

// DashboardService assembles the role-scoped dashboard views.
type DashboardService interface {
	Customer(ctx context.Context) (*CustomerDashboard, error)
	Provider(ctx context.Context) (*ProviderDashboard, error)
	AdvanceStatus(ctx context.Context, booking models.Booking) (*ProviderDashboard, error)
	Admin(ctx context.Context) (*AdminDashboard, error)
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	API *api.Client
}
