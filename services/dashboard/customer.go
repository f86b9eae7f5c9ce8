package dashboard

import (
	"context"

	"servicehub/models"
)

// recommendedServices is the curated list shown alongside the customer's
// bookings. There is no live recommendation source yet.
var recommendedServices = []Recommendation{
	{ID: 1, Name: "Emergency Plumbing Service", Category: "Plumbing", Price: 89, Rating: 4.8},
	{ID: 2, Name: "Complete Home Cleaning", Category: "Cleaning", Price: 129, Rating: 4.9},
	{ID: 3, Name: "Electrical Installation", Category: "Electrical", Price: 149, Rating: 4.7},
}

// Customer builds the customer dashboard: per-status counts, up to three
// active bookings in backend order and the curated recommendations.
func (s *DefaultDashboardService) Customer(ctx context.Context) (*CustomerDashboard, error) {
	bookings, err := s.API.CustomerBookings(ctx)
	if err != nil {
		return nil, err
	}

	view := &CustomerDashboard{Recommendations: recommendedServices}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			view.Pending++
		case models.StatusInProgress:
			view.InProgress++
		case models.StatusCompleted:
			view.Completed++
		}
		if len(view.Recent) < recentLimit &&
			(b.Status == models.StatusPending || b.Status == models.StatusInProgress) {
			view.Recent = append(view.Recent, b)
		}
	}
	return view, nil
}
