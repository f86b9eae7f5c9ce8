package dashboard

import "context"

// Admin returns the platform aggregates. There is no admin reporting API
// yet, so the figures are the fixed ones the admin view has always shown.
func (s *DefaultDashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	return &AdminDashboard{
		TotalUsers:      1245,
		ActiveProviders: 89,
		TotalBookings:   567,
		TotalRevenue:    45280,
	}, nil
}
