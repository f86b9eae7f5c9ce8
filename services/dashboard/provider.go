package dashboard

import (
	"context"
	"fmt"
	"sort"

	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

// Provider builds the provider's job queue: assigned bookings sorted newest
// first, capped to the panel size.
func (s *DefaultDashboardService) Provider(ctx context.Context) (*ProviderDashboard, error) {
	jobs, err := s.fetchJobs(ctx)
	if err != nil {
		return nil, err
	}
	return &ProviderDashboard{Jobs: jobs}, nil
}

// AdvanceStatus moves a job one step forward (Pending to In Progress, In
// Progress to Completed) and refetches the queue. When the update fails the
// refetched queue is returned alongside the error so the view always shows
// what the backend actually holds.
func (s *DefaultDashboardService) AdvanceStatus(ctx context.Context, booking models.Booking) (*ProviderDashboard, error) {
	next, ok := models.NextStatus(booking.Status)
	if !ok {
		return nil, fmt.Errorf("booking %s cannot advance from status %q", booking.ID, booking.Status)
	}

	_, updateErr := s.API.UpdateBookingStatus(ctx, booking.ID, next)
	if updateErr != nil {
		utils.GetLogger().Warn("status advance rejected",
			zap.String("bookingID", booking.ID),
			zap.String("from", booking.Status),
			zap.String("to", next),
			zap.Error(updateErr))
	}

	jobs, err := s.fetchJobs(ctx)
	if err != nil {
		if updateErr != nil {
			return nil, updateErr
		}
		return nil, err
	}
	return &ProviderDashboard{Jobs: jobs}, updateErr
}

func (s *DefaultDashboardService) fetchJobs(ctx context.Context) ([]models.Booking, error) {
	jobs, err := s.API.ProviderBookings(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if len(jobs) > providerJobLimit {
		jobs = jobs[:providerJobLimit]
	}
	return jobs, nil
}
