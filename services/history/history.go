package history

import (
	"context"
	"strings"

	"servicehub/api"
	"servicehub/models"
	"servicehub/storage"
)

// UI status labels derived from backend booking status.
const (
	UIStatusUpcoming   = "Upcoming"
	UIStatusInProgress = "In Progress"
	UIStatusCompleted  = "Completed"
	UIStatusUnknown    = "Unknown"
)

// MapStatus derives the UI label for a backend status. Anything the mapping
// does not know passes through unchanged.
func MapStatus(status string) string {
	switch status {
	case models.StatusPending:
		return UIStatusUpcoming
	case models.StatusInProgress:
		return UIStatusInProgress
	case models.StatusCompleted:
		return UIStatusCompleted
	case "":
		return UIStatusUnknown
	default:
		return status
	}
}

// Entry is a booking as the history screen shows it: the backend record, the
// derived UI status and any client-local review annotation layered on top.
type Entry struct {
	models.Booking
	UIStatus string
	Rating   int // 0 when unrated
	Review   string
}

// HistoryService loads a customer's bookings, filters them client-side and
// manages the client-only review annotations.
type HistoryService interface {
	Load(ctx context.Context) ([]Entry, error)
	Filter(entries []Entry, status, search string) []Entry
	SaveReview(ctx context.Context, entry Entry, rating int, review string) (Entry, error)
	Stats(entries []Entry) Stats
}

// DefaultHistoryService is the production implementation.
type DefaultHistoryService struct {
	Store storage.Store
	API   *api.Client
}

// Load fetches the customer's bookings and merges the cached annotations.
func (s *DefaultHistoryService) Load(ctx context.Context) ([]Entry, error) {
	bookings, err := s.API.CustomerBookings(ctx)
	if err != nil {
		return nil, err
	}
	reviews := s.loadReviews(ctx)

	entries := make([]Entry, 0, len(bookings))
	for _, b := range bookings {
		entry := Entry{Booking: b, UIStatus: MapStatus(b.Status)}
		if annotation, ok := reviews[b.ID]; ok {
			entry.Rating = annotation.Rating
			entry.Review = annotation.Review
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Filter applies the status filter and the free-text search, combined with
// AND semantics. status is one of "all", "completed", "upcoming",
// "in progress" (case-insensitive); search matches service or provider name.
func (s *DefaultHistoryService) Filter(entries []Entry, status, search string) []Entry {
	status = strings.ToLower(strings.TrimSpace(status))
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if status != "" && status != "all" {
			if strings.ToLower(entry.UIStatus) != status {
				continue
			}
		}
		if term != "" {
			service := strings.ToLower(entry.ServiceType)
			provider := strings.ToLower(entry.ProviderName)
			if !strings.Contains(service, term) && !strings.Contains(provider, term) {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}
