package history

import "fmt"

// AveragePlaceholder is shown when no booking carries a rating yet.
const AveragePlaceholder = "-"

// Stats summarises a loaded history for the customer dashboard header.
type Stats struct {
	Total         int    `json:"total"`
	Completed     int    `json:"completed"`
	AverageRating string `json:"averageRating"`
}

// Stats counts totals and averages the annotated ratings to one decimal.
// Bookings without an annotation do not drag the average down.
func (s *DefaultHistoryService) Stats(entries []Entry) Stats {
	out := Stats{Total: len(entries), AverageRating: AveragePlaceholder}

	sum, rated := 0, 0
	for _, e := range entries {
		if e.UIStatus == UIStatusCompleted {
			out.Completed++
		}
		if e.Rating > 0 {
			sum += e.Rating
			rated++
		}
	}
	if rated > 0 {
		out.AverageRating = fmt.Sprintf("%.1f", float64(sum)/float64(rated))
	}
	return out
}
