package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"servicehub/models"
	"servicehub/storage"
	"servicehub/utils"

	"go.uber.org/zap"
)

// ErrNotCompleted rejects review authoring for bookings that have not
// finished yet.
var ErrNotCompleted = errors.New("only completed bookings can be reviewed")

// DefaultRating pre-fills the review form when no annotation exists yet.
const DefaultRating = 5

// SaveReview writes the annotation into the durable review cache keyed by
// booking id and returns the updated entry. The backend is never involved:
// the annotation lives in this client's storage only and a concurrent writer
// for the same booking id wins by writing last.
func (s *DefaultHistoryService) SaveReview(ctx context.Context, entry Entry, rating int, review string) (Entry, error) {
	if entry.UIStatus != UIStatusCompleted {
		return entry, ErrNotCompleted
	}
	if rating < 1 {
		rating = DefaultRating
	}
	if rating > 5 {
		rating = 5
	}

	reviews := s.loadReviews(ctx)
	reviews[entry.ID] = models.ReviewAnnotation{Rating: rating, Review: review}
	if err := s.saveReviews(ctx, reviews); err != nil {
		return entry, err
	}

	entry.Rating = rating
	entry.Review = review
	return entry, nil
}

// loadReviews reads the annotation map, falling back to the legacy
// local-bookings key the first time when the map was never written. A
// corrupt cache is treated as empty rather than blocking history.
func (s *DefaultHistoryService) loadReviews(ctx context.Context) models.ReviewMap {
	data, err := s.Store.Get(ctx, storage.KeyReviews)
	if errors.Is(err, storage.ErrNotFound) {
		return s.migrateLegacyReviews(ctx)
	}
	if err != nil {
		utils.GetLogger().Error("failed to read review cache", zap.Error(err))
		return models.ReviewMap{}
	}
	var reviews models.ReviewMap
	if err := json.Unmarshal(data, &reviews); err != nil {
		utils.GetLogger().Warn("review cache is corrupt, starting fresh", zap.Error(err))
		return models.ReviewMap{}
	}
	if reviews == nil {
		reviews = models.ReviewMap{}
	}
	return reviews
}

func (s *DefaultHistoryService) saveReviews(ctx context.Context, reviews models.ReviewMap) error {
	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to encode review cache: %w", err)
	}
	if err := s.Store.Set(ctx, storage.KeyReviews, data); err != nil {
		return fmt.Errorf("failed to write review cache: %w", err)
	}
	return nil
}

// legacyID tolerates both the numeric ids early local-only bookings carried
// and the backend id strings later revisions stored.
type legacyID string

func (l *legacyID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = legacyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = legacyID(n.String())
	return nil
}

// legacyBooking is the shape the superseded local-persistence revision wrote
// under the legacy bookings key. Only the rating fields matter here.
type legacyBooking struct {
	ID     legacyID `json:"id"`
	Rating *int     `json:"rating"`
	Review string   `json:"review"`
}

// migrateLegacyReviews salvages ratings from the superseded local bookings
// array. The legacy key is read-only; the salvaged annotations are written
// under the current review key so the migration runs once.
func (s *DefaultHistoryService) migrateLegacyReviews(ctx context.Context) models.ReviewMap {
	reviews := models.ReviewMap{}

	data, err := s.Store.Get(ctx, storage.KeyLegacyBookings)
	if err != nil {
		return reviews
	}
	var legacy []legacyBooking
	if err := json.Unmarshal(data, &legacy); err != nil {
		utils.GetLogger().Warn("legacy bookings key unreadable, skipping migration", zap.Error(err))
		return reviews
	}

	for _, b := range legacy {
		if b.Rating == nil || *b.Rating < 1 {
			continue
		}
		reviews[string(b.ID)] = models.ReviewAnnotation{Rating: *b.Rating, Review: b.Review}
	}
	if len(reviews) > 0 {
		if err := s.saveReviews(ctx, reviews); err != nil {
			utils.GetLogger().Warn("failed to persist migrated reviews", zap.Error(err))
		}
		utils.GetLogger().Info("migrated legacy review annotations", zap.Int("count", len(reviews)))
	}
	return reviews
}
