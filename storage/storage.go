package storage

import (
	"context"
	"errors"
)

// Well-known durable storage keys. The token and user keys together form the
// persisted session; the review key holds the client-only annotation map.
const (
	KeyToken       = "token"
	KeyUser        = "servicehub_user"
	KeyReviews     = "servicehub_reviews_v1"
	KeyTheme       = "servicehub_theme"
	KeyMemberSince = "servicehub_member_since_v1"

	// Legacy key from the superseded local-persistence revision. Still read
	// for backward compatibility, never written.
	KeyLegacyBookings = "servicehub_bookings_v1"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable client key-value port. Writes are last-write-wins;
// two concurrent writers to the same key silently overwrite each other.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
