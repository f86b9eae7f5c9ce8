package booking

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoProviders blocks submission when the backend lists no providers at
// all; a booking cannot be created without an assignee.
var ErrNoProviders = errors.New("no providers are currently available, please try again later")

// ValidationErrors maps draft field names to inline messages. Submission is
// blocked while any entry exists.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, v[field])
	}
	return strings.Join(parts, ", ")
}
