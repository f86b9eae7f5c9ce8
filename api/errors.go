package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx backend response. ErrMessage carries the structured
// backend error message, Message the generic message field; either may be
// empty depending on what the backend sent.
type Error struct {
	StatusCode int
	ErrMessage string
	Message    string
}

func (e *Error) Error() string {
	if e.ErrMessage != "" {
		return e.ErrMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorMessage extracts a human-readable message from a request error,
// preferring the structured backend error message, then the generic backend
// message field, then the transport-level error, then the fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.ErrMessage != "" {
			return apiErr.ErrMessage
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
