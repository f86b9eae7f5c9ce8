package session

import (
	"context"
	"time"

	"servicehub/storage"
	"servicehub/utils"

	"go.uber.org/zap"
)

// MemberSince returns the date the account joined, for the profile view.
// The backend-assigned date wins; accounts without one get a sticky
// locally minted date so the figure stays stable across sessions.
func (s *DefaultSessionService) MemberSince(ctx context.Context) string {
	if sess := s.Current(); sess != nil && sess.User != nil && sess.User.Joined != "" {
		return sess.User.Joined
	}

	if value, err := s.Store.Get(ctx, storage.KeyMemberSince); err == nil && len(value) > 0 {
		return string(value)
	}

	today := time.Now().Format("2006-01-02")
	if err := s.Store.Set(ctx, storage.KeyMemberSince, []byte(today)); err != nil {
		utils.GetLogger().Warn("failed to persist member-since date", zap.Error(err))
	}
	return today
}
