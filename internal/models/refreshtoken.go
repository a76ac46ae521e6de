package models

import "time"

// RefreshToken is the single long-lived credential a principal may hold.
// At most one non-expired row exists per user at any time.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's expiry instant has passed.
func (t *RefreshToken) Expired(now time.Time) bool {
	return t.Expires.Before(now)
}
