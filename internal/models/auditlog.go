package models

import "time"

// AuditLog records a security-relevant action, such as sign-in or
// sign-out, for later review.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}
