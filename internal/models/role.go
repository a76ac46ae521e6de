package models

import "time"

// Role names a grant assignable to users. Names are unique.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
