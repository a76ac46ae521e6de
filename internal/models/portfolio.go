package models

import "time"

// Portfolio groups holdings and transactions under one owner.
type Portfolio struct {
	ID          string
	UserID      string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
