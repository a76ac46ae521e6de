// Package models defines the persistent entities of the Investrack server.
// Structs carry plain values and ID references; repositories own the rows.
package models

import "time"

// User is an authenticatable principal. Username and email are unique
// across the store. A disabled user cannot sign in or refresh a session.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Enabled       bool
	EmailVerified bool
	LastLogin     *time.Time
	Roles         []string
	CreatedAt     time.Time
}
