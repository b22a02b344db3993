package model

import (
	"time"
)

// User represents an account in the user directory.
// Email is optional; legacy imports exist without one.
type User struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailOrDefault returns the user's email address, or the given
// fallback when none is set.
func (u *User) EmailOrDefault(fallback string) string {
	if u.Email == nil || *u.Email == "" {
		return fallback
	}
	return *u.Email
}
