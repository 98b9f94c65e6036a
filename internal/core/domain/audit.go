package domain

import "time"

// LoginAttempt is an append-only record of one login endpoint invocation.
// UserID is nil when the supplied email did not resolve to a user. Records
// are destroyed only by the retention sweep.
type LoginAttempt struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	Email     string    `json:"email"`
	IP        string    `json:"ip"`
	Success   bool      `json:"success"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginAttemptView is a LoginAttempt joined to the user's display name for
// the admin log listing.
type LoginAttemptView struct {
	LoginAttempt
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
