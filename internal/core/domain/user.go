package domain

import "time"

const millisPerDay = 24 * 60 * 60 * 1000

// User models a licensed principal. There is no separate "active" flag:
// LicenseEndDate (epoch milliseconds) is the sole authority for access
// validity, checked with <= so a license ending exactly now counts as expired.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"isAdmin"`
	LicenseEndDate int64     `json:"licenseEndDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LicenseExpired reports whether the license has run out at the given instant.
func (u *User) LicenseExpired(now time.Time) bool {
	return u.LicenseEndDate <= now.UnixMilli()
}

// LicenseLeftSeconds returns whole seconds of license remaining, floored at zero.
func (u *User) LicenseLeftSeconds(now time.Time) int64 {
	left := (u.LicenseEndDate - now.UnixMilli()) / 1000
	if left < 0 {
		left = 0
	}
	return left
}

// LicenseLeftDays returns the remaining license span rounded up to whole days.
func (u *User) LicenseLeftDays(now time.Time) int {
	secs := u.LicenseLeftSeconds(now)
	return int((secs + 86399) / 86400)
}

// LicenseEndAfter computes a license expiry the given number of days from now.
func LicenseEndAfter(now time.Time, days int) int64 {
	return now.UnixMilli() + int64(days)*millisPerDay
}
