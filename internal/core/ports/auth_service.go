package ports

import (
	"context"

	"github.com/gamevault/license-server/internal/core/domain"
)

// LoginInput carries the credentials plus the request origin metadata that
// ends up in the audit log.
type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// UserProfile is the sanitized projection returned to clients. It never
// carries the password hash.
type UserProfile struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	IsAdmin         bool   `json:"isAdmin"`
	LicenseLeftDays int    `json:"licenseLeftDays"`
}

// LoginResult bundles everything a successful login returns: the session
// token, the sanitized profile, and the offline license assertion with its
// detached signature.
type LoginResult struct {
	Token            string                `json:"token"`
	User             UserProfile           `json:"user"`
	OfflineLicense   domain.OfflineLicense `json:"offlineLicense"`
	LicenseSignature string                `json:"licenseSignature"`
}

// MeResult is the /users/me response consumed by the game client.
type MeResult struct {
	ID                 string                `json:"id"`
	FirstName          string                `json:"firstName"`
	LastName           string                `json:"lastName"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone,omitempty"`
	IsAdmin            bool                  `json:"isAdmin"`
	LicenseEndDate     int64                 `json:"licenseEndDate"`
	LicenseLeftSeconds int64                 `json:"licenseLeftSeconds"`
	LicenseLeftDays    int                   `json:"licenseLeftDays"`
	OfflineLicense     domain.OfflineLicense `json:"offlineLicense"`
	LicenseSignature   string                `json:"licenseSignature"`
}

// LicenseStatus is the explicit license re-check response.
type LicenseStatus struct {
	IsActive         bool                  `json:"isActive"`
	DaysLeft         int                   `json:"daysLeft"`
	LicenseEndDate   int64                 `json:"licenseEndDate"`
	OfflineLicense   domain.OfflineLicense `json:"offlineLicense"`
	LicenseSignature string                `json:"licenseSignature"`
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*MeResult, error)
	CheckLicense(ctx context.Context, userID string) (*LicenseStatus, error)
}
