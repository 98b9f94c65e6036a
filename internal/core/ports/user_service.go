package ports

import (
	"context"

	"github.com/gamevault/license-server/internal/core/domain"
)

// CreateUserInput is the admin-facing payload for provisioning a user.
// Users never self-register.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	Password    string
	LicenseDays int
}

// UserListing is a user row with the remaining license span precomputed
// for the admin screens.
type UserListing struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email"`
	IsAdmin        bool   `json:"isAdmin"`
	LicenseEndDate int64  `json:"licenseEndDate"`
	LicenseDays    int    `json:"licenseDays"`
}

// UserDetail is one user plus their recent login history.
type UserDetail struct {
	UserListing
	Logs []domain.LoginAttempt `json:"logs"`
}

// LicenseStats aggregates license state across the user base.
type LicenseStats struct {
	Total          int            `json:"total"`
	Active         int            `json:"active"`
	Expired        int            `json:"expired"`
	Distribution   map[string]int `json:"distribution"`
	AvgLicenseDays float64        `json:"avgLicenseDays"`
	ExpiringSoon   int            `json:"expiringSoon"`
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]UserListing, error)
	Get(ctx context.Context, id string) (*UserDetail, error)
	Delete(ctx context.Context, id string) error
	RenewLicense(ctx context.Context, id string, licenseDays int) (int64, error)
	Stats(ctx context.Context) (*LicenseStats, error)
}
