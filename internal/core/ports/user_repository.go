package ports

import (
	"context"

	"github.com/gamevault/license-server/internal/core/domain"
)

// UserRepository defines the persistence contract for licensed users.
// Mutations report the number of affected records so callers can map
// zero-affected to not-found.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateLicenseEnd(ctx context.Context, id string, licenseEnd int64) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
