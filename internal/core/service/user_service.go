package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

const userDetailLogLimit = 50

// UserService implements the admin-facing user and license management
// operations. All of them sit behind the session validator plus role gate.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, domain.ErrMissingFields
	}
	if in.LicenseDays <= 0 {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		Email:          in.Email,
		PasswordHash:   string(hash),
		LicenseEndDate: domain.LicenseEndAfter(now, in.LicenseDays),
		CreatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Int("license_days", in.LicenseDays).
		Msg("user provisioned")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]ports.UserListing, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listings := make([]ports.UserListing, 0, len(users))
	for i := range users {
		listings = append(listings, toListing(&users[i], now))
	}
	return listings, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logs, err := s.audit.FindByUser(ctx, id, userDetailLogLimit)
	if err != nil {
		return nil, err
	}

	return &ports.UserDetail{
		UserListing: toListing(user, time.Now().UTC()),
		Logs:        logs,
	}, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	affected, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RenewLicense replaces the license expiry with now + licenseDays. Renewal
// is absolute, not additive, matching the admin UI semantics.
func (s *UserService) RenewLicense(ctx context.Context, id string, licenseDays int) (int64, error) {
	if licenseDays < 0 {
		return 0, domain.ErrMissingFields
	}

	end := domain.LicenseEndAfter(time.Now().UTC(), licenseDays)
	affected, err := s.users.UpdateLicenseEnd(ctx, id, end)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, domain.ErrUserNotFound
	}

	s.log.Info().Str("user_id", id).Int("license_days", licenseDays).Msg("license renewed")
	return affected, nil
}

// Stats aggregates license state across the whole user base. The base is
// closed and small, so a full scan beats a storage-side aggregation here.
func (s *UserService) Stats(ctx context.Context) (*ports.LicenseStats, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nowMs := now.UnixMilli()

	stats := &ports.LicenseStats{
		Total:        len(users),
		Distribution: map[string]int{},
	}

	var activeDaySum float64
	for i := range users {
		u := &users[i]
		if u.LicenseExpired(now) {
			stats.Expired++
			continue
		}
		stats.Active++

		leftMs := u.LicenseEndDate - nowMs
		switch {
		case leftMs < millisPerDay:
			stats.Distribution["less_1d"]++
		case leftMs < 3*millisPerDay:
			stats.Distribution["1-3d"]++
		case leftMs < 7*millisPerDay:
			stats.Distribution["3-7d"]++
		case leftMs < 30*millisPerDay:
			stats.Distribution["7-30d"]++
		default:
			stats.Distribution["more_30d"]++
		}
		if leftMs <= 3*millisPerDay {
			stats.ExpiringSoon++
		}
		activeDaySum += float64(leftMs) / float64(millisPerDay)
	}

	if stats.Active > 0 {
		stats.AvgLicenseDays = activeDaySum / float64(stats.Active)
	}
	return stats, nil
}

const millisPerDay = int64(24 * 60 * 60 * 1000)

func toListing(u *domain.User, now time.Time) ports.UserListing {
	return ports.UserListing{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Email:          u.Email,
		IsAdmin:        u.IsAdmin,
		LicenseEndDate: u.LicenseEndDate,
		LicenseDays:    u.LicenseLeftDays(now),
	}
}
