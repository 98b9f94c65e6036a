package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

// AuthService implements credential verification, session issuance and the
// per-user license checks. Every Login call appends exactly one audit
// record before the result is returned, on success and on every failure
// branch alike.
type AuthService struct {
	users     ports.UserRepository
	audit     ports.AuditRepository
	signer    *LicenseSigner
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	audit ports.AuditRepository,
	signer *LicenseSigner,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 168 * time.Hour
	}
	return &AuthService{
		users:     users,
		audit:     audit,
		signer:    signer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login validates credentials and license state. Failure order matters:
// missing fields, unknown email, wrong password, expired license. The first
// two return the same generic error so callers cannot probe which emails
// exist; an expired license is distinguishable because the identity is
// already proven at that point.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		s.logAttempt(ctx, in, nil, false)
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.logAttempt(ctx, in, nil, false)
			return nil, domain.ErrInvalidCredentials
		}
		s.logAttempt(ctx, in, nil, false)
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		s.logAttempt(ctx, in, &user.ID, false)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if user.LicenseExpired(now) {
		s.logAttempt(ctx, in, &user.ID, false)
		return nil, domain.ErrLicenseExpired
	}

	s.logAttempt(ctx, in, &user.ID, true)

	token, err := s.generateToken(user, now)
	if err != nil {
		return nil, err
	}

	license, signature := s.issueOfflineLicense(user, now)

	return &ports.LoginResult{
		Token: token,
		User: ports.UserProfile{
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			Email:           user.Email,
			Phone:           user.Phone,
			IsAdmin:         user.IsAdmin,
			LicenseLeftDays: user.LicenseLeftDays(now),
		},
		OfflineLicense:   license,
		LicenseSignature: signature,
	}, nil
}

// Me returns the current profile plus a fresh offline license bundle for
// the game client.
func (s *AuthService) Me(ctx context.Context, userID string) (*ports.MeResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	license, signature := s.issueOfflineLicense(user, now)

	return &ports.MeResult{
		ID:                 user.ID,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		Email:              user.Email,
		Phone:              user.Phone,
		IsAdmin:            user.IsAdmin,
		LicenseEndDate:     user.LicenseEndDate,
		LicenseLeftSeconds: user.LicenseLeftSeconds(now),
		LicenseLeftDays:    user.LicenseLeftDays(now),
		OfflineLicense:     license,
		LicenseSignature:   signature,
	}, nil
}

// CheckLicense re-evaluates license state on demand. Unlike Login it never
// fails on an expired license; the caller wants the state, not a gate.
func (s *AuthService) CheckLicense(ctx context.Context, userID string) (*ports.LicenseStatus, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	active := !user.LicenseExpired(now)
	daysLeft := 0
	if active {
		daysLeft = user.LicenseLeftDays(now)
	}

	license, signature := s.issueOfflineLicense(user, now)

	return &ports.LicenseStatus{
		IsActive:         active,
		DaysLeft:         daysLeft,
		LicenseEndDate:   user.LicenseEndDate,
		OfflineLicense:   license,
		LicenseSignature: signature,
	}, nil
}

// logAttempt appends one audit record. A write failure is reported to
// operators but never fails the login call itself.
func (s *AuthService) logAttempt(ctx context.Context, in ports.LoginInput, userID *string, success bool) {
	attempt := &domain.LoginAttempt{
		UserID:    userID,
		Email:     in.Email,
		IP:        in.IP,
		Success:   success,
		UserAgent: in.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, attempt); err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Str("ip", in.IP).
			Msg("failed to record login attempt")
	}
}

func (s *AuthService) generateToken(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) issueOfflineLicense(user *domain.User, now time.Time) (domain.OfflineLicense, string) {
	license := domain.OfflineLicense{
		UserID:         user.ID,
		Email:          user.Email,
		LicenseEndDate: user.LicenseEndDate,
		IssuedAt:       now.UnixMilli(),
	}
	return license, s.signer.Sign(user.ID, user.LicenseEndDate)
}
