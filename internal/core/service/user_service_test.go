package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

func TestUserService_Create(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	before := time.Now().UTC()
	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		FirstName:   "Anna",
		LastName:    "Petrova",
		Email:       "anna@x.com",
		Password:    "s3cret",
		LicenseDays: 7,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	wantEnd := domain.LicenseEndAfter(before, 7)
	if created.LicenseEndDate < wantEnd || created.LicenseEndDate > wantEnd+5000 {
		t.Fatalf("unexpected license end: got %d, want ~%d", created.LicenseEndDate, wantEnd)
	}
	if created.IsAdmin {
		t.Fatalf("provisioned users must not be admin by default")
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubAuditRepo{}, zerolog.Nop())

	cases := []ports.CreateUserInput{
		{LastName: "P", Email: "a@x.com", Password: "p", LicenseDays: 1},
		{FirstName: "A", LastName: "P", Email: "a@x.com", Password: "p", LicenseDays: 0},
		{FirstName: "A", LastName: "P", Password: "p", LicenseDays: 1},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	in := ports.CreateUserInput{FirstName: "A", LastName: "P", Email: "a@x.com", Password: "p1", LicenseDays: 1}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_RenewLicense(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	seeded := users.seed(t, "a@x.com", "p1", time.Now().UTC().UnixMilli()-1000, false)

	if _, err := svc.RenewLicense(context.Background(), seeded.ID, 30); err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	renewed := users.users[seeded.ID]
	if renewed.LicenseExpired(time.Now().UTC()) {
		t.Fatalf("license still expired after renewal")
	}
	if days := renewed.LicenseLeftDays(time.Now().UTC()); days != 30 {
		t.Fatalf("expected 30 days left, got %d", days)
	}

	if _, err := svc.RenewLicense(context.Background(), "missing", 30); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	seeded := users.seed(t, "a@x.com", "p1", time.Now().UTC().UnixMilli()+86400000, false)

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), seeded.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	now := time.Now().UTC()
	users.seed(t, "active@x.com", "p1", now.UnixMilli()+86400000, false)
	users.seed(t, "expired@x.com", "p1", now.UnixMilli()-86400000, false)

	listings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	byEmail := map[string]ports.UserListing{}
	for _, l := range listings {
		byEmail[l.Email] = l
	}
	if byEmail["active@x.com"].LicenseDays != 1 {
		t.Fatalf("expected 1 day left for active user, got %d", byEmail["active@x.com"].LicenseDays)
	}
	if byEmail["expired@x.com"].LicenseDays != 0 {
		t.Fatalf("expected 0 days for expired user, got %d", byEmail["expired@x.com"].LicenseDays)
	}
}

func TestUserService_Stats(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubAuditRepo{}, zerolog.Nop())

	now := time.Now().UTC()
	users.seed(t, "a@x.com", "p1", now.UnixMilli()+12*3600000, false)   // <1d, expiring soon
	users.seed(t, "b@x.com", "p1", now.UnixMilli()+5*86400000, false)   // 3-7d
	users.seed(t, "c@x.com", "p1", now.UnixMilli()+60*86400000, false)  // >30d
	users.seed(t, "d@x.com", "p1", now.UnixMilli()-86400000, false)     // expired

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 4 || stats.Active != 3 || stats.Expired != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Distribution["less_1d"] != 1 || stats.Distribution["3-7d"] != 1 || stats.Distribution["more_30d"] != 1 {
		t.Fatalf("unexpected distribution: %+v", stats.Distribution)
	}
	if stats.ExpiringSoon != 1 {
		t.Fatalf("expected 1 expiring soon, got %d", stats.ExpiringSoon)
	}
	if stats.AvgLicenseDays <= 0 {
		t.Fatalf("expected positive average, got %f", stats.AvgLicenseDays)
	}
}
