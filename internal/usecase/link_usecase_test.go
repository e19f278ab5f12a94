package usecase

import (
	"testing"
	"time"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
)

func newLinkFixture(t *testing.T) (*LinkUsecase, *model.User, *fixedClock, *fakeEmail) {
	t.Helper()
	db := openTestDB(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	email := &fakeEmail{}

	hr := &model.User{Email: "hr@acme.test", FullName: "HR One", Role: model.RoleHR, Status: "active"}
	if err := repository.NewUserRepository(db).Create(hr); err != nil {
		t.Fatalf("create hr: %v", err)
	}

	uc := NewLinkUsecase(repository.NewInterviewLinkRepository(db), nil, email,
		testLogger(), "https://app.acme.test", "Acme")
	uc.now = clock.Now
	return uc, hr, clock, email
}

func validCreateRequest() *dto.CreateLinkRequest {
	return &dto.CreateLinkRequest{
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		Position:       "Backend Engineer",
		Topic:          "Go concurrency",
		SendEmail:      true,
	}
}

func TestCreateLinkDefaultsAndToken(t *testing.T) {
	uc, hr, clock, email := newLinkFixture(t)

	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if link.Token == "" {
		t.Fatal("token must be set")
	}
	if link.SentCount != 1 {
		t.Fatalf("SentCount = %d, want 1", link.SentCount)
	}
	wantExpiry := clock.Now().AddDate(0, 0, dto.DefaultExpiresInDays)
	if !link.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("ExpiresAt = %v, want %v", link.ExpiresAt, wantExpiry)
	}
	if link.InterviewURL != "https://app.acme.test/interview/"+link.Token {
		t.Fatalf("unexpected URL %q", link.InterviewURL)
	}
	if len(email.sent) != 1 || email.sent[0] != "ada@example.com" {
		t.Fatalf("invitation not sent: %v", email.sent)
	}

	other, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if other.Token == link.Token {
		t.Fatal("tokens must be unique per link")
	}
}

func TestCreateLinkValidatesExpiryBounds(t *testing.T) {
	uc, hr, _, _ := newLinkFixture(t)

	req := validCreateRequest()
	req.ExpiresInDays = 31
	if _, err := uc.Create(hr, req); err == nil {
		t.Fatal("expiry over 30 days must be rejected")
	}
	req.ExpiresInDays = -1
	if _, err := uc.Create(hr, req); err == nil {
		t.Fatal("negative expiry must be rejected")
	}
}

func TestCreateLinkSurvivesEmailFailure(t *testing.T) {
	uc, hr, _, email := newLinkFixture(t)
	email.fail = true

	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create should not fail on email error: %v", err)
	}
	if link.SentCount != 1 {
		t.Fatalf("SentCount = %d, want 1 even when delivery fails", link.SentCount)
	}
}

func TestValidateLinkLifecycle(t *testing.T) {
	uc, hr, clock, _ := newLinkFixture(t)
	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := uc.Validate(link.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid || result.Expired || result.Position != "Backend Engineer" {
		t.Fatalf("fresh link should validate: %+v", result)
	}

	// An unknown token is a 404, not a soft failure.
	if _, err := uc.Validate("no-such-token"); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("unknown token = %v, want not found", err)
	}

	clock.Advance(8 * 24 * time.Hour)
	result, err = uc.Validate(link.Token)
	if err != nil {
		t.Fatalf("validate expired: %v", err)
	}
	if result.Valid || !result.Expired || result.Reason != "This interview link has expired" {
		t.Fatalf("expired link: %+v", result)
	}
}

func TestResendBumpsCountKeepsExpiry(t *testing.T) {
	uc, hr, _, email := newLinkFixture(t)
	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := link.ExpiresAt

	resent, err := uc.Resend(hr.ID.String(), link.ID.String())
	if err != nil {
		t.Fatalf("resend: %v", err)
	}
	if resent.SentCount != 2 {
		t.Fatalf("SentCount = %d, want 2", resent.SentCount)
	}
	if !resent.ExpiresAt.Equal(before) {
		t.Fatal("resend must not extend expiry")
	}
	if len(email.sent) != 2 {
		t.Fatalf("emails sent = %d, want 2", len(email.sent))
	}
}

func TestResendRejectsExpiredLink(t *testing.T) {
	uc, hr, clock, _ := newLinkFixture(t)
	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock.Advance(8 * 24 * time.Hour)
	if _, err := uc.Resend(hr.ID.String(), link.ID.String()); !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("resend expired = %v, want conflict", err)
	}
}

func TestLinkOwnershipIsNotLeaked(t *testing.T) {
	uc, hr, _, _ := newLinkFixture(t)
	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A different HR user sees someone else's link as not found.
	otherID := "b2c3d4e5-0000-0000-0000-000000000000"
	if _, err := uc.Get(otherID, link.ID.String()); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("foreign get = %v, want not found", err)
	}
	if err := uc.Delete(otherID, link.ID.String()); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("foreign delete = %v, want not found", err)
	}
}

func TestUpdateLinkReanchorsExpiry(t *testing.T) {
	uc, hr, clock, _ := newLinkFixture(t)
	link, err := uc.Create(hr, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock.Advance(24 * time.Hour)
	days := 3
	updated, err := uc.Update(hr.ID.String(), link.ID.String(), &dto.UpdateLinkRequest{ExpiresInDays: &days})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := clock.Now().AddDate(0, 0, 3)
	if !updated.ExpiresAt.Equal(want) {
		t.Fatalf("ExpiresAt = %v, want %v", updated.ExpiresAt, want)
	}
}
