package usecase

import (
	"testing"
	"time"

	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
)

func newSubscriptionFixture(t *testing.T) (*SubscriptionUsecase, *repository.SubscriptionRepository, *fixedClock, string) {
	t.Helper()
	db := openTestDB(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	repo := repository.NewSubscriptionRepository(db)
	if err := repo.SeedPlans(DefaultPlans()); err != nil {
		t.Fatalf("seed plans: %v", err)
	}

	hr := &model.User{Email: "hr@acme.test", Role: model.RoleHR, Status: "active"}
	if err := repository.NewUserRepository(db).Create(hr); err != nil {
		t.Fatalf("create hr: %v", err)
	}

	uc := NewSubscriptionUsecase(repo, testLogger())
	uc.now = clock.Now
	return uc, repo, clock, hr.ID.String()
}

func TestSubscribeReplacesActiveSubscription(t *testing.T) {
	uc, _, _, hrID := newSubscriptionFixture(t)

	first, err := uc.Subscribe(hrID, &dto.SubscribeRequest{Plan: model.PlanStarter})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if first.Status != model.SubscriptionActive || first.DaysRemaining != 30 {
		t.Fatalf("first sub: %+v", first)
	}

	second, err := uc.Subscribe(hrID, &dto.SubscribeRequest{Plan: model.PlanProfessional, DurationDays: 90})
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if second.Plan != model.PlanProfessional {
		t.Fatalf("plan = %q", second.Plan)
	}

	current, err := uc.Current(hrID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Plan != model.PlanProfessional || current.Status != model.SubscriptionActive {
		t.Fatalf("current = %+v", current)
	}
}

func TestMonthlyLinkQuotaFollowsPlan(t *testing.T) {
	uc, _, clock, hrID := newSubscriptionFixture(t)

	// No subscription: free tier.
	quota, err := uc.MonthlyLinkQuota(hrID)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	if quota != freeMonthlyLinks {
		t.Fatalf("free quota = %d, want %d", quota, freeMonthlyLinks)
	}

	if _, err := uc.Subscribe(hrID, &dto.SubscribeRequest{Plan: model.PlanStarter}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	quota, err = uc.MonthlyLinkQuota(hrID)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	if quota != 50 {
		t.Fatalf("starter quota = %d, want 50", quota)
	}

	// Lapsed subscription falls back to the free tier.
	clock.Advance(31 * 24 * time.Hour)
	quota, err = uc.MonthlyLinkQuota(hrID)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	if quota != freeMonthlyLinks {
		t.Fatalf("lapsed quota = %d, want %d", quota, freeMonthlyLinks)
	}
}

func TestExpireOverdueIsOneWay(t *testing.T) {
	uc, repo, clock, hrID := newSubscriptionFixture(t)
	if _, err := uc.Subscribe(hrID, &dto.SubscribeRequest{Plan: model.PlanStarter}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	n, err := uc.ExpireOverdue()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh sub swept: %d", n)
	}

	clock.Advance(31 * 24 * time.Hour)
	n, err = uc.ExpireOverdue()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("swept = %d, want 1", n)
	}

	sub, err := repo.FindByUser(hrID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sub.Status != model.SubscriptionExpired {
		t.Fatalf("status = %q, want expired", sub.Status)
	}

	// Running again changes nothing.
	if n, _ := uc.ExpireOverdue(); n != 0 {
		t.Fatalf("second sweep = %d, want 0", n)
	}
}
