package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
)

// freeMonthlyLinks is the quota for HR accounts without an active
// subscription.
const freeMonthlyLinks = 10

type SubscriptionUsecase struct {
	subs   *repository.SubscriptionRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSubscriptionUsecase(subs *repository.SubscriptionRepository, logger *zap.Logger) *SubscriptionUsecase {
	return &SubscriptionUsecase{subs: subs, logger: logger, now: time.Now}
}

func DefaultPlans() []model.SubscriptionPlan {
	return []model.SubscriptionPlan{
		{Name: model.PlanStarter, PriceCents: 2900, MonthlyLinks: 50,
			Description: "For small teams getting started with structured interviews."},
		{Name: model.PlanProfessional, PriceCents: 9900, MonthlyLinks: 250,
			Description: "For growing teams running interviews at volume."},
		{Name: model.PlanEnterprise, PriceCents: 29900, MonthlyLinks: 2000,
			Description: "For organizations with dedicated recruiting pipelines."},
	}
}

func (uc *SubscriptionUsecase) ListPlans() ([]model.SubscriptionPlan, error) {
	return uc.subs.ListPlans()
}

// Subscribe replaces the user's current subscription: any active one is
// cancelled before the new one starts.
func (uc *SubscriptionUsecase) Subscribe(userID string, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.subs.FindPlan(req.Plan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Unknown subscription plan")
		}
		return nil, err
	}

	now := uc.now()
	if current, err := uc.subs.FindByUser(userID); err == nil && current.Status == model.SubscriptionActive {
		current.Status = model.SubscriptionCancelled
		current.UpdatedAt = now
		if err := uc.subs.Update(current); err != nil {
			return nil, err
		}
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Validation("Invalid user id")
	}
	sub := &model.Subscription{
		UserID:        uid,
		Plan:          req.Plan,
		Status:        model.SubscriptionActive,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, req.DurationDays),
		PaymentMethod: req.PaymentMethod,
	}
	if err := uc.subs.Create(sub); err != nil {
		return nil, err
	}
	uc.logger.Info("subscription created",
		zap.String("user_id", userID), zap.String("plan", sub.Plan))
	return &dto.SubscriptionResponse{Subscription: sub, DaysRemaining: sub.DaysRemaining(now)}, nil
}

func (uc *SubscriptionUsecase) Current(userID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subs.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No subscription found")
		}
		return nil, err
	}
	return &dto.SubscriptionResponse{Subscription: sub, DaysRemaining: sub.DaysRemaining(uc.now())}, nil
}

func (uc *SubscriptionUsecase) Cancel(userID string) error {
	sub, err := uc.subs.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("No subscription found")
		}
		return err
	}
	if sub.Status != model.SubscriptionActive {
		return apperror.Conflict("Subscription is not active")
	}
	sub.Status = model.SubscriptionCancelled
	sub.UpdatedAt = uc.now()
	return uc.subs.Update(sub)
}

// MonthlyLinkQuota resolves how many links the user may create per calendar
// month. Expired or missing subscriptions fall back to the free tier.
func (uc *SubscriptionUsecase) MonthlyLinkQuota(userID string) (int, error) {
	sub, err := uc.subs.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return freeMonthlyLinks, nil
		}
		return 0, err
	}
	if sub.Status != model.SubscriptionActive || sub.EndDate.Before(uc.now()) {
		return freeMonthlyLinks, nil
	}
	plan, err := uc.subs.FindPlan(sub.Plan)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return freeMonthlyLinks, nil
		}
		return 0, err
	}
	return plan.MonthlyLinks, nil
}

// ExpireOverdue is the scheduled sweep moving lapsed subscriptions to
// expired.
func (uc *SubscriptionUsecase) ExpireOverdue() (int64, error) {
	n, err := uc.subs.ExpireOverdue(uc.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Info("expired overdue subscriptions", zap.Int64("count", n))
	}
	return n, nil
}
