package dto

import (
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/util"
)

type SubscribeRequest struct {
	Plan          string `json:"plan"`
	DurationDays  int    `json:"duration_days"`
	PaymentMethod string `json:"payment_method"`
}

func (r *SubscribeRequest) Validate() error {
	errs := map[string]string{}
	switch r.Plan {
	case model.PlanStarter, model.PlanProfessional, model.PlanEnterprise:
	default:
		errs["plan"] = "Plan must be one of: starter, professional, enterprise"
	}
	if r.DurationDays == 0 {
		r.DurationDays = 30
	}
	if r.DurationDays < 1 || r.DurationDays > 365 {
		errs["duration_days"] = "Duration must be between 1 and 365 days"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

type SubscriptionResponse struct {
	*model.Subscription
	DaysRemaining int `json:"days_remaining"`
}
