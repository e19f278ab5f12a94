// Package jobs holds the scheduled maintenance work that runs alongside the
// HTTP server.
package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hiresphere/api/internal/usecase"
)

// subscriptionSweepSpec runs shortly after midnight so lapsed subscriptions
// flip to expired before the workday starts.
const subscriptionSweepSpec = "15 0 * * *"

// StartScheduler wires the recurring jobs and starts the cron loop. The
// returned cron is stopped by the caller on shutdown.
func StartScheduler(subs *usecase.SubscriptionUsecase, logger *zap.Logger) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(subscriptionSweepSpec, func() {
		if _, err := subs.ExpireOverdue(); err != nil {
			logger.Error("subscription expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Error("could not schedule subscription sweep", zap.Error(err))
		return c
	}
	c.Start()
	logger.Info("scheduler started", zap.String("subscription_sweep", subscriptionSweepSpec))
	return c
}
