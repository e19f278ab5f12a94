package repository

import (
	"time"

	"github.com/hiresphere/api/internal/model"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *SubscriptionRepository) FindByID(id string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.First(&sub, "id = ?", id).Error
	return &sub, err
}

func (r *SubscriptionRepository) FindByUser(userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").First(&sub).Error
	return &sub, err
}

func (r *SubscriptionRepository) List() ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("status = ?", model.SubscriptionActive).Count(&count).Error
	return count, err
}

// ExpireOverdue moves active subscriptions past their end date to expired.
// Used by the scheduled sweep; the transition is one-way.
func (r *SubscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("status = ? AND end_date < ?", model.SubscriptionActive, now).
		Updates(map[string]any{"status": model.SubscriptionExpired, "updated_at": now})
	return result.RowsAffected, result.Error
}

// Plans

func (r *SubscriptionRepository) ListPlans() ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := r.db.Order("price_cents ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepository) FindPlan(name string) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.db.First(&plan, "name = ?", name).Error
	return &plan, err
}

func (r *SubscriptionRepository) SeedPlans(plans []model.SubscriptionPlan) error {
	for i := range plans {
		var existing model.SubscriptionPlan
		err := r.db.First(&existing, "name = ?", plans[i].Name).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := r.db.Create(&plans[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
