package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

type SubscriptionPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex" json:"name"`
	PriceCents   int       `json:"price_cents"`
	MonthlyLinks int       `json:"monthly_links"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Subscription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Plan          string    `gorm:"type:varchar(50)" json:"plan"`
	Status        string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	PaymentMethod string    `gorm:"type:varchar(50)" json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DaysRemaining is derived for API responses, never stored.
func (s *Subscription) DaysRemaining(now time.Time) int {
	if s.Status == SubscriptionExpired {
		return 0
	}
	days := int(s.EndDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
