package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(255)" json:"name"`
	Email          string     `gorm:"type:varchar(255)" json:"email"`
	Position       string     `gorm:"type:varchar(255)" json:"position"`
	Status         string     `gorm:"type:varchar(50);default:'new'" json:"status"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	ResumeText     string     `gorm:"type:text" json:"resume_text,omitempty"`
	InterviewCount int        `json:"interview_count"`
	LastActivity   *time.Time `json:"last_activity,omitempty"`
	HRID           uuid.UUID  `gorm:"type:uuid;index" json:"hr_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
