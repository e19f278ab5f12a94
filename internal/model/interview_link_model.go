package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterviewLink is a time-boxed, tokenized invitation for one candidate to
// take one interview. The token is the only identifier ever exposed on the
// public URL; the row id stays internal.
type InterviewLink struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Token          string       `gorm:"type:varchar(64);uniqueIndex" json:"token"`
	CandidateName  string       `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail string       `gorm:"type:varchar(255)" json:"candidate_email"`
	Position       string       `gorm:"type:varchar(255)" json:"position"`
	Topic          string       `gorm:"type:varchar(255)" json:"topic"`
	HRID           uuid.UUID    `gorm:"type:uuid;index" json:"hr_id"`
	ExpiresAt      time.Time    `json:"expires_at"`
	Completed      bool         `json:"completed"`
	SentCount      int          `json:"sent_count"`
	Questions      QuestionList `gorm:"type:jsonb" json:"questions,omitempty"`
	SessionName    string       `gorm:"type:varchar(255)" json:"session_name,omitempty"`
	SessionEmail   string       `gorm:"type:varchar(255)" json:"session_email,omitempty"`
	StartedAt      *time.Time   `json:"started_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (l *InterviewLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsExpired is derived, never stored.
func (l *InterviewLink) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

func (l *InterviewLink) IsStarted() bool {
	return l.StartedAt != nil
}
