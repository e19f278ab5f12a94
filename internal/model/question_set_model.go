package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// QuestionSet caches generated question lists keyed by a topic embedding so
// repeat interviews on similar topics skip the generation call.
type QuestionSet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Topic     string          `gorm:"type:varchar(255)" json:"topic"`
	Position  string          `gorm:"type:varchar(255)" json:"position"`
	Seniority string          `gorm:"type:varchar(50)" json:"seniority"`
	Questions QuestionList    `gorm:"type:jsonb" json:"questions"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (q *QuestionSet) TableName() string {
	return "question_sets"
}

func (q *QuestionSet) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
