package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview-level analysis statuses.
const (
	AnalysisPending    = "pending"
	AnalysisProcessing = "processing"
	AnalysisCompleted  = "completed"
	AnalysisFailed     = "failed"
)

// Per-response analysis statuses.
const (
	ResponsePending   = "pending"
	ResponseCompleted = "completed"
	ResponseFailed    = "failed"
	ResponseTimeout   = "timeout"
)

// Interview is the persisted outcome of an interview session: the question
// snapshot, the candidate's responses and, once analysis finishes, the
// aggregate scores and feedback.
type Interview struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	LinkID             *uuid.UUID          `gorm:"type:uuid;index" json:"link_id,omitempty"`
	HRID               uuid.UUID           `gorm:"type:uuid;index" json:"hr_id"`
	CandidateName      string              `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail     string              `gorm:"type:varchar(255)" json:"candidate_email"`
	Position           string              `gorm:"type:varchar(255)" json:"position"`
	Topic              string              `gorm:"type:varchar(255)" json:"topic"`
	Questions          QuestionList        `gorm:"type:jsonb" json:"questions"`
	Responses          []InterviewResponse `gorm:"foreignKey:InterviewID" json:"responses,omitempty"`
	KnowledgeScore     *float64            `json:"knowledge_score,omitempty"`
	CommunicationScore *float64            `json:"communication_score,omitempty"`
	ConfidenceScore    *float64            `json:"confidence_score,omitempty"`
	Feedback           string              `gorm:"type:text" json:"feedback,omitempty"`
	AnalysisStatus     string              `gorm:"type:varchar(20);default:'pending'" json:"analysis_status"`
	AnalysisError      string              `gorm:"type:text" json:"analysis_error,omitempty"`
	AnalyzedAt         *time.Time          `json:"analyzed_at,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (iv *Interview) BeforeCreate(tx *gorm.DB) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	return nil
}

// InterviewResponse is one question/answer pair. Analysis fields are written
// exactly once when the response leaves the pending state.
type InterviewResponse struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID        uuid.UUID `gorm:"type:uuid;index:idx_interview_ordinal,unique" json:"interview_id"`
	Ordinal            int       `gorm:"index:idx_interview_ordinal,unique" json:"ordinal"`
	Question           string    `gorm:"type:text" json:"question"`
	Response           string    `gorm:"type:text" json:"response"`
	SubmittedAt        time.Time `json:"submitted_at"`
	AnalysisStatus     string    `gorm:"type:varchar(20);default:'pending'" json:"analysis_status"`
	KnowledgeScore     float64   `json:"knowledge_score"`
	CommunicationScore float64   `json:"communication_score"`
	ConfidenceScore    float64   `json:"confidence_score"`
	Feedback           string    `gorm:"type:text" json:"feedback,omitempty"`
	AnalysisError      string    `gorm:"type:text" json:"analysis_error,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (r *InterviewResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
