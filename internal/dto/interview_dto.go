package dto

import (
	"strings"
	"time"

	"github.com/hiresphere/api/internal/util"
)

type StartInterviewRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	Restart        bool   `json:"restart"`
}

func (r *StartInterviewRequest) Validate() error {
	errs := map[string]string{}
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.CandidateEmail = strings.TrimSpace(strings.ToLower(r.CandidateEmail))
	if r.CandidateName == "" {
		errs["candidate_name"] = "Your name is required"
	}
	if !validEmail(r.CandidateEmail) {
		errs["candidate_email"] = "A valid email address is required"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

// StartInterviewResponse carries question texts only; difficulty labels stay
// server-side.
type StartInterviewResponse struct {
	InterviewID string   `json:"interview_id"`
	Questions   []string `json:"questions"`
	Position    string   `json:"position"`
	Topic       string   `json:"topic"`
}

// SubmitResponseRequest carries one answer. A blank response is legal; it is
// scored zero without an LLM call.
type SubmitResponseRequest struct {
	Ordinal  int    `json:"ordinal"`
	Question string `json:"question"`
	Response string `json:"response"`
}

func (r *SubmitResponseRequest) Validate() error {
	errs := map[string]string{}
	if r.Ordinal < 0 {
		errs["ordinal"] = "Ordinal must be non-negative"
	}
	if strings.TrimSpace(r.Question) == "" {
		errs["question"] = "Question text is required"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

// ResponseCounts is the per-status breakdown the results page renders while
// polling. Timeouts count as failed.
type ResponseCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// AnalysisStatusResponse is what the results page polls.
type AnalysisStatusResponse struct {
	InterviewID        string         `json:"interview_id"`
	Status             string         `json:"status"`
	Counts             ResponseCounts `json:"response_counts"`
	KnowledgeScore     *float64       `json:"knowledge_score,omitempty"`
	CommunicationScore *float64       `json:"communication_score,omitempty"`
	ConfidenceScore    *float64       `json:"confidence_score,omitempty"`
	AnalyzedAt         *time.Time     `json:"analyzed_at,omitempty"`
	Error              string         `json:"error,omitempty"`
}

type ResponseFeedback struct {
	Ordinal            int     `json:"ordinal"`
	Question           string  `json:"question"`
	Response           string  `json:"response"`
	Status             string  `json:"status"`
	KnowledgeScore     float64 `json:"knowledge_score"`
	CommunicationScore float64 `json:"communication_score"`
	ConfidenceScore    float64 `json:"confidence_score"`
	Feedback           string  `json:"feedback,omitempty"`
}

// FeedbackResponse is the full per-question report shown once analysis has
// settled.
type FeedbackResponse struct {
	InterviewID        string             `json:"interview_id"`
	CandidateName      string             `json:"candidate_name"`
	Position           string             `json:"position"`
	Topic              string             `json:"topic"`
	Status             string             `json:"status"`
	KnowledgeScore     *float64           `json:"knowledge_score,omitempty"`
	CommunicationScore *float64           `json:"communication_score,omitempty"`
	ConfidenceScore    *float64           `json:"confidence_score,omitempty"`
	OverallFeedback    string             `json:"overall_feedback,omitempty"`
	Responses          []ResponseFeedback `json:"responses"`
}
