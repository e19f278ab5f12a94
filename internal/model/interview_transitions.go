package model

import (
	"errors"
	"time"
)

var (
	ErrResponseOutOfRange = errors.New("response ordinal exceeds question count")
	ErrResponseNotFound   = errors.New("no response at that ordinal")
	ErrResponseSettled    = errors.New("response analysis already settled")
	ErrAnalysisSettled    = errors.New("interview analysis already settled")
)

// InterviewMutation mirrors LinkMutation for interview records. Concurrent
// analysis of distinct responses is safe because each mutation touches a
// single response's fields.
type InterviewMutation interface {
	apply(iv *Interview, now time.Time) error
}

func ApplyInterviewMutation(iv *Interview, m InterviewMutation, now time.Time) error {
	if err := m.apply(iv, now); err != nil {
		return err
	}
	iv.UpdatedAt = now
	return nil
}

// RecordResponse stores one question/answer pair at an ordinal. Resubmission
// before analysis replaces the text and resets the pending state.
type RecordResponse struct {
	Ordinal  int
	Question string
	Response string
}

func (m RecordResponse) apply(iv *Interview, now time.Time) error {
	if len(iv.Questions) > 0 && m.Ordinal >= len(iv.Questions) {
		return ErrResponseOutOfRange
	}
	if m.Ordinal < 0 {
		return ErrResponseOutOfRange
	}
	for i := range iv.Responses {
		if iv.Responses[i].Ordinal == m.Ordinal {
			iv.Responses[i].Question = m.Question
			iv.Responses[i].Response = m.Response
			iv.Responses[i].SubmittedAt = now
			iv.Responses[i].AnalysisStatus = ResponsePending
			iv.Responses[i].KnowledgeScore = 0
			iv.Responses[i].CommunicationScore = 0
			iv.Responses[i].ConfidenceScore = 0
			iv.Responses[i].Feedback = ""
			iv.Responses[i].AnalysisError = ""
			return nil
		}
	}
	iv.Responses = append(iv.Responses, InterviewResponse{
		InterviewID:    iv.ID,
		Ordinal:        m.Ordinal,
		Question:       m.Question,
		Response:       m.Response,
		SubmittedAt:    now,
		AnalysisStatus: ResponsePending,
	})
	return nil
}

// SetAnalysis moves one response from pending to a terminal status. Terminal
// statuses are never overwritten.
type SetAnalysis struct {
	Ordinal            int
	Status             string
	KnowledgeScore     float64
	CommunicationScore float64
	ConfidenceScore    float64
	Feedback           string
	Error              string
}

func (m SetAnalysis) apply(iv *Interview, now time.Time) error {
	for i := range iv.Responses {
		if iv.Responses[i].Ordinal != m.Ordinal {
			continue
		}
		if iv.Responses[i].AnalysisStatus != ResponsePending {
			return ErrResponseSettled
		}
		iv.Responses[i].AnalysisStatus = m.Status
		iv.Responses[i].KnowledgeScore = m.KnowledgeScore
		iv.Responses[i].CommunicationScore = m.CommunicationScore
		iv.Responses[i].ConfidenceScore = m.ConfidenceScore
		iv.Responses[i].Feedback = m.Feedback
		iv.Responses[i].AnalysisError = m.Error
		return nil
	}
	return ErrResponseNotFound
}

// MarkAnalysisProcessing claims the interview for a background analysis run.
// A run already in flight, or a finished one, rejects the claim. Claiming
// after a failed run re-opens failed and timed-out responses so a retry can
// score them again.
type MarkAnalysisProcessing struct{}

func (MarkAnalysisProcessing) apply(iv *Interview, now time.Time) error {
	if iv.AnalysisStatus == AnalysisProcessing || iv.AnalysisStatus == AnalysisCompleted {
		return ErrAnalysisSettled
	}
	if iv.AnalysisStatus == AnalysisFailed {
		for i := range iv.Responses {
			switch iv.Responses[i].AnalysisStatus {
			case ResponseFailed, ResponseTimeout:
				iv.Responses[i].AnalysisStatus = ResponsePending
				iv.Responses[i].AnalysisError = ""
			}
		}
	}
	iv.AnalysisStatus = AnalysisProcessing
	iv.AnalysisError = ""
	return nil
}

// FinalizeAnalysis writes the aggregate outcome. Scores are nil when no
// response completed.
type FinalizeAnalysis struct {
	Status             string
	KnowledgeScore     *float64
	CommunicationScore *float64
	ConfidenceScore    *float64
	Feedback           string
	Error              string
}

func (m FinalizeAnalysis) apply(iv *Interview, now time.Time) error {
	if iv.AnalysisStatus == AnalysisCompleted {
		return ErrAnalysisSettled
	}
	iv.AnalysisStatus = m.Status
	iv.KnowledgeScore = m.KnowledgeScore
	iv.CommunicationScore = m.CommunicationScore
	iv.ConfidenceScore = m.ConfidenceScore
	if m.Feedback != "" {
		iv.Feedback = m.Feedback
	}
	iv.AnalysisError = m.Error
	analyzed := now
	iv.AnalyzedAt = &analyzed
	return nil
}
