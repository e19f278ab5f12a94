package model

import (
	"errors"
	"testing"
	"time"
)

func newTestInterview() *Interview {
	return &Interview{
		Questions: QuestionList{
			{Question: "Q1"}, {Question: "Q2"}, {Question: "Q3"},
		},
		AnalysisStatus: AnalysisPending,
	}
}

func TestRecordResponseAppendsAndReplaces(t *testing.T) {
	now := time.Now()
	iv := newTestInterview()

	if err := ApplyInterviewMutation(iv, RecordResponse{Ordinal: 0, Question: "Q1", Response: "first"}, now); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(iv.Responses) != 1 || iv.Responses[0].AnalysisStatus != ResponsePending {
		t.Fatalf("unexpected responses: %+v", iv.Responses)
	}

	// Resubmission replaces the answer and resets analysis state.
	iv.Responses[0].KnowledgeScore = 50
	if err := ApplyInterviewMutation(iv, RecordResponse{Ordinal: 0, Question: "Q1", Response: "second"}, now); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(iv.Responses) != 1 || iv.Responses[0].Response != "second" || iv.Responses[0].KnowledgeScore != 0 {
		t.Fatalf("resubmission should replace, got %+v", iv.Responses)
	}
}

func TestRecordResponseRejectsOutOfRangeOrdinal(t *testing.T) {
	iv := newTestInterview()
	err := ApplyInterviewMutation(iv, RecordResponse{Ordinal: 3, Question: "Q4", Response: "x"}, time.Now())
	if !errors.Is(err, ErrResponseOutOfRange) {
		t.Fatalf("ordinal 3 of 3 questions = %v, want ErrResponseOutOfRange", err)
	}
	err = ApplyInterviewMutation(iv, RecordResponse{Ordinal: -1, Question: "Q", Response: "x"}, time.Now())
	if !errors.Is(err, ErrResponseOutOfRange) {
		t.Fatalf("negative ordinal = %v, want ErrResponseOutOfRange", err)
	}
}

func TestSetAnalysisWritesOnce(t *testing.T) {
	now := time.Now()
	iv := newTestInterview()
	if err := ApplyInterviewMutation(iv, RecordResponse{Ordinal: 0, Question: "Q1", Response: "answer"}, now); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	set := SetAnalysis{Ordinal: 0, Status: ResponseCompleted, KnowledgeScore: 80, CommunicationScore: 70, ConfidenceScore: 90, Feedback: "good"}
	if err := ApplyInterviewMutation(iv, set, now); err != nil {
		t.Fatalf("set analysis failed: %v", err)
	}
	if iv.Responses[0].KnowledgeScore != 80 {
		t.Fatalf("scores not written: %+v", iv.Responses[0])
	}

	if err := ApplyInterviewMutation(iv, set, now); !errors.Is(err, ErrResponseSettled) {
		t.Fatalf("second settle = %v, want ErrResponseSettled", err)
	}
	if err := ApplyInterviewMutation(iv, SetAnalysis{Ordinal: 9, Status: ResponseFailed}, now); !errors.Is(err, ErrResponseNotFound) {
		t.Fatalf("unknown ordinal = %v, want ErrResponseNotFound", err)
	}
}

func TestMarkAnalysisProcessingClaimsOnce(t *testing.T) {
	now := time.Now()
	iv := newTestInterview()

	if err := ApplyInterviewMutation(iv, MarkAnalysisProcessing{}, now); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if iv.AnalysisStatus != AnalysisProcessing {
		t.Fatalf("status = %q, want processing", iv.AnalysisStatus)
	}
	if err := ApplyInterviewMutation(iv, MarkAnalysisProcessing{}, now); !errors.Is(err, ErrAnalysisSettled) {
		t.Fatalf("second claim = %v, want ErrAnalysisSettled", err)
	}
}

func TestMarkAnalysisProcessingAllowsRetryAfterFailure(t *testing.T) {
	now := time.Now()
	iv := newTestInterview()
	iv.AnalysisStatus = AnalysisFailed
	iv.AnalysisError = "No analyses were completed"
	iv.Responses = []InterviewResponse{
		{Ordinal: 0, AnalysisStatus: ResponseCompleted, KnowledgeScore: 80},
		{Ordinal: 1, AnalysisStatus: ResponseFailed, AnalysisError: "boom"},
		{Ordinal: 2, AnalysisStatus: ResponseTimeout, AnalysisError: "too slow"},
	}

	if err := ApplyInterviewMutation(iv, MarkAnalysisProcessing{}, now); err != nil {
		t.Fatalf("retry after failure should be allowed: %v", err)
	}
	if iv.AnalysisError != "" {
		t.Fatalf("error not cleared: %q", iv.AnalysisError)
	}
	// The retry re-opens failed and timed-out responses, never completed ones.
	if iv.Responses[0].AnalysisStatus != ResponseCompleted {
		t.Fatalf("completed response reset: %q", iv.Responses[0].AnalysisStatus)
	}
	for _, i := range []int{1, 2} {
		if iv.Responses[i].AnalysisStatus != ResponsePending || iv.Responses[i].AnalysisError != "" {
			t.Fatalf("response %d not re-opened: %+v", i, iv.Responses[i])
		}
	}
}

func TestFinalizeAnalysisRejectsSecondCompletion(t *testing.T) {
	now := time.Now()
	iv := newTestInterview()
	score := 75.0

	final := FinalizeAnalysis{
		Status:             AnalysisCompleted,
		KnowledgeScore:     &score,
		CommunicationScore: &score,
		ConfidenceScore:    &score,
		Feedback:           "done",
	}
	if err := ApplyInterviewMutation(iv, final, now); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if iv.AnalyzedAt == nil || iv.KnowledgeScore == nil || *iv.KnowledgeScore != 75 {
		t.Fatalf("aggregate not written: %+v", iv)
	}
	if err := ApplyInterviewMutation(iv, final, now); !errors.Is(err, ErrAnalysisSettled) {
		t.Fatalf("second finalize = %v, want ErrAnalysisSettled", err)
	}
}
