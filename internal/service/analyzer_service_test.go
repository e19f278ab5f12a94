package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAnalyzeBlankResponseSkipsProvider(t *testing.T) {
	primary := &scriptedCompleter{text: "should never be used"}
	svc := NewAnalyzerService(primary, nil, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Explain goroutines.", "   \n\t ")
	if err != nil {
		t.Fatalf("analyze blank: %v", err)
	}
	if primary.calls != 0 {
		t.Fatal("blank response must not reach the provider")
	}
	if result.KnowledgeScore != 0 || result.CommunicationScore != 0 || result.ConfidenceScore != 0 {
		t.Fatalf("blank response scores = %+v, want zeros", result)
	}
	if !strings.Contains(result.Feedback, "No answer provided") {
		t.Fatalf("feedback = %q", result.Feedback)
	}
}

func TestAnalyzeParsesProviderJSON(t *testing.T) {
	primary := &scriptedCompleter{text: `{
		"knowledge_score": 85,
		"communication_score": 72,
		"confidence_score": 90,
		"strengths": "solid fundamentals",
		"improvements": "more depth on scheduling",
		"recommendations": "read the runtime source",
		"summary": "strong answer overall"
	}`}
	svc := NewAnalyzerService(primary, nil, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Q", "an actual answer")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.KnowledgeScore != 85 || result.CommunicationScore != 72 || result.ConfidenceScore != 90 {
		t.Fatalf("scores = %+v", result)
	}
	for _, want := range []string{"strong answer overall", "solid fundamentals", "more depth"} {
		if !strings.Contains(result.Feedback, want) {
			t.Fatalf("feedback missing %q:\n%s", want, result.Feedback)
		}
	}
}

func TestAnalyzeUnparseableOutputDegradesToNeutral(t *testing.T) {
	primary := &scriptedCompleter{text: "I'm sorry, I cannot respond in JSON today."}
	svc := NewAnalyzerService(primary, nil, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Q", "answer")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.KnowledgeScore != 70 || result.CommunicationScore != 70 || result.ConfidenceScore != 70 {
		t.Fatalf("neutral fallback scores = %+v, want 70s", result)
	}
}

func TestAnalyzeClampsOutOfRangeScores(t *testing.T) {
	primary := &scriptedCompleter{text: `{"knowledge_score": 180, "communication_score": -5, "confidence_score": 50}`}
	svc := NewAnalyzerService(primary, nil, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Q", "answer")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.KnowledgeScore != 100 || result.CommunicationScore != 0 || result.ConfidenceScore != 50 {
		t.Fatalf("clamped scores = %+v", result)
	}
}

func TestAnalyzeFallsBackThenErrors(t *testing.T) {
	primary := &scriptedCompleter{err: fmt.Errorf("primary down")}
	fallback := &scriptedCompleter{text: `{"knowledge_score": 60, "communication_score": 60, "confidence_score": 60}`}
	svc := NewAnalyzerService(primary, fallback, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Q", "answer")
	if err != nil {
		t.Fatalf("fallback analyze: %v", err)
	}
	if result.KnowledgeScore != 60 || fallback.calls != 1 {
		t.Fatalf("fallback not used: %+v calls=%d", result, fallback.calls)
	}

	both := NewAnalyzerService(&scriptedCompleter{err: fmt.Errorf("down")},
		&scriptedCompleter{err: fmt.Errorf("down too")}, zap.NewNop())
	if _, err := both.Analyze(context.Background(), "Q", "answer"); err == nil {
		t.Fatal("both providers down must surface an error")
	}
}
