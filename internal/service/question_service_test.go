package service

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

// scriptedCompleter returns a fixed completion or error.
type scriptedCompleter struct {
	text  string
	err   error
	calls int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestGenerateQuestionsParsesNumberedList(t *testing.T) {
	primary := &scriptedCompleter{text: `1. What is a goroutine?
2) How do channels synchronize?
3. Explain the select statement.
4. What does the race detector catch?
5. When would you use sync.Mutex over a channel?`}
	svc := NewQuestionService(primary, nil, nil, nil, zap.NewNop(), 5)

	questions := svc.GenerateQuestions(context.Background(), "Go concurrency", "Backend Engineer", "")
	if len(questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(questions))
	}
	if questions[0].Question != "What is a goroutine?" {
		t.Fatalf("first question = %q", questions[0].Question)
	}
	if questions[0].Difficulty != "easy" || questions[1].Difficulty != "medium" || questions[4].Difficulty != "hard" {
		t.Fatalf("difficulty spread wrong: %+v", questions)
	}
}

func TestGenerateQuestionsFallsBackToSecondProvider(t *testing.T) {
	primary := &scriptedCompleter{err: fmt.Errorf("circuit open")}
	fallback := &scriptedCompleter{text: "1. Q1\n2. Q2\n3. Q3\n4. Q4\n5. Q5"}
	svc := NewQuestionService(primary, fallback, nil, nil, zap.NewNop(), 5)

	questions := svc.GenerateQuestions(context.Background(), "Kubernetes", "", "")
	if fallback.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fallback.calls)
	}
	if len(questions) != 5 || questions[0].Question != "Q1" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestGenerateQuestionsNeverReturnsEmpty(t *testing.T) {
	primary := &scriptedCompleter{err: fmt.Errorf("down")}
	fallback := &scriptedCompleter{err: fmt.Errorf("also down")}
	svc := NewQuestionService(primary, fallback, nil, nil, zap.NewNop(), 5)

	questions := svc.GenerateQuestions(context.Background(), "SQL", "", "")
	if len(questions) != 5 {
		t.Fatalf("static fallback must fill the set, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Question == "" {
			t.Fatalf("empty question in static set: %+v", questions)
		}
	}
}

func TestGenerateQuestionsPadsShortCompletion(t *testing.T) {
	primary := &scriptedCompleter{text: "1. Only one question?"}
	svc := NewQuestionService(primary, nil, nil, nil, zap.NewNop(), 5)

	questions := svc.GenerateQuestions(context.Background(), "Redis", "", "")
	if len(questions) != 5 {
		t.Fatalf("short completion must be padded to 5, got %d", len(questions))
	}
	if questions[0].Question != "Only one question?" {
		t.Fatalf("parsed question lost: %q", questions[0].Question)
	}
}

func TestParseNumberedQuestionsKeepsPlainLines(t *testing.T) {
	text := "What is sharding?\nExplain replication lag.\n"
	questions := parseNumberedQuestions(text, 5)
	if len(questions) != 2 {
		t.Fatalf("plain-line pass failed: %+v", questions)
	}
	if questions[0].Question != "What is sharding?" {
		t.Fatalf("first = %q", questions[0].Question)
	}
}
