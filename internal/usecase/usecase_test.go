package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/service"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.InterviewLink{},
		&model.Interview{},
		&model.InterviewResponse{},
		&model.Candidate{},
		&model.Subscription{},
		&model.SubscriptionPlan{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// fixedClock gives usecases a deterministic, advanceable now.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// fakeEmail records sends instead of talking to SMTP.
type fakeEmail struct {
	sent []string
	fail bool
}

func (f *fakeEmail) Send(to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeQuestions is a deterministic QuestionGenerator.
type fakeQuestions struct {
	calls     int
	seniority string
}

func (f *fakeQuestions) GenerateQuestions(ctx context.Context, topic, position, seniority string) model.QuestionList {
	f.calls++
	f.seniority = seniority
	return model.QuestionList{
		{Question: "Q1 about " + topic, Difficulty: "easy"},
		{Question: "Q2 about " + topic, Difficulty: "medium"},
		{Question: "Q3 about " + topic, Difficulty: "hard"},
	}
}

// fakeAnalyzer scripts per-response outcomes keyed by response text.
type fakeAnalyzer struct {
	scores map[string]*service.AnalysisResult
	errs   map[string]error
	delay  time.Duration
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, question, response string) (*service.AnalysisResult, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.errs[response]; ok {
		return nil, err
	}
	if result, ok := f.scores[response]; ok {
		return result, nil
	}
	return &service.AnalysisResult{KnowledgeScore: 70, CommunicationScore: 70, ConfidenceScore: 70, Feedback: "ok"}, nil
}
