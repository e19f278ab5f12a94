package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/service"
	"github.com/hiresphere/api/internal/task"
)

type sessionFixture struct {
	uc        *InterviewUsecase
	links     *repository.InterviewLinkRepository
	repo      *repository.InterviewRepository
	analyzer  *fakeAnalyzer
	questions *fakeQuestions
	clock     *fixedClock
	link      *model.InterviewLink
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	db := openTestDB(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	links := repository.NewInterviewLinkRepository(db)
	interviews := repository.NewInterviewRepository(db)
	analyzer := &fakeAnalyzer{
		scores: map[string]*service.AnalysisResult{
			"good answer": {KnowledgeScore: 80, CommunicationScore: 60, ConfidenceScore: 100, Feedback: "nice"},
		},
	}

	questions := &fakeQuestions{}
	analysis := NewAnalysisUsecase(interviews, analyzer, testLogger(), time.Minute)
	uc := NewInterviewUsecase(links, interviews, questions, analysis,
		task.NewRunner(testLogger()), testLogger())
	uc.now = clock.Now
	analysis.now = clock.Now

	link := &model.InterviewLink{
		Token:          "tok-abc",
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		Position:       "Backend Engineer",
		Topic:          "Go concurrency",
		ExpiresAt:      clock.Now().AddDate(0, 0, 7),
		SentCount:      1,
	}
	if err := links.Create(link); err != nil {
		t.Fatalf("create link: %v", err)
	}
	return &sessionFixture{uc: uc, links: links, repo: interviews, analyzer: analyzer,
		questions: questions, clock: clock, link: link}
}

func startRequest() *dto.StartInterviewRequest {
	return &dto.StartInterviewRequest{CandidateName: "Ada L.", CandidateEmail: "ada@example.com"}
}

func TestStartGeneratesQuestionsAndSnapshot(t *testing.T) {
	fx := newSessionFixture(t)

	session, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(session.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(session.Questions))
	}
	if session.Questions[0] != "Q1 about Go concurrency" {
		t.Fatalf("questions must be plain texts, got %q", session.Questions[0])
	}
	if fx.questions.seniority != "mid-level" {
		t.Fatalf("seniority = %q, want mid-level", fx.questions.seniority)
	}

	link, err := fx.links.FindByToken(fx.link.Token)
	if err != nil {
		t.Fatalf("reload link: %v", err)
	}
	if !link.IsStarted() || len(link.Questions) != 3 {
		t.Fatalf("link not started with snapshot: %+v", link)
	}

	iv, err := fx.repo.FindByID(session.InterviewID)
	if err != nil {
		t.Fatalf("load interview: %v", err)
	}
	if iv.AnalysisStatus != model.AnalysisPending || iv.Topic != "Go concurrency" {
		t.Fatalf("interview snapshot wrong: %+v", iv)
	}
}

func TestStartRejectsSecondSessionWithoutRestart(t *testing.T) {
	fx := newSessionFixture(t)
	if _, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest()); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("second start = %v, want conflict", err)
	}

	req := startRequest()
	req.Restart = true
	if _, err := fx.uc.Start(context.Background(), fx.link.Token, req); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestStartRejectsExpiredLink(t *testing.T) {
	fx := newSessionFixture(t)
	fx.clock.Advance(8 * 24 * time.Hour)

	_, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("start on expired link = %v, want conflict", err)
	}
}

func TestSubmitResponseValidatesOrdinal(t *testing.T) {
	fx := newSessionFixture(t)
	session, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	err = fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
		Ordinal: 0, Question: session.Questions[0], Response: "good answer",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	err = fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
		Ordinal: 3, Question: "Q4", Response: "x",
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("out-of-range submit = %v, want validation error", err)
	}
}

func TestCompleteRunsAnalysisAndClosesLink(t *testing.T) {
	fx := newSessionFixture(t)
	session, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 3; i++ {
		err := fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
			Ordinal: i, Question: session.Questions[i], Response: "good answer",
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	handle, err := fx.uc.Complete(context.Background(), session.InterviewID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if handle == nil {
		t.Fatal("complete should return an analysis handle")
	}
	waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handle.Wait(waitCtx); err != nil {
		t.Fatalf("analysis task: %v", err)
	}

	link, err := fx.links.FindByToken(fx.link.Token)
	if err != nil {
		t.Fatalf("reload link: %v", err)
	}
	if !link.Completed {
		t.Fatal("link must be completed")
	}

	iv, err := fx.repo.FindByID(session.InterviewID)
	if err != nil {
		t.Fatalf("reload interview: %v", err)
	}
	if iv.AnalysisStatus != model.AnalysisCompleted {
		t.Fatalf("analysis status = %q, want completed", iv.AnalysisStatus)
	}
	if *iv.KnowledgeScore != 80 || *iv.CommunicationScore != 60 || *iv.ConfidenceScore != 100 {
		t.Fatalf("aggregates = %v/%v/%v", *iv.KnowledgeScore, *iv.CommunicationScore, *iv.ConfidenceScore)
	}

	// A second complete on the same link is rejected.
	if _, err := fx.uc.Complete(context.Background(), session.InterviewID); !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("second complete = %v, want conflict", err)
	}
}

func TestSubmitAfterCompleteIsRejected(t *testing.T) {
	fx := newSessionFixture(t)
	session, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
		Ordinal: 0, Question: session.Questions[0], Response: "good answer",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	handle, err := fx.uc.Complete(context.Background(), session.InterviewID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if handle != nil {
		waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = handle.Wait(waitCtx)
	}

	err = fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
		Ordinal: 1, Question: session.Questions[1], Response: "late",
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("late submit = %v, want conflict", err)
	}
}

func TestAnalyzeRetriesFailedRun(t *testing.T) {
	fx := newSessionFixture(t)
	fx.analyzer.errs = map[string]error{"flaky answer": context.DeadlineExceeded}

	session, err := fx.uc.Start(context.Background(), fx.link.Token, startRequest())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := fx.uc.SubmitResponse(session.InterviewID, &dto.SubmitResponseRequest{
		Ordinal: 0, Question: session.Questions[0], Response: "flaky answer",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	handle, err := fx.uc.Complete(context.Background(), session.InterviewID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handle.Wait(waitCtx); err != nil {
		t.Fatalf("analysis task: %v", err)
	}
	iv, err := fx.repo.FindByID(session.InterviewID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if iv.AnalysisStatus != model.AnalysisFailed {
		t.Fatalf("status = %q, want failed", iv.AnalysisStatus)
	}
	hrID := iv.HRID.String()

	// A foreign HR user cannot trigger analysis on someone else's interview.
	foreign := "b2c3d4e5-0000-0000-0000-000000000000"
	if _, err := fx.uc.Analyze(context.Background(), foreign, session.InterviewID); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("foreign analyze = %v, want not found", err)
	}

	// The provider recovers; the owner retries.
	fx.analyzer.errs = nil
	fx.analyzer.scores["flaky answer"] = &service.AnalysisResult{
		KnowledgeScore: 90, CommunicationScore: 90, ConfidenceScore: 90, Feedback: "better",
	}
	handle, err = fx.uc.Analyze(context.Background(), hrID, session.InterviewID)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if handle == nil {
		t.Fatal("analyze should return a handle")
	}
	if err := handle.Wait(waitCtx); err != nil {
		t.Fatalf("retry task: %v", err)
	}

	iv, err = fx.repo.FindByID(session.InterviewID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if iv.AnalysisStatus != model.AnalysisCompleted {
		t.Fatalf("status = %q, want completed after retry", iv.AnalysisStatus)
	}
	if *iv.KnowledgeScore != 90 {
		t.Fatalf("aggregate knowledge = %v, want 90", *iv.KnowledgeScore)
	}

	// A completed analysis is final.
	if _, err := fx.uc.Analyze(context.Background(), hrID, session.InterviewID); !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("analyze after completion = %v, want conflict", err)
	}
}
