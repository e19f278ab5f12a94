package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/metrics"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/service"
	"github.com/hiresphere/api/internal/task"
)

// defaultSeniority pitches generated questions until links carry their own
// seniority field.
const defaultSeniority = "mid-level"

// InterviewUsecase drives the candidate-facing session: start, answer,
// complete. Completion hands the interview to the analysis pipeline on a
// background task.
type InterviewUsecase struct {
	links      *repository.InterviewLinkRepository
	interviews *repository.InterviewRepository
	questions  service.QuestionGenerator
	analysis   *AnalysisUsecase
	runner     *task.Runner
	logger     *zap.Logger
	now        func() time.Time
}

func NewInterviewUsecase(links *repository.InterviewLinkRepository,
	interviews *repository.InterviewRepository, questions service.QuestionGenerator,
	analysis *AnalysisUsecase, runner *task.Runner, logger *zap.Logger) *InterviewUsecase {
	return &InterviewUsecase{
		links:      links,
		interviews: interviews,
		questions:  questions,
		analysis:   analysis,
		runner:     runner,
		logger:     logger,
		now:        time.Now,
	}
}

// Start opens a session on a link: generates the question set, snapshots it
// on both the link and a fresh interview record, and returns the questions.
// A restart discards any prior in-progress session and gets a fresh set.
func (uc *InterviewUsecase) Start(ctx context.Context, token string, req *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	link, err := uc.links.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Invalid interview link")
		}
		return nil, err
	}

	now := uc.now()
	questions := uc.questions.GenerateQuestions(ctx, link.Topic, link.Position, defaultSeniority)
	mutation := model.StartSession{
		Questions:      questions,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Restart:        req.Restart,
	}
	if err := model.ApplyLinkMutation(link, mutation, now); err != nil {
		return nil, mapLinkError(err)
	}
	if err := uc.links.Update(link); err != nil {
		return nil, err
	}

	interview := &model.Interview{
		LinkID:         &link.ID,
		HRID:           link.HRID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Position:       link.Position,
		Topic:          link.Topic,
		Questions:      questions,
		AnalysisStatus: model.AnalysisPending,
	}
	if err := uc.interviews.Create(interview); err != nil {
		return nil, err
	}

	uc.logger.Info("interview session started",
		zap.String("interview_id", interview.ID.String()),
		zap.String("token", token),
		zap.Bool("restart", req.Restart))
	return &dto.StartInterviewResponse{
		InterviewID: interview.ID.String(),
		Questions:   questions.Texts(),
		Position:    link.Position,
		Topic:       link.Topic,
	}, nil
}

// SubmitResponse records one answer. Resubmitting an ordinal before analysis
// replaces the previous text.
func (uc *InterviewUsecase) SubmitResponse(interviewID string, req *dto.SubmitResponseRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	interview, err := uc.loadInterview(interviewID)
	if err != nil {
		return err
	}
	if interview.CompletedAt != nil {
		return apperror.Conflict("This interview has already been completed")
	}
	mutation := model.RecordResponse{
		Ordinal:  req.Ordinal,
		Question: req.Question,
		Response: req.Response,
	}
	if err := model.ApplyInterviewMutation(interview, mutation, uc.now()); err != nil {
		if errors.Is(err, model.ErrResponseOutOfRange) {
			return apperror.Validation("Response ordinal is out of range")
		}
		return err
	}
	return uc.interviews.Update(interview)
}

// Complete closes the session and schedules the analysis run. The returned
// handle resolves when the background analysis settles; HTTP callers ignore
// it and poll status instead.
func (uc *InterviewUsecase) Complete(ctx context.Context, interviewID string) (*task.Handle, error) {
	interview, err := uc.loadInterview(interviewID)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	if interview.LinkID != nil {
		link, err := uc.links.FindByID(interview.LinkID.String())
		if err == nil {
			if err := model.ApplyLinkMutation(link, model.MarkCompleted{}, now); err != nil {
				return nil, mapLinkError(err)
			}
			if err := uc.links.Update(link); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if interview.CompletedAt == nil {
		completed := now
		interview.CompletedAt = &completed
		interview.UpdatedAt = now
		if err := uc.interviews.Update(interview); err != nil {
			return nil, err
		}
	}
	metrics.InterviewsCompleted.Inc()

	// The analysis must outlive the request; detach it from the request
	// context.
	handle, err := uc.runner.Go(context.WithoutCancel(ctx),
		"analysis:"+interviewID, "interview-analysis",
		func(taskCtx context.Context) error {
			return uc.analysis.Run(taskCtx, interviewID)
		})
	if err != nil {
		// An analysis already in flight is not an error for the caller.
		uc.logger.Info("analysis already running", zap.String("interview_id", interviewID))
		return nil, nil
	}
	return handle, nil
}

// Analyze schedules an analysis run on behalf of the owning HR user. It is
// the retry path for a run that failed; a completed analysis is final.
func (uc *InterviewUsecase) Analyze(ctx context.Context, hrID, interviewID string) (*task.Handle, error) {
	interview, err := uc.loadInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if interview.HRID.String() != hrID {
		return nil, apperror.NotFound("Interview not found")
	}
	if interview.AnalysisStatus == model.AnalysisCompleted {
		return nil, apperror.Conflict("Analysis has already completed")
	}

	handle, err := uc.runner.Go(context.WithoutCancel(ctx),
		"analysis:"+interviewID, "interview-analysis",
		func(taskCtx context.Context) error {
			return uc.analysis.Run(taskCtx, interviewID)
		})
	if err != nil {
		uc.logger.Info("analysis already running", zap.String("interview_id", interviewID))
		return nil, nil
	}
	return handle, nil
}

func (uc *InterviewUsecase) loadInterview(id string) (*model.Interview, error) {
	interview, err := uc.interviews.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, err
	}
	return interview, nil
}

func mapLinkError(err error) error {
	switch {
	case errors.Is(err, model.ErrLinkExpired):
		return apperror.Conflict("This interview link has expired")
	case errors.Is(err, model.ErrLinkCompleted):
		return apperror.Conflict("This interview has already been completed")
	case errors.Is(err, model.ErrLinkStarted):
		return apperror.Conflict("An interview session is already in progress")
	}
	return err
}
