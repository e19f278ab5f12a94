package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/metrics"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/service"
)

// analysisConcurrency bounds how many responses of one interview are scored
// at once. Each worker writes a disjoint response row.
const analysisConcurrency = 3

// AnalysisUsecase scores every pending response of a completed interview and
// aggregates the outcome. One failed or timed-out response never sinks the
// run; only zero completed analyses does.
type AnalysisUsecase struct {
	interviews *repository.InterviewRepository
	analyzer   service.ResponseAnalyzer
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time
}

func NewAnalysisUsecase(interviews *repository.InterviewRepository,
	analyzer service.ResponseAnalyzer, logger *zap.Logger, timeout time.Duration) *AnalysisUsecase {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &AnalysisUsecase{
		interviews: interviews,
		analyzer:   analyzer,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Run executes one full analysis pass. Calling it on an interview that is
// already processing or completed is a no-op, which makes retried task
// submissions harmless.
func (uc *AnalysisUsecase) Run(ctx context.Context, interviewID string) error {
	interview, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		return fmt.Errorf("load interview %s: %w", interviewID, err)
	}

	if err := model.ApplyInterviewMutation(interview, model.MarkAnalysisProcessing{}, uc.now()); err != nil {
		if errors.Is(err, model.ErrAnalysisSettled) {
			uc.logger.Info("analysis already settled, skipping",
				zap.String("interview_id", interviewID),
				zap.String("status", interview.AnalysisStatus))
			return nil
		}
		return err
	}
	if err := uc.interviews.Update(interview); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	uc.analyzeResponses(ctx, interview)
	return uc.finalize(interview)
}

// analyzeResponses scores each pending response under its own timeout.
// Mutations to the shared interview are serialized; row writes are disjoint.
func (uc *AnalysisUsecase) analyzeResponses(ctx context.Context, interview *model.Interview) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, analysisConcurrency)
	)
	for i := range interview.Responses {
		if interview.Responses[i].AnalysisStatus != model.ResponsePending {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(ordinal int, question, response string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := uc.analyzeOne(ctx, ordinal, question, response)

			mu.Lock()
			defer mu.Unlock()
			if err := model.ApplyInterviewMutation(interview, outcome, uc.now()); err != nil {
				uc.logger.Warn("could not record response analysis",
					zap.String("interview_id", interview.ID.String()),
					zap.Int("ordinal", ordinal), zap.Error(err))
				return
			}
			for j := range interview.Responses {
				if interview.Responses[j].Ordinal == ordinal {
					if err := uc.interviews.UpdateResponse(&interview.Responses[j]); err != nil {
						uc.logger.Warn("could not persist response analysis",
							zap.String("interview_id", interview.ID.String()),
							zap.Int("ordinal", ordinal), zap.Error(err))
					}
					break
				}
			}
			metrics.ResponsesAnalyzed.WithLabelValues(outcome.Status).Inc()
		}(interview.Responses[i].Ordinal, interview.Responses[i].Question, interview.Responses[i].Response)
	}
	wg.Wait()
}

// analyzeOne turns one analyzer call into a terminal SetAnalysis mutation:
// completed with scores, timeout, or failed.
func (uc *AnalysisUsecase) analyzeOne(ctx context.Context, ordinal int, question, response string) model.SetAnalysis {
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	result, err := uc.analyzer.Analyze(callCtx, question, response)
	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())

	switch {
	case err == nil:
		return model.SetAnalysis{
			Ordinal:            ordinal,
			Status:             model.ResponseCompleted,
			KnowledgeScore:     result.KnowledgeScore,
			CommunicationScore: result.CommunicationScore,
			ConfidenceScore:    result.ConfidenceScore,
			Feedback:           result.Feedback,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return model.SetAnalysis{
			Ordinal: ordinal,
			Status:  model.ResponseTimeout,
			Error:   fmt.Sprintf("Analysis timed out after %s", uc.timeout),
		}
	default:
		return model.SetAnalysis{
			Ordinal: ordinal,
			Status:  model.ResponseFailed,
			Error:   err.Error(),
		}
	}
}

// finalize aggregates the per-response outcomes: the mean of each score over
// completed responses only, or a failed run when nothing completed.
func (uc *AnalysisUsecase) finalize(interview *model.Interview) error {
	var knowledge, communication, confidence float64
	var completed int
	for i := range interview.Responses {
		if interview.Responses[i].AnalysisStatus != model.ResponseCompleted {
			continue
		}
		knowledge += interview.Responses[i].KnowledgeScore
		communication += interview.Responses[i].CommunicationScore
		confidence += interview.Responses[i].ConfidenceScore
		completed++
	}

	var mutation model.FinalizeAnalysis
	if completed == 0 {
		mutation = model.FinalizeAnalysis{
			Status: model.AnalysisFailed,
			Error:  "No analyses were completed",
		}
	} else {
		k := knowledge / float64(completed)
		c := communication / float64(completed)
		f := confidence / float64(completed)
		mutation = model.FinalizeAnalysis{
			Status:             model.AnalysisCompleted,
			KnowledgeScore:     &k,
			CommunicationScore: &c,
			ConfidenceScore:    &f,
			Feedback:           overallFeedback(interview, k, c, f),
		}
	}

	if err := model.ApplyInterviewMutation(interview, mutation, uc.now()); err != nil {
		if errors.Is(err, model.ErrAnalysisSettled) {
			return nil
		}
		return err
	}
	if err := uc.interviews.Update(interview); err != nil {
		return fmt.Errorf("finalize analysis: %w", err)
	}
	uc.logger.Info("interview analysis finished",
		zap.String("interview_id", interview.ID.String()),
		zap.String("status", interview.AnalysisStatus),
		zap.Int("completed_responses", completed))
	return nil
}

// overallFeedback assembles the per-question feedback blocks and the closing
// assessment shown to HR.
func overallFeedback(interview *model.Interview, knowledge, communication, confidence float64) string {
	var b strings.Builder
	for i := range interview.Responses {
		resp := &interview.Responses[i]
		if resp.AnalysisStatus != model.ResponseCompleted || resp.Feedback == "" {
			continue
		}
		fmt.Fprintf(&b, "Question %d Feedback:\n%s\n\n", resp.Ordinal+1, resp.Feedback)
	}
	b.WriteString("Overall Assessment:\n")
	fmt.Fprintf(&b, "Knowledge: %.1f/100\n", knowledge)
	fmt.Fprintf(&b, "Communication: %.1f/100\n", communication)
	fmt.Fprintf(&b, "Confidence: %.1f/100", confidence)
	return b.String()
}

// Status is what the candidate results page polls while analysis runs.
func (uc *AnalysisUsecase) Status(interviewID string) (*dto.AnalysisStatusResponse, error) {
	interview, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, err
	}
	counts := dto.ResponseCounts{Total: len(interview.Responses)}
	for i := range interview.Responses {
		switch interview.Responses[i].AnalysisStatus {
		case model.ResponsePending:
			counts.Pending++
		case model.ResponseCompleted:
			counts.Completed++
		default:
			// failed and timeout both read as failed.
			counts.Failed++
		}
	}
	return &dto.AnalysisStatusResponse{
		InterviewID:        interview.ID.String(),
		Status:             interview.AnalysisStatus,
		Counts:             counts,
		KnowledgeScore:     interview.KnowledgeScore,
		CommunicationScore: interview.CommunicationScore,
		ConfidenceScore:    interview.ConfidenceScore,
		AnalyzedAt:         interview.AnalyzedAt,
		Error:              interview.AnalysisError,
	}, nil
}

// Feedback is the full per-question report once analysis has settled.
func (uc *AnalysisUsecase) Feedback(interviewID string) (*dto.FeedbackResponse, error) {
	interview, err := uc.interviews.FindByID(interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, err
	}
	responses := make([]dto.ResponseFeedback, 0, len(interview.Responses))
	for i := range interview.Responses {
		resp := &interview.Responses[i]
		responses = append(responses, dto.ResponseFeedback{
			Ordinal:            resp.Ordinal,
			Question:           resp.Question,
			Response:           resp.Response,
			Status:             resp.AnalysisStatus,
			KnowledgeScore:     resp.KnowledgeScore,
			CommunicationScore: resp.CommunicationScore,
			ConfidenceScore:    resp.ConfidenceScore,
			Feedback:           resp.Feedback,
		})
	}
	return &dto.FeedbackResponse{
		InterviewID:        interview.ID.String(),
		CandidateName:      interview.CandidateName,
		Position:           interview.Position,
		Topic:              interview.Topic,
		Status:             interview.AnalysisStatus,
		KnowledgeScore:     interview.KnowledgeScore,
		CommunicationScore: interview.CommunicationScore,
		ConfidenceScore:    interview.ConfidenceScore,
		OverallFeedback:    interview.Feedback,
		Responses:          responses,
	}, nil
}
