package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hiresphere/api/internal/cache"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
)

// DashboardOverview is the HR landing page summary. It is cached because
// every page load hits it and nothing on it needs to be fresher than the
// cache TTL.
type DashboardOverview struct {
	TotalLinks          int64             `json:"total_links"`
	ActiveLinks         int64             `json:"active_links"`
	CompletedInterviews int64             `json:"completed_interviews"`
	TotalCandidates     int64             `json:"total_candidates"`
	AvgKnowledge        float64           `json:"avg_knowledge"`
	AvgCommunication    float64           `json:"avg_communication"`
	AvgConfidence       float64           `json:"avg_confidence"`
	RecentInterviews    []model.Interview `json:"recent_interviews"`
	GeneratedAt         time.Time         `json:"generated_at"`
}

type DashboardUsecase struct {
	links      *repository.InterviewLinkRepository
	interviews *repository.InterviewRepository
	candidates *repository.CandidateRepository
	cache      *cache.Cache
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardUsecase(links *repository.InterviewLinkRepository,
	interviews *repository.InterviewRepository, candidates *repository.CandidateRepository,
	c *cache.Cache, logger *zap.Logger) *DashboardUsecase {
	return &DashboardUsecase{
		links:      links,
		interviews: interviews,
		candidates: candidates,
		cache:      c,
		logger:     logger,
		now:        time.Now,
	}
}

func dashboardKey(hrID string) string {
	return "dashboard:overview:" + hrID
}

func (uc *DashboardUsecase) Overview(ctx context.Context, hrID string) (*DashboardOverview, error) {
	var cached DashboardOverview
	if uc.cache.Get(ctx, dashboardKey(hrID), &cached) {
		return &cached, nil
	}

	now := uc.now()
	overview := &DashboardOverview{GeneratedAt: now}

	var err error
	if overview.TotalLinks, err = uc.links.CountByHR(hrID); err != nil {
		return nil, err
	}
	if overview.ActiveLinks, err = uc.links.CountActive(hrID, now); err != nil {
		return nil, err
	}
	if overview.CompletedInterviews, err = uc.links.CountCompleted(hrID); err != nil {
		return nil, err
	}
	if overview.TotalCandidates, err = uc.candidates.CountByHR(hrID); err != nil {
		return nil, err
	}

	monthAgo := now.AddDate(0, -1, 0)
	analyzed, err := uc.interviews.ListCompletedSince(hrID, monthAgo)
	if err != nil {
		return nil, err
	}
	if len(analyzed) > 0 {
		var k, c, f float64
		var n int
		for i := range analyzed {
			iv := &analyzed[i]
			if iv.KnowledgeScore == nil || iv.CommunicationScore == nil || iv.ConfidenceScore == nil {
				continue
			}
			k += *iv.KnowledgeScore
			c += *iv.CommunicationScore
			f += *iv.ConfidenceScore
			n++
		}
		if n > 0 {
			overview.AvgKnowledge = k / float64(n)
			overview.AvgCommunication = c / float64(n)
			overview.AvgConfidence = f / float64(n)
		}
	}

	if overview.RecentInterviews, err = uc.interviews.ListRecentByHR(hrID, 5); err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, dashboardKey(hrID), overview, 0)
	return overview, nil
}

// Invalidate drops the cached overview after a write that changes it.
func (uc *DashboardUsecase) Invalidate(ctx context.Context, hrID string) {
	uc.cache.Delete(ctx, dashboardKey(hrID))
}
