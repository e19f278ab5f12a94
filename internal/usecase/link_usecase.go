package usecase

import (
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
	"github.com/hiresphere/api/internal/util"
)

// tokenRetries bounds the re-roll loop on the astronomically unlikely token
// collision.
const tokenRetries = 3

type LinkUsecase struct {
	links  *repository.InterviewLinkRepository
	subs   *SubscriptionUsecase
	email  service.EmailSender
	logger *zap.Logger

	baseURL string
	company string
	now     func() time.Time
}

func NewLinkUsecase(links *repository.InterviewLinkRepository, subs *SubscriptionUsecase,
	email service.EmailSender, logger *zap.Logger, baseURL, company string) *LinkUsecase {
	return &LinkUsecase{
		links:   links,
		subs:    subs,
		email:   email,
		logger:  logger,
		baseURL: baseURL,
		company: company,
		now:     time.Now,
	}
}

// Create issues a new tokenized link for one candidate. The invitation email
// counts as the first send, so sent_count starts at 1 whether or not
// delivery succeeds.
func (uc *LinkUsecase) Create(hr *model.User, req *dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()

	if uc.subs != nil {
		quota, err := uc.subs.MonthlyLinkQuota(hr.ID.String())
		if err != nil {
			return nil, err
		}
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		used, err := uc.links.CountCreatedSince(hr.ID.String(), monthStart)
		if err != nil {
			return nil, err
		}
		if used >= int64(quota) {
			return nil, apperror.Forbidden("Monthly interview link quota reached")
		}
	}

	link := &model.InterviewLink{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Position:       req.Position,
		Topic:          req.Topic,
		HRID:           hr.ID,
		ExpiresAt:      now.AddDate(0, 0, req.ExpiresInDays),
		SentCount:      1,
	}

	var err error
	for attempt := 0; attempt < tokenRetries; attempt++ {
		link.Token, err = util.GenerateLinkToken()
		if err != nil {
			return nil, err
		}
		if err = uc.links.Create(link); err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}
	metrics.LinksCreated.Inc()

	resp := dto.NewLinkResponse(link, uc.baseURL, now)
	if req.SendEmail {
		uc.sendInvitation(link, resp.InterviewURL, req.ExpiresInDays)
	}
	uc.logger.Info("interview link created",
		zap.String("link_id", link.ID.String()),
		zap.String("candidate_email", link.CandidateEmail),
		zap.Time("expires_at", link.ExpiresAt))
	return resp, nil
}

// sendInvitation is best-effort; a delivery failure never fails the request.
func (uc *LinkUsecase) sendInvitation(link *model.InterviewLink, url string, expiresInDays int) {
	if uc.email == nil {
		return
	}
	company := uc.company
	if company == "" {
		company = "HireSphere"
	}
	subject, body := service.InvitationEmail(link.CandidateName, link.Position, company, url, expiresInDays)
	if err := uc.email.Send(link.CandidateEmail, subject, body); err != nil {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
		uc.logger.Warn("invitation email failed",
			zap.String("link_id", link.ID.String()), zap.Error(err))
		return
	}
	metrics.EmailsSent.WithLabelValues("sent").Inc()
}

// Validate is the public pre-session check behind the candidate landing
// page. It never reveals more than the welcome screen needs.
func (uc *LinkUsecase) Validate(token string) (*dto.ValidateLinkResponse, error) {
	link, err := uc.links.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Invalid interview link")
		}
		return nil, err
	}
	resp := &dto.ValidateLinkResponse{
		Valid:         true,
		Expired:       link.IsExpired(uc.now()),
		CandidateName: link.CandidateName,
		Position:      link.Position,
		Topic:         link.Topic,
		Company:       uc.company,
	}
	switch {
	case link.Completed:
		resp.Valid = false
		resp.Reason = "This interview has already been completed"
	case resp.Expired:
		resp.Valid = false
		resp.Reason = "This interview link has expired"
	}
	return resp, nil
}

// Resend re-sends the invitation for a link that is still usable and bumps
// sent_count. Expiry is never extended by a resend.
func (uc *LinkUsecase) Resend(hrID, linkID string) (*dto.LinkResponse, error) {
	link, err := uc.ownedLink(hrID, linkID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if link.Completed {
		return nil, apperror.Conflict("This interview has already been completed")
	}
	if link.IsExpired(now) {
		return nil, apperror.Conflict("This interview link has expired")
	}
	if err := model.ApplyLinkMutation(link, model.MarkSent{}, now); err != nil {
		return nil, err
	}
	if err := uc.links.Update(link); err != nil {
		return nil, err
	}
	resp := dto.NewLinkResponse(link, uc.baseURL, now)
	remaining := int(time.Until(link.ExpiresAt).Hours() / 24)
	if remaining < 1 {
		remaining = 1
	}
	uc.sendInvitation(link, resp.InterviewURL, remaining)
	return resp, nil
}

func (uc *LinkUsecase) List(hrID string) ([]dto.LinkResponse, error) {
	links, err := uc.links.ListByHR(hrID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, *dto.NewLinkResponse(&links[i], uc.baseURL, now))
	}
	return out, nil
}

func (uc *LinkUsecase) Get(hrID, linkID string) (*dto.LinkResponse, error) {
	link, err := uc.ownedLink(hrID, linkID)
	if err != nil {
		return nil, err
	}
	return dto.NewLinkResponse(link, uc.baseURL, uc.now()), nil
}

// Update edits candidate-facing fields. Changing expiry re-anchors it at now
// plus the requested days.
func (uc *LinkUsecase) Update(hrID, linkID string, req *dto.UpdateLinkRequest) (*dto.LinkResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	link, err := uc.ownedLink(hrID, linkID)
	if err != nil {
		return nil, err
	}
	if link.Completed {
		return nil, apperror.Conflict("Completed interviews cannot be edited")
	}
	now := uc.now()
	if req.CandidateName != nil {
		link.CandidateName = *req.CandidateName
	}
	if req.Position != nil {
		link.Position = *req.Position
	}
	if req.Topic != nil {
		link.Topic = *req.Topic
	}
	if req.ExpiresInDays != nil {
		link.ExpiresAt = now.AddDate(0, 0, *req.ExpiresInDays)
	}
	link.UpdatedAt = now
	if err := uc.links.Update(link); err != nil {
		return nil, err
	}
	return dto.NewLinkResponse(link, uc.baseURL, now), nil
}

func (uc *LinkUsecase) Delete(hrID, linkID string) error {
	link, err := uc.ownedLink(hrID, linkID)
	if err != nil {
		return err
	}
	return uc.links.Delete(link.ID.String())
}

// ownedLink loads a link and enforces tenant ownership. Foreign links read
// as not found so their existence is not leaked.
func (uc *LinkUsecase) ownedLink(hrID, linkID string) (*model.InterviewLink, error) {
	link, err := uc.links.FindByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Interview link not found")
		}
		return nil, err
	}
	if link.HRID.String() != hrID {
		return nil, apperror.NotFound("Interview link not found")
	}
	return link, nil
}
