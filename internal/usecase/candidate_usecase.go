package usecase

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/response"
	"github.com/hiresphere/api/internal/util"
)

type CandidateUsecase struct {
	candidates *repository.CandidateRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewCandidateUsecase(candidates *repository.CandidateRepository, logger *zap.Logger) *CandidateUsecase {
	return &CandidateUsecase{candidates: candidates, logger: logger, now: time.Now}
}

func (uc *CandidateUsecase) Create(hr *model.User, req *dto.CreateCandidateRequest) (*model.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	candidate := &model.Candidate{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Notes:    req.Notes,
		HRID:     hr.ID,
	}
	if err := uc.candidates.Create(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (uc *CandidateUsecase) List(hrID string, page, pageSize int) ([]model.Candidate, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	candidates, total, err := uc.candidates.ListByHR(hrID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return candidates, response.NewPagination(page, pageSize, total), nil
}

func (uc *CandidateUsecase) Get(hrID, candidateID string) (*model.Candidate, error) {
	return uc.ownedCandidate(hrID, candidateID)
}

func (uc *CandidateUsecase) Update(hrID, candidateID string, req *dto.UpdateCandidateRequest) (*model.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	candidate, err := uc.ownedCandidate(hrID, candidateID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Position != nil {
		candidate.Position = *req.Position
	}
	if req.Notes != nil {
		candidate.Notes = *req.Notes
	}
	if req.Status != nil {
		candidate.Status = *req.Status
	}
	candidate.UpdatedAt = uc.now()
	if err := uc.candidates.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (uc *CandidateUsecase) Delete(hrID, candidateID string) error {
	candidate, err := uc.ownedCandidate(hrID, candidateID)
	if err != nil {
		return err
	}
	return uc.candidates.Delete(candidate.ID.String())
}

// AttachResume extracts the text layer of an uploaded resume PDF and stores
// it on the candidate for later screening.
func (uc *CandidateUsecase) AttachResume(hrID, candidateID, pdfPath string) (*model.Candidate, error) {
	candidate, err := uc.ownedCandidate(hrID, candidateID)
	if err != nil {
		return nil, err
	}
	text, err := util.ExtractPDFText(pdfPath)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "Could not read resume PDF", err)
	}
	now := uc.now()
	candidate.ResumeText = text
	candidate.LastActivity = &now
	candidate.UpdatedAt = now
	if err := uc.candidates.Update(candidate); err != nil {
		return nil, err
	}
	uc.logger.Info("resume attached",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Int("text_len", len(text)))
	return candidate, nil
}

func (uc *CandidateUsecase) ownedCandidate(hrID, candidateID string) (*model.Candidate, error) {
	candidate, err := uc.candidates.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, err
	}
	if candidate.HRID.String() != hrID {
		return nil, apperror.NotFound("Candidate not found")
	}
	return candidate, nil
}
