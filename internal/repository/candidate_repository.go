package repository

import (
	"github.com/hiresphere/api/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepository) Update(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *CandidateRepository) FindByID(id string) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.First(&candidate, "id = ?", id).Error
	return &candidate, err
}

func (r *CandidateRepository) ListByHR(hrID string, page, pageSize int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64

	query := r.db.Model(&model.Candidate{}).Where("hr_id = ?", hrID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) CountByHR(hrID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Candidate{}).Where("hr_id = ?", hrID).Count(&count).Error
	return count, err
}

func (r *CandidateRepository) Delete(id string) error {
	return r.db.Delete(&model.Candidate{}, "id = ?", id).Error
}
