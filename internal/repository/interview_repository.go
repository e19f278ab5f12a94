package repository

import (
	"time"

	"github.com/hiresphere/api/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

// Create persists the interview and its response rows in one transaction.
func (r *InterviewRepository) Create(iv *model.Interview) error {
	return r.db.Create(iv).Error
}

func (r *InterviewRepository) Update(iv *model.Interview) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(iv).Error
}

// UpdateResponse writes a single response row, keeping concurrent analysis
// of distinct responses disjoint at the storage level.
func (r *InterviewRepository) UpdateResponse(resp *model.InterviewResponse) error {
	return r.db.Save(resp).Error
}

func (r *InterviewRepository) FindByID(id string) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.Preload("Responses", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordinal ASC")
	}).First(&iv, "id = ?", id).Error
	return &iv, err
}

func (r *InterviewRepository) ListByHR(hrID string) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Preload("Responses").
		Where("hr_id = ?", hrID).Order("created_at DESC").Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) ListRecentByHR(hrID string, limit int) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Where("hr_id = ?", hrID).
		Order("created_at DESC").Limit(limit).Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) ListCompletedSince(hrID string, since time.Time) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Where("hr_id = ? AND analysis_status = ? AND created_at >= ?",
		hrID, model.AnalysisCompleted, since).Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Interview{}).Count(&count).Error
	return count, err
}
