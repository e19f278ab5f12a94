package repository

import (
	"time"

	"github.com/hiresphere/api/internal/model"
	"gorm.io/gorm"
)

type InterviewLinkRepository struct {
	db *gorm.DB
}

func NewInterviewLinkRepository(db *gorm.DB) *InterviewLinkRepository {
	return &InterviewLinkRepository{db}
}

func (r *InterviewLinkRepository) Create(link *model.InterviewLink) error {
	return r.db.Create(link).Error
}

func (r *InterviewLinkRepository) Update(link *model.InterviewLink) error {
	return r.db.Save(link).Error
}

func (r *InterviewLinkRepository) FindByID(id string) (*model.InterviewLink, error) {
	var link model.InterviewLink
	err := r.db.First(&link, "id = ?", id).Error
	return &link, err
}

func (r *InterviewLinkRepository) FindByToken(token string) (*model.InterviewLink, error) {
	var link model.InterviewLink
	err := r.db.First(&link, "token = ?", token).Error
	return &link, err
}

func (r *InterviewLinkRepository) ListByHR(hrID string) ([]model.InterviewLink, error) {
	var links []model.InterviewLink
	err := r.db.Where("hr_id = ?", hrID).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *InterviewLinkRepository) Delete(id string) error {
	return r.db.Delete(&model.InterviewLink{}, "id = ?", id).Error
}

func (r *InterviewLinkRepository) CountActive(hrID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewLink{}).
		Where("hr_id = ? AND completed = ? AND expires_at > ?", hrID, false, now).
		Count(&count).Error
	return count, err
}

func (r *InterviewLinkRepository) CountCompleted(hrID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewLink{}).
		Where("hr_id = ? AND completed = ?", hrID, true).
		Count(&count).Error
	return count, err
}

func (r *InterviewLinkRepository) CountByHR(hrID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewLink{}).Where("hr_id = ?", hrID).Count(&count).Error
	return count, err
}

// CountCreatedSince supports plan quota checks.
func (r *InterviewLinkRepository) CountCreatedSince(hrID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.InterviewLink{}).
		Where("hr_id = ? AND created_at >= ?", hrID, since).
		Count(&count).Error
	return count, err
}
