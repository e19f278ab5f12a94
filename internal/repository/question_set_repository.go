package repository

import (
	"github.com/hiresphere/api/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QuestionSetRepository struct {
	db *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) *QuestionSetRepository {
	return &QuestionSetRepository{db}
}

// SearchNearest returns cached question sets ordered by embedding distance
// to the given topic embedding.
func (r *QuestionSetRepository) SearchNearest(embedding pgvector.Vector, topK int) ([]QuestionSetMatch, error) {
	var matches []QuestionSetMatch

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM question_sets
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&matches).Error

	return matches, err
}

type QuestionSetMatch struct {
	model.QuestionSet
	Distance float64 `json:"distance"`
}

func (r *QuestionSetRepository) Create(set *model.QuestionSet) error {
	return r.db.Create(set).Error
}
