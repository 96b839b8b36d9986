package repository

import (
	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	// AnsweredVocabularyIDs lists vocabulary ids a student already answered in the session
	// for categoryID. Duplicates are possible.
	AnsweredVocabularyIDs(studentID, categoryID uint) ([]uint, error)
	// FindByStudent returns results newest first, with vocabulary and category loaded.
	FindByStudent(studentID uint, categoryID *uint) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) AnsweredVocabularyIDs(studentID, categoryID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Result{}).
		Joins("JOIN test_sessions ON test_sessions.id = results.session_id").
		Where("test_sessions.student_id = ? AND test_sessions.category_id = ?", studentID, categoryID).
		Pluck("results.vocabulary_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *resultRepository) FindByStudent(studentID uint, categoryID *uint) ([]model.Result, error) {
	var results []model.Result
	query := r.db.Joins("JOIN test_sessions ON test_sessions.id = results.session_id").
		Where("test_sessions.student_id = ?", studentID)
	if categoryID != nil {
		query = query.Where("test_sessions.category_id = ?", *categoryID)
	}
	err := query.Preload("Vocabulary.Category").
		Order("results.created_at desc, results.id desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
