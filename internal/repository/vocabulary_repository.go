package repository

import (
	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
)

type VocabularyRepository interface {
	Create(vocabulary *model.Vocabulary) error
	CreateBatch(vocabularies []model.Vocabulary) error
	FindByIDForTeacher(id, teacherID uint) (*model.Vocabulary, error) // Eager loads category
	// FindPool returns every vocabulary item of one teacher's category, ordered by id.
	FindPool(teacherID, categoryID uint) ([]model.Vocabulary, error)
	FindAllByTeacher(teacherID uint, categoryID *uint) ([]model.Vocabulary, error)
	Delete(id uint) error
}

type vocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func (r *vocabularyRepository) Create(vocabulary *model.Vocabulary) error {
	return r.db.Create(vocabulary).Error
}

func (r *vocabularyRepository) CreateBatch(vocabularies []model.Vocabulary) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(vocabularies, 100).Error
	})
}

func (r *vocabularyRepository) FindByIDForTeacher(id, teacherID uint) (*model.Vocabulary, error) {
	var vocabulary model.Vocabulary
	if err := r.db.Preload("Category").Where("id = ? AND teacher_id = ?", id, teacherID).First(&vocabulary).Error; err != nil {
		return nil, err
	}
	return &vocabulary, nil
}

func (r *vocabularyRepository) FindPool(teacherID, categoryID uint) ([]model.Vocabulary, error) {
	var pool []model.Vocabulary
	if err := r.db.Where("teacher_id = ? AND category_id = ?", teacherID, categoryID).Order("id asc").Find(&pool).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

func (r *vocabularyRepository) FindAllByTeacher(teacherID uint, categoryID *uint) ([]model.Vocabulary, error) {
	var vocabularies []model.Vocabulary
	query := r.db.Preload("Category").Where("teacher_id = ?", teacherID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Order("created_at desc, id desc").Find(&vocabularies).Error; err != nil {
		return nil, err
	}
	return vocabularies, nil
}

// Delete removes the item together with the results that reference it.
// Session counters are not decremented.
func (r *vocabularyRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vocabulary_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Vocabulary{}, id).Error
	})
}
