package repository

import (
	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByIDForTeacher(id, teacherID uint) (*model.Category, error)
	ExistsByName(teacherID uint, name string) (bool, error)
	FindAllByTeacher(teacherID uint) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByIDForTeacher(id, teacherID uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("id = ? AND teacher_id = ?", id, teacherID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByName(teacherID uint, name string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Category{}).Where("teacher_id = ? AND name = ?", teacherID, name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) FindAllByTeacher(teacherID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Where("teacher_id = ?", teacherID).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
