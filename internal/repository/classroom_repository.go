package repository

import (
	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
)

type ClassroomRepository interface {
	Create(classroom *model.Classroom) error
	FindByIDForTeacher(id, teacherID uint) (*model.Classroom, error) // Eager loads students
	FindAllByTeacher(teacherID uint) ([]model.Classroom, error)
	Delete(id uint) error
}

type classroomRepository struct {
	db *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) Create(classroom *model.Classroom) error {
	return r.db.Create(classroom).Error
}

func (r *classroomRepository) FindByIDForTeacher(id, teacherID uint) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.Preload("Students", func(db *gorm.DB) *gorm.DB {
		return db.Order("full_name asc, id asc")
	}).Where("id = ? AND teacher_id = ?", id, teacherID).First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) FindAllByTeacher(teacherID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	if err := r.db.Preload("Students").Where("teacher_id = ?", teacherID).Order("name asc, id asc").Find(&classrooms).Error; err != nil {
		return nil, err
	}
	return classrooms, nil
}

// Delete removes the classroom; students, their sessions and results go with it.
func (r *classroomRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		studentIDs := tx.Model(&model.Student{}).Select("id").Where("classroom_id = ?", id)
		if _, err := deleteSessionsOf(tx, studentIDs); err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", id).Delete(&model.Student{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Classroom{}, id).Error
	})
}
