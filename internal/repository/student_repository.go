package repository

import (
	"github.com/lshigami/vocabtest/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(student *model.Student) error
	// FindByIDForTeacher only returns students whose classroom belongs to teacherID.
	FindByIDForTeacher(id, teacherID uint) (*model.Student, error)
	FindAllByTeacher(teacherID uint, classroomID *uint) ([]model.Student, error)
	FindByClassroom(classroomID uint) ([]model.Student, error)
	Delete(id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) FindByIDForTeacher(id, teacherID uint) (*model.Student, error) {
	var student model.Student
	err := r.db.Joins("JOIN classrooms ON classrooms.id = students.classroom_id").
		Where("students.id = ? AND classrooms.teacher_id = ?", id, teacherID).
		Preload("Classroom").
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindAllByTeacher(teacherID uint, classroomID *uint) ([]model.Student, error) {
	var students []model.Student
	query := r.db.Joins("JOIN classrooms ON classrooms.id = students.classroom_id").
		Where("classrooms.teacher_id = ?", teacherID)
	if classroomID != nil {
		query = query.Where("students.classroom_id = ?", *classroomID)
	}
	if err := query.Preload("Classroom").Order("students.full_name asc, students.id asc").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) FindByClassroom(classroomID uint) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.Where("classroom_id = ?", classroomID).Order("full_name asc, id asc").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := deleteSessionsOf(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
}
