package service

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/model"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/rs/zerolog/log"
)

type ClassroomService interface {
	CreateClassroom(teacherID uint, req dto.CreateClassroomRequest) (*dto.ClassroomResponse, error)
	ListClassrooms(teacherID uint) ([]dto.ClassroomResponse, error)
	GetClassroom(teacherID, classroomID uint) (*dto.ClassroomResponse, error)
	DeleteClassroom(teacherID, classroomID uint) error

	CreateStudent(teacherID uint, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	ListStudents(teacherID uint, classroomID *uint) ([]dto.StudentResponse, error)
	DeleteStudent(teacherID, studentID uint) error
}

type classroomService struct {
	classroomRepo repository.ClassroomRepository
	studentRepo   repository.StudentRepository
}

func NewClassroomService(classroomRepo repository.ClassroomRepository, studentRepo repository.StudentRepository) ClassroomService {
	return &classroomService{
		classroomRepo: classroomRepo,
		studentRepo:   studentRepo,
	}
}

func (s *classroomService) CreateClassroom(teacherID uint, req dto.CreateClassroomRequest) (*dto.ClassroomResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	classroom := model.Classroom{Name: name, TeacherID: teacherID}
	if err := s.classroomRepo.Create(&classroom); err != nil {
		log.Error().Err(err).Uint("teacherID", teacherID).Msg("Failed to create classroom")
		return nil, storeError("create classroom", err)
	}
	log.Info().Uint("classroomID", classroom.ID).Uint("teacherID", teacherID).Msg("Classroom created")
	return toClassroomResponse(&classroom, false), nil
}

func (s *classroomService) ListClassrooms(teacherID uint) ([]dto.ClassroomResponse, error) {
	classrooms, err := s.classroomRepo.FindAllByTeacher(teacherID)
	if err != nil {
		return nil, storeError("classrooms", err)
	}
	out := make([]dto.ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		out = append(out, *toClassroomResponse(&classrooms[i], false))
	}
	return out, nil
}

func (s *classroomService) GetClassroom(teacherID, classroomID uint) (*dto.ClassroomResponse, error) {
	classroom, err := s.classroomRepo.FindByIDForTeacher(classroomID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("class %d", classroomID), err)
	}
	return toClassroomResponse(classroom, true), nil
}

func (s *classroomService) DeleteClassroom(teacherID, classroomID uint) error {
	if _, err := s.classroomRepo.FindByIDForTeacher(classroomID, teacherID); err != nil {
		return storeError(fmt.Sprintf("class %d", classroomID), err)
	}
	if err := s.classroomRepo.Delete(classroomID); err != nil {
		log.Error().Err(err).Uint("classroomID", classroomID).Msg("Failed to delete classroom")
		return storeError("delete classroom", err)
	}
	log.Info().Uint("classroomID", classroomID).Msg("Classroom deleted")
	return nil
}

func (s *classroomService) CreateStudent(teacherID uint, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, validationError("full_name is required")
	}
	classroom, err := s.classroomRepo.FindByIDForTeacher(req.ClassroomID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("class %d", req.ClassroomID), err)
	}
	student := model.Student{FullName: fullName, ClassroomID: classroom.ID}
	if err := s.studentRepo.Create(&student); err != nil {
		log.Error().Err(err).Uint("classroomID", classroom.ID).Msg("Failed to create student")
		return nil, storeError("create student", err)
	}
	student.Classroom = classroom
	log.Info().Uint("studentID", student.ID).Uint("classroomID", classroom.ID).Msg("Student created")
	return toStudentResponse(&student), nil
}

func (s *classroomService) ListStudents(teacherID uint, classroomID *uint) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.FindAllByTeacher(teacherID, classroomID)
	if err != nil {
		return nil, storeError("students", err)
	}
	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, *toStudentResponse(&students[i]))
	}
	return out, nil
}

func (s *classroomService) DeleteStudent(teacherID, studentID uint) error {
	if _, err := s.studentRepo.FindByIDForTeacher(studentID, teacherID); err != nil {
		return storeError(fmt.Sprintf("student %d", studentID), err)
	}
	if err := s.studentRepo.Delete(studentID); err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to delete student")
		return storeError("delete student", err)
	}
	log.Info().Uint("studentID", studentID).Msg("Student deleted")
	return nil
}

func toClassroomResponse(classroom *model.Classroom, withStudents bool) *dto.ClassroomResponse {
	var resp dto.ClassroomResponse
	if err := copier.Copy(&resp, classroom); err != nil {
		log.Error().Err(err).Uint("classroomID", classroom.ID).Msg("Failed to map classroom")
	}
	resp.StudentCount = len(classroom.Students)
	resp.Students = nil
	if withStudents {
		resp.Students = make([]dto.StudentResponse, 0, len(classroom.Students))
		for i := range classroom.Students {
			st := toStudentResponse(&classroom.Students[i])
			st.ClassName = classroom.Name
			resp.Students = append(resp.Students, *st)
		}
	}
	return &resp
}

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	var resp dto.StudentResponse
	if err := copier.Copy(&resp, student); err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("Failed to map student")
	}
	if student.Classroom != nil {
		resp.ClassName = student.Classroom.Name
	}
	return &resp
}
