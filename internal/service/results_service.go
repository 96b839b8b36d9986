package service

import (
	"fmt"

	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/model"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/rs/zerolog/log"
)

type ResultsService interface {
	// SummarizeStudent aggregates every result of the student, or only one category when categoryID is set.
	SummarizeStudent(teacherID, studentID uint, categoryID *uint) (*dto.StudentSummaryDTO, error)
	// SummarizeClass returns one row per student in the classroom, zeroed for students without a session.
	SummarizeClass(teacherID, classroomID, categoryID uint) ([]dto.StudentSessionSummaryDTO, error)
	ClearResults(teacherID, studentID uint) (*dto.ClearResultsDTO, error)
}

type resultsService struct {
	studentRepo   repository.StudentRepository
	classroomRepo repository.ClassroomRepository
	categoryRepo  repository.CategoryRepository
	sessionRepo   repository.TestSessionRepository
	resultRepo    repository.ResultRepository
	scoreService  ScoreService
	media         MediaResolver
}

func NewResultsService(
	studentRepo repository.StudentRepository,
	classroomRepo repository.ClassroomRepository,
	categoryRepo repository.CategoryRepository,
	sessionRepo repository.TestSessionRepository,
	resultRepo repository.ResultRepository,
	scoreService ScoreService,
	media MediaResolver,
) ResultsService {
	return &resultsService{
		studentRepo:   studentRepo,
		classroomRepo: classroomRepo,
		categoryRepo:  categoryRepo,
		sessionRepo:   sessionRepo,
		resultRepo:    resultRepo,
		scoreService:  scoreService,
		media:         media,
	}
}

func (s *resultsService) SummarizeStudent(teacherID, studentID uint, categoryID *uint) (*dto.StudentSummaryDTO, error) {
	student, err := s.studentRepo.FindByIDForTeacher(studentID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("student %d", studentID), err)
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByIDForTeacher(*categoryID, teacherID); err != nil {
			return nil, storeError(fmt.Sprintf("category %d", *categoryID), err)
		}
	}

	results, err := s.resultRepo.FindByStudent(student.ID, categoryID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("SummarizeStudent: failed to load results")
		return nil, storeError("results", err)
	}

	summary := &dto.StudentSummaryDTO{
		StudentID:   student.ID,
		StudentName: student.FullName,
		TotalTests:  len(results),
		Results:     make([]dto.ResultDTO, 0, len(results)),
	}
	for _, r := range results {
		if r.IsCorrect {
			summary.CorrectAnswers++
		}
		summary.Results = append(summary.Results, s.toResultDTO(r))
	}
	summary.IncorrectAnswers = summary.TotalTests - summary.CorrectAnswers
	summary.AccuracyPercentage = s.scoreService.Percentage(summary.CorrectAnswers, summary.TotalTests)
	return summary, nil
}

func (s *resultsService) toResultDTO(r model.Result) dto.ResultDTO {
	out := dto.ResultDTO{
		ID:        r.ID,
		VocabID:   r.VocabularyID,
		Correct:   r.IsCorrect,
		Status:    "-",
		Timestamp: r.CreatedAt,
	}
	if r.IsCorrect {
		out.Status = "+"
	}
	if r.Vocabulary != nil {
		out.VocabWord = r.Vocabulary.Word
		out.VocabImageURL = s.media.URL(r.Vocabulary.ImageRef)
		if r.Vocabulary.Category != nil {
			out.VocabCategory = r.Vocabulary.Category.Name
		}
	}
	return out
}

func (s *resultsService) SummarizeClass(teacherID, classroomID, categoryID uint) ([]dto.StudentSessionSummaryDTO, error) {
	if categoryID == 0 {
		return nil, validationError("category is required")
	}
	if _, err := s.classroomRepo.FindByIDForTeacher(classroomID, teacherID); err != nil {
		return nil, storeError(fmt.Sprintf("class %d", classroomID), err)
	}
	if _, err := s.categoryRepo.FindByIDForTeacher(categoryID, teacherID); err != nil {
		return nil, storeError(fmt.Sprintf("category %d", categoryID), err)
	}

	students, err := s.studentRepo.FindByClassroom(classroomID)
	if err != nil {
		return nil, storeError("students", err)
	}
	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}
	sessions, err := s.sessionRepo.FindByStudentsAndCategory(studentIDs, categoryID)
	if err != nil {
		return nil, storeError("test sessions", err)
	}
	byStudent := make(map[uint]model.TestSession, len(sessions))
	for _, ts := range sessions {
		byStudent[ts.StudentID] = ts
	}

	rows := make([]dto.StudentSessionSummaryDTO, 0, len(students))
	for _, st := range students {
		row := dto.StudentSessionSummaryDTO{StudentID: st.ID, StudentName: st.FullName}
		if ts, ok := byStudent[st.ID]; ok {
			sessionID := ts.ID
			row.SessionID = &sessionID
			row.TotalQuestions = ts.TotalQuestions
			row.CorrectAnswers = ts.CorrectAnswers
			row.IncorrectAnswers = ts.TotalQuestions - ts.CorrectAnswers
			row.Percentage = s.scoreService.Percentage(ts.CorrectAnswers, ts.TotalQuestions)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *resultsService) ClearResults(teacherID, studentID uint) (*dto.ClearResultsDTO, error) {
	if _, err := s.studentRepo.FindByIDForTeacher(studentID, teacherID); err != nil {
		return nil, storeError(fmt.Sprintf("student %d", studentID), err)
	}
	stats, err := s.sessionRepo.DeleteByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("ClearResults: delete failed")
		return nil, storeError("clear results", err)
	}
	log.Info().
		Uint("studentID", studentID).
		Int64("results", stats.Results).
		Int64("sessions", stats.Sessions).
		Msg("Student results cleared")
	return &dto.ClearResultsDTO{
		StudentID:       studentID,
		DeletedResults:  stats.Results,
		DeletedSessions: stats.Sessions,
	}, nil
}
