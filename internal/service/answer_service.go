package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/rs/zerolog/log"
)

type AnswerService interface {
	SubmitAnswer(teacherID, studentID uint, req dto.SubmitAnswerRequest) (*dto.AnswerOutcomeDTO, error)
}

type answerService struct {
	studentRepo    repository.StudentRepository
	vocabularyRepo repository.VocabularyRepository
	sessionRepo    repository.TestSessionRepository
	verifier       AnswerVerifier
	scoreService   ScoreService
}

func NewAnswerService(
	studentRepo repository.StudentRepository,
	vocabularyRepo repository.VocabularyRepository,
	sessionRepo repository.TestSessionRepository,
	verifier AnswerVerifier,
	scoreService ScoreService,
) AnswerService {
	return &answerService{
		studentRepo:    studentRepo,
		vocabularyRepo: vocabularyRepo,
		sessionRepo:    sessionRepo,
		verifier:       verifier,
		scoreService:   scoreService,
	}
}

// SubmitAnswer records one answer. All checks run before anything is written.
func (s *answerService) SubmitAnswer(teacherID, studentID uint, req dto.SubmitAnswerRequest) (*dto.AnswerOutcomeDTO, error) {
	if studentID == 0 {
		return nil, validationError("student is required")
	}
	if req.SelectedOptionID == 0 {
		return nil, validationError("selected_option_id is required")
	}

	student, err := s.studentRepo.FindByIDForTeacher(studentID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("student %d", studentID), err)
	}

	askedID, err := s.verifier.Verify(student.ID, req)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", studentID).Msg("SubmitAnswer: answer verification failed")
		return nil, err
	}

	vocabulary, err := s.vocabularyRepo.FindByIDForTeacher(askedID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("vocabulary %d", askedID), err)
	}

	isCorrect := vocabulary.ID == req.SelectedOptionID

	session, result, err := s.sessionRepo.RecordAnswer(student.ID, vocabulary.CategoryID, vocabulary.ID, isCorrect)
	if err != nil {
		if errors.Is(err, repository.ErrSessionConflict) {
			log.Warn().Uint("studentID", studentID).Uint("categoryID", vocabulary.CategoryID).Msg("SubmitAnswer: session conflict after retry")
			return nil, fmt.Errorf("student %d category %d: %w", studentID, vocabulary.CategoryID, ErrConflict)
		}
		log.Error().Err(err).Uint("studentID", studentID).Msg("SubmitAnswer: failed to record answer")
		return nil, storeError("record answer", err)
	}

	log.Info().
		Uint("studentID", studentID).
		Uint("vocabID", vocabulary.ID).
		Bool("correct", isCorrect).
		Int("totalQuestions", session.TotalQuestions).
		Msg("Answer recorded")

	return &dto.AnswerOutcomeDTO{
		Correct:        isCorrect,
		CorrectAnswer:  vocabulary.Word,
		ResultID:       result.ID,
		SessionID:      session.ID,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		Percentage:     s.scoreService.Percentage(session.CorrectAnswers, session.TotalQuestions),
	}, nil
}
