package service

import (
	"fmt"

	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/model"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	distractorCount = 2
	minPoolSize     = distractorCount + 1
)

// Selection is the outcome of SelectQuestion. Exhausted means every word in the category
// has been answered by the student; Question is nil in that case.
type Selection struct {
	Exhausted bool
	Question  *dto.TestQuestionDTO
}

type QuestionService interface {
	SelectQuestion(teacherID, studentID, categoryID uint) (*Selection, error)
}

type questionService struct {
	studentRepo    repository.StudentRepository
	categoryRepo   repository.CategoryRepository
	vocabularyRepo repository.VocabularyRepository
	resultRepo     repository.ResultRepository
	rnd            Randomizer
	verifier       AnswerVerifier
	media          MediaResolver
}

func NewQuestionService(
	studentRepo repository.StudentRepository,
	categoryRepo repository.CategoryRepository,
	vocabularyRepo repository.VocabularyRepository,
	resultRepo repository.ResultRepository,
	rnd Randomizer,
	verifier AnswerVerifier,
	media MediaResolver,
) QuestionService {
	return &questionService{
		studentRepo:    studentRepo,
		categoryRepo:   categoryRepo,
		vocabularyRepo: vocabularyRepo,
		resultRepo:     resultRepo,
		rnd:            rnd,
		verifier:       verifier,
		media:          media,
	}
}

func (s *questionService) SelectQuestion(teacherID, studentID, categoryID uint) (*Selection, error) {
	if studentID == 0 || categoryID == 0 {
		return nil, validationError("student and category are required")
	}
	if _, err := s.studentRepo.FindByIDForTeacher(studentID, teacherID); err != nil {
		return nil, storeError(fmt.Sprintf("student %d", studentID), err)
	}
	if _, err := s.categoryRepo.FindByIDForTeacher(categoryID, teacherID); err != nil {
		return nil, storeError(fmt.Sprintf("category %d", categoryID), err)
	}

	pool, err := s.vocabularyRepo.FindPool(teacherID, categoryID)
	if err != nil {
		return nil, storeError("vocabulary pool", err)
	}
	if len(pool) < minPoolSize {
		log.Warn().Uint("categoryID", categoryID).Int("poolSize", len(pool)).Msg("SelectQuestion: pool too small")
		return nil, fmt.Errorf("category %d has %d words: %w", categoryID, len(pool), ErrInsufficientPool)
	}

	answeredIDs, err := s.resultRepo.AnsweredVocabularyIDs(studentID, categoryID)
	if err != nil {
		return nil, storeError("answered vocabularies", err)
	}
	answered := make(map[uint]struct{}, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = struct{}{}
	}

	remaining := make([]model.Vocabulary, 0, len(pool))
	for _, v := range pool {
		if _, seen := answered[v.ID]; !seen {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) == 0 {
		log.Info().Uint("studentID", studentID).Uint("categoryID", categoryID).Msg("SelectQuestion: all questions completed")
		return &Selection{Exhausted: true}, nil
	}

	correct := remaining[s.rnd.IntN(len(remaining))]

	// Distractors come from the whole pool; only the asked word has to be unseen.
	candidates := make([]model.Vocabulary, 0, len(pool)-1)
	for _, v := range pool {
		if v.ID != correct.ID {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) < distractorCount {
		return nil, fmt.Errorf("category %d has %d distractor candidates: %w", categoryID, len(candidates), ErrInsufficientPool)
	}

	options := append([]model.Vocabulary{correct}, sampleWithoutReplacement(s.rnd, candidates, distractorCount)...)
	s.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	token, err := s.verifier.Issue(studentID, correct.ID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("SelectQuestion: failed to issue question token")
		return nil, err
	}

	question := &dto.TestQuestionDTO{
		VocabID:       correct.ID,
		Word:          correct.Word,
		ImageURL:      s.media.URL(correct.ImageRef),
		Options:       make([]dto.OptionDTO, 0, len(options)),
		QuestionToken: token,
	}
	for _, o := range options {
		question.Options = append(question.Options, dto.OptionDTO{ID: o.ID, Word: o.Word})
	}

	log.Debug().
		Uint("studentID", studentID).
		Uint("categoryID", categoryID).
		Int("remaining", len(remaining)).
		Msg("SelectQuestion: question selected")
	return &Selection{Question: question}, nil
}
