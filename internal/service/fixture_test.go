package service

import (
	"testing"
	"time"

	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/model"
)

const (
	teacherA uint = 1001
	teacherB uint = 1002
)

type quizFixture struct {
	repos     *fakeRepos
	classroom *model.Classroom
	student   *model.Student
	category  *model.Category
	words     []*model.Vocabulary

	questions QuestionService
	answers   AnswerService
	results   ResultsService
}

func testConfig() *config.Config {
	return &config.Config{Media: config.Media{BaseURL: "https://cdn.test/media/"}}
}

func newQuizFixture(t *testing.T, verifier AnswerVerifier, words ...string) *quizFixture {
	t.Helper()
	repos := newFakeRepos()
	f := &quizFixture{repos: repos}
	f.classroom = repos.store.addClassroom(teacherA, "5-A")
	f.student = repos.store.addStudent(f.classroom.ID, "Aziz Karimov")
	f.category = repos.store.addCategory(teacherA, "Animals")
	for _, w := range words {
		f.words = append(f.words, repos.store.addVocabulary(teacherA, f.category.ID, w))
	}

	if verifier == nil {
		verifier = NewEchoAnswerVerifier()
	}
	media := NewMediaResolver(testConfig())
	score := NewScoreService()
	f.questions = NewQuestionService(repos.students, repos.categories, repos.vocabulary, repos.resultsRepo, NewSeededRandomizer(7), verifier, media)
	f.answers = NewAnswerService(repos.students, repos.vocabulary, repos.sessions, verifier, score)
	f.results = NewResultsService(repos.students, repos.classrooms, repos.categories, repos.sessions, repos.resultsRepo, score, media)
	return f
}

func (f *quizFixture) answer(t *testing.T, vocabID, selected uint) *dto.AnswerOutcomeDTO {
	t.Helper()
	out, err := f.answers.SubmitAnswer(teacherA, f.student.ID, dto.SubmitAnswerRequest{VocabID: vocabID, SelectedOptionID: selected})
	if err != nil {
		t.Fatalf("SubmitAnswer(%d, %d): %v", vocabID, selected, err)
	}
	return out
}

func newTestTokenVerifier() *tokenAnswerVerifier {
	v := NewTokenAnswerVerifier("question-secret", 10*time.Minute).(*tokenAnswerVerifier)
	return v
}
