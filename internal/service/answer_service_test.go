package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/repository"
)

func TestSubmitAnswerScenario(t *testing.T) {
	f := newQuizFixture(t, nil, "apple", "dog", "cat")
	apple, dog, cat := f.words[0], f.words[1], f.words[2]

	out := f.answer(t, apple.ID, apple.ID)
	if !out.Correct || out.TotalQuestions != 1 || out.CorrectAnswers != 1 || out.Percentage != 100.0 {
		t.Fatalf("first answer outcome = %+v", out)
	}
	if out.CorrectAnswer != "apple" {
		t.Errorf("correct answer = %q, want apple", out.CorrectAnswer)
	}

	out = f.answer(t, dog.ID, cat.ID)
	if out.Correct {
		t.Fatal("selecting cat for dog must be incorrect")
	}
	if out.CorrectAnswer != "dog" {
		t.Errorf("correct answer = %q, want dog", out.CorrectAnswer)
	}
	if out.TotalQuestions != 2 || out.CorrectAnswers != 1 || out.Percentage != 50.0 {
		t.Fatalf("second answer outcome = %+v", out)
	}
	if out.SessionID == 0 || out.ResultID == 0 {
		t.Errorf("outcome must carry session and result ids: %+v", out)
	}

	sel, err := f.questions.SelectQuestion(teacherA, f.student.ID, f.category.ID)
	if err != nil {
		t.Fatalf("SelectQuestion: %v", err)
	}
	if sel.Question.VocabID != cat.ID {
		t.Fatalf("asked %d, want %d", sel.Question.VocabID, cat.ID)
	}
}

func TestSubmitAnswerCounters(t *testing.T) {
	f := newQuizFixture(t, nil, "apple", "dog", "cat")
	apple, dog := f.words[0], f.words[1]

	const total, correct = 7, 3
	var out *dto.AnswerOutcomeDTO
	for i := 0; i < total; i++ {
		selected := dog.ID
		if i < correct {
			selected = apple.ID
		}
		out = f.answer(t, apple.ID, selected)
	}
	if out.TotalQuestions != total || out.CorrectAnswers != correct {
		t.Fatalf("counters = %d/%d, want %d/%d", out.CorrectAnswers, out.TotalQuestions, correct, total)
	}
	if out.Percentage != 42.86 {
		t.Errorf("percentage = %v, want 42.86", out.Percentage)
	}

	session := f.repos.store.session(f.student.ID, f.category.ID)
	if session == nil || session.TotalQuestions != total || session.CorrectAnswers != correct {
		t.Fatalf("stored session = %+v", session)
	}
	if n := len(f.repos.store.sessions); n != 1 {
		t.Fatalf("%d sessions stored, want 1", n)
	}
}

func TestSubmitAnswerRejectsBeforeWriting(t *testing.T) {
	f := newQuizFixture(t, nil, "apple", "dog", "cat")
	foreign := f.repos.store.addVocabulary(teacherB, f.repos.store.addCategory(teacherB, "Colors").ID, "red")

	tests := []struct {
		name      string
		studentID uint
		req       dto.SubmitAnswerRequest
		want      error
	}{
		{"missing selection", f.student.ID, dto.SubmitAnswerRequest{VocabID: f.words[0].ID}, ErrValidation},
		{"missing vocab", f.student.ID, dto.SubmitAnswerRequest{SelectedOptionID: f.words[0].ID}, ErrValidation},
		{"missing student", 0, dto.SubmitAnswerRequest{VocabID: f.words[0].ID, SelectedOptionID: f.words[0].ID}, ErrValidation},
		{"unknown student", 4242, dto.SubmitAnswerRequest{VocabID: f.words[0].ID, SelectedOptionID: f.words[0].ID}, ErrNotFound},
		{"other teacher's vocabulary", f.student.ID, dto.SubmitAnswerRequest{VocabID: foreign.ID, SelectedOptionID: foreign.ID}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.answers.SubmitAnswer(teacherA, tt.studentID, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(f.repos.store.results) != 0 || len(f.repos.store.sessions) != 0 {
		t.Fatal("rejected submissions must not write anything")
	}
}

func TestSubmitAnswerStoreFailures(t *testing.T) {
	f := newQuizFixture(t, nil, "apple", "dog", "cat")
	apple := f.words[0]
	req := dto.SubmitAnswerRequest{VocabID: apple.ID, SelectedOptionID: apple.ID}

	f.repos.store.recordErr = repository.ErrSessionConflict
	if _, err := f.answers.SubmitAnswer(teacherA, f.student.ID, req); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	boom := errors.New("connection reset")
	f.repos.store.recordErr = boom
	_, err := f.answers.SubmitAnswer(teacherA, f.student.ID, req)
	if !errors.Is(err, ErrStore) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want ErrStore wrapping the cause", err)
	}
}

func TestTokenAnswerVerifier(t *testing.T) {
	v := newTestTokenVerifier()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	token, err := v.Issue(5, 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := v.Verify(5, dto.SubmitAnswerRequest{QuestionToken: token, SelectedOptionID: 1})
	if err != nil || id != 42 {
		t.Fatalf("Verify = %d, %v; want 42", id, err)
	}
	if id, err := v.Verify(5, dto.SubmitAnswerRequest{VocabID: 42, QuestionToken: token}); err != nil || id != 42 {
		t.Fatalf("Verify with matching vocab_id = %d, %v", id, err)
	}

	rejects := []struct {
		name      string
		studentID uint
		req       dto.SubmitAnswerRequest
	}{
		{"missing token", 5, dto.SubmitAnswerRequest{VocabID: 42}},
		{"other student", 6, dto.SubmitAnswerRequest{QuestionToken: token}},
		{"mismatched vocab", 5, dto.SubmitAnswerRequest{VocabID: 43, QuestionToken: token}},
		{"tampered token", 5, dto.SubmitAnswerRequest{QuestionToken: token + "x"}},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(tt.studentID, tt.req); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	now = now.Add(11 * time.Minute)
	if _, err := v.Verify(5, dto.SubmitAnswerRequest{QuestionToken: token}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expired token: err = %v, want ErrValidation", err)
	}

	forged, err := NewTokenAnswerVerifier("another-secret", time.Hour).Issue(5, 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := v.Verify(5, dto.SubmitAnswerRequest{QuestionToken: forged}); !errors.Is(err, ErrValidation) {
		t.Fatalf("forged token: err = %v, want ErrValidation", err)
	}
}

func TestEchoAnswerVerifier(t *testing.T) {
	v := NewEchoAnswerVerifier()
	if tok, err := v.Issue(1, 2); tok != "" || err != nil {
		t.Fatalf("Issue = %q, %v", tok, err)
	}
	if id, err := v.Verify(1, dto.SubmitAnswerRequest{VocabID: 9, SelectedOptionID: 3}); id != 9 || err != nil {
		t.Fatalf("Verify = %d, %v; want 9", id, err)
	}
}
