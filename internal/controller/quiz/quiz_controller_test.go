package quiz

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/internal/auth"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/lshigami/vocabtest/internal/service"
)

const teacherID = 42

type stubQuestions struct {
	selection *service.Selection
	err       error
	gotArgs   [3]uint
}

func (s *stubQuestions) SelectQuestion(teacherID, studentID, categoryID uint) (*service.Selection, error) {
	s.gotArgs = [3]uint{teacherID, studentID, categoryID}
	return s.selection, s.err
}

type stubAnswers struct {
	outcome *dto.AnswerOutcomeDTO
	err     error
	gotReq  dto.SubmitAnswerRequest
}

func (s *stubAnswers) SubmitAnswer(teacherID, studentID uint, req dto.SubmitAnswerRequest) (*dto.AnswerOutcomeDTO, error) {
	s.gotReq = req
	return s.outcome, s.err
}

type stubResults struct {
	summary     *dto.StudentSummaryDTO
	class       []dto.StudentSessionSummaryDTO
	cleared     *dto.ClearResultsDTO
	err         error
	gotCategory *uint
}

func (s *stubResults) SummarizeStudent(teacherID, studentID uint, categoryID *uint) (*dto.StudentSummaryDTO, error) {
	s.gotCategory = categoryID
	return s.summary, s.err
}

func (s *stubResults) SummarizeClass(teacherID, classroomID, categoryID uint) ([]dto.StudentSessionSummaryDTO, error) {
	return s.class, s.err
}

func (s *stubResults) ClearResults(teacherID, studentID uint) (*dto.ClearResultsDTO, error) {
	return s.cleared, s.err
}

type harness struct {
	router    *gin.Engine
	token     string
	questions *stubQuestions
	answers   *stubAnswers
	results   *stubResults
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	if err := i18n.Init("en"); err != nil {
		t.Fatal(err)
	}
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Auth: config.Auth{JWTSecret: "controller-test-secret"}}
	authenticator := auth.NewAuthenticator(cfg)
	token, err := authenticator.IssueToken(teacherID, "Test Teacher", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	h := &harness{
		token:     token,
		questions: &stubQuestions{},
		answers:   &stubAnswers{},
		results:   &stubResults{},
	}
	r := gin.New()
	r.Use(i18n.Middleware())
	group := r.Group("/api/v1", authenticator.RequireTeacher())
	NewQuizController(h.questions, h.answers, h.results).RegisterRoutes(group)
	h.router = r
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestGetRandomQuestion(t *testing.T) {
	h := newHarness(t)
	h.questions.selection = &service.Selection{Question: &dto.TestQuestionDTO{
		VocabID:  5,
		Word:     "cat",
		ImageURL: "https://cdn.test/cat.png",
		Options:  []dto.OptionDTO{{ID: 6, Word: "dog"}, {ID: 5, Word: "cat"}, {ID: 7, Word: "cow"}},
	}}

	w := h.do(http.MethodGet, "/api/v1/test/3/random?category=9", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	got := decode[dto.TestQuestionDTO](t, w)
	if got.VocabID != 5 || len(got.Options) != 3 {
		t.Errorf("question = %+v", got)
	}
	if h.questions.gotArgs != [3]uint{teacherID, 3, 9} {
		t.Errorf("service called with %v", h.questions.gotArgs)
	}
}

func TestGetRandomQuestionFinished(t *testing.T) {
	h := newHarness(t)
	h.questions.selection = &service.Selection{Exhausted: true}

	w := h.do(http.MethodGet, "/api/v1/test/3/random?category=9", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[dto.TestFinishedDTO](t, w)
	if !got.Finished || got.Message != "All questions completed" {
		t.Errorf("finished = %+v", got)
	}
}

func TestGetRandomQuestionErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing category", "/api/v1/test/3/random", nil, http.StatusBadRequest, "Invalid request"},
		{"bad category", "/api/v1/test/3/random?category=abc", nil, http.StatusBadRequest, "Invalid request"},
		{"bad student", "/api/v1/test/x/random?category=1", nil, http.StatusBadRequest, "Invalid request"},
		{"small pool", "/api/v1/test/3/random?category=1", fmt.Errorf("category 1: %w", service.ErrInsufficientPool), http.StatusBadRequest, "Not enough vocabularies for test."},
		{"unknown student", "/api/v1/test/3/random?category=1", fmt.Errorf("student: %w", service.ErrNotFound), http.StatusNotFound, "Not found"},
		{"store failure", "/api/v1/test/3/random?category=1", fmt.Errorf("pool: %w: boom", service.ErrStore), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.questions.err = tt.err
			w := h.do(http.MethodGet, tt.path, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			got := decode[dto.ErrorResponse](t, w)
			if got.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMsg)
			}
			if tt.wantStatus == http.StatusInternalServerError && len(got.Details) != 0 {
				t.Errorf("internal details leaked: %v", got.Details)
			}
		})
	}
}

func TestSubmitAnswer(t *testing.T) {
	h := newHarness(t)
	h.answers.outcome = &dto.AnswerOutcomeDTO{Correct: true, CorrectAnswer: "cat", TotalQuestions: 1, CorrectAnswers: 1, Percentage: 100}

	w := h.do(http.MethodPost, "/api/v1/test/3/answer", `{"vocab_id":5,"selected_option_id":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if h.answers.gotReq.VocabID != 5 || h.answers.gotReq.SelectedOptionID != 5 {
		t.Errorf("request = %+v", h.answers.gotReq)
	}
	got := decode[dto.AnswerOutcomeDTO](t, w)
	if !got.Correct || got.Percentage != 100 {
		t.Errorf("outcome = %+v", got)
	}
}

func TestSubmitAnswerRejectsBadBodies(t *testing.T) {
	h := newHarness(t)
	for _, body := range []string{`{`, `{"vocab_id":5}`} {
		w := h.do(http.MethodPost, "/api/v1/test/3/answer", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, w.Code)
		}
	}
}

func TestSubmitAnswerConflict(t *testing.T) {
	h := newHarness(t)
	h.answers.err = fmt.Errorf("record: %w", service.ErrConflict)
	w := h.do(http.MethodPost, "/api/v1/test/3/answer", `{"vocab_id":5,"selected_option_id":6}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetStudentResultsCategoryFilter(t *testing.T) {
	h := newHarness(t)
	h.results.summary = &dto.StudentSummaryDTO{StudentID: 3, TotalTests: 2, CorrectAnswers: 1, IncorrectAnswers: 1, AccuracyPercentage: 50}

	w := h.do(http.MethodGet, "/api/v1/results/student/3", "")
	if w.Code != http.StatusOK || h.results.gotCategory != nil {
		t.Fatalf("status = %d, category = %v", w.Code, h.results.gotCategory)
	}

	w = h.do(http.MethodGet, "/api/v1/results/student/3?category=4", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if h.results.gotCategory == nil || *h.results.gotCategory != 4 {
		t.Errorf("category = %v", h.results.gotCategory)
	}
	if got := decode[dto.StudentSummaryDTO](t, w); got.AccuracyPercentage != 50 {
		t.Errorf("summary = %+v", got)
	}
}

func TestGetClassResultsRequiresCategory(t *testing.T) {
	h := newHarness(t)
	if w := h.do(http.MethodGet, "/api/v1/results/class/2", ""); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}

	h.results.class = []dto.StudentSessionSummaryDTO{{StudentID: 3, StudentName: "Ali"}}
	w := h.do(http.MethodGet, "/api/v1/results/class/2?category=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if rows := decode[[]dto.StudentSessionSummaryDTO](t, w); len(rows) != 1 || rows[0].SessionID != nil {
		t.Errorf("rows = %+v", rows)
	}
}

func TestClearStudentResultsMessage(t *testing.T) {
	tests := []struct {
		deleted int64
		want    string
	}{
		{0, "0 test results cleared."},
		{1, "1 test result cleared."},
		{4, "4 test results cleared."},
	}
	for _, tt := range tests {
		h := newHarness(t)
		h.results.cleared = &dto.ClearResultsDTO{StudentID: 3, DeletedResults: tt.deleted}
		w := h.do(http.MethodDelete, "/api/v1/results/student/3", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		got := decode[dto.ClearResultsDTO](t, w)
		if got.Message != tt.want || got.DeletedResults != tt.deleted {
			t.Errorf("cleared = %+v, want message %q", got, tt.want)
		}
	}
}

func TestRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/student/3", nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
}
