package quiz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vocabtest/internal/auth"
	"github.com/lshigami/vocabtest/internal/controller"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/lshigami/vocabtest/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	questionService service.QuestionService
	answerService   service.AnswerService
	resultsService  service.ResultsService
}

func NewQuizController(qs service.QuestionService, as service.AnswerService, rs service.ResultsService) *QuizController {
	return &QuizController{
		questionService: qs,
		answerService:   as,
		resultsService:  rs,
	}
}

// GetRandomQuestion godoc
// @Summary Get the next question for a student
// @Description Picks a word the student has not answered yet in the category, with two distractors. When every word has been answered the response is {"finished": true}.
// @Tags Test
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Param category query int true "Category ID"
// @Success 200 {object} dto.TestQuestionDTO
// @Success 200 {object} dto.TestFinishedDTO "All questions completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ids or not enough vocabularies"
// @Failure 404 {object} dto.ErrorResponse "Student or category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /test/{student_id}/random [get]
func (c *QuizController) GetRandomQuestion(ctx *gin.Context) {
	studentID, ok := controller.ParamID(ctx, "student_id")
	if !ok {
		return
	}
	categoryID, ok := controller.RequiredQueryID(ctx, "category")
	if !ok {
		return
	}

	selection, err := c.questionService.SelectQuestion(auth.TeacherID(ctx), studentID, categoryID)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", studentID).Uint("categoryID", categoryID).Msg("GetRandomQuestion: service error")
		controller.RespondError(ctx, err)
		return
	}
	if selection.Exhausted {
		ctx.JSON(http.StatusOK, dto.TestFinishedDTO{
			Finished: true,
			Message:  i18n.T(ctx.Request.Context(), "AllQuestionsCompleted"),
		})
		return
	}
	ctx.JSON(http.StatusOK, selection.Question)
}

// SubmitAnswer godoc
// @Summary Submit a student's answer
// @Description Records the answer in the student's session for the word's category and returns the running totals.
// @Tags Test
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Param answer body dto.SubmitAnswerRequest true "Asked word and selected option"
// @Success 201 {object} dto.AnswerOutcomeDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Student or vocabulary not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent session update"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /test/{student_id}/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	studentID, ok := controller.ParamID(ctx, "student_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		controller.RespondBindError(ctx, err)
		return
	}

	outcome, err := c.answerService.SubmitAnswer(auth.TeacherID(ctx), studentID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, outcome)
}

// GetStudentResults godoc
// @Summary Summarize a student's results
// @Description Totals and the individual results, newest first. Optionally limited to one category.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Param category query int false "Category ID"
// @Success 200 {object} dto.StudentSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ids"
// @Failure 404 {object} dto.ErrorResponse "Student or category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/student/{student_id} [get]
func (c *QuizController) GetStudentResults(ctx *gin.Context) {
	studentID, ok := controller.ParamID(ctx, "student_id")
	if !ok {
		return
	}
	categoryID, ok := controller.OptionalQueryID(ctx, "category")
	if !ok {
		return
	}
	summary, err := c.resultsService.SummarizeStudent(auth.TeacherID(ctx), studentID, categoryID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// GetClassResults godoc
// @Summary Summarize a class for one category
// @Description One row per student in the class; students without a session have zero totals.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param class_id path int true "Class ID"
// @Param category query int true "Category ID"
// @Success 200 {array} dto.StudentSessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ids"
// @Failure 404 {object} dto.ErrorResponse "Class or category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/class/{class_id} [get]
func (c *QuizController) GetClassResults(ctx *gin.Context) {
	classID, ok := controller.ParamID(ctx, "class_id")
	if !ok {
		return
	}
	categoryID, ok := controller.RequiredQueryID(ctx, "category")
	if !ok {
		return
	}
	rows, err := c.resultsService.SummarizeClass(auth.TeacherID(ctx), classID, categoryID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// ClearStudentResults godoc
// @Summary Clear a student's results
// @Description Deletes every session and result of the student. Clearing an empty history succeeds with zero counts.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.ClearResultsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/student/{student_id} [delete]
func (c *QuizController) ClearStudentResults(ctx *gin.Context) {
	studentID, ok := controller.ParamID(ctx, "student_id")
	if !ok {
		return
	}
	cleared, err := c.resultsService.ClearResults(auth.TeacherID(ctx), studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	cleared.Message = i18n.Tp(ctx.Request.Context(), "ResultsCleared", cleared.DeletedResults)
	ctx.JSON(http.StatusOK, cleared)
}

// RegisterRoutes mounts the test and results endpoints on an authenticated group.
func (c *QuizController) RegisterRoutes(group *gin.RouterGroup) {
	test := group.Group("/test/:student_id")
	test.GET("/random", c.GetRandomQuestion)
	test.POST("/answer", c.SubmitAnswer)

	results := group.Group("/results")
	results.GET("/student/:student_id", c.GetStudentResults)
	results.DELETE("/student/:student_id", c.ClearStudentResults)
	results.GET("/class/:class_id", c.GetClassResults)
}
