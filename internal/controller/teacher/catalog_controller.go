package teacher

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vocabtest/internal/auth"
	"github.com/lshigami/vocabtest/internal/controller"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController manages the teacher-owned classes, students, categories and vocabularies.
type CatalogController struct {
	classroomService  service.ClassroomService
	vocabularyService service.VocabularyService
}

func NewCatalogController(cs service.ClassroomService, vs service.VocabularyService) *CatalogController {
	return &CatalogController{
		classroomService:  cs,
		vocabularyService: vs,
	}
}

// GetProfile godoc
// @Summary Current teacher identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.IdentityResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (c *CatalogController) GetProfile(ctx *gin.Context) {
	claims := auth.ClaimsFrom(ctx)
	resp := dto.IdentityResponse{TeacherID: auth.TeacherID(ctx)}
	if claims != nil {
		resp.Name = claims.Name
		resp.Role = claims.Role
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateClassroom godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param class body dto.CreateClassroomRequest true "Class"
// @Success 201 {object} dto.ClassroomResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *CatalogController) CreateClassroom(ctx *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateClassroom: failed to bind JSON")
		controller.RespondBindError(ctx, err)
		return
	}
	classroom, err := c.classroomService.CreateClassroom(auth.TeacherID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, classroom)
}

// ListClassrooms godoc
// @Summary List the teacher's classes
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClassroomResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *CatalogController) ListClassrooms(ctx *gin.Context) {
	classrooms, err := c.classroomService.ListClassrooms(auth.TeacherID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classrooms)
}

// GetClassroom godoc
// @Summary Get a class with its students
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param class_id path int true "Class ID"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{class_id} [get]
func (c *CatalogController) GetClassroom(ctx *gin.Context) {
	classID, ok := controller.ParamID(ctx, "class_id")
	if !ok {
		return
	}
	classroom, err := c.classroomService.GetClassroom(auth.TeacherID(ctx), classID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classroom)
}

// DeleteClassroom godoc
// @Summary Delete a class
// @Description Removes the class together with its students and their test history.
// @Tags Classes
// @Security BearerAuth
// @Param class_id path int true "Class ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid Class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{class_id} [delete]
func (c *CatalogController) DeleteClassroom(ctx *gin.Context) {
	classID, ok := controller.ParamID(ctx, "class_id")
	if !ok {
		return
	}
	if err := c.classroomService.DeleteClassroom(auth.TeacherID(ctx), classID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateStudent godoc
// @Summary Add a student to a class
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /students [post]
func (c *CatalogController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateStudent: failed to bind JSON")
		controller.RespondBindError(ctx, err)
		return
	}
	student, err := c.classroomService.CreateStudent(auth.TeacherID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param class query int false "Class ID"
// @Success 200 {array} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Class ID"
// @Router /students [get]
func (c *CatalogController) ListStudents(ctx *gin.Context) {
	classID, ok := controller.OptionalQueryID(ctx, "class")
	if !ok {
		return
	}
	students, err := c.classroomService.ListStudents(auth.TeacherID(ctx), classID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// DeleteStudent godoc
// @Summary Delete a student
// @Tags Students
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{student_id} [delete]
func (c *CatalogController) DeleteStudent(ctx *gin.Context) {
	studentID, ok := controller.ParamID(ctx, "student_id")
	if !ok {
		return
	}
	if err := c.classroomService.DeleteStudent(auth.TeacherID(ctx), studentID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Category name already used"
// @Router /categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	category, err := c.vocabularyService.CreateCategory(auth.TeacherID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// ListCategories godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.vocabularyService.ListCategories(auth.TeacherID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// CreateVocabulary godoc
// @Summary Add a word to a category
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vocabulary body dto.CreateVocabularyRequest true "Vocabulary"
// @Success 201 {object} dto.VocabularyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /vocabularies [post]
func (c *CatalogController) CreateVocabulary(ctx *gin.Context) {
	var req dto.CreateVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	vocab, err := c.vocabularyService.CreateVocabulary(auth.TeacherID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, vocab)
}

// BulkCreateVocabularies godoc
// @Summary Add many words to a category
// @Description All items are stored in one transaction; nothing is stored when one fails.
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vocabularies body dto.BulkCreateVocabularyRequest true "Vocabularies"
// @Success 201 {array} dto.VocabularyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /vocabularies/bulk [post]
func (c *CatalogController) BulkCreateVocabularies(ctx *gin.Context) {
	var req dto.BulkCreateVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("BulkCreateVocabularies: failed to bind JSON")
		controller.RespondBindError(ctx, err)
		return
	}
	vocabs, err := c.vocabularyService.BulkCreateVocabularies(auth.TeacherID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, vocabs)
}

// ListVocabularies godoc
// @Summary List vocabularies
// @Tags Vocabularies
// @Produce json
// @Security BearerAuth
// @Param category query int false "Category ID"
// @Success 200 {array} dto.VocabularyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Category ID"
// @Router /vocabularies [get]
func (c *CatalogController) ListVocabularies(ctx *gin.Context) {
	categoryID, ok := controller.OptionalQueryID(ctx, "category")
	if !ok {
		return
	}
	vocabs, err := c.vocabularyService.ListVocabularies(auth.TeacherID(ctx), categoryID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocabs)
}

// DeleteVocabulary godoc
// @Summary Delete a vocabulary
// @Tags Vocabularies
// @Security BearerAuth
// @Param vocab_id path int true "Vocabulary ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Vocabulary not found"
// @Router /vocabularies/{vocab_id} [delete]
func (c *CatalogController) DeleteVocabulary(ctx *gin.Context) {
	vocabID, ok := controller.ParamID(ctx, "vocab_id")
	if !ok {
		return
	}
	if err := c.vocabularyService.DeleteVocabulary(auth.TeacherID(ctx), vocabID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *CatalogController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/auth/me", c.GetProfile)

	classes := group.Group("/classes")
	classes.POST("", c.CreateClassroom)
	classes.GET("", c.ListClassrooms)
	classes.GET("/:class_id", c.GetClassroom)
	classes.DELETE("/:class_id", c.DeleteClassroom)

	students := group.Group("/students")
	students.POST("", c.CreateStudent)
	students.GET("", c.ListStudents)
	students.DELETE("/:student_id", c.DeleteStudent)

	categories := group.Group("/categories")
	categories.POST("", c.CreateCategory)
	categories.GET("", c.ListCategories)

	vocabs := group.Group("/vocabularies")
	vocabs.POST("", c.CreateVocabulary)
	vocabs.POST("/bulk", c.BulkCreateVocabularies)
	vocabs.GET("", c.ListVocabularies)
	vocabs.DELETE("/:vocab_id", c.DeleteVocabulary)
}
