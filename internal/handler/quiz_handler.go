package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
	"github.com/kryptaroid/lms-career-shiksha/internal/validator"
)

// QuizHandler handles admin quiz management endpoints.
type QuizHandler struct {
	quizService     *service.QuizService
	questionService *service.QuestionService
	resultService   *service.ResultService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(
	quizService *service.QuizService,
	questionService *service.QuestionService,
	resultService *service.ResultService,
) *QuizHandler {
	return &QuizHandler{
		quizService:     quizService,
		questionService: questionService,
		resultService:   resultService,
	}
}

// List godoc
// GET /api/v1/admin/quizzes
func (h *QuizHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	quizzes, pagination, err := h.quizService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"quizzes": quizzes}, pagination)
}

// Get godoc
// GET /api/v1/admin/quizzes/:quiz_id
func (h *QuizHandler) Get(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	questions, err := h.questionService.ListByQuiz(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz, "questions": questions})
}

// Create godoc
// POST /api/v1/admin/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz := &model.Quiz{
		Title:            req.Title,
		CourseID:         req.CourseID,
		SubjectID:        req.SubjectID,
		TotalTimeMinutes: req.TotalTimeMinutes,
		NegativeMarking:  req.NegativeMarking,
	}
	if err := h.quizService.Create(c.Request.Context(), quiz); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// Update godoc
// PUT /api/v1/admin/quizzes/:quiz_id
func (h *QuizHandler) Update(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.TotalTimeMinutes > 0 {
		quiz.TotalTimeMinutes = req.TotalTimeMinutes
	}
	if req.NegativeMarking != nil {
		quiz.NegativeMarking = *req.NegativeMarking
	}

	if err := h.quizService.Update(c.Request.Context(), quiz); err != nil {
		if errors.Is(err, service.ErrQuizNotDraft) {
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Delete godoc
// DELETE /api/v1/admin/quizzes/:quiz_id
func (h *QuizHandler) Delete(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), quizID); err != nil {
		if errors.Is(err, service.ErrQuizNotDraft) {
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Publish godoc
// POST /api/v1/admin/quizzes/:quiz_id/publish
// Moves the quiz to PUBLISHED and warms the Redis fast lane.
func (h *QuizHandler) Publish(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.Publish(c.Request.Context(), quizID); err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotDraft):
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "published"})
}

// Archive godoc
// POST /api/v1/admin/quizzes/:quiz_id/archive
func (h *QuizHandler) Archive(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.Archive(c.Request.Context(), quizID); err != nil {
		if errors.Is(err, service.ErrQuizNotPublished) {
			response.Fail(c, http.StatusConflict, response.ErrQuizNotPublished)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "archived"})
}

// RefreshCache godoc
// POST /api/v1/admin/quizzes/:quiz_id/refresh-cache
// Re-warms the Redis payload and definition after question edits.
func (h *QuizHandler) RefreshCache(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.RefreshCache(c.Request.Context(), quizID); err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotPublished):
			response.Fail(c, http.StatusConflict, response.ErrQuizNotPublished)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "refreshed"})
}

// ListResults godoc
// GET /api/v1/admin/quizzes/:quiz_id/results
func (h *QuizHandler) ListResults(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	results, pagination, err := h.resultService.ListByQuiz(c.Request.Context(), quizID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}
