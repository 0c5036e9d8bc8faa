package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
	"github.com/kryptaroid/lms-career-shiksha/internal/validator"
)

// QuestionHandler handles admin question management endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Add godoc
// POST /api/v1/admin/quizzes/:quiz_id/questions
func (h *QuestionHandler) Add(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Add(c.Request.Context(), quizID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotDraft):
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
		case errors.Is(err, service.ErrNoCorrectOption):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"options": "at least one option must be marked correct"})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ReplaceAll godoc
// PUT /api/v1/admin/quizzes/:quiz_id/questions
func (h *QuestionHandler) ReplaceAll(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.questionService.ReplaceAll(c.Request.Context(), quizID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotDraft):
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
		case errors.Is(err, service.ErrNoCorrectOption):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"options": "at least one option must be marked correct"})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Delete godoc
// DELETE /api/v1/admin/quizzes/:quiz_id/questions/:question_id
func (h *QuestionHandler) Delete(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), quizID, questionID); err != nil {
		if errors.Is(err, service.ErrQuizNotDraft) {
			response.Fail(c, http.StatusConflict, response.ErrQuizNotDraft)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
