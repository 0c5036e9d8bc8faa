package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/middleware"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
)

// PortalHandler handles learner-facing endpoints (catalog, quiz payloads,
// profile, result history).
type PortalHandler struct {
	courseService  *service.CourseService
	subjectService *service.SubjectService
	quizService    *service.QuizService
	userService    *service.UserService
	resultService  *service.ResultService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(
	courseService *service.CourseService,
	subjectService *service.SubjectService,
	quizService *service.QuizService,
	userService *service.UserService,
	resultService *service.ResultService,
) *PortalHandler {
	return &PortalHandler{
		courseService:  courseService,
		subjectService: subjectService,
		quizService:    quizService,
		userService:    userService,
		resultService:  resultService,
	}
}

// GetMyCourses godoc
// GET /api/v1/learn/courses
// Returns the courses the learner is enrolled in.
func (h *PortalHandler) GetMyCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	courses := profile.Courses
	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetSubjects godoc
// GET /api/v1/learn/courses/:course_id/subjects
// Returns the subjects of an enrolled course.
func (h *PortalHandler) GetSubjects(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	enrolled, err := h.userService.IsEnrolled(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		return
	}

	subjects, err := h.subjectService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// GetQuizzes godoc
// GET /api/v1/learn/subjects/:subject_id/quizzes
// Returns the published quizzes under a subject of an enrolled course.
func (h *PortalHandler) GetQuizzes(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subjectID, err := uuid.Parse(c.Param("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subject, err := h.subjectService.GetByID(c.Request.Context(), subjectID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	enrolled, err := h.userService.IsEnrolled(c.Request.Context(), claims.UserID, subject.CourseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		return
	}

	quizzes, err := h.quizService.ListBySubject(c.Request.Context(), subjectID, model.QuizStatusPublished)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// GetQuizPaper godoc
// GET /api/v1/learn/quizzes/:quiz_id/paper
// Returns the taker payload from Redis (no correct flags). The payload
// lets the frontend render the quiz shell before opening the session stream.
func (h *PortalHandler) GetQuizPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrQuizNotAvailable)
		return
	}

	enrolled, err := h.userService.IsEnrolled(c.Request.Context(), claims.UserID, quiz.CourseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		return
	}

	payload, err := h.quizService.GetQuizPayload(c.Request.Context(), quizID)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotAvailable) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotAvailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, payload)
}

// GetMyProfile godoc
// GET /api/v1/learn/profile
// Returns the learner's profile with enrolled courses.
func (h *PortalHandler) GetMyProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// GetMyResults godoc
// GET /api/v1/learn/results
// Returns the learner's own result history, newest first.
func (h *PortalHandler) GetMyResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	results, pagination, err := h.resultService.ListByUser(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}
