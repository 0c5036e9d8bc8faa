package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/handler"
	"github.com/kryptaroid/lms-career-shiksha/internal/middleware"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Portal   *handler.PortalHandler
	Quiz     *handler.QuizHandler
	Question *handler.QuestionHandler
	Course   *handler.CourseHandler
	Subject  *handler.SubjectHandler
	UserMgmt *handler.UserManagementHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	manager *service.SessionManager,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded question images statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(365 * 24 * time.Hour))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":        "ok",
			"live_sessions": manager.Count(),
		})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAnyJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAnyJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Learner Group (JWT + Single Device) ────────────────────────
	learnAPI := router.Group("/api/v1/learn")
	learnAPI.Use(
		middleware.RequireLearnerJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		learnAPI.GET("/courses", handlers.Portal.GetMyCourses)
		learnAPI.GET("/courses/:course_id/subjects", handlers.Portal.GetSubjects)
		learnAPI.GET("/subjects/:subject_id/quizzes", handlers.Portal.GetQuizzes)
		learnAPI.GET("/quizzes/:quiz_id/paper", handlers.Portal.GetQuizPaper)
		learnAPI.GET("/profile", handlers.Portal.GetMyProfile)
		learnAPI.GET("/results", handlers.Portal.GetMyResults)
	}

	// ─── 3. WebSocket Group (Learner WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireLearnerWSAuth(authService))
	{
		ws.GET("/learn/quizzes/:quiz_id/session", handlers.WS.QuizSessionStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Course management
		adminAPI.GET("/courses", handlers.Course.List)
		adminAPI.POST("/courses", handlers.Course.Create)
		adminAPI.PUT("/courses/:course_id", handlers.Course.Update)
		adminAPI.DELETE("/courses/:course_id", handlers.Course.Delete)
		adminAPI.GET("/courses/:course_id/subjects", handlers.Subject.ListByCourse)

		// Subject management
		adminAPI.POST("/subjects", handlers.Subject.Create)
		adminAPI.PUT("/subjects/:subject_id", handlers.Subject.Update)
		adminAPI.DELETE("/subjects/:subject_id", handlers.Subject.Delete)

		// Account management and enrolments
		adminAPI.GET("/users", handlers.UserMgmt.List)
		adminAPI.GET("/users/:user_id", handlers.UserMgmt.Get)
		adminAPI.POST("/users", handlers.UserMgmt.Create)
		adminAPI.PUT("/users/:user_id", handlers.UserMgmt.Update)
		adminAPI.DELETE("/users/:user_id", handlers.UserMgmt.Delete)
		adminAPI.POST("/users/:user_id/enrolments", handlers.UserMgmt.Enrol)

		// Quiz lifecycle
		adminAPI.GET("/quizzes", handlers.Quiz.List)
		adminAPI.GET("/quizzes/:quiz_id", handlers.Quiz.Get)
		adminAPI.POST("/quizzes", handlers.Quiz.Create)
		adminAPI.PUT("/quizzes/:quiz_id", handlers.Quiz.Update)
		adminAPI.DELETE("/quizzes/:quiz_id", handlers.Quiz.Delete)
		adminAPI.POST("/quizzes/:quiz_id/publish", handlers.Quiz.Publish)
		adminAPI.POST("/quizzes/:quiz_id/archive", handlers.Quiz.Archive)
		adminAPI.POST("/quizzes/:quiz_id/refresh-cache", handlers.Quiz.RefreshCache)
		adminAPI.GET("/quizzes/:quiz_id/results", handlers.Quiz.ListResults)

		// Question management
		adminAPI.POST("/quizzes/:quiz_id/questions", handlers.Question.Add)
		adminAPI.PUT("/quizzes/:quiz_id/questions", handlers.Question.ReplaceAll)
		adminAPI.DELETE("/quizzes/:quiz_id/questions/:question_id", handlers.Question.Delete)
	}

	return router
}
