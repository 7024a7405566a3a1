package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusq/survey-backend/internal/config"
	"github.com/campusq/survey-backend/internal/handler"
	"github.com/campusq/survey-backend/internal/middleware"
	"github.com/campusq/survey-backend/internal/response"
	"github.com/campusq/survey-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Respondent  *handler.RespondentHandler
	Survey      *handler.SurveyHandler
	Statistics  *handler.StatisticsHandler
	StudentMgmt *handler.StudentManagementHandler
	Department  *handler.DepartmentHandler
	AdminUser   *handler.AdminUserHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
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

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.StudentMe)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.AdminMe)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/lobby", handlers.Respondent.GetLobby)

		// The paper is immutable while published, so let clients cache it briefly.
		studentAPI.GET("/surveys/:survey_id/paper", middleware.CacheControl(60), handlers.Respondent.GetSurveyPaper)

		studentAPI.POST("/surveys/:survey_id/session", handlers.Respondent.StartSession)
		studentAPI.GET("/surveys/:survey_id/session", handlers.Respondent.GetSession)
		studentAPI.DELETE("/surveys/:survey_id/session", handlers.Respondent.AbandonSession)
		studentAPI.PUT("/surveys/:survey_id/session/answer", handlers.Respondent.SetAnswer)
		studentAPI.POST("/surveys/:survey_id/session/next", handlers.Respondent.NextQuestion)
		studentAPI.POST("/surveys/:survey_id/session/previous", handlers.Respondent.PreviousQuestion)
		studentAPI.POST("/surveys/:survey_id/session/submit", handlers.Respondent.SubmitSession)
	}

	// ─── 3. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/surveys/:survey_id/results", handlers.WS.SurveyResultsStream)
	}

	// ─── 4. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Survey management (ownership enforced in the service layer)
		adminAPI.GET("/surveys", handlers.Survey.ListSurveys)
		adminAPI.POST("/surveys", handlers.Survey.CreateSurvey)
		adminAPI.GET("/surveys/:survey_id", handlers.Survey.GetSurvey)
		adminAPI.PUT("/surveys/:survey_id", handlers.Survey.UpdateSurvey)
		adminAPI.DELETE("/surveys/:survey_id", handlers.Survey.DeleteSurvey)
		adminAPI.GET("/surveys/:survey_id/questions", handlers.Survey.GetQuestions)
		adminAPI.PUT("/surveys/:survey_id/questions", handlers.Survey.SetQuestions)
		adminAPI.POST("/surveys/:survey_id/publish", handlers.Survey.PublishSurvey)
		adminAPI.POST("/surveys/:survey_id/close", handlers.Survey.CloseSurvey)
		adminAPI.GET("/surveys/:survey_id/statistics", handlers.Statistics.GetSurveyStatistics)

		// Department management
		adminAPI.GET("/departments", handlers.Department.ListDepartments)
		adminAPI.POST("/departments", middleware.RequireSuperAdmin(), handlers.Department.CreateDepartment)
		adminAPI.PUT("/departments/:department_id", middleware.RequireSuperAdmin(), handlers.Department.UpdateDepartment)
		adminAPI.DELETE("/departments/:department_id", middleware.RequireSuperAdmin(), handlers.Department.DeleteDepartment)

		// Student management (superadmin only)
		adminAPI.GET("/students", middleware.RequireSuperAdmin(), handlers.StudentMgmt.ListStudents)
		adminAPI.POST("/students", middleware.RequireSuperAdmin(), handlers.StudentMgmt.CreateStudent)
		adminAPI.PUT("/students/:student_id", middleware.RequireSuperAdmin(), handlers.StudentMgmt.UpdateStudent)
		adminAPI.DELETE("/students/:student_id", middleware.RequireSuperAdmin(), handlers.StudentMgmt.DeleteStudent)
		adminAPI.POST("/students/:student_id/reset-login", middleware.RequireSuperAdmin(), handlers.StudentMgmt.ResetStudentLogin)

		// Admin user management (superadmin only)
		adminAPI.GET("/users", middleware.RequireSuperAdmin(), handlers.AdminUser.ListAdmins)
		adminAPI.POST("/users", middleware.RequireSuperAdmin(), handlers.AdminUser.CreateAdmin)
		adminAPI.DELETE("/users/:admin_id", middleware.RequireSuperAdmin(), handlers.AdminUser.DeleteAdmin)
	}

	return router
}
