package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vinni986/AI-interview-platform/internal/infrastructure/http/middleware"
	"github.com/Vinni986/AI-interview-platform/internal/usecase/auth"
	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	authService      *auth.Service
	authHandler      *Auth
	interviewHandler *Interview
	dashboardHandler *Dashboard
	applyHandler     *Apply
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authService *auth.Service, authHandler *Auth, interviewHandler *Interview, dashboardHandler *Dashboard, applyHandler *Apply) *Router {
	return &Router{
		cfg:              cfg,
		authService:      authService,
		authHandler:      authHandler,
		interviewHandler: interviewHandler,
		dashboardHandler: dashboardHandler,
		applyHandler:     applyHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupInterviewRoutes(v1)
	rt.setupApplicationRoutes(v1)
	rt.setupDashboardRoutes(v1)
}

// setupAuthRoutes configures HR authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/signup", rt.authHandler.Signup)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.POST("/logout-all", rt.authHandler.LogoutAll, middleware.EchoAuth(rt.authService))
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.authService))
}

// setupInterviewRoutes configures the candidate-facing routes. They are
// public: the (eventId, email) pair from the invite link is the credential.
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	iv := g.Group("/interview")

	iv.GET("/session", rt.interviewHandler.GetSession)
	iv.GET("/session/watch", rt.interviewHandler.WatchSession)

	iv.POST("/live", rt.interviewHandler.StartLive)
	iv.GET("/live/:id", rt.interviewHandler.GetLive)
	iv.GET("/live/:id/transcript", rt.interviewHandler.GetTranscript)
	iv.POST("/live/:id/end", rt.interviewHandler.EndLive)
	iv.POST("/live/:id/complete", rt.interviewHandler.CompleteLive)
}

// setupApplicationRoutes configures submission routes. The candidate form
// is public; the job-posting form is HR-only.
func (rt *Router) setupApplicationRoutes(g *echo.Group) {
	g.POST("/applications", rt.applyHandler.SubmitApplication)
	g.POST("/postings", rt.applyHandler.SubmitPosting, middleware.EchoAuth(rt.authService))
}

// setupDashboardRoutes configures the protected HR data views
func (rt *Router) setupDashboardRoutes(g *echo.Group) {
	dash := g.Group("/dashboard", middleware.EchoAuth(rt.authService))

	dash.GET("/overview", rt.dashboardHandler.Overview)
	dash.GET("/results", rt.dashboardHandler.Results)
	dash.GET("/results.csv", rt.dashboardHandler.ResultsCSV)
	dash.GET("/emails", rt.dashboardHandler.Emails)
	dash.GET("/cvs", rt.dashboardHandler.ArchivedCVs)
	dash.GET("/questions", rt.dashboardHandler.Questions)
	dash.POST("/questions", rt.dashboardHandler.AddQuestion)
	dash.PUT("/questions", rt.dashboardHandler.UpdateQuestion)
	dash.POST("/evaluate", rt.dashboardHandler.Evaluate)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
