package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"risk-assessment/internal/config"
	"risk-assessment/internal/handlers"
	"risk-assessment/internal/logger"
	"risk-assessment/internal/middleware"
)

const sessionName = "ra_session"

func NewRouter(cfg *config.Config, h *handlers.Handler, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(logger.Recovery(log))
	r.Use(h.Metrics.GinMiddleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectUser(h.DB))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	// AUTH
	r.POST("/auth/login", h.Login)
	r.GET("/auth/callback", h.Callback)
	r.POST("/auth/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/me", h.Me)

	// PROJECTS
	auth.GET("/projects", h.ListProjects)
	auth.POST("/projects", h.CreateProject)
	auth.GET("/projects/active", h.ActiveProject)
	auth.POST("/projects/:id/activate", h.ActivateProject)

	auth.GET("/projects/:id/tree", h.Tree)
	auth.GET("/projects/:id/stats", h.Stats)
	auth.GET("/projects/:id/nodes/:node_id/stats", h.NodeStats)
	auth.GET("/projects/:id/rows", h.Rows)
	auth.GET("/projects/:id/report", h.Report)
	auth.GET("/projects/:id/report.pdf", h.ReportPDF)
	auth.POST("/projects/:id/feedback", h.Feedback)

	// TREE
	auth.POST("/projects/:id/elements", h.AddElement)
	auth.DELETE("/projects/:id/elements/:element_id", h.DeleteElement)

	// RISKS
	auth.POST("/elements/:element_id/risks", h.AddRisk)
	auth.POST("/elements/:element_id/risks/from-catalog", h.AddRiskFromCatalog)
	auth.PATCH("/risks/:risk_id", h.UpdateRisk)
	auth.DELETE("/risks/:risk_id", h.DeleteRisk)

	auth.GET("/catalog", h.ListCatalog)
	auth.GET("/audit", h.ListAuditLogs)

	return r
}
