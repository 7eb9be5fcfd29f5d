package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"risk-assessment/internal/auth"
	"risk-assessment/internal/database"
	"risk-assessment/internal/logger"
	"risk-assessment/internal/middleware"
)

type loginRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// Login mails a one-time login link.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	if err := h.Auth.RequestLink(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	h.Metrics.LoginLinksIssued.Inc()
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// Callback exchanges a login link for a session.
func (h *Handler) Callback(c *gin.Context) {
	user, err := h.Auth.Verify(c.Request.Context(), c.Query("token"))
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			result = "expired"
		case errors.Is(err, auth.ErrTokenInvalid):
			result = "invalid"
		}
		h.Metrics.Logins.WithLabelValues(result).Inc()
		h.fail(c, err)
		return
	}
	h.Metrics.Logins.WithLabelValues("ok").Inc()

	if err := middleware.Login(c, user); err != nil {
		h.fail(c, err)
		return
	}
	database.CreateAuditLog(c.Request.Context(), h.DB, user.ID, "user", "", "login", user.Email)
	logger.FromContext(c).Info("user logged in", zap.Uint("user_id", user.ID))

	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	active, _ := middleware.ActiveProject(c)
	c.JSON(http.StatusOK, gin.H{
		"email":           user.Email,
		"lastLoginAt":     user.LastLoginAt,
		"activeProjectId": active,
	})
}
