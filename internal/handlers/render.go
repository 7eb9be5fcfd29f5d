package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"risk-assessment/internal/auth"
	"risk-assessment/internal/database"
	"risk-assessment/internal/logger"
	"risk-assessment/internal/middleware"
	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("riskstatus", func(fl validator.FieldLevel) bool {
			return risk.Status(fl.Field().String()).Valid()
		})
	})
}

// bind decodes the JSON body and answers 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": validationDetails(err)})
		return false
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return out
}

func validCost(d *decimal.Decimal) bool {
	return d == nil || !d.IsNegative()
}

// fail maps an error to its HTTP status.
func (h *Handler) fail(c *gin.Context, err error) {
	var se *risk.StructureError
	switch {
	case errors.As(err, &se):
		h.Metrics.StructureErrors.Inc()
		c.JSON(http.StatusConflict, gin.H{"error": se.Error(), "nodeId": se.NodeID, "path": se.Path})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, database.ErrInvalidParent), errors.Is(err, auth.ErrInvalidEmail):
		badRequest(c, err.Error())
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) audit(c *gin.Context, entity, entityID, action, details string) {
	user, _ := middleware.CurrentUser(c)
	database.CreateAuditLog(c.Request.Context(), h.DB, user.ID, entity, entityID, action, details)
}

// ownedProject loads a project of the current user.
func (h *Handler) ownedProject(c *gin.Context, id string) (models.Project, bool) {
	user, _ := middleware.CurrentUser(c)
	p, err := database.GetProject(c.Request.Context(), h.DB, id, user.Email)
	if err != nil {
		h.fail(c, err)
		return p, false
	}
	return p, true
}

func (h *Handler) ownedElement(c *gin.Context, id string) (models.Element, bool) {
	el, err := database.GetElement(c.Request.Context(), h.DB, id)
	if err != nil {
		h.fail(c, err)
		return el, false
	}
	if _, ok := h.ownedProject(c, el.ProjectID); !ok {
		return el, false
	}
	return el, true
}

func (h *Handler) ownedRisk(c *gin.Context, id string) (models.Risk, bool) {
	r, err := database.GetRisk(c.Request.Context(), h.DB, id)
	if err != nil {
		h.fail(c, err)
		return r, false
	}
	if _, ok := h.ownedProject(c, r.Element.ProjectID); !ok {
		return r, false
	}
	return r, true
}
