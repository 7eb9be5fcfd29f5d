package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"risk-assessment/internal/database"
	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

type riskRequest struct {
	Name           string           `json:"name" binding:"required,max=255"`
	Description    string           `json:"description"`
	Category       string           `json:"category" binding:"max=100"`
	Probability    int              `json:"probability" binding:"required,min=1,max=5"`
	Severity       int              `json:"severity" binding:"required,min=1,max=5"`
	Status         risk.Status      `json:"status" binding:"omitempty,riskstatus"`
	EstimatedCost  *decimal.Decimal `json:"estimatedCost"`
	Notes          string           `json:"notes"`
	DateIdentified *time.Time       `json:"dateIdentified"`
}

func (h *Handler) AddRisk(c *gin.Context) {
	el, ok := h.ownedElement(c, c.Param("element_id"))
	if !ok {
		return
	}
	var req riskRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}
	if !validCost(req.EstimatedCost) {
		badRequest(c, "estimatedCost cannot be negative")
		return
	}

	r := models.Risk{
		ElementID:      el.ID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       strings.TrimSpace(req.Category),
		Probability:    req.Probability,
		Severity:       req.Severity,
		Status:         req.Status,
		Notes:          req.Notes,
		DateIdentified: req.DateIdentified,
	}
	if req.EstimatedCost != nil {
		r.EstimatedCost = decimal.NewNullDecimal(*req.EstimatedCost)
	}
	h.createRisk(c, &r)
}

type catalogRiskRequest struct {
	CatalogID   string `json:"catalogId" binding:"required"`
	Probability *int   `json:"probability" binding:"omitempty,min=1,max=5"`
}

// AddRiskFromCatalog copies a standard risk onto an asset.
func (h *Handler) AddRiskFromCatalog(c *gin.Context) {
	el, ok := h.ownedElement(c, c.Param("element_id"))
	if !ok {
		return
	}
	var req catalogRiskRequest
	if !bind(c, &req) {
		return
	}
	std, found := h.Catalog.Get(req.CatalogID)
	if !found {
		badRequest(c, fmt.Sprintf("unknown catalog risk %q", req.CatalogID))
		return
	}

	f := std.Factor()
	if req.Probability != nil {
		f.Probability = *req.Probability
	}
	today := h.Now().UTC().Truncate(24 * time.Hour)
	r := models.Risk{
		ElementID:      el.ID,
		Name:           f.Name,
		Description:    f.Description,
		Category:       f.Category,
		Probability:    f.Probability,
		Severity:       f.Severity,
		Status:         f.Status,
		DateIdentified: &today,
	}
	h.createRisk(c, &r)
}

func (h *Handler) createRisk(c *gin.Context, r *models.Risk) {
	if err := database.AddRisk(c.Request.Context(), h.DB, r); err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "risk", r.ID, "create", fmt.Sprintf("%s (score %d)", r.Name, r.Factor().Score()))
	c.JSON(http.StatusCreated, r)
}

type riskPatch struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	Probability    *int             `json:"probability" binding:"omitempty,min=1,max=5"`
	Severity       *int             `json:"severity" binding:"omitempty,min=1,max=5"`
	Status         *risk.Status     `json:"status" binding:"omitempty,riskstatus"`
	EstimatedCost  *decimal.Decimal `json:"estimatedCost"`
	ClearCost      bool             `json:"clearCost"`
	Notes          *string          `json:"notes"`
	DateIdentified *time.Time       `json:"dateIdentified"`
}

func (h *Handler) UpdateRisk(c *gin.Context) {
	existing, ok := h.ownedRisk(c, c.Param("risk_id"))
	if !ok {
		return
	}
	var req riskPatch
	if !bind(c, &req) {
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		badRequest(c, "name cannot be blank")
		return
	}
	if !validCost(req.EstimatedCost) {
		badRequest(c, "estimatedCost cannot be negative")
		return
	}

	updated, err := database.UpdateRisk(c.Request.Context(), h.DB, existing.ID, database.RiskUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Probability:    req.Probability,
		Severity:       req.Severity,
		Status:         req.Status,
		EstimatedCost:  req.EstimatedCost,
		ClearCost:      req.ClearCost,
		Notes:          req.Notes,
		DateIdentified: req.DateIdentified,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "risk", updated.ID, "update", fmt.Sprintf("%s status=%s score=%d", updated.Name, updated.Status, updated.Factor().Score()))

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteRisk(c *gin.Context) {
	r, ok := h.ownedRisk(c, c.Param("risk_id"))
	if !ok {
		return
	}
	if err := database.DeleteRisk(c.Request.Context(), h.DB, r.ID); err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "risk", r.ID, "delete", r.Name)
	c.Status(http.StatusNoContent)
}
