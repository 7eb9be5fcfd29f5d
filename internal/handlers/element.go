package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"risk-assessment/internal/database"
	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

type elementRequest struct {
	ParentID  *string       `json:"parentId"`
	Type      risk.NodeKind `json:"type" binding:"required,oneof=ZONE ASSET"`
	Name      string        `json:"name" binding:"required,max=255"`
	AssetType string        `json:"assetType" binding:"max=100"`
}

// AddElement adds a zone or an asset to the project tree.
func (h *Handler) AddElement(c *gin.Context) {
	p, ok := h.ownedProject(c, c.Param("id"))
	if !ok {
		return
	}
	var req elementRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}

	e := models.Element{
		ProjectID: p.ID,
		ParentID:  req.ParentID,
		Type:      req.Type,
		Name:      req.Name,
	}
	if req.Type == risk.KindAsset {
		e.AssetType = strings.TrimSpace(req.AssetType)
	}
	if err := database.AddElement(c.Request.Context(), h.DB, &e); err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "element", e.ID, "create", fmt.Sprintf("%s %s", e.Type, e.Name))

	c.JSON(http.StatusCreated, e)
}

// DeleteElement removes an element with its whole subtree and risks.
func (h *Handler) DeleteElement(c *gin.Context) {
	p, ok := h.ownedProject(c, c.Param("id"))
	if !ok {
		return
	}
	el, err := database.GetElement(c.Request.Context(), h.DB, c.Param("element_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if el.ProjectID != p.ID {
		h.fail(c, database.ErrNotFound)
		return
	}

	removed, err := database.DeleteElement(c.Request.Context(), h.DB, el.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "element", el.ID, "delete", fmt.Sprintf("%s (%d elements)", el.Name, removed))

	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}
