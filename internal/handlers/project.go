package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"risk-assessment/internal/database"
	"risk-assessment/internal/middleware"
	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

func (h *Handler) ListProjects(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	projects, err := database.ListProjects(c.Request.Context(), h.DB, user.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type projectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"max=255"`
	ClientName  string `json:"clientName" binding:"max=255"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}

	user, _ := middleware.CurrentUser(c)
	p := models.Project{
		OwnerEmail:  user.Email,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		ClientName:  req.ClientName,
	}
	if err := database.CreateProject(c.Request.Context(), h.DB, &p); err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "project", p.ID, "create", p.Name)

	c.JSON(http.StatusCreated, p)
}

// ActivateProject remembers the project as the session's working project.
func (h *Handler) ActivateProject(c *gin.Context) {
	p, ok := h.ownedProject(c, c.Param("id"))
	if !ok {
		return
	}
	if err := middleware.SetActiveProject(c, p.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ActiveProject(c *gin.Context) {
	id, ok := middleware.ActiveProject(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active project"})
		return
	}
	p, ok := h.ownedProject(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// site loads the project named by :id and rebuilds its zone tree.
func (h *Handler) site(c *gin.Context) (models.Project, risk.Site, bool) {
	p, ok := h.ownedProject(c, c.Param("id"))
	if !ok {
		return p, risk.Site{}, false
	}
	s, err := database.LoadSite(c.Request.Context(), h.DB, p)
	if err != nil {
		h.fail(c, err)
		return p, s, false
	}
	return p, s, true
}

func (h *Handler) Tree(c *gin.Context) {
	_, s, ok := h.site(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Stats(c *gin.Context) {
	_, s, ok := h.site(c)
	if !ok {
		return
	}
	stats, err := risk.SiteStats(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Metrics.StatsComputed.Inc()
	c.JSON(http.StatusOK, stats)
}

// NodeStats returns the partial statistics of one zone or asset.
func (h *Handler) NodeStats(c *gin.Context) {
	_, s, ok := h.site(c)
	if !ok {
		return
	}
	node, found := s.Find(c.Param("node_id"))
	if !found {
		h.fail(c, database.ErrNotFound)
		return
	}

	var stats risk.Stats
	switch node.Kind {
	case risk.KindZone:
		var err error
		if stats, err = risk.ZoneStats(node.Zone); err != nil {
			h.fail(c, err)
			return
		}
	case risk.KindAsset:
		stats = risk.AssetStats(*node.Asset)
	}
	h.Metrics.StatsComputed.Inc()

	c.JSON(http.StatusOK, gin.H{
		"kind":  node.Kind,
		"id":    node.ID(),
		"name":  node.Name(),
		"stats": stats,
	})
}

func (h *Handler) Rows(c *gin.Context) {
	_, s, ok := h.site(c)
	if !ok {
		return
	}
	rows, err := risk.Flatten(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rows == nil {
		rows = []risk.Row{}
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "summary": risk.Summarize(rows)})
}
