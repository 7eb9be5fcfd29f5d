package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"risk-assessment/internal/logger"
	"risk-assessment/internal/models"
	"risk-assessment/internal/report"
)

func (h *Handler) renderReport(c *gin.Context) (models.Project, []byte, bool) {
	p, s, ok := h.site(c)
	if !ok {
		return p, nil, false
	}
	doc, err := report.Build(s, h.Now())
	if err != nil {
		h.fail(c, err)
		return p, nil, false
	}
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, doc); err != nil {
		h.fail(c, err)
		return p, nil, false
	}
	return p, buf.Bytes(), true
}

// Report serves the printable HTML report.
func (h *Handler) Report(c *gin.Context) {
	_, html, ok := h.renderReport(c)
	if !ok {
		return
	}
	h.Metrics.ReportsRendered.WithLabelValues("html").Inc()
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *Handler) ReportPDF(c *gin.Context) {
	if h.PDF == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pdf export is not configured"})
		return
	}
	p, html, ok := h.renderReport(c)
	if !ok {
		return
	}

	pdf, err := h.PDF.RenderPDF(c.Request.Context(), html)
	if err != nil {
		logger.FromContext(c).Error("pdf rendering failed", zap.String("project_id", p.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "pdf rendering failed"})
		return
	}
	h.Metrics.ReportsRendered.WithLabelValues("pdf").Inc()
	h.audit(c, "project", p.ID, "export", "pdf report")

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reportFilename(p.Name)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type feedbackRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// Feedback stores the user's comment left while exporting a report.
func (h *Handler) Feedback(c *gin.Context) {
	p, ok := h.ownedProject(c, c.Param("id"))
	if !ok {
		return
	}
	var req feedbackRequest
	if !bind(c, &req) {
		return
	}
	h.audit(c, "project", p.ID, "feedback", strings.TrimSpace(req.Message))
	c.Status(http.StatusNoContent)
}

func reportFilename(name string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "progetto"
	}
	return "Report_" + clean + ".pdf"
}
