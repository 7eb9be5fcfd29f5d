// Package handlers is the JSON API over projects, their zone tree and risks,
// plus the printable report.
package handlers

import (
	"time"

	"gorm.io/gorm"

	"risk-assessment/internal/auth"
	"risk-assessment/internal/catalog"
	"risk-assessment/internal/metrics"
	"risk-assessment/internal/report"
)

type Handler struct {
	DB      *gorm.DB
	Auth    *auth.Service
	Catalog *catalog.Catalog
	Metrics *metrics.Metrics
	PDF     report.PDFRenderer // nil disables PDF export
	Now     func() time.Time
}

func New(db *gorm.DB, authSvc *auth.Service, cat *catalog.Catalog, m *metrics.Metrics, pdf report.PDFRenderer) *Handler {
	RegisterValidators()
	return &Handler{
		DB:      db,
		Auth:    authSvc,
		Catalog: cat,
		Metrics: m,
		PDF:     pdf,
		Now:     time.Now,
	}
}
