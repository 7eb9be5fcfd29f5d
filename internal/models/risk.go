package models

import (
	"time"

	"github.com/shopspring/decimal"

	"risk-assessment/internal/risk"
)

type Risk struct {
	Base
	ElementID   string      `gorm:"type:varchar(36);not null;index" json:"elementId"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Category    string      `gorm:"size:100" json:"category"`
	Probability int         `gorm:"not null" json:"probability"`
	Severity    int         `gorm:"not null" json:"severity"`
	Status      risk.Status `gorm:"type:varchar(20);not null" json:"status"`

	EstimatedCost  decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"estimatedCost"`
	Notes          string              `gorm:"type:text" json:"notes"`
	DateIdentified *time.Time          `json:"dateIdentified"`

	Element Element `json:"-"`
}

// Factor converts the row into the tree value used by statistics and reports.
func (r Risk) Factor() risk.RiskFactor {
	f := risk.RiskFactor{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Probability:    r.Probability,
		Severity:       r.Severity,
		Status:         r.Status,
		Notes:          r.Notes,
		DateIdentified: r.DateIdentified,
	}
	if r.EstimatedCost.Valid {
		c := r.EstimatedCost.Decimal
		f.EstimatedCost = &c
	}
	return f
}
