// Package risk holds the site tree (zones, assets, risk factors) and the two
// read-only walks over it: statistics aggregation and report flattening.
package risk

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// GenericCategory is used for risk factors without a category.
const GenericCategory = "Generico"

// RiskFactor is a single hazard found on an asset.
type RiskFactor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Probability int    `json:"probability"`
	Severity    int    `json:"severity"`
	Category    string `json:"category,omitempty"`
	Status      Status `json:"status"`

	EstimatedCost  *decimal.Decimal `json:"estimatedCost,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	DateIdentified *time.Time       `json:"dateIdentified,omitempty"`
}

// Score is probability × severity. It is never stored.
func (r RiskFactor) Score() int {
	return r.Probability * r.Severity
}

// CategoryLabel returns the category, or GenericCategory when it is blank.
func (r RiskFactor) CategoryLabel() string {
	if r.Category == "" {
		return GenericCategory
	}
	return r.Category
}

// Cost returns the estimated remediation cost, zero when unknown.
func (r RiskFactor) Cost() decimal.Decimal {
	if r.EstimatedCost == nil {
		return decimal.Zero
	}
	return *r.EstimatedCost
}

type Asset struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Type  string       `json:"type"`
	Risks []RiskFactor `json:"risks"`
}

// Zone is a structural container: a building, a floor, a room.
// It owns its assets and sub-zones.
type Zone struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Assets   []Asset `json:"assets"`
	SubZones []*Zone `json:"subZones"`
}

// Site is one assessed location (a project).
type Site struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	ClientName string `json:"clientName"`
	RootZones  []Zone `json:"rootZones"`
}
