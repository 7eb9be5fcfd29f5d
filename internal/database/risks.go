package database

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

func GetRisk(ctx context.Context, db *gorm.DB, id string) (models.Risk, error) {
	var r models.Risk
	err := db.WithContext(ctx).Preload("Element").Where("id = ?", id).First(&r).Error
	return r, notFound(err)
}

// AddRisk attaches a risk factor to an asset.
func AddRisk(ctx context.Context, db *gorm.DB, r *models.Risk) error {
	el, err := GetElement(ctx, db, r.ElementID)
	if err != nil {
		return err
	}
	if el.Type != risk.KindAsset {
		return ErrInvalidParent
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Status == "" {
		r.Status = risk.StatusOpen
	}
	return db.WithContext(ctx).Create(r).Error
}

// RiskUpdate is a partial update: nil fields are left untouched.
type RiskUpdate struct {
	Name           *string
	Description    *string
	Category       *string
	Probability    *int
	Severity       *int
	Status         *risk.Status
	EstimatedCost  *decimal.Decimal
	ClearCost      bool
	Notes          *string
	DateIdentified *time.Time
}

func (u RiskUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.Probability != nil {
		cols["probability"] = *u.Probability
	}
	if u.Severity != nil {
		cols["severity"] = *u.Severity
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	switch {
	case u.ClearCost:
		cols["estimated_cost"] = decimal.NullDecimal{}
	case u.EstimatedCost != nil:
		cols["estimated_cost"] = decimal.NewNullDecimal(*u.EstimatedCost)
	}
	if u.Notes != nil {
		cols["notes"] = *u.Notes
	}
	if u.DateIdentified != nil {
		cols["date_identified"] = *u.DateIdentified
	}
	return cols
}

func UpdateRisk(ctx context.Context, db *gorm.DB, id string, u RiskUpdate) (models.Risk, error) {
	cols := u.columns()
	if len(cols) > 0 {
		res := db.WithContext(ctx).Model(&models.Risk{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return models.Risk{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.Risk{}, ErrNotFound
		}
	}
	return GetRisk(ctx, db, id)
}

func DeleteRisk(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Risk{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
