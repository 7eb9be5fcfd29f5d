package models

import "risk-assessment/internal/risk"

// Element is a zone or an asset of a project tree. Root elements have no
// parent and must be zones.
type Element struct {
	Base
	ProjectID string        `gorm:"type:varchar(36);not null;index" json:"projectId"`
	ParentID  *string       `gorm:"type:varchar(36);index" json:"parentId"`
	Type      risk.NodeKind `gorm:"type:varchar(10);not null" json:"type"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	AssetType string        `gorm:"size:100" json:"assetType,omitempty"` // Impianto, Struttura...

	Project Project `json:"-"`
}
