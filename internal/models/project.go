package models

// Project is one assessed site, owned by the user who created it.
type Project struct {
	Base
	OwnerEmail  string `gorm:"size:255;not null;index" json:"ownerEmail"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"size:255" json:"address"`
	ClientName  string `gorm:"size:255" json:"clientName"`
}
