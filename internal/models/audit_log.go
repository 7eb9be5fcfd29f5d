package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	Entity   string `gorm:"size:50;not null" json:"entity"` // "project", "element", "risk"
	EntityID string `gorm:"type:varchar(36)" json:"entityId"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "update", "delete"
	Details  string `gorm:"type:text" json:"details"`
}
