package database

import (
	"context"

	"gorm.io/gorm"

	"risk-assessment/internal/models"
)

// CreateAuditLog records a change. Write errors are dropped.
func CreateAuditLog(ctx context.Context, db *gorm.DB, userID uint, entity, entityID, action, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = db.WithContext(ctx).Create(&record).Error
}

func ListAuditLogs(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
