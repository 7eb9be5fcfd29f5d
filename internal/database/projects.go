package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"risk-assessment/internal/models"
)

func ListProjects(ctx context.Context, db *gorm.DB, email string) ([]models.Project, error) {
	var projects []models.Project
	err := db.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("created_at asc, id asc").
		Find(&projects).Error
	return projects, err
}

func CreateProject(ctx context.Context, db *gorm.DB, p *models.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	return db.WithContext(ctx).Create(p).Error
}

// GetProject returns the project only if email owns it.
func GetProject(ctx context.Context, db *gorm.DB, id, email string) (models.Project, error) {
	var p models.Project
	err := db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, email).
		First(&p).Error
	return p, notFound(err)
}
