package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"risk-assessment/internal/models"
	"risk-assessment/internal/risk"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func mustProject(t *testing.T, db *gorm.DB, email, name string) models.Project {
	t.Helper()
	p := models.Project{OwnerEmail: email, Name: name, Address: "Via Roma 1", ClientName: "ACME"}
	require.NoError(t, CreateProject(context.Background(), db, &p))
	return p
}

func mustElement(t *testing.T, db *gorm.DB, projectID string, parent *models.Element, kind risk.NodeKind, name string) models.Element {
	t.Helper()
	e := models.Element{ProjectID: projectID, Type: kind, Name: name}
	if parent != nil {
		e.ParentID = &parent.ID
	}
	require.NoError(t, AddElement(context.Background(), db, &e))
	return e
}

func mustRisk(t *testing.T, db *gorm.DB, asset models.Element, name string, p, s int) models.Risk {
	t.Helper()
	r := models.Risk{ElementID: asset.ID, Name: name, Probability: p, Severity: s}
	require.NoError(t, AddRisk(context.Background(), db, &r))
	return r
}
