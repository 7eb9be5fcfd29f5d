package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"risk-assessment/internal/logger"
	"risk-assessment/internal/models"
)

var DB *gorm.DB

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Init connects to postgres, retrying while the database starts up, and
// migrates the schema.
func Init(dsn string, log *zap.Logger, logLevel string) error {
	gcfg := &gorm.Config{Logger: logger.NewGormLogger(log, logger.GormLevel(logLevel))}

	var err error
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		DB, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			log.Info("connected to database")
			break
		}

		log.Warn("database connection failed", zap.Error(err))
		time.Sleep(retryBackoff)
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Project{},
		&models.Element{},
		&models.Risk{},
		&models.AuditLog{},
	)
}
