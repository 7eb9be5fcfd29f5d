package models

import (
	"time"

	"gorm.io/gorm"
)

// User is created on first successful magic-link login.
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;size:255;not null"`
	LastLoginAt *time.Time
}

// LoginToken is a pending magic link. Only a bcrypt hash of the secret part
// of the link is stored.
type LoginToken struct {
	Base
	Email      string    `gorm:"size:255;not null;index"`
	SecretHash string    `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	UsedAt     *time.Time
}
