// Package auth implements passwordless login: a one-time link is mailed to
// the user and exchanged for a session.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"risk-assessment/internal/models"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrTokenInvalid = errors.New("login link is not valid")
	ErrTokenExpired = errors.New("login link has expired")
)

const secretBytes = 24

// Mailer delivers a login link.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

type Service struct {
	db      *gorm.DB
	mailer  Mailer
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewService(db *gorm.DB, mailer Mailer, baseURL string, ttl time.Duration) *Service {
	return &Service{
		db:      db,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NormalizeEmail lower-cases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// RequestLink stores a new login token and mails the link.
func (s *Service) RequestLink(ctx context.Context, rawEmail string) error {
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return err
	}

	secret, err := randomSecret()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash login secret: %w", err)
	}

	tok := models.LoginToken{
		Email:      email,
		SecretHash: string(hash),
		ExpiresAt:  s.now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&tok).Error; err != nil {
		return fmt.Errorf("store login token: %w", err)
	}

	link := s.baseURL + "/auth/callback?token=" + url.QueryEscape(tok.ID+"."+secret)
	if err := s.mailer.SendLoginLink(ctx, email, link); err != nil {
		return fmt.Errorf("send login link: %w", err)
	}
	return nil
}

// Verify consumes a login token and returns the (possibly new) user.
func (s *Service) Verify(ctx context.Context, token string) (models.User, error) {
	id, secret, ok := strings.Cut(token, ".")
	if !ok || id == "" || secret == "" {
		return models.User{}, ErrTokenInvalid
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tok models.LoginToken
		if err := tx.Where("id = ? AND used_at IS NULL", id).First(&tok).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(tok.SecretHash), []byte(secret)) != nil {
			return ErrTokenInvalid
		}

		now := s.now()
		if now.After(tok.ExpiresAt) {
			return ErrTokenExpired
		}

		res := tx.Model(&models.LoginToken{}).
			Where("id = ? AND used_at IS NULL", tok.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenInvalid
		}

		if err := tx.Where(models.User{Email: tok.Email}).FirstOrCreate(&user).Error; err != nil {
			return err
		}
		user.LastLoginAt = &now
		return tx.Model(&user).Update("last_login_at", now).Error
	})
	return user, err
}

func randomSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate login secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// LogMailer writes links to the log instead of sending mail. Development only.
type LogMailer struct {
	Log *zap.Logger
}

func (m LogMailer) SendLoginLink(_ context.Context, email, link string) error {
	m.Log.Info("login link issued", zap.String("email", email), zap.String("link", link))
	return nil
}
