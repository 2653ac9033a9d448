package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"footballadmin/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionLifetime is the fixed validity of an admin session cookie
const SessionLifetime = 24 * time.Hour

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidSession  = errors.New("invalid session")
)

// AuthProcessor implements the single-shared-password admin login. There are
// no user accounts; a valid password yields a signed session token.
type AuthProcessor struct {
	passwordHash string
	jwtSecret    []byte
	logger       *observability.Logger
}

func New(passwordHash, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		logger:       logger,
	}
}

// Login verifies the shared admin password and issues a session token
func (p *AuthProcessor) Login(ctx context.Context, password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(p.passwordHash), []byte(password)); err != nil {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "reason", Value: "password mismatch"}),
			"admin login rejected")
		return "", time.Time{}, ErrInvalidPassword
	}

	expiresAt := time.Now().Add(SessionLifetime)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.jwtSecret)
	if err != nil {
		p.logger.Error(ctx, "failed to sign session token", err)
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	p.logger.Info(ctx, "admin logged in")
	return token, expiresAt, nil
}

// ValidateSession checks a session token's signature and expiry
func (p *AuthProcessor) ValidateSession(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}
	return nil
}
