package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"libraryapi/internal/platform/crypto"
)

var ErrUnauthorized = errors.New("unauthorized")

const defaultTokenTTL = 8 * time.Hour

// Config holds the staff account allowed to change the catalog. An empty
// PasswordHash disables login.
type Config struct {
	Secret       string
	Username     string
	PasswordHash string
	TokenTTL     time.Duration
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &Service{cfg: cfg}
}

// Login checks the staff credentials and returns a signed access token and its
// lifetime in seconds.
func (s *Service) Login(ctx context.Context, username, password string) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if s.cfg.PasswordHash == "" {
		return "", 0, ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := crypto.VerifyPassword(s.cfg.PasswordHash, password)
	if !userOK || !passOK {
		return "", 0, ErrUnauthorized
	}

	token, _, err := crypto.GenerateToken(s.cfg.Secret, username, crypto.RoleStaff, s.cfg.TokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.cfg.TokenTTL.Seconds()), nil
}
