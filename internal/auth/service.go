package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/folio/folio/server/internal/config"
	"github.com/folio/folio/server/internal/tokens"
)

var (
	ErrMissingPassword = errors.New("password is required")
	ErrWrongPassword   = errors.New("invalid password")
)

// Service validates the single admin password and issues bearer tokens.
// There is no user database; identity is the configured admin credential.
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Login checks the submitted password and on success returns a signed token
// plus its lifetime. A bcrypt hash, when configured, wins over the plaintext
// comparison.
func (s *Service) Login(password string) (string, time.Duration, error) {
	if password == "" {
		return "", 0, ErrMissingPassword
	}
	if !s.passwordMatches(password) {
		return "", 0, ErrWrongPassword
	}
	ttl := s.cfg.JWT.TokenTTL
	tok, err := tokens.GenerateAdminToken(s.cfg.JWT.Secret, s.cfg.Admin.Email, ttl)
	if err != nil {
		return "", 0, err
	}
	return tok, ttl, nil
}

func (s *Service) passwordMatches(password string) bool {
	if h := s.cfg.Admin.PasswordHash; h != "" {
		return bcrypt.CompareHashAndPassword([]byte(h), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) == 1
}
