package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role this service ever issues.
const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an admin access token.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed HS256 JWT with role=admin and the
// configured admin email. TTL controls the exp claim.
func GenerateAdminToken(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:  RoleAdmin,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// ParseAdminToken verifies signature and expiry and returns the decoded claims.
// Tokens without the admin role are rejected even when the signature is good.
func ParseAdminToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
