package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/internal/tokens"
	"github.com/folio/folio/server/pkg/logger"
	"github.com/folio/folio/server/pkg/metrics"
)

// LoginRequest is the single-admin login body.
type LoginRequest struct {
	Password string `json:"password"`
}

// Handler exposes the auth endpoints.
type Handler struct {
	svc    *Service
	secret string
}

func NewHandler(svc *Service, secret string) *Handler {
	return &Handler{svc: svc, secret: secret}
}

// Register routes under /api/auth. guard protects the endpoints that require
// a valid admin token.
func (h *Handler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.GET("/profile", guard, h.Profile)
	a.POST("/logout", guard, h.Logout)
}

// Login exchanges the admin password for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tok, ttl, err := h.svc.Login(req.Password)
	switch {
	case errors.Is(err, ErrMissingPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	case errors.Is(err, ErrWrongPassword):
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	case err != nil:
		logger.Errorf("login: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"token": tok, "expiresIn": int(ttl.Seconds())})
}

// Profile returns the identity embedded in the verified token.
func (h *Handler) Profile(c *gin.Context) {
	claims := ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
}

// Logout blacklists the presented access token for its remaining lifetime.
func (h *Handler) Logout(c *gin.Context) {
	var raw string
	if n, _ := fmt.Sscanf(c.GetHeader("Authorization"), "Bearer %s", &raw); n != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
		return
	}
	claims, err := tokens.ParseAdminToken(h.secret, raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := BlacklistToken(c.Request.Context(), raw, ttl); err != nil {
				logger.Errorf("logout: blacklist failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate token"})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ClaimsFromContext returns the verified claims attached by the auth
// middleware, or nil when the request was not gated.
func ClaimsFromContext(c *gin.Context) *tokens.Claims {
	v, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, _ := v.(*tokens.Claims)
	return claims
}
