package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/server/internal/auth"
	"github.com/folio/folio/server/internal/config"
	"github.com/folio/folio/server/internal/tokens"
	"github.com/folio/folio/server/pkg/middleware"
)

const testSecret = "handler-test-secret-32-bytes-xxxx"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.TokenTTL = time.Hour
	cfg.Admin.Password = "dev_password"
	cfg.Admin.Email = "admin@example.com"

	g := gin.New()
	guard := middleware.AdminAuth(testSecret)
	auth.NewHandler(auth.NewService(cfg), testSecret).Register(g.Group("/api"), guard)
	return g
}

func doJSON(g *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("{}")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	g.ServeHTTP(w, req)
	return w
}

func TestLogin_ReturnsDecodableToken(t *testing.T) {
	g := newTestRouter(t)

	w := doJSON(g, http.MethodPost, "/api/auth/login", `{"password":"dev_password"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, 3600, resp.ExpiresIn)

	claims, err := tokens.ParseAdminToken(testSecret, resp.Token)
	require.NoError(t, err)
	require.Equal(t, tokens.RoleAdmin, claims.Role)
	remaining := time.Until(claims.ExpiresAt.Time)
	require.Greater(t, remaining, 59*time.Minute)
}

func TestLogin_WrongPassword(t *testing.T) {
	g := newTestRouter(t)
	w := doJSON(g, http.MethodPost, "/api/auth/login", `{"password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotContains(t, w.Body.String(), "token")
}

func TestLogin_MissingPassword(t *testing.T) {
	g := newTestRouter(t)
	w := doJSON(g, http.MethodPost, "/api/auth/login", `{}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	g := newTestRouter(t)

	w := doJSON(g, http.MethodGet, "/api/auth/profile", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := tokens.GenerateAdminToken(testSecret, "admin@example.com", time.Hour)
	require.NoError(t, err)
	w = doJSON(g, http.MethodGet, "/api/auth/profile", "", tok)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "admin", resp["role"])
	require.Equal(t, "admin@example.com", resp["email"])
}

func TestLogout_BlacklistsToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	auth.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer auth.SetBlacklistClient(nil)

	g := newTestRouter(t)
	tok, err := tokens.GenerateAdminToken(testSecret, "admin@example.com", time.Hour)
	require.NoError(t, err)

	w := doJSON(g, http.MethodPost, "/api/auth/logout", "", tok)
	require.Equal(t, http.StatusOK, w.Code)

	black, err := auth.IsTokenBlacklisted(context.Background(), tok)
	require.NoError(t, err)
	require.True(t, black)

	// the revoked token no longer passes the gate
	w = doJSON(g, http.MethodGet, "/api/auth/profile", "", tok)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
