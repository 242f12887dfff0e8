package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/server/internal/post"
	"github.com/folio/folio/server/internal/post/service"
	"github.com/folio/folio/server/internal/tokens"
	"github.com/folio/folio/server/pkg/middleware"
)

const testSecret = "post-handler-secret-32-bytes-xxxx"

func newRouter() (*gin.Engine, service.Service) {
	g := gin.New()
	svc := service.NewMemoryService()
	RegisterPostRoutes(g.Group("/api"), svc, middleware.AdminAuth(testSecret))
	return g, svc
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := tokens.GenerateAdminToken(testSecret, "admin@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func do(g *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decodePost(t *testing.T, w *httptest.ResponseRecorder) post.Post {
	t.Helper()
	var p post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestCreatePost_RoundTrip(t *testing.T) {
	g, _ := newRouter()
	tok := adminToken(t)

	w := do(g, http.MethodPost, "/api/posts", `{"title":"Hello","content":"World","category":"general","tags":["go"]}`, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePost(t, w)
	require.NotEmpty(t, created.ID)
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	w = do(g, http.MethodGet, "/api/posts/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodePost(t, w)
	require.Equal(t, "Hello", got.Title)
	require.Equal(t, "World", got.Content)
	require.Equal(t, "general", got.Category)
	require.Equal(t, []string{"go"}, got.Tags)
}

func TestCreatePost_MissingRequiredFields(t *testing.T) {
	g, _ := newRouter()
	w := do(g, http.MethodPost, "/api/posts", `{"title":"no content"}`, adminToken(t))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutations_RequireValidToken(t *testing.T) {
	g, svc := newRouter()

	// no token
	w := do(g, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// token signed with a different secret
	other, err := tokens.GenerateAdminToken("a-completely-different-secret-xxx", "", time.Hour)
	require.NoError(t, err)
	w = do(g, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`, other)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// expired token
	expired, err := tokens.GenerateAdminToken(testSecret, "", -time.Minute)
	require.NoError(t, err)
	w = do(g, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`, expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// none of the rejected writes reached the store
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)

	// reads stay public
	w = do(g, http.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListPosts_NewestFirst(t *testing.T) {
	g, _ := newRouter()
	tok := adminToken(t)

	for _, title := range []string{"one", "two", "three"} {
		w := do(g, http.MethodPost, "/api/posts", `{"title":"`+title+`","content":"c"}`, tok)
		require.Equal(t, http.StatusCreated, w.Code)
		time.Sleep(5 * time.Millisecond)
	}

	w := do(g, http.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []post.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	require.Equal(t, "three", list[0].Title)
	require.Equal(t, "two", list[1].Title)
	require.Equal(t, "one", list[2].Title)
}

func TestUpdatePost_ReplacesAndKeepsIdentity(t *testing.T) {
	g, _ := newRouter()
	tok := adminToken(t)

	w := do(g, http.MethodPost, "/api/posts", `{"title":"before","content":"c","category":"x"}`, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePost(t, w)
	time.Sleep(5 * time.Millisecond)

	w = do(g, http.MethodPut, "/api/posts/"+created.ID, `{"title":"after","content":"c2"}`, tok)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodePost(t, w)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "after", updated.Title)
	require.Empty(t, updated.Category)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdatePost_UnknownID(t *testing.T) {
	g, _ := newRouter()
	w := do(g, http.MethodPut, "/api/posts/missing", `{"title":"t","content":"c"}`, adminToken(t))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost_ThenGetReturns404(t *testing.T) {
	g, _ := newRouter()
	tok := adminToken(t)

	w := do(g, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePost(t, w)

	w = do(g, http.MethodDelete, "/api/posts/"+created.ID, "", tok)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/api/posts/"+created.ID, "", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodDelete, "/api/posts/"+created.ID, "", tok)
	require.Equal(t, http.StatusNotFound, w.Code)
}
