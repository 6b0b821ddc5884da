package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appli-farm/applifarm-backend/internal/auth"
	projdomain "github.com/appli-farm/applifarm-backend/internal/projects/domain"
	projservice "github.com/appli-farm/applifarm-backend/internal/projects/service"
	"github.com/appli-farm/applifarm-backend/internal/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := memory.NewDB()
	projectSvc := projservice.NewProjectService(db.Projects(), nil)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(auth.Identity(nil))
	api.Use(auth.WithProfile(db.Profiles()))
	Register(api.Group("/profile"), api.Group("/profiles"), db.Profiles(), projectSvc)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestOwnProfile(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("anonymous is 401", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("first request provisions the profile", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/profile", "user-a", nil)
		require.Equal(t, http.StatusOK, w.Code)
		profile := decode(t, w)["profile"].(map[string]any)
		assert.Equal(t, "user-a", profile["id"])
		assert.Equal(t, "user-a@dev.local", profile["email"])
	})

	t.Run("patch own fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/profile", "user-a", map[string]any{
			"bio":        "I build small tools",
			"github_url": "https://github.com/user-a",
		})
		require.Equal(t, http.StatusOK, w.Code)
		profile := decode(t, w)["profile"].(map[string]any)
		assert.Equal(t, "I build small tools", profile["bio"])

		w = doJSON(t, r, http.MethodGet, "/api/v1/profile", "user-a", nil)
		require.Equal(t, http.StatusOK, w.Code)
		profile = decode(t, w)["profile"].(map[string]any)
		assert.Equal(t, "I build small tools", profile["bio"])
		assert.Equal(t, "https://github.com/user-a", profile["github_url"])
	})

	t.Run("empty string clears a field", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/profile", "user-a", map[string]any{"bio": ""})
		require.Equal(t, http.StatusOK, w.Code)
		profile := decode(t, w)["profile"].(map[string]any)
		assert.Nil(t, profile["bio"])
	})
}

func TestPublicProfile(t *testing.T) {
	r, db := newTestRouter(t)

	// Provision via the middleware, then publish one project.
	w := doJSON(t, r, http.MethodGet, "/api/v1/profile", "maker", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ps := projservice.NewProjectService(db.Projects(), nil)
	_, err := ps.Create(t.Context(), "maker", projdomain.Draft{
		Title:       "Todo App",
		Description: "A simple todo",
		URL:         "https://example.com",
		Categories:  []string{"Task Management"},
	})
	require.NoError(t, err)

	t.Run("shows projects, hides email", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/profiles/maker", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, "maker", profile["id"])
		_, hasEmail := profile["email"]
		assert.False(t, hasEmail, "public profiles must not leak emails")
		assert.Len(t, body["projects"], 1)
	})

	t.Run("unknown profile is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/profiles/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
