package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/internal/config"
	"github.com/usss-rp/portal/pkg/logger"
)

type stubHealthDB struct{ err error }

func (s stubHealthDB) Health() error { return s.err }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handlers{Health: NewHealthHandler(stubHealthDB{})}
	log := logger.New("error", "json", "stdout")

	return NewRouter(&config.Config{}, &auth.Middleware{}, h, log)
}

func TestRouterMountsUnderAPIPrefix(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health under prefix", http.MethodGet, "/api/health", http.StatusOK},
		{"health not at root", http.MethodGet, "/health", http.StatusNotFound},
		{"login not at root", http.MethodPost, "/auth/login", http.StatusNotFound},
		{"reports not at root", http.MethodGet, "/reports/my", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/reports/my", "/api/users/me", "/api/tasks"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
