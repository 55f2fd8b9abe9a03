package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usss-rp/portal/internal/models"
)

func setupAuthedRouter(t *testing.T, users *mockUserStore) (*gin.Engine, *TokenIssuer, *Denylist) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := NewTokenIssuer("test-secret", time.Hour)
	denylist := NewDenylist(testRedis(t))
	mw := NewMiddleware(issuer, denylist, users)

	router := gin.New()
	authed := router.Group("/", mw.Authenticate())
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	authed.GET("/admin", mw.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, issuer, denylist
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMiddleware(t *testing.T) {
	member := &models.User{ID: "user-1", StaticID: "#1", Role: models.RoleUser}
	admin := &models.User{ID: "admin-1", StaticID: "#2", Role: models.RoleAdmin}
	users := newMockUserStore(member, admin)

	router, issuer, denylist := setupAuthedRouter(t, users)

	memberToken, err := issuer.Issue(member.ID, member.StaticID, member.Nickname, member.Role)
	require.NoError(t, err)
	adminToken, err := issuer.Issue(admin.ID, admin.StaticID, admin.Nickname, admin.Role)
	require.NoError(t, err)

	t.Run("valid token passes", func(t *testing.T) {
		w := doRequest(router, "/me", memberToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := doRequest(router, "/me", "nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted user rejected", func(t *testing.T) {
		ghostToken, err := issuer.Issue("ghost", "#9", "ghost", models.RoleUser)
		require.NoError(t, err)

		w := doRequest(router, "/me", ghostToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		require.NoError(t, denylist.Revoke(context.Background(), memberToken, time.Hour))

		w := doRequest(router, "/me", memberToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin gate", func(t *testing.T) {
		w := doRequest(router, "/admin", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)

		// Role comes from storage, not from the token claims.
		freshMemberToken, err := issuer.Issue(member.ID, member.StaticID, member.Nickname, models.RoleAdmin)
		require.NoError(t, err)
		w = doRequest(router, "/admin", freshMemberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
