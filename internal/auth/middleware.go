package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/models"
)

// Gin context keys set by the middleware.
const (
	ContextUserKey  = "auth.user"
	ContextTokenKey = "auth.token"
)

// Middleware authenticates requests and loads the current user.
type Middleware struct {
	issuer   *TokenIssuer
	denylist *Denylist
	users    UserStore
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(issuer *TokenIssuer, denylist *Denylist, users UserStore) *Middleware {
	return &Middleware{
		issuer:   issuer,
		denylist: denylist,
		users:    users,
	}
}

// Authenticate verifies the bearer token, rejects revoked sessions, and
// attaches the current user to the request context. The user is reloaded
// from storage so role changes take effect without reissuing tokens.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := m.issuer.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		revoked, err := m.denylist.IsRevoked(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session check failed"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session has been logged out"})
			return
		}

		user, err := m.users.GetByID(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user is not an admin.
// Must run after Authenticate.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached to the context, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentToken returns the raw bearer token attached to the context.
func CurrentToken(c *gin.Context) string {
	v, ok := c.Get(ContextTokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
