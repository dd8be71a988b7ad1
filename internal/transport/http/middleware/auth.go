package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	applog "github.com/ErlanBelekov/vehicle-api/internal/log"
	"github.com/ErlanBelekov/vehicle-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the HTTP-only cookie the login endpoint sets.
	CookieName = "jwt"

	UserIDKey = "userID"
	RoleKey   = "role"

	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"
)

type TokenVerifier interface {
	Verify(raw string) (*domain.Session, error)
}

// TokenFromRequest prefers an Authorization Bearer header and falls back to
// the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// Auth verifies the session token and sets "userID" (int64) and "role"
// (domain.Role) in the gin context.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromRequest(c)
		if raw == "" {
			metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		session, err := tokens.Verify(raw)
		if err != nil {
			outcome := "invalid"
			if errors.Is(err, domain.ErrTokenExpired) {
				outcome = "expired"
			}
			metrics.TokenVerificationsTotal.WithLabelValues(outcome).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

		c.Set(UserIDKey, session.UserID)
		c.Set(RoleKey, session.Role)
		c.Request = c.Request.WithContext(applog.WithUserID(c.Request.Context(), session.UserID))
		c.Next()
	}
}

// RequireRole runs after Auth and rejects sessions with a different role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(RoleKey)
		if r, ok := got.(domain.Role); !ok || r != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}
		c.Next()
	}
}
