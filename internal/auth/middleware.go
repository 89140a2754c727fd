package auth

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/apperr"
	"github.com/clubdesk/matchday/internal/response"
	"github.com/clubdesk/matchday/internal/session"
)

// Gate errors.
var (
	ErrAuthRequired  = apperr.Unauthorized("authentication required")
	ErrAdminRequired = apperr.Forbidden("admin role required")
)

// SessionLoader resolves session ids.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*session.Session, error)
}

// Authenticate resolves the session cookie and stores the caller identity in
// the request context. Requests without a valid session continue anonymous.
func Authenticate(sessions SessionLoader, cookieName string, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		sess, err := sessions.Load(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Warnw("session lookup failed", "path", c.Request.URL.Path, "error", err)
			}
			c.Next()
			return
		}

		id := Identity{UserID: sess.UserID, Role: sess.Role, SessionID: sess.ID}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := FromContext(c.Request.Context()); !ok {
			response.AbortWithError(c, response.CodeUnauthorized, ErrAuthRequired.Error(), http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := FromContext(c.Request.Context())
		if !ok {
			response.AbortWithError(c, response.CodeUnauthorized, ErrAuthRequired.Error(), http.StatusUnauthorized)
			return
		}
		if !id.IsAdmin() {
			response.AbortWithError(c, response.CodeForbidden, ErrAdminRequired.Error(), http.StatusForbidden)
			return
		}
		c.Next()
	}
}
