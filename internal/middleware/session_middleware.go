package middleware

import (
	"net/http"

	"go-roster/internal/session"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key RequireSession stores the session id under.
const SessionIDKey = "session_id"

// RequireSession rejects requests without an active session. The token comes
// from a Bearer header or the session cookie.
func RequireSession(sessions session.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c, cookieName)

		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}
		if !sess.IsActive() {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Session has ended", nil)
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sess.ID())
		c.Request = c.Request.WithContext(contextutil.WithSessionID(c.Request.Context(), sess.ID()))
		c.Next()
	}
}
