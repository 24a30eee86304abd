package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/internal/service/auth"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/httputil"
)

const ContextSessionID = "session_id"

// RequireSession validates the portal JWT, resolves its session to the
// backend API token and injects that token into the request context so the
// repository layer can authenticate upstream calls.
func RequireSession(authService auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, fmt.Errorf("missing authorization header"))
			return
		}

		portalToken, found := strings.CutPrefix(header, "Bearer ")
		if !found || portalToken == "" {
			abortUnauthorized(c, fmt.Errorf("malformed authorization header"))
			return
		}

		sessionID, err := authService.SessionID(portalToken)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		backendToken, err := authService.BackendToken(c.Request.Context(), sessionID)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Request = c.Request.WithContext(
			repository.ContextWithToken(c.Request.Context(), backendToken))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	httputil.RespondWithError(c, errors.NewUnauthorized(err))
	c.Abort()
}
