package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/schedule-api/internal/auth"
	"github.com/yukikurage/schedule-api/internal/constants"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
)

const bearerPrefix = "Bearer "

// RequireAuth checks the bearer token. A missing credential is 401; a
// credential that fails verification is 403.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			_ = c.Error(apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			_ = c.Error(apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			message := apierrors.MsgInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = apierrors.MsgTokenExpired
			}
			_ = c.Error(apierrors.NewWithDetails(message, http.StatusForbidden, err.Error()))
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.SubjectID)
		c.Set(constants.ContextKeyUserName, claims.DisplayName)
		c.Next()
	}
}

// GetUserID retrieves the current account ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
