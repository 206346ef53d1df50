package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/QuaKeyz/reselling-store/pkg/apperrors"
)

// TokenValidator checks a bearer credential for validity and expiry.
type TokenValidator interface {
	Validate(token string) error
}

// AdminAuth rejects requests without a valid, unexpired admin bearer token
// before any handler runs.
func AdminAuth(creds TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if err := creds.Validate(token); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.Next()
	}
}
