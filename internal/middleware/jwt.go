package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// TokenValidator checks access tokens issued by the auth collaborator.
type TokenValidator interface {
	ValidateToken(raw string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token.
func JWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
