package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/response"
)

// RequireRoles allows the request through only when the authenticated role
// is one of the listed roles. It must run after the JWT middleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
