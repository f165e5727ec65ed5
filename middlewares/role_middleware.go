package middlewares

import (
	"net/http"

	"store-rating/constants"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleBasedAccessControl only lets the listed roles through.
// It must run after AuthMiddleware.
func RoleBasedAccessControl(allowedRoles ...constants.Role) gin.HandlerFunc {
	allowed := make(map[constants.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(ctx *gin.Context) {
		claims, ok := ClaimsFrom(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrMissingAuthHeader})
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			LoggerFrom(ctx).Info("access denied",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role.String()),
				zap.Any("allowed_roles", allowedRoles),
			)
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": constants.ErrForbidden})
			return
		}

		ctx.Next()
	}
}
