package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"store-rating/constants"
	"store-rating/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies the bearer token and stores its claims on the context.
func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrMissingAuthHeader})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrMissingAuthHeader})
			return
		}

		claims, err := authService.Authenticate(ctx.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidToken})
				return
			}
			LoggerFrom(ctx).Error("authenticate failed", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
			return
		}

		ctx.Set(constants.CtxClaims, claims)
		ctx.Set(constants.CtxToken, tokenString)

		ctx.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthMiddleware.
func ClaimsFrom(ctx *gin.Context) (*services.Claims, bool) {
	v, exists := ctx.Get(constants.CtxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
