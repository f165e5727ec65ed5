package controllers

import (
	"errors"
	"net/http"

	"store-rating/constants"
	"store-rating/middlewares"
	"store-rating/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and reported as a generic 500.
func respondError(ctx *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrValidationFailed, "fields": vErr.Fields})
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrValidationFailed})
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidCredentials})
	case errors.Is(err, services.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidToken})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": constants.ErrForbidden})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		middlewares.LoggerFrom(ctx).Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
	}
}

func badInput(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput, "detail": err.Error()})
}

// mustClaims returns the caller's claims; AuthMiddleware guarantees them on
// protected routes.
func mustClaims(ctx *gin.Context) (*services.Claims, bool) {
	claims, ok := middlewares.ClaimsFrom(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrMissingAuthHeader})
		return nil, false
	}
	return claims, true
}
