package controllers

import (
	"net/http"

	"store-rating/services"

	"github.com/gin-gonic/gin"
)

type IOwnerController interface {
	Ratings(ctx *gin.Context)
}

type OwnerController struct {
	service services.IOwnerService
}

func NewOwnerController(service services.IOwnerService) IOwnerController {
	return &OwnerController{service: service}
}

func (c *OwnerController) Ratings(ctx *gin.Context) {
	claims, ok := mustClaims(ctx)
	if !ok {
		return
	}

	result, err := c.service.StoreRatings(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
