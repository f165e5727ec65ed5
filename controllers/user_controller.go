package controllers

import (
	"net/http"

	"store-rating/dto"
	"store-rating/services"

	"github.com/gin-gonic/gin"
)

type IUserController interface {
	ListStores(ctx *gin.Context)
	Rate(ctx *gin.Context)
}

type UserController struct {
	service services.IUserService
}

func NewUserController(service services.IUserService) IUserController {
	return &UserController{service: service}
}

func (c *UserController) ListStores(ctx *gin.Context) {
	claims, ok := mustClaims(ctx)
	if !ok {
		return
	}

	var query dto.UserStoreQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badInput(ctx, err)
		return
	}

	stores, err := c.service.ListStores(ctx.Request.Context(), claims.UserID, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

func (c *UserController) Rate(ctx *gin.Context) {
	claims, ok := mustClaims(ctx)
	if !ok {
		return
	}

	var input dto.RateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	rating, err := c.service.SubmitRating(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rating)
}
