package controllers

import (
	"net/http"

	"store-rating/dto"
	"store-rating/services"

	"github.com/gin-gonic/gin"
)

type IAdminController interface {
	Dashboard(ctx *gin.Context)
	CreateUser(ctx *gin.Context)
	CreateStore(ctx *gin.Context)
	ListStores(ctx *gin.Context)
	ListUsers(ctx *gin.Context)
}

type AdminController struct {
	service services.IAdminService
}

func NewAdminController(service services.IAdminService) IAdminController {
	return &AdminController{service: service}
}

func (c *AdminController) Dashboard(ctx *gin.Context) {
	counts, err := c.service.Dashboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, counts)
}

func (c *AdminController) CreateUser(ctx *gin.Context) {
	var input dto.CreateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	id, err := c.service.CreateUser(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

func (c *AdminController) CreateStore(ctx *gin.Context) {
	var input dto.CreateStoreInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	id, err := c.service.CreateStore(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

func (c *AdminController) ListStores(ctx *gin.Context) {
	var filter dto.StoreFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		badInput(ctx, err)
		return
	}

	stores, err := c.service.ListStores(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

func (c *AdminController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		badInput(ctx, err)
		return
	}

	users, err := c.service.ListUsers(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}
