package controllers

import (
	"net/http"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/services"

	"github.com/gin-gonic/gin"
)

type IAuthController interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
	Logout(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
}

func NewAuthController(service services.IAuthService) IAuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var input dto.SignupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	id, err := c.service.Signup(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	result, err := c.service.Login(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.LoginResponse{Token: result.Token, User: result.User})
}

func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims, ok := mustClaims(ctx)
	if !ok {
		return
	}

	var input dto.ChangePasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badInput(ctx, err)
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), claims, input); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := mustClaims(ctx)
	if !ok {
		return
	}

	if err := c.service.Logout(ctx.Request.Context(), ctx.GetString(constants.CtxToken), claims); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
