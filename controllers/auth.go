package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solune-backend/models"
	"solune-backend/store"
	"solune-backend/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"role":      u.Role,
		"lastLogin": u.LastLogin,
	}
}

func (ctl *Controller) issueToken(c *gin.Context, u *models.User) (string, bool) {
	expiry := time.Duration(ctl.Config.JWTExpiry) * time.Hour
	token, err := utils.GenerateToken(u.ID.String(), u.Role, ctl.Config.JWTSecret, expiry)
	if err != nil {
		ctl.Logger.Error("token generation failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}
	c.SetCookie("token", token, int(expiry.Seconds()), "/", "", ctl.Config.Production(), true)
	return token, true
}

// controllers/auth.go
func (ctl *Controller) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !utils.ValidateEmail(email) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	ctx := c.Request.Context()

	_, err := ctl.Store.Users.FindByEmail(ctx, email)
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		ctl.fail(c, err, "User")
		return
	}

	user := models.User{
		Email:    email,
		Name:     strings.TrimSpace(input.Name),
		Password: input.Password,
		Role:     "owner",
		IsActive: true,
	}
	if err := user.HashPassword(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := ctl.Store.Users.Create(ctx, &user); err != nil {
		ctl.fail(c, err, "User")
		return
	}

	token, ok := ctl.issueToken(c, &user)
	if !ok {
		return
	}
	ctl.Logger.Info("user registered", zap.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userView(&user),
	})
}

func (ctl *Controller) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	ctx := c.Request.Context()

	user, err := ctl.Store.Users.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	} else if err != nil {
		ctl.fail(c, err, "User")
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		utils.RespondWithError(c, http.StatusForbidden, "Account disabled")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := ctl.Store.Users.Update(ctx, user); err != nil {
		ctl.Logger.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	token, ok := ctl.issueToken(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userView(user),
	})
}
