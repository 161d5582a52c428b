// controllers/profile.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solune-backend/models"
	"solune-backend/store"
	"solune-backend/utils"
)

type UpdateProfileInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,min=8"`
}

func (ctl *Controller) currentUser(c *gin.Context) (*models.User, bool) {
	id, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}
	user, err := ctl.Store.Users.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return user, true
}

func (ctl *Controller) Me(c *gin.Context) {
	user, ok := ctl.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

// UpdateProfile changes the display name and email and, given the current
// password, the password.
func (ctl *Controller) UpdateProfile(c *gin.Context) {
	user, ok := ctl.currentUser(c)
	if !ok {
		return
	}
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !utils.ValidateEmail(email) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email address")
			return
		}
		if email != user.Email {
			other, err := ctl.Store.Users.FindByEmail(c.Request.Context(), email)
			if err == nil && other.ID != user.ID {
				utils.RespondWithError(c, http.StatusConflict, "Email already registered")
				return
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				ctl.fail(c, err, "User")
				return
			}
			user.Email = email
		}
	}
	if input.NewPassword != "" {
		if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		user.Password = input.NewPassword
		if err := user.HashPassword(); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
	}

	if err := ctl.Store.Users.Update(c.Request.Context(), user); err != nil {
		ctl.fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": userView(user)})
}
