package models

import (
	"errors"
	"time"

	"solune-backend/utils"
)

type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Role     string `gorm:"type:varchar(20);not null;default:'owner'" json:"role"` // 'owner' or 'staff'

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
}

// HashPassword replaces the plain password with its bcrypt hash.
func (u *User) HashPassword() error {
	if u.Password == "" {
		return errors.New("password required")
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}
