package model

import (
	"strings"

	"gorm.io/gorm"
)

// User is a back-office operator account.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" gorm:"default:staff"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"email":        u.Email,
		"name":         u.Name,
		"full_name":    u.GetFullName(),
		"phone_number": u.PhoneNumber,
		"role":         u.Role,
	}
}
