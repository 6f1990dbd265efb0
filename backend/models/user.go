package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // user, admin
	// Comma-separated course codes the user may open. Empty means unrestricted.
	AllowedCourseCodes string
}

// MayAccess reports whether the user's allow-list permits the course code.
func (u User) MayAccess(courseCode string) bool {
	if strings.TrimSpace(u.AllowedCourseCodes) == "" {
		return true
	}
	for _, code := range strings.Split(u.AllowedCourseCodes, ",") {
		if strings.TrimSpace(code) == courseCode {
			return true
		}
	}
	return false
}
