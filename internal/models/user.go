package models

import (
	"strings"
	"time"
)

// Role is the closed set of user roles. Stored as a string column so the
// rows stay readable; parsed values only, never free-form client input.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole matches case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(s) {
	case string(RoleUser):
		return RoleUser, true
	case string(RoleAdmin):
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"size:10;not null;default:USER"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// UserView is the public shape returned to clients. The password hash never
// leaves the server, so responses are built from this instead of User.
type UserView struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
