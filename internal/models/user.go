package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Password *string `json:"-"` // nil for accounts created through Google
	Role     Role    `gorm:"type:text;not null;default:user" json:"role"`

	Name     string `gorm:"not null" json:"name"`
	Mobile   string `json:"mobile"`
	ImageURL string `json:"imageUrl"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `gorm:"default:India" json:"country"`

	GoogleID *string `gorm:"uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword reports whether the account can log in with a local password.
func (u User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
