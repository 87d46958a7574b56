package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:30" json:"first_name"`
	LastName     string `gorm:"size:30" json:"last_name"`
	Role         string `gorm:"size:10;not null" json:"role"`
	IsActive     bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"date_joined"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
