package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUser(u models.User) User {
	return User{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		DateJoined: u.CreatedAt,
	}
}

func NewUsers(list []models.User) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		out = append(out, NewUser(u))
	}
	return out
}
