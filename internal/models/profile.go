package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
