package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SessionResponse struct {
	User    UserResponse `json:"user"`
	Role    string       `json:"role"`
	IsAdmin bool         `json:"is_admin"`
}
