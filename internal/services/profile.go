package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("invalid role")
)

type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, role, created_at FROM user_profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.Role, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// SetRoleByEmail changes the role of the user with the given email. It is
// not reachable over HTTP.
func (s *ProfileService) SetRoleByEmail(ctx context.Context, email, role string) (*models.Profile, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	var p models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE user_profiles p SET role = $1
		FROM users u
		WHERE u.id = p.id AND u.email = $2
		RETURNING p.id, p.role, p.created_at
	`, role, normalizeEmail(email)).Scan(&p.ID, &p.Role, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}
	return &p, nil
}
