package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/sweetshop-api/internal/inventory"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/dimitrije/sweetshop-api/internal/sse"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// SweetServiceInterface defines the methods used by handlers from SweetService
type SweetServiceInterface interface {
	List(ctx context.Context) ([]models.Sweet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error)
	Create(ctx context.Context, in inventory.CreateInput, createdBy uuid.UUID) (*models.Sweet, error)
	Update(ctx context.Context, id uuid.UUID, in inventory.EditInput, expectedVersion *int) (*models.Sweet, error)
	Purchase(ctx context.Context, id uuid.UUID, expectedVersion *int) (*models.Sweet, error)
	Restock(ctx context.Context, id uuid.UUID, add int, expectedVersion *int) (*models.Sweet, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
}

// SSEHubInterface defines the methods used by handlers from the SSE hub
type SSEHubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	SweetCreated(s *models.Sweet, by uuid.UUID)
	SweetUpdated(s *models.Sweet, by uuid.UUID)
	SweetDeleted(id, by uuid.UUID)
}
