package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every fixture user.
const DefaultPassword = "password123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser inserts a user with a profile of the given role.
func (f *Fixtures) CreateUser(t *testing.T, role string) *models.User {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	user := &models.User{Email: fmt.Sprintf("user%d@sweets.test", f.counter)}

	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2)
		RETURNING id, password_hash, created_at, updated_at
	`, user.Email, string(hash)).Scan(&user.ID, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, err := f.db.Pool.Exec(ctx, `INSERT INTO user_profiles (id, role) VALUES ($1, $2)`, user.ID, role); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return user
}

// CreateSweet inserts a sweet with the given stock.
func (f *Fixtures) CreateSweet(t *testing.T, name, category string, price float64, quantity int) *models.Sweet {
	t.Helper()

	s := &models.Sweet{Name: name, Category: category, Price: price, Quantity: quantity}
	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO sweets (name, category, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version, created_at, updated_at
	`, name, category, price, quantity).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create sweet: %v", err)
	}
	return s
}

func (f *Fixtures) SweetQuantity(t *testing.T, id uuid.UUID) int {
	t.Helper()

	var q int
	if err := f.db.Pool.QueryRow(context.Background(), `SELECT quantity FROM sweets WHERE id = $1`, id).Scan(&q); err != nil {
		t.Fatalf("failed to read sweet: %v", err)
	}
	return q
}
