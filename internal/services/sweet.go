package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/inventory"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSweetNotFound   = errors.New("sweet not found")
	ErrVersionConflict = errors.New("version conflict: sweet has been modified")
)

var sweetColumns = []string{
	"id", "name", "category", "price", "quantity", "description",
	"created_by", "version", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

// SweetService is the inventory store. Every write that depends on a prior
// read is a compare-and-set on version; a lost race is reported, never retried.
type SweetService struct {
	db *database.DB
}

func NewSweetService(db *database.DB) *SweetService {
	return &SweetService{db: db}
}

// List returns the full inventory ordered by name.
func (s *SweetService) List(ctx context.Context) ([]models.Sweet, error) {
	query, args, err := psql.Select(sweetColumns...).From("sweets").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	defer rows.Close()

	sweets := []models.Sweet{}
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet: %w", err)
		}
		sweets = append(sweets, *sweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	return sweets, nil
}

func (s *SweetService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	query, args, err := psql.Select(sweetColumns...).From("sweets").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, err
	}

	sweet, err := scanSweet(s.db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSweetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sweet: %w", err)
	}
	return sweet, nil
}

func (s *SweetService) Create(ctx context.Context, in inventory.CreateInput, createdBy uuid.UUID) (*models.Sweet, error) {
	sweet, err := inventory.NewSweet(in, createdBy)
	if err != nil {
		return nil, err
	}

	created, err := scanSweet(s.db.Pool.QueryRow(ctx, `
		INSERT INTO sweets (name, category, price, quantity, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, category, price, quantity, description, created_by, version, created_at, updated_at
	`, sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Description, sweet.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create sweet: %w", err)
	}
	return created, nil
}

// Update applies a partial edit. A non-nil expectedVersion must match the
// stored version.
func (s *SweetService) Update(ctx context.Context, id uuid.UUID, in inventory.EditInput, expectedVersion *int) (*models.Sweet, error) {
	if in.IsEmpty() {
		return nil, inventory.ErrNoFieldsToUpdate
	}

	current, err := s.readForWrite(ctx, id, expectedVersion)
	if err != nil {
		return nil, err
	}

	next, err := inventory.ApplyEdit(*current, in)
	if err != nil {
		return nil, err
	}

	update := psql.Update("sweets")
	if in.Name != nil {
		update = update.Set("name", next.Name)
	}
	if in.Category != nil {
		update = update.Set("category", next.Category)
	}
	if in.Price != nil {
		update = update.Set("price", next.Price)
	}
	if in.Quantity != nil {
		update = update.Set("quantity", next.Quantity)
	}
	if in.Description != nil {
		update = update.Set("description", next.Description)
	}

	return s.compareAndSet(ctx, update, current)
}

func (s *SweetService) Purchase(ctx context.Context, id uuid.UUID, expectedVersion *int) (*models.Sweet, error) {
	current, err := s.readForWrite(ctx, id, expectedVersion)
	if err != nil {
		return nil, err
	}

	next, err := inventory.Purchase(*current)
	if err != nil {
		return nil, err
	}
	return s.SetQuantity(ctx, id, next.Quantity, current.Version)
}

// Restock rejects a non-positive amount before reading the sweet.
func (s *SweetService) Restock(ctx context.Context, id uuid.UUID, add int, expectedVersion *int) (*models.Sweet, error) {
	if err := inventory.ValidateRestock(add); err != nil {
		return nil, err
	}

	current, err := s.readForWrite(ctx, id, expectedVersion)
	if err != nil {
		return nil, err
	}

	next, err := inventory.Restock(*current, add)
	if err != nil {
		return nil, err
	}
	return s.SetQuantity(ctx, id, next.Quantity, current.Version)
}

// SetQuantity writes quantity if the row is still at version.
func (s *SweetService) SetQuantity(ctx context.Context, id uuid.UUID, quantity, version int) (*models.Sweet, error) {
	return s.compareAndSet(ctx, psql.Update("sweets").Set("quantity", quantity), &models.Sweet{ID: id, Version: version})
}

// Delete removes the sweet only when confirmed; otherwise the store is not
// called.
func (s *SweetService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if err := inventory.ConfirmDelete(confirmed); err != nil {
		return err
	}

	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSweetNotFound
	}
	return nil
}

func (s *SweetService) readForWrite(ctx context.Context, id uuid.UUID, expectedVersion *int) (*models.Sweet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expectedVersion != nil && *expectedVersion != current.Version {
		return nil, ErrVersionConflict
	}
	return current, nil
}

func (s *SweetService) compareAndSet(ctx context.Context, update sq.UpdateBuilder, current *models.Sweet) (*models.Sweet, error) {
	query, args, err := update.
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where("id = ?", current.ID).
		Where("version = ?", current.Version).
		Suffix("RETURNING " + strings.Join(sweetColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanSweet(s.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.checkVersionConflict(ctx, current.ID, current.Version, err)
		}
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}
	return updated, nil
}

func (s *SweetService) checkVersionConflict(ctx context.Context, id uuid.UUID, expectedVersion int, originalErr error) error {
	var currentVersion int
	err := s.db.Pool.QueryRow(ctx, `SELECT version FROM sweets WHERE id = $1`, id).Scan(&currentVersion)
	if err != nil {
		return ErrSweetNotFound
	}
	if currentVersion != expectedVersion {
		return ErrVersionConflict
	}
	return originalErr
}

func scanSweet(row rowScanner) (*models.Sweet, error) {
	var sw models.Sweet
	if err := row.Scan(
		&sw.ID, &sw.Name, &sw.Category, &sw.Price, &sw.Quantity, &sw.Description,
		&sw.CreatedBy, &sw.Version, &sw.CreatedAt, &sw.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sw, nil
}
