package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const brandColumns = `id, name, created_at, updated_at`

type BrandRepository struct {
	pool *pgxpool.Pool
}

func NewBrandRepository(pool *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{pool: pool}
}

func (r *BrandRepository) List(ctx context.Context, filter domain.BrandFilter, page domain.PageRequest) ([]*domain.Brand, int, error) {
	where := &whereClause{}
	if filter.Name != "" {
		where.add("name ILIKE $%d", containsPattern(filter.Name))
	}

	return listPage(ctx, r.pool, listQuery{
		selectSQL: `SELECT ` + brandColumns + ` FROM vehicle_brands`,
		countSQL:  `SELECT COUNT(*) FROM vehicle_brands`,
		orderBy:   "id",
	}, where, page, scanBrand)
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	return getBrand(ctx, r.pool, id)
}

func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) (*domain.Brand, error) {
	query := `INSERT INTO vehicle_brands (name) VALUES ($1) RETURNING ` + brandColumns
	return scanBrand(r.pool.QueryRow(ctx, query, b.Name))
}

func (r *BrandRepository) Update(ctx context.Context, id int64, apply func(*domain.Brand)) (*domain.Brand, error) {
	return updateLocked(ctx, r.pool, "vehicle_brands", id, getBrand, apply, writeBrand)
}

// Delete fails with domain.ErrInUse while vehicle types still point at the brand.
func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "vehicle_brands", id)
}

func getBrand(ctx context.Context, q querier, id int64) (*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM vehicle_brands WHERE id = $1`
	return scanBrand(q.QueryRow(ctx, query, id))
}

func writeBrand(ctx context.Context, q querier, id int64, b *domain.Brand) (*domain.Brand, error) {
	query := `
		UPDATE vehicle_brands
		SET    name = $2, updated_at = NOW()
		WHERE  id = $1
		RETURNING ` + brandColumns
	return scanBrand(q.QueryRow(ctx, query, id, b.Name))
}

func scanBrand(row rowScanner) (*domain.Brand, error) {
	var b domain.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}
	return &b, nil
}
