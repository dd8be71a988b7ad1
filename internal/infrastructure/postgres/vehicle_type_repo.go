package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Every read joins the owning brand.
const vehicleTypeSelect = `
	SELECT t.id, t.name, t.brand_id, t.created_at, t.updated_at,
	       b.id, b.name, b.created_at, b.updated_at`

type VehicleTypeRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleTypeRepository(pool *pgxpool.Pool) *VehicleTypeRepository {
	return &VehicleTypeRepository{pool: pool}
}

func (r *VehicleTypeRepository) List(ctx context.Context, filter domain.VehicleTypeFilter, page domain.PageRequest) ([]*domain.VehicleType, int, error) {
	where := &whereClause{}
	if filter.BrandID > 0 {
		where.add("t.brand_id = $%d", filter.BrandID)
	}

	return listPage(ctx, r.pool, listQuery{
		selectSQL: vehicleTypeSelect + ` FROM vehicle_types t JOIN vehicle_brands b ON b.id = t.brand_id`,
		countSQL:  `SELECT COUNT(*) FROM vehicle_types t`,
		orderBy:   "t.id",
	}, where, page, scanVehicleType)
}

func (r *VehicleTypeRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleType, error) {
	return getVehicleType(ctx, r.pool, id)
}

func (r *VehicleTypeRepository) Create(ctx context.Context, vt *domain.VehicleType) (*domain.VehicleType, error) {
	query := `
		WITH t AS (
			INSERT INTO vehicle_types (name, brand_id)
			VALUES ($1, $2)
			RETURNING id, name, brand_id, created_at, updated_at
		)` + vehicleTypeSelect + `
		FROM t JOIN vehicle_brands b ON b.id = t.brand_id`

	created, err := scanVehicleType(r.pool.QueryRow(ctx, query, vt.Name, vt.BrandID))
	if err != nil {
		return nil, writeError(err)
	}
	return created, nil
}

func (r *VehicleTypeRepository) Update(ctx context.Context, id int64, apply func(*domain.VehicleType)) (*domain.VehicleType, error) {
	return updateLocked(ctx, r.pool, "vehicle_types", id, getVehicleType, apply, writeVehicleType)
}

// Delete cascades to the type's models and their price lists.
func (r *VehicleTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "vehicle_types", id)
}

func getVehicleType(ctx context.Context, q querier, id int64) (*domain.VehicleType, error) {
	query := vehicleTypeSelect + `
		FROM vehicle_types t
		JOIN vehicle_brands b ON b.id = t.brand_id
		WHERE t.id = $1`
	return scanVehicleType(q.QueryRow(ctx, query, id))
}

func writeVehicleType(ctx context.Context, q querier, id int64, vt *domain.VehicleType) (*domain.VehicleType, error) {
	query := `
		WITH t AS (
			UPDATE vehicle_types
			SET    name = $2, brand_id = $3, updated_at = NOW()
			WHERE  id = $1
			RETURNING id, name, brand_id, created_at, updated_at
		)` + vehicleTypeSelect + `
		FROM t JOIN vehicle_brands b ON b.id = t.brand_id`

	updated, err := scanVehicleType(q.QueryRow(ctx, query, id, vt.Name, vt.BrandID))
	if err != nil {
		return nil, writeError(err)
	}
	return updated, nil
}

func scanVehicleType(row rowScanner) (*domain.VehicleType, error) {
	var (
		vt domain.VehicleType
		b  domain.Brand
	)
	err := row.Scan(
		&vt.ID, &vt.Name, &vt.BrandID, &vt.CreatedAt, &vt.UpdatedAt,
		&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan vehicle type: %w", err)
	}
	vt.Brand = &b
	return &vt, nil
}
