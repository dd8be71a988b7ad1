package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleYearColumns = `id, year, created_at, updated_at`

type VehicleYearRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleYearRepository(pool *pgxpool.Pool) *VehicleYearRepository {
	return &VehicleYearRepository{pool: pool}
}

func (r *VehicleYearRepository) List(ctx context.Context, filter domain.VehicleYearFilter, page domain.PageRequest) ([]*domain.VehicleYear, int, error) {
	where := &whereClause{}
	if filter.Year != "" {
		where.add("CAST(year AS TEXT) LIKE $%d", containsPattern(filter.Year))
	}

	return listPage(ctx, r.pool, listQuery{
		selectSQL: `SELECT ` + vehicleYearColumns + ` FROM vehicle_years`,
		countSQL:  `SELECT COUNT(*) FROM vehicle_years`,
		orderBy:   "id",
	}, where, page, scanVehicleYear)
}

func (r *VehicleYearRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleYear, error) {
	return getVehicleYear(ctx, r.pool, id)
}

func (r *VehicleYearRepository) Create(ctx context.Context, y *domain.VehicleYear) (*domain.VehicleYear, error) {
	query := `INSERT INTO vehicle_years (year) VALUES ($1) RETURNING ` + vehicleYearColumns
	return scanVehicleYear(r.pool.QueryRow(ctx, query, y.Year))
}

func (r *VehicleYearRepository) Update(ctx context.Context, id int64, apply func(*domain.VehicleYear)) (*domain.VehicleYear, error) {
	return updateLocked(ctx, r.pool, "vehicle_years", id, getVehicleYear, apply, writeVehicleYear)
}

// Delete cascades to the price lists of that year.
func (r *VehicleYearRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "vehicle_years", id)
}

func getVehicleYear(ctx context.Context, q querier, id int64) (*domain.VehicleYear, error) {
	query := `SELECT ` + vehicleYearColumns + ` FROM vehicle_years WHERE id = $1`
	return scanVehicleYear(q.QueryRow(ctx, query, id))
}

func writeVehicleYear(ctx context.Context, q querier, id int64, y *domain.VehicleYear) (*domain.VehicleYear, error) {
	query := `
		UPDATE vehicle_years
		SET    year = $2, updated_at = NOW()
		WHERE  id = $1
		RETURNING ` + vehicleYearColumns
	return scanVehicleYear(q.QueryRow(ctx, query, id, y.Year))
}

func scanVehicleYear(row rowScanner) (*domain.VehicleYear, error) {
	var y domain.VehicleYear
	if err := row.Scan(&y.ID, &y.Year, &y.CreatedAt, &y.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan vehicle year: %w", err)
	}
	return &y, nil
}
