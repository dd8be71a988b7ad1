package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleModelColumns = `id, name, type_id, created_at, updated_at`

type VehicleModelRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleModelRepository(pool *pgxpool.Pool) *VehicleModelRepository {
	return &VehicleModelRepository{pool: pool}
}

func (r *VehicleModelRepository) List(ctx context.Context, filter domain.VehicleModelFilter, page domain.PageRequest) ([]*domain.VehicleModel, int, error) {
	where := &whereClause{}
	if filter.Name != "" {
		where.add("name ILIKE $%d", containsPattern(filter.Name))
	}
	if filter.TypeID > 0 {
		where.add("type_id = $%d", filter.TypeID)
	}

	return listPage(ctx, r.pool, listQuery{
		selectSQL: `SELECT ` + vehicleModelColumns + ` FROM vehicle_models`,
		countSQL:  `SELECT COUNT(*) FROM vehicle_models`,
		orderBy:   "id",
	}, where, page, scanVehicleModel)
}

func (r *VehicleModelRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	return getVehicleModel(ctx, r.pool, id)
}

func (r *VehicleModelRepository) Create(ctx context.Context, m *domain.VehicleModel) (*domain.VehicleModel, error) {
	query := `
		INSERT INTO vehicle_models (name, type_id)
		VALUES ($1, $2)
		RETURNING ` + vehicleModelColumns

	created, err := scanVehicleModel(r.pool.QueryRow(ctx, query, m.Name, m.TypeID))
	if err != nil {
		return nil, writeError(err)
	}
	return created, nil
}

func (r *VehicleModelRepository) Update(ctx context.Context, id int64, apply func(*domain.VehicleModel)) (*domain.VehicleModel, error) {
	return updateLocked(ctx, r.pool, "vehicle_models", id, getVehicleModel, apply, writeVehicleModel)
}

func (r *VehicleModelRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "vehicle_models", id)
}

func getVehicleModel(ctx context.Context, q querier, id int64) (*domain.VehicleModel, error) {
	query := `SELECT ` + vehicleModelColumns + ` FROM vehicle_models WHERE id = $1`
	return scanVehicleModel(q.QueryRow(ctx, query, id))
}

func writeVehicleModel(ctx context.Context, q querier, id int64, m *domain.VehicleModel) (*domain.VehicleModel, error) {
	query := `
		UPDATE vehicle_models
		SET    name = $2, type_id = $3, updated_at = NOW()
		WHERE  id = $1
		RETURNING ` + vehicleModelColumns

	updated, err := scanVehicleModel(q.QueryRow(ctx, query, id, m.Name, m.TypeID))
	if err != nil {
		return nil, writeError(err)
	}
	return updated, nil
}

func scanVehicleModel(row rowScanner) (*domain.VehicleModel, error) {
	var m domain.VehicleModel
	if err := row.Scan(&m.ID, &m.Name, &m.TypeID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan vehicle model: %w", err)
	}
	return &m, nil
}
