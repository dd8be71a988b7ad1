package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reads embed the referenced year and model.
const priceListSelect = `
	SELECT p.id, p.code, p.price, p.year_id, p.model_id, p.created_at, p.updated_at,
	       y.id, y.year, y.created_at, y.updated_at,
	       m.id, m.name, m.type_id, m.created_at, m.updated_at`

const priceListJoins = `
	JOIN vehicle_years y  ON y.id = p.year_id
	JOIN vehicle_models m ON m.id = p.model_id`

type PriceListRepository struct {
	pool *pgxpool.Pool
}

func NewPriceListRepository(pool *pgxpool.Pool) *PriceListRepository {
	return &PriceListRepository{pool: pool}
}

func (r *PriceListRepository) List(ctx context.Context, filter domain.PriceListFilter, page domain.PageRequest) ([]*domain.PriceList, int, error) {
	where := &whereClause{}
	if filter.YearID != nil {
		where.add("p.year_id = $%d", *filter.YearID)
	}
	if filter.ModelID != nil {
		where.add("p.model_id = $%d", *filter.ModelID)
	}

	return listPage(ctx, r.pool, listQuery{
		selectSQL: priceListSelect + ` FROM price_lists p` + priceListJoins,
		countSQL:  `SELECT COUNT(*) FROM price_lists p`,
		orderBy:   "p.id",
	}, where, page, scanPriceList)
}

func (r *PriceListRepository) GetByID(ctx context.Context, id int64) (*domain.PriceList, error) {
	return getPriceList(ctx, r.pool, id)
}

func (r *PriceListRepository) Create(ctx context.Context, pl *domain.PriceList) (*domain.PriceList, error) {
	query := `
		WITH p AS (
			INSERT INTO price_lists (code, price, year_id, model_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, code, price, year_id, model_id, created_at, updated_at
		)` + priceListSelect + ` FROM p` + priceListJoins

	created, err := scanPriceList(r.pool.QueryRow(ctx, query, pl.Code, pl.Price, pl.YearID, pl.ModelID))
	if err != nil {
		return nil, writeError(err)
	}
	return created, nil
}

func (r *PriceListRepository) Update(ctx context.Context, id int64, apply func(*domain.PriceList)) (*domain.PriceList, error) {
	return updateLocked(ctx, r.pool, "price_lists", id, getPriceList, apply, writePriceList)
}

func (r *PriceListRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "price_lists", id)
}

func getPriceList(ctx context.Context, q querier, id int64) (*domain.PriceList, error) {
	query := priceListSelect + ` FROM price_lists p` + priceListJoins + ` WHERE p.id = $1`
	return scanPriceList(q.QueryRow(ctx, query, id))
}

func writePriceList(ctx context.Context, q querier, id int64, pl *domain.PriceList) (*domain.PriceList, error) {
	query := `
		WITH p AS (
			UPDATE price_lists
			SET    code = $2, price = $3, year_id = $4, model_id = $5, updated_at = NOW()
			WHERE  id = $1
			RETURNING id, code, price, year_id, model_id, created_at, updated_at
		)` + priceListSelect + ` FROM p` + priceListJoins

	updated, err := scanPriceList(q.QueryRow(ctx, query, id, pl.Code, pl.Price, pl.YearID, pl.ModelID))
	if err != nil {
		return nil, writeError(err)
	}
	return updated, nil
}

func scanPriceList(row rowScanner) (*domain.PriceList, error) {
	var (
		pl domain.PriceList
		y  domain.VehicleYear
		m  domain.VehicleModel
	)
	err := row.Scan(
		&pl.ID, &pl.Code, &pl.Price, &pl.YearID, &pl.ModelID, &pl.CreatedAt, &pl.UpdatedAt,
		&y.ID, &y.Year, &y.CreatedAt, &y.UpdatedAt,
		&m.ID, &m.Name, &m.TypeID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan price list: %w", err)
	}
	pl.Year = &y
	pl.Model = &m
	return &pl, nil
}
