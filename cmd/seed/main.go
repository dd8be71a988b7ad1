// seed creates an admin account and a small sample catalog in the local dev
// database. Re-running it leaves existing rows alone.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/vehicle-api/internal/log"
	"github.com/ErlanBelekov/vehicle-api/internal/password"
	"github.com/ErlanBelekov/vehicle-api/internal/repository"
	"github.com/ErlanBelekov/vehicle-api/internal/usecase"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// seedConfig applies the same rules to the admin account as registration
// over the API, and the same bcrypt cost bounds as the server config.
type seedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required" validate:"required"`
	AdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Admin" validate:"required,max=100"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,required" validate:"required,email,max=100"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD,required" validate:"required,min=8,max=25"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`
}

func loadSeedConfig() (*seedConfig, error) {
	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}

type modelSpec struct {
	name   string
	prices map[int]int // year -> price
}

type typeSpec struct {
	name   string
	models []modelSpec
}

var catalog = map[string][]typeSpec{
	"Toyota": {
		{"Sedan", []modelSpec{{"Corolla", map[int]int{2022: 21000, 2023: 22500}}, {"Camry", map[int]int{2023: 27000}}}},
		{"SUV", []modelSpec{{"RAV4", map[int]int{2022: 28000, 2023: 29500}}}},
	},
	"Volvo": {
		{"SUV", []modelSpec{{"XC60", map[int]int{2023: 45000}}, {"XC90", map[int]int{2023: 57000}}}},
	},
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := loadSeedConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := ctxlog.New(os.Stdout, "local", slog.LevelInfo)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := seedAdmin(ctx, pool, *cfg, logger); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedCatalog(ctx, newSeeder(pool)); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	logger.Info("seed complete")
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg seedConfig, logger *slog.Logger) error {
	auth := usecase.NewAuthUsecase(postgres.NewUserRepository(pool), password.NewHasher(cfg.BcryptCost), nil)

	_, err := auth.Register(ctx, usecase.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		IsAdmin:  true,
	})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		logger.Info("admin already exists", "email", cfg.AdminEmail)
		return nil
	case err != nil:
		return err
	}
	logger.Info("admin created", "email", cfg.AdminEmail)
	return nil
}

type seeder struct {
	brands repository.BrandRepository
	types  repository.VehicleTypeRepository
	models repository.VehicleModelRepository
	years  repository.VehicleYearRepository
	prices repository.PriceListRepository
}

func newSeeder(pool *pgxpool.Pool) *seeder {
	return &seeder{
		brands: postgres.NewBrandRepository(pool),
		types:  postgres.NewVehicleTypeRepository(pool),
		models: postgres.NewVehicleModelRepository(pool),
		years:  postgres.NewVehicleYearRepository(pool),
		prices: postgres.NewPriceListRepository(pool),
	}
}

var all = domain.PageRequest{Page: 1, Limit: domain.MaxLimit}

func seedCatalog(ctx context.Context, s *seeder) error {
	for brandName, types := range catalog {
		brand, err := findOrCreate(ctx, s.brands, domain.BrandFilter{Name: brandName},
			func(b *domain.Brand) bool { return b.Name == brandName },
			&domain.Brand{Name: brandName})
		if err != nil {
			return err
		}

		for _, ts := range types {
			vt, err := findOrCreate(ctx, s.types, domain.VehicleTypeFilter{BrandID: brand.ID},
				func(t *domain.VehicleType) bool { return t.Name == ts.name },
				&domain.VehicleType{Name: ts.name, BrandID: brand.ID})
			if err != nil {
				return err
			}

			for _, ms := range ts.models {
				model, err := findOrCreate(ctx, s.models, domain.VehicleModelFilter{Name: ms.name, TypeID: vt.ID},
					func(m *domain.VehicleModel) bool { return m.Name == ms.name },
					&domain.VehicleModel{Name: ms.name, TypeID: vt.ID})
				if err != nil {
					return err
				}

				for year, price := range ms.prices {
					y, err := findOrCreate(ctx, s.years, domain.VehicleYearFilter{Year: strconv.Itoa(year)},
						func(v *domain.VehicleYear) bool { return v.Year == year },
						&domain.VehicleYear{Year: year})
					if err != nil {
						return err
					}

					code := ms.name + "-" + strconv.Itoa(year)
					_, err = findOrCreate(ctx, s.prices, domain.PriceListFilter{YearID: &y.ID, ModelID: &model.ID},
						func(p *domain.PriceList) bool { return p.Code == code },
						&domain.PriceList{Code: code, Price: price, YearID: y.ID, ModelID: model.ID})
					if err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// findOrCreate returns the first listed row that matches, creating it
// otherwise. The sample catalog stays well under one page per filter.
func findOrCreate[T any, F any](ctx context.Context, repo repository.CatalogRepository[T, F], filter F, match func(*T) bool, item *T) (*T, error) {
	existing, _, err := repo.List(ctx, filter, all)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if match(e) {
			return e, nil
		}
	}
	return repo.Create(ctx, item)
}
