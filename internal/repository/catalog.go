package repository

import (
	"context"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
)

// CatalogRepository is the storage contract shared by every catalog entity.
// T is the entity, F its list filter.
//
// List returns one page of items plus the filtered total. GetByID, Update
// and Delete return domain.ErrNotFound for unknown ids. Update hands the
// current row to apply and stores the result atomically, so concurrent
// updates of one row never lose each other's changes. Create and Update
// return a *domain.ReferenceError when a foreign key points nowhere; Delete
// returns domain.ErrInUse when other rows still reference the entity.
type CatalogRepository[T any, F any] interface {
	List(ctx context.Context, filter F, page domain.PageRequest) ([]*T, int, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id int64, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type (
	BrandRepository        = CatalogRepository[domain.Brand, domain.BrandFilter]
	VehicleTypeRepository  = CatalogRepository[domain.VehicleType, domain.VehicleTypeFilter]
	VehicleModelRepository = CatalogRepository[domain.VehicleModel, domain.VehicleModelFilter]
	VehicleYearRepository  = CatalogRepository[domain.VehicleYear, domain.VehicleYearFilter]
	PriceListRepository    = CatalogRepository[domain.PriceList, domain.PriceListFilter]
)
