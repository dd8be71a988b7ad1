package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/repository"
)

type ListResult[T any] struct {
	Items []*T
	Page  domain.Page
}

// CatalogUsecase implements list/get/create/patch/delete for one catalog
// entity on top of its repository.
type CatalogUsecase[T any, F any] struct {
	name string
	repo repository.CatalogRepository[T, F]
}

func NewCatalogUsecase[T any, F any](name string, repo repository.CatalogRepository[T, F]) *CatalogUsecase[T, F] {
	return &CatalogUsecase[T, F]{name: name, repo: repo}
}

func (u *CatalogUsecase[T, F]) List(ctx context.Context, filter F, req domain.PageRequest) (*ListResult[T], error) {
	req = req.Normalize()

	items, total, err := u.repo.List(ctx, filter, req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", u.name, err)
	}
	return &ListResult[T]{Items: items, Page: domain.NewPage(req, total)}, nil
}

func (u *CatalogUsecase[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u.name, err)
	}
	return item, nil
}

func (u *CatalogUsecase[T, F]) Create(ctx context.Context, item *T) (*T, error) {
	created, err := u.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", u.name, err)
	}
	return created, nil
}

// Patch lets apply overwrite the fields present in the request on the
// current row; the repository reads and writes the row atomically.
func (u *CatalogUsecase[T, F]) Patch(ctx context.Context, id int64, apply func(*T)) (*T, error) {
	updated, err := u.repo.Update(ctx, id, apply)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", u.name, err)
	}
	return updated, nil
}

func (u *CatalogUsecase[T, F]) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", u.name, err)
	}
	return nil
}
