package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// catalogService is the subset of usecase.CatalogUsecase the catalog
// handlers need. Defined here so tests can inject a fake.
type catalogService[T any, F any] interface {
	List(ctx context.Context, filter F, req domain.PageRequest) (*usecase.ListResult[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Patch(ctx context.Context, id int64, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// resource names one catalog entity in messages and in the list body.
type resource struct {
	name       string // "Vehicle type"
	plural     string // "Vehicle types"
	collection string // "types"
}

// catalogRoutes carries the request flow shared by every catalog entity:
// T is the domain type, F its filter and V its JSON view.
type catalogRoutes[T any, F any, V any] struct {
	svc    catalogService[T, F]
	res    resource
	view   func(*T) V
	logger *slog.Logger
}

func (r catalogRoutes[T, F, V]) list(c *gin.Context, filter F, page pageQuery) {
	result, err := r.svc.List(c.Request.Context(), filter, page.request())
	if err != nil {
		writeCatalogError(c, r.logger, r.res.name, "list "+r.res.collection, err)
		return
	}

	items := make([]V, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, r.view(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        r.res.plural + " retrieved successfully.",
		"metadata":       toMetadata(result.Page),
		r.res.collection: items,
	})
}

func (r catalogRoutes[T, F, V]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := r.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, r.logger, r.res.name, "get "+r.res.collection, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.res.name + " retrieved successfully.", "data": r.view(item)})
}

func (r catalogRoutes[T, F, V]) create(c *gin.Context, item *T) {
	created, err := r.svc.Create(c.Request.Context(), item)
	if err != nil {
		writeCatalogError(c, r.logger, r.res.name, "create "+r.res.collection, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": r.res.name + " created successfully.", "data": r.view(created)})
}

func (r catalogRoutes[T, F, V]) patch(c *gin.Context, id int64, apply func(*T)) {
	updated, err := r.svc.Patch(c.Request.Context(), id, apply)
	if err != nil {
		writeCatalogError(c, r.logger, r.res.name, "patch "+r.res.collection, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.res.name + " updated successfully.", "data": r.view(updated)})
}

func (r catalogRoutes[T, F, V]) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := r.svc.Delete(c.Request.Context(), id); err != nil {
		writeCatalogError(c, r.logger, r.res.name, "delete "+r.res.collection, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.res.name + " deleted successfully."})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}
