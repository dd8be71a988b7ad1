package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	routes catalogRoutes[domain.Brand, domain.BrandFilter, brandResponse]
}

func NewBrandHandler(brands catalogService[domain.Brand, domain.BrandFilter], logger *slog.Logger) *BrandHandler {
	setupValidator()
	return &BrandHandler{routes: catalogRoutes[domain.Brand, domain.BrandFilter, brandResponse]{
		svc:    brands,
		res:    resource{name: "Brand", plural: "Brands", collection: "brands"},
		view:   toBrandResponse,
		logger: logger.With("component", "brand_handler"),
	}}
}

type brandListQuery struct {
	pageQuery
	Filter string `form:"filter" binding:"max=100"`
}

type createBrandRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type patchBrandRequest struct {
	Name *string `json:"name" binding:"omitnil,min=1,max=100"`
}

type brandResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBrandResponse(b *domain.Brand) brandResponse {
	return brandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// GET /api/VehicleBrand?filter=&page=&limit=
func (h *BrandHandler) List(c *gin.Context) {
	var q brandListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, errInvalidQuery)
		return
	}
	h.routes.list(c, domain.BrandFilter{Name: q.Filter}, q.pageQuery)
}

// GET /api/VehicleBrand/:id
func (h *BrandHandler) GetByID(c *gin.Context) {
	h.routes.get(c)
}

// POST /api/VehicleBrand
func (h *BrandHandler) Create(c *gin.Context) {
	var req createBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.create(c, &domain.Brand{Name: req.Name})
}

// PATCH /api/VehicleBrand/:id
func (h *BrandHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.patch(c, id, func(b *domain.Brand) {
		if req.Name != nil {
			b.Name = *req.Name
		}
	})
}

// DELETE /api/VehicleBrand/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	h.routes.delete(c)
}
