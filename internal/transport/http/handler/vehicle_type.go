package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type VehicleTypeHandler struct {
	routes catalogRoutes[domain.VehicleType, domain.VehicleTypeFilter, vehicleTypeResponse]
}

func NewVehicleTypeHandler(types catalogService[domain.VehicleType, domain.VehicleTypeFilter], logger *slog.Logger) *VehicleTypeHandler {
	setupValidator()
	return &VehicleTypeHandler{routes: catalogRoutes[domain.VehicleType, domain.VehicleTypeFilter, vehicleTypeResponse]{
		svc:    types,
		res:    resource{name: "Vehicle type", plural: "Vehicle types", collection: "types"},
		view:   toVehicleTypeResponse,
		logger: logger.With("component", "vehicle_type_handler"),
	}}
}

type vehicleTypeListQuery struct {
	pageQuery
	BrandID int64 `form:"brandId" binding:"omitempty,gt=0"`
}

type createVehicleTypeRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	BrandID int64  `json:"brandId" binding:"required,gt=0"`
}

type patchVehicleTypeRequest struct {
	Name    *string `json:"name" binding:"omitnil,min=1,max=100"`
	BrandID *int64  `json:"brandId" binding:"omitnil,gt=0"`
}

type vehicleTypeResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	BrandID   int64          `json:"brandId"`
	Brand     *brandResponse `json:"brand,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toVehicleTypeResponse(t *domain.VehicleType) vehicleTypeResponse {
	resp := vehicleTypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		BrandID:   t.BrandID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Brand != nil {
		brand := toBrandResponse(t.Brand)
		resp.Brand = &brand
	}
	return resp
}

// GET /api/VehicleType?brandId=&page=&limit=
func (h *VehicleTypeHandler) List(c *gin.Context) {
	var q vehicleTypeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, errInvalidQuery)
		return
	}
	h.routes.list(c, domain.VehicleTypeFilter{BrandID: q.BrandID}, q.pageQuery)
}

// GET /api/VehicleType/:id
func (h *VehicleTypeHandler) GetByID(c *gin.Context) {
	h.routes.get(c)
}

// POST /api/VehicleType
func (h *VehicleTypeHandler) Create(c *gin.Context) {
	var req createVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.create(c, &domain.VehicleType{Name: req.Name, BrandID: req.BrandID})
}

// PATCH /api/VehicleType/:id
func (h *VehicleTypeHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.patch(c, id, func(t *domain.VehicleType) {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.BrandID != nil {
			t.BrandID = *req.BrandID
		}
	})
}

// DELETE /api/VehicleType/:id
func (h *VehicleTypeHandler) Delete(c *gin.Context) {
	h.routes.delete(c)
}
