package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type VehicleModelHandler struct {
	routes catalogRoutes[domain.VehicleModel, domain.VehicleModelFilter, vehicleModelResponse]
}

func NewVehicleModelHandler(models catalogService[domain.VehicleModel, domain.VehicleModelFilter], logger *slog.Logger) *VehicleModelHandler {
	setupValidator()
	return &VehicleModelHandler{routes: catalogRoutes[domain.VehicleModel, domain.VehicleModelFilter, vehicleModelResponse]{
		svc:    models,
		res:    resource{name: "Vehicle model", plural: "Vehicle models", collection: "models"},
		view:   toVehicleModelResponse,
		logger: logger.With("component", "vehicle_model_handler"),
	}}
}

type vehicleModelListQuery struct {
	pageQuery
	Filter string `form:"filter" binding:"max=100"`
	TypeID int64  `form:"typeId" binding:"omitempty,gt=0"`
}

type createVehicleModelRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	TypeID int64  `json:"typeId" binding:"required,gt=0"`
}

type patchVehicleModelRequest struct {
	Name   *string `json:"name" binding:"omitnil,min=1,max=100"`
	TypeID *int64  `json:"typeId" binding:"omitnil,gt=0"`
}

type vehicleModelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TypeID    int64     `json:"typeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toVehicleModelResponse(m *domain.VehicleModel) vehicleModelResponse {
	return vehicleModelResponse{
		ID:        m.ID,
		Name:      m.Name,
		TypeID:    m.TypeID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GET /api/VehicleModel?filter=&typeId=&page=&limit=
func (h *VehicleModelHandler) List(c *gin.Context) {
	var q vehicleModelListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, errInvalidQuery)
		return
	}
	h.routes.list(c, domain.VehicleModelFilter{Name: q.Filter, TypeID: q.TypeID}, q.pageQuery)
}

// GET /api/VehicleModel/:id
func (h *VehicleModelHandler) GetByID(c *gin.Context) {
	h.routes.get(c)
}

// POST /api/VehicleModel
func (h *VehicleModelHandler) Create(c *gin.Context) {
	var req createVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.create(c, &domain.VehicleModel{Name: req.Name, TypeID: req.TypeID})
}

// PATCH /api/VehicleModel/:id
func (h *VehicleModelHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.patch(c, id, func(m *domain.VehicleModel) {
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.TypeID != nil {
			m.TypeID = *req.TypeID
		}
	})
}

// DELETE /api/VehicleModel/:id
func (h *VehicleModelHandler) Delete(c *gin.Context) {
	h.routes.delete(c)
}
