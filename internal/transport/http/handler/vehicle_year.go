package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type VehicleYearHandler struct {
	routes catalogRoutes[domain.VehicleYear, domain.VehicleYearFilter, vehicleYearResponse]
}

func NewVehicleYearHandler(years catalogService[domain.VehicleYear, domain.VehicleYearFilter], logger *slog.Logger) *VehicleYearHandler {
	setupValidator()
	return &VehicleYearHandler{routes: catalogRoutes[domain.VehicleYear, domain.VehicleYearFilter, vehicleYearResponse]{
		svc:    years,
		res:    resource{name: "Vehicle year", plural: "Vehicle years", collection: "years"},
		view:   toVehicleYearResponse,
		logger: logger.With("component", "vehicle_year_handler"),
	}}
}

type vehicleYearListQuery struct {
	pageQuery
	Filter string `form:"filter" binding:"max=100"`
}

type createVehicleYearRequest struct {
	Year int `json:"year" binding:"required,minvehicleyear,notfutureyear"`
}

type patchVehicleYearRequest struct {
	Year *int `json:"year" binding:"omitnil,minvehicleyear,notfutureyear"`
}

type vehicleYearResponse struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toVehicleYearResponse(y *domain.VehicleYear) vehicleYearResponse {
	return vehicleYearResponse{ID: y.ID, Year: y.Year, CreatedAt: y.CreatedAt, UpdatedAt: y.UpdatedAt}
}

// GET /api/VehicleYear?filter=&page=&limit=
func (h *VehicleYearHandler) List(c *gin.Context) {
	var q vehicleYearListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, errInvalidQuery)
		return
	}
	h.routes.list(c, domain.VehicleYearFilter{Year: q.Filter}, q.pageQuery)
}

// GET /api/VehicleYear/:id
func (h *VehicleYearHandler) GetByID(c *gin.Context) {
	h.routes.get(c)
}

// POST /api/VehicleYear
func (h *VehicleYearHandler) Create(c *gin.Context) {
	var req createVehicleYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.create(c, &domain.VehicleYear{Year: req.Year})
}

// PATCH /api/VehicleYear/:id
func (h *VehicleYearHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchVehicleYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.patch(c, id, func(y *domain.VehicleYear) {
		if req.Year != nil {
			y.Year = *req.Year
		}
	})
}

// DELETE /api/VehicleYear/:id
func (h *VehicleYearHandler) Delete(c *gin.Context) {
	h.routes.delete(c)
}
