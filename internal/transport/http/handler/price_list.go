package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type PriceListHandler struct {
	routes catalogRoutes[domain.PriceList, domain.PriceListFilter, priceListResponse]
}

func NewPriceListHandler(prices catalogService[domain.PriceList, domain.PriceListFilter], logger *slog.Logger) *PriceListHandler {
	setupValidator()
	return &PriceListHandler{routes: catalogRoutes[domain.PriceList, domain.PriceListFilter, priceListResponse]{
		svc:    prices,
		res:    resource{name: "Price list", plural: "Price lists", collection: "priceLists"},
		view:   toPriceListResponse,
		logger: logger.With("component", "price_list_handler"),
	}}
}

type priceListQuery struct {
	pageQuery
	YearID  *int64 `form:"yearId" binding:"omitnil,gt=0"`
	ModelID *int64 `form:"modelId" binding:"omitnil,gt=0"`
}

type createPriceListRequest struct {
	Code    string `json:"code" binding:"required,max=50"`
	Price   *int   `json:"price" binding:"required,gte=0,max=2147483647"`
	YearID  int64  `json:"yearId" binding:"required,gt=0"`
	ModelID int64  `json:"modelId" binding:"required,gt=0"`
}

type patchPriceListRequest struct {
	Code    *string `json:"code" binding:"omitnil,min=1,max=50"`
	Price   *int    `json:"price" binding:"omitnil,gte=0,max=2147483647"`
	YearID  *int64  `json:"yearId" binding:"omitnil,gt=0"`
	ModelID *int64  `json:"modelId" binding:"omitnil,gt=0"`
}

type priceListResponse struct {
	ID        int64                 `json:"id"`
	Code      string                `json:"code"`
	Price     int                   `json:"price"`
	YearID    int64                 `json:"yearId"`
	Year      *vehicleYearResponse  `json:"year,omitempty"`
	ModelID   int64                 `json:"modelId"`
	Model     *vehicleModelResponse `json:"model,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func toPriceListResponse(p *domain.PriceList) priceListResponse {
	resp := priceListResponse{
		ID:        p.ID,
		Code:      p.Code,
		Price:     p.Price,
		YearID:    p.YearID,
		ModelID:   p.ModelID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Year != nil {
		year := toVehicleYearResponse(p.Year)
		resp.Year = &year
	}
	if p.Model != nil {
		model := toVehicleModelResponse(p.Model)
		resp.Model = &model
	}
	return resp
}

// GET /api/PriceList?yearId=&modelId=&page=&limit=
func (h *PriceListHandler) List(c *gin.Context) {
	var q priceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, errInvalidQuery)
		return
	}
	h.routes.list(c, domain.PriceListFilter{YearID: q.YearID, ModelID: q.ModelID}, q.pageQuery)
}

// GET /api/PriceList/:id
func (h *PriceListHandler) GetByID(c *gin.Context) {
	h.routes.get(c)
}

// POST /api/PriceList
func (h *PriceListHandler) Create(c *gin.Context) {
	var req createPriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.create(c, &domain.PriceList{
		Code:    req.Code,
		Price:   *req.Price,
		YearID:  req.YearID,
		ModelID: req.ModelID,
	})
}

// PATCH /api/PriceList/:id
func (h *PriceListHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req patchPriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, errInvalidBody)
		return
	}
	h.routes.patch(c, id, func(p *domain.PriceList) {
		if req.Code != nil {
			p.Code = *req.Code
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.YearID != nil {
			p.YearID = *req.YearID
		}
		if req.ModelID != nil {
			p.ModelID = *req.ModelID
		}
	})
}

// DELETE /api/PriceList/:id
func (h *PriceListHandler) Delete(c *gin.Context) {
	h.routes.delete(c)
}
