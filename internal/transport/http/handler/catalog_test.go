package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/vehicle-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog satisfies the handler's catalog service for any entity.
type fakeCatalog[T any, F any] struct {
	list   func(ctx context.Context, filter F, req domain.PageRequest) (*usecase.ListResult[T], error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, item *T) (*T, error)
	patch  func(ctx context.Context, id int64, apply func(*T)) (*T, error)
	delete func(ctx context.Context, id int64) error
}

func (f *fakeCatalog[T, F]) List(ctx context.Context, filter F, req domain.PageRequest) (*usecase.ListResult[T], error) {
	return f.list(ctx, filter, req)
}

func (f *fakeCatalog[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	return f.get(ctx, id)
}

func (f *fakeCatalog[T, F]) Create(ctx context.Context, item *T) (*T, error) {
	return f.create(ctx, item)
}

func (f *fakeCatalog[T, F]) Patch(ctx context.Context, id int64, apply func(*T)) (*T, error) {
	return f.patch(ctx, id, apply)
}

func (f *fakeCatalog[T, F]) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func brandEngine(svc *fakeCatalog[domain.Brand, domain.BrandFilter]) *gin.Engine {
	h := handler.NewBrandHandler(svc, testLogger())
	r := gin.New()
	r.GET("/api/VehicleBrand", h.List)
	r.GET("/api/VehicleBrand/:id", h.GetByID)
	r.POST("/api/VehicleBrand", h.Create)
	r.PATCH("/api/VehicleBrand/:id", h.Patch)
	r.DELETE("/api/VehicleBrand/:id", h.Delete)
	return r
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// ---- List ----

func TestBrandList_EnvelopeAndFilter(t *testing.T) {
	var gotFilter domain.BrandFilter
	var gotReq domain.PageRequest
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		list: func(_ context.Context, f domain.BrandFilter, req domain.PageRequest) (*usecase.ListResult[domain.Brand], error) {
			gotFilter, gotReq = f, req
			return &usecase.ListResult[domain.Brand]{
				Items: []*domain.Brand{{ID: 11, Name: "Audi", CreatedAt: now, UpdatedAt: now}},
				Page:  domain.NewPage(req, 25),
			}, nil
		},
	}

	w := do(brandEngine(svc), http.MethodGet, "/api/VehicleBrand?filter=au&page=2&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "au", gotFilter.Name)
	assert.Equal(t, domain.PageRequest{Page: 2, Limit: 10}, gotReq)

	body := decodeBody(t, w)
	meta := body["metadata"].(map[string]any)
	assert.EqualValues(t, 25, meta["total"])
	assert.EqualValues(t, 3, meta["totalPages"])
	assert.EqualValues(t, 3, meta["nextPage"])
	assert.EqualValues(t, 1, meta["prevPage"])
	assert.Equal(t, "Brands retrieved successfully.", body["message"])

	brands := body["brands"].([]any)
	require.Len(t, brands, 1)
	assert.Equal(t, "Audi", brands[0].(map[string]any)["name"])
}

func TestBrandList_DefaultsAndEmptyCollection(t *testing.T) {
	var gotReq domain.PageRequest
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		list: func(_ context.Context, _ domain.BrandFilter, req domain.PageRequest) (*usecase.ListResult[domain.Brand], error) {
			gotReq = req
			return &usecase.ListResult[domain.Brand]{Page: domain.NewPage(req, 0)}, nil
		},
	}

	w := do(brandEngine(svc), http.MethodGet, "/api/VehicleBrand", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, domain.PageRequest{Page: 1, Limit: 10}, gotReq)
	body := decodeBody(t, w)
	assert.Equal(t, []any{}, body["brands"])
	meta := body["metadata"].(map[string]any)
	assert.Nil(t, meta["nextPage"])
	assert.Nil(t, meta["prevPage"])
}

func TestBrandList_BadPagination_Returns400(t *testing.T) {
	for _, q := range []string{"page=0", "page=-1", "page=abc", "limit=0", "limit=101", "limit=x"} {
		t.Run(q, func(t *testing.T) {
			w := do(brandEngine(&fakeCatalog[domain.Brand, domain.BrandFilter]{}), http.MethodGet, "/api/VehicleBrand?"+q, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ---- Get / Delete ----

func TestBrandGet_NotFound_Returns404(t *testing.T) {
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		get: func(context.Context, int64) (*domain.Brand, error) {
			return nil, fmt.Errorf("get brands: %w", domain.ErrNotFound)
		},
	}
	w := do(brandEngine(svc), http.MethodGet, "/api/VehicleBrand/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrandGet_BadID_Returns400(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		w := do(brandEngine(&fakeCatalog[domain.Brand, domain.BrandFilter]{}), http.MethodGet, "/api/VehicleBrand/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}

func TestBrandDelete_InUse_Returns409(t *testing.T) {
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		delete: func(context.Context, int64) error {
			return fmt.Errorf("delete brands: %w", domain.ErrInUse)
		},
	}
	w := do(brandEngine(svc), http.MethodDelete, "/api/VehicleBrand/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBrandDelete_OK(t *testing.T) {
	var deleted int64
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		delete: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	w := do(brandEngine(svc), http.MethodDelete, "/api/VehicleBrand/4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, deleted)
	assert.Equal(t, "Brand deleted successfully.", decodeBody(t, w)["message"])
}

// ---- Create / Patch ----

func TestBrandCreate_Returns201(t *testing.T) {
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		create: func(_ context.Context, b *domain.Brand) (*domain.Brand, error) {
			b.ID = 1
			return b, nil
		},
	}
	w := do(brandEngine(svc), http.MethodPost, "/api/VehicleBrand", `{"name":"Volvo"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Volvo", data["name"])
	assert.EqualValues(t, 1, data["id"])
}

func TestBrandCreate_MissingName_Returns400(t *testing.T) {
	w := do(brandEngine(&fakeCatalog[domain.Brand, domain.BrandFilter]{}), http.MethodPost, "/api/VehicleBrand", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Contains(t, body["fields"], "name")
}

func TestBrandPatch_EmptyBodyKeepsFields(t *testing.T) {
	current := domain.Brand{ID: 3, Name: "Saab"}
	svc := &fakeCatalog[domain.Brand, domain.BrandFilter]{
		patch: func(_ context.Context, id int64, apply func(*domain.Brand)) (*domain.Brand, error) {
			assert.EqualValues(t, 3, id)
			b := current
			apply(&b)
			return &b, nil
		},
	}
	w := do(brandEngine(svc), http.MethodPatch, "/api/VehicleBrand/3", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Saab", decodeBody(t, w)["data"].(map[string]any)["name"])
}

func TestBrandPatch_EmptyNameRejected(t *testing.T) {
	w := do(brandEngine(&fakeCatalog[domain.Brand, domain.BrandFilter]{}), http.MethodPatch, "/api/VehicleBrand/3", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- Vehicle types ----

func typeEngine(svc *fakeCatalog[domain.VehicleType, domain.VehicleTypeFilter]) *gin.Engine {
	h := handler.NewVehicleTypeHandler(svc, testLogger())
	r := gin.New()
	r.GET("/api/VehicleType", h.List)
	r.POST("/api/VehicleType", h.Create)
	r.PATCH("/api/VehicleType/:id", h.Patch)
	return r
}

func TestVehicleTypeCreate_UnknownBrand_Returns400(t *testing.T) {
	svc := &fakeCatalog[domain.VehicleType, domain.VehicleTypeFilter]{
		create: func(context.Context, *domain.VehicleType) (*domain.VehicleType, error) {
			return nil, fmt.Errorf("create types: %w", &domain.ReferenceError{Field: "brandId"})
		},
	}
	w := do(typeEngine(svc), http.MethodPost, "/api/VehicleType", `{"name":"SUV","brandId":42}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid brandId provided.", decodeBody(t, w)["error"])
}

func TestVehicleTypeList_EmbedsBrandAndFiltersByBrand(t *testing.T) {
	var got domain.VehicleTypeFilter
	svc := &fakeCatalog[domain.VehicleType, domain.VehicleTypeFilter]{
		list: func(_ context.Context, f domain.VehicleTypeFilter, req domain.PageRequest) (*usecase.ListResult[domain.VehicleType], error) {
			got = f
			return &usecase.ListResult[domain.VehicleType]{
				Items: []*domain.VehicleType{{ID: 1, Name: "SUV", BrandID: 5, Brand: &domain.Brand{ID: 5, Name: "Audi"}}},
				Page:  domain.NewPage(req, 1),
			}, nil
		},
	}

	w := do(typeEngine(svc), http.MethodGet, "/api/VehicleType?brandId=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, got.BrandID)

	types := decodeBody(t, w)["types"].([]any)
	require.Len(t, types, 1)
	brand := types[0].(map[string]any)["brand"].(map[string]any)
	assert.Equal(t, "Audi", brand["name"])
}

func TestVehicleTypePatch_ChangesOnlyBrand(t *testing.T) {
	svc := &fakeCatalog[domain.VehicleType, domain.VehicleTypeFilter]{
		patch: func(_ context.Context, _ int64, apply func(*domain.VehicleType)) (*domain.VehicleType, error) {
			vt := &domain.VehicleType{ID: 2, Name: "Sedan", BrandID: 1}
			apply(vt)
			return vt, nil
		},
	}
	w := do(typeEngine(svc), http.MethodPatch, "/api/VehicleType/2", `{"brandId":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Sedan", data["name"])
	assert.EqualValues(t, 9, data["brandId"])
}

// ---- Vehicle years ----

func yearEngine(svc *fakeCatalog[domain.VehicleYear, domain.VehicleYearFilter]) *gin.Engine {
	h := handler.NewVehicleYearHandler(svc, testLogger())
	r := gin.New()
	r.POST("/api/VehicleYear", h.Create)
	r.PATCH("/api/VehicleYear/:id", h.Patch)
	return r
}

func TestVehicleYearCreate_Bounds(t *testing.T) {
	svc := &fakeCatalog[domain.VehicleYear, domain.VehicleYearFilter]{
		create: func(_ context.Context, y *domain.VehicleYear) (*domain.VehicleYear, error) { return y, nil },
	}
	next := time.Now().Year() + 1

	tests := map[int]int{
		domain.MinVehicleYear - 1: http.StatusBadRequest,
		domain.MinVehicleYear:     http.StatusCreated,
		next:                      http.StatusCreated,
		next + 1:                  http.StatusBadRequest,
	}
	for year, want := range tests {
		w := do(yearEngine(svc), http.MethodPost, "/api/VehicleYear", fmt.Sprintf(`{"year":%d}`, year))
		assert.Equal(t, want, w.Code, "year %d", year)
	}
}

func TestVehicleYearPatch_TooOld_ReportsMinimum(t *testing.T) {
	svc := &fakeCatalog[domain.VehicleYear, domain.VehicleYearFilter]{
		patch: func(context.Context, int64, func(*domain.VehicleYear)) (*domain.VehicleYear, error) {
			t.Fatal("patch must not run for an invalid year")
			return nil, nil
		},
	}

	w := do(yearEngine(svc), http.MethodPatch, "/api/VehicleYear/3", `{"year":1800}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields := decodeBody(t, w)["fields"].(map[string]any)
	assert.Equal(t, fmt.Sprintf("must be at least %d", domain.MinVehicleYear), fields["year"])
}

// ---- Price lists ----

func priceEngine(svc *fakeCatalog[domain.PriceList, domain.PriceListFilter]) *gin.Engine {
	h := handler.NewPriceListHandler(svc, testLogger())
	r := gin.New()
	r.GET("/api/PriceList", h.List)
	r.POST("/api/PriceList", h.Create)
	r.PATCH("/api/PriceList/:id", h.Patch)
	return r
}

func TestPriceListCreate_ZeroPriceAllowedNegativeRejected(t *testing.T) {
	svc := &fakeCatalog[domain.PriceList, domain.PriceListFilter]{
		create: func(_ context.Context, p *domain.PriceList) (*domain.PriceList, error) { return p, nil },
	}

	w := do(priceEngine(svc), http.MethodPost, "/api/PriceList", `{"code":"A1","price":0,"yearId":1,"modelId":2}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(priceEngine(svc), http.MethodPost, "/api/PriceList", `{"code":"A1","price":-1,"yearId":1,"modelId":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(priceEngine(svc), http.MethodPost, "/api/PriceList", `{"code":"A1","yearId":1,"modelId":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriceList_PriceAboveColumnRange_Returns400(t *testing.T) {
	svc := &fakeCatalog[domain.PriceList, domain.PriceListFilter]{
		create: func(_ context.Context, p *domain.PriceList) (*domain.PriceList, error) { return p, nil },
		patch: func(context.Context, int64, func(*domain.PriceList)) (*domain.PriceList, error) {
			t.Fatal("patch must not run for an out-of-range price")
			return nil, nil
		},
	}

	w := do(priceEngine(svc), http.MethodPost, "/api/PriceList", `{"code":"A1","price":2147483647,"yearId":1,"modelId":2}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(priceEngine(svc), http.MethodPost, "/api/PriceList", `{"code":"x","price":3000000000,"yearId":1,"modelId":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, "must be at most 2147483647", body["fields"].(map[string]any)["price"])

	w = do(priceEngine(svc), http.MethodPatch, "/api/PriceList/1", `{"price":2147483648}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriceListList_OptionalFilters(t *testing.T) {
	var got domain.PriceListFilter
	svc := &fakeCatalog[domain.PriceList, domain.PriceListFilter]{
		list: func(_ context.Context, f domain.PriceListFilter, req domain.PageRequest) (*usecase.ListResult[domain.PriceList], error) {
			got = f
			return &usecase.ListResult[domain.PriceList]{Page: domain.NewPage(req, 0)}, nil
		},
	}

	w := do(priceEngine(svc), http.MethodGet, "/api/PriceList?modelId=8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got.YearID)
	require.NotNil(t, got.ModelID)
	assert.EqualValues(t, 8, *got.ModelID)
	assert.Contains(t, decodeBody(t, w), "priceLists")
}

func TestCatalog_StorageFailure_Returns500(t *testing.T) {
	svc := &fakeCatalog[domain.PriceList, domain.PriceListFilter]{
		list: func(context.Context, domain.PriceListFilter, domain.PageRequest) (*usecase.ListResult[domain.PriceList], error) {
			return nil, fmt.Errorf("list priceLists: %w", context.DeadlineExceeded)
		},
	}
	w := do(priceEngine(svc), http.MethodGet, "/api/PriceList", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
}
