package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/vehicle-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Brands        *handler.BrandHandler
	VehicleTypes  *handler.VehicleTypeHandler
	VehicleModels *handler.VehicleModelHandler
	VehicleYears  *handler.VehicleYearHandler
	PriceLists    *handler.PriceListHandler
}

type Options struct {
	// HSTS enables Strict-Transport-Security; off for local plain HTTP.
	HSTS bool
}

type crudHandler interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

func NewRouter(logger *slog.Logger, tokens middleware.TokenVerifier, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(opts.HSTS))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	api := r.Group("/api")

	authn := api.Group("/authentication")
	authn.POST("/register", h.Auth.Register)
	authn.POST("/login", h.Auth.Login)
	authn.GET("/user", h.Auth.User)
	authn.POST("/logout", h.Auth.Logout)

	adminOnly := []gin.HandlerFunc{middleware.Auth(tokens), middleware.RequireRole(domain.RoleAdmin)}

	mountCatalog(api.Group("/VehicleBrand"), h.Brands, adminOnly)
	mountCatalog(api.Group("/VehicleType"), h.VehicleTypes, adminOnly)
	mountCatalog(api.Group("/VehicleModel"), h.VehicleModels, adminOnly)
	mountCatalog(api.Group("/VehicleYear"), h.VehicleYears, adminOnly)
	mountCatalog(api.Group("/PriceList"), h.PriceLists, adminOnly)

	return r
}

// mountCatalog serves reads anonymously and guards writes with admin.
func mountCatalog(g *gin.RouterGroup, h crudHandler, admin []gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)

	writes := g.Group("", admin...)
	writes.POST("", h.Create)
	writes.PATCH("/:id", h.Patch)
	writes.DELETE("/:id", h.Delete)
}
