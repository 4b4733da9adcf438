package server

import (
	"net/http"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/transport/rest"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a resource's routes under the API group.
type RouteRegistrar interface {
	Register(rg *gin.RouterGroup)
}

type RouterConfig struct {
	Development    bool
	AllowedOrigins []string
	RateLimiter    *RateLimiter // nil disables rate limiting
}

// NewRouter builds the HTTP engine serving the catalog API under /api.
func NewRouter(cfg RouterConfig, log logger.ZapLogger, resources ...RouteRegistrar) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	rest.RegisterValidation()

	r := gin.New()
	r.Use(Recovery(log), RequestLogger(log), CORS(cfg.AllowedOrigins))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware())
	}

	api := r.Group("/api")
	api.GET("/health", Health)
	for _, res := range resources {
		res.Register(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: "Route not found"})
	})
	r.HandleMethodNotAllowed = false
	return r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, v1.HealthResponse{Status: "OK", Message: "Catalog API is running"})
}
