package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-catalog/internal/auth"
	"github.com/maxviazov/storefront-catalog/internal/config"
	"github.com/maxviazov/storefront-catalog/internal/metrics"
	"github.com/maxviazov/storefront-catalog/internal/registry"
	"github.com/maxviazov/storefront-catalog/internal/service"
)

// Resource is an API module that mounts its routes on the versioned group.
type Resource = registry.Registrar[*gin.RouterGroup]

// Deps is everything the HTTP layer needs from the rest of the application.
type Deps struct {
	Pinger     Pinger
	Brands     service.BrandService
	Categories service.CategoryService
	Products   service.ProductService
	Schemes    *auth.Schemes
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	API        config.APIConfig
}

// NewRouter builds the engine: middleware, probes, metrics, docs, auth and,
// when the API is enabled, the catalog resources behind a permissive CORS policy.
func NewRouter(ctx context.Context, d Deps) (*gin.Engine, error) {
	if d.Metrics == nil {
		return nil, errors.New("metrics are required")
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(d.Logger), AccessLog(d.Logger), Metrics(d.Metrics))
	if err := Register(ctx, r, d); err != nil {
		return nil, err
	}
	return r, nil
}

// Register mounts all public routes on the given engine.
func Register(ctx context.Context, r *gin.Engine, d Deps) error {
	h := NewHealthHandler(d.Pinger)

	// Health probes
	r.GET(LivePath, h.Liveness)
	r.GET(ReadyPath, h.Readiness)

	if d.Metrics != nil {
		r.GET(MetricsPath, gin.WrapH(d.Metrics.Handler()))
	}
	RegisterDocs(r)

	if d.Schemes != nil {
		NewAuthHandler(d.Schemes).Register(r)
	}

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET(LivePath, h.Liveness)
			health.GET(ReadyPath, h.Readiness)
		}
	}
	if !d.API.Enabled {
		d.Logger.Info().Msg("catalog API disabled; only probes, metrics and auth are mounted")
		return nil
	}

	api.Use(permissiveCORS())
	resources := registry.New[*gin.RouterGroup]().Add(
		preflight,
		NewBrandHandler(d.Brands, d.Metrics),
		NewCategoryHandler(d.Categories, d.Metrics),
		NewProductHandler(d.Products, d.Metrics),
	)
	return resources.Apply(ctx, api)
}

// preflight gives OPTIONS requests a route to match; the CORS middleware
// answers them before this handler runs.
var preflight = registry.Func[*gin.RouterGroup]{
	Name:     "preflight",
	Priority: 0,
	Fn: func(_ context.Context, api *gin.RouterGroup) error {
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return nil
	},
}
