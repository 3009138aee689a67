package http

import (
	"log/slog"
	"net/http"

	"github.com/canfly/subdomain-router/internal/api/http/handler"
	"github.com/canfly/subdomain-router/internal/api/http/middleware"
	"github.com/canfly/subdomain-router/internal/catalog"
	"github.com/canfly/subdomain-router/internal/metrics"
	"github.com/canfly/subdomain-router/internal/subdomain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Catalog   *catalog.Catalog
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Subdomain subdomain.Config
}

func SetupRoute(engine *gin.Engine, srvs *Services) {
	engine.Use(middleware.SubdomainExtractor())
	engine.Use(middleware.RequestLogger())

	dispatch := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
	if srvs.Catalog != nil {
		serviceHandler := handler.NewServiceHandler(srvs.Catalog, srvs.Subdomain.PathMarker)
		dispatch = serviceHandler.Dispatch
	}

	// Router endpoints belong to the root host; a subdomain request for the
	// same path is a service request.
	root := engine.Group("/", middleware.RootHostOnly(dispatch))

	healthHandler := handler.NewHealthHandler(srvs.Catalog)
	root.GET("/health", healthHandler.Check)

	if srvs.Gatherer != nil {
		root.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srvs.Gatherer, promhttp.HandlerOpts{})))
	}

	// Everything not matched above is a service request, already
	// normalized by subdomain.Middleware.
	engine.NoRoute(dispatch)
}

// NewHandler puts subdomain resolution in front of the engine so that gin
// routes on the rewritten path.
func NewHandler(engine *gin.Engine, srvs *Services) http.Handler {
	return subdomain.Middleware(srvs.Subdomain,
		subdomain.WithLogger(slog.Default()),
		subdomain.WithMetrics(srvs.Metrics),
	)(engine)
}
