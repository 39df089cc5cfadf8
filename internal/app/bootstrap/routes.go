// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/clubdash/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/clubdash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/clubdash/internal/app/features/health"
	"github.com/dalemusser/clubdash/internal/app/system/fetchmetrics"
	"github.com/dalemusser/clubdash/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup and Startup have
// completed. The dashboard is the home page; health and static assets sit
// beside it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps.Reports, deps.Limiter, deps.Metrics, logger), nil
}

// newRouter mounts the feature routers. It is split from BuildHandler so
// the routing can be exercised without a template engine.
func newRouter(appCfg AppConfig, reports dashboardfeature.ReportFetcher, limiter *ratelimit.Limiter, metrics *fetchmetrics.Recorder, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Set before mounting so sub-routers inherit them.
	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(appCfg.ClubID, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint; every fetch below goes through the recorder.
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler())
		reports = metrics.Instrument(reports)
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Membership dashboard, CSV export and JSON summary.
	// Each of these fetches the report, so they share the per-IP limit.
	dashboardHandler := dashboardfeature.NewHandler(reports, appCfg.ClubID, appCfg.DetailPageSize, logger)
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(ratelimit.Middleware(limiter, appCfg.TrustProxyHeaders, logger))
		}
		dash := dashboardfeature.Routes(dashboardHandler, appCfg.CORSOrigins)
		dash.NotFound(errorsHandler.NotFound)
		dash.MethodNotAllowed(errorsHandler.MethodNotAllowed)
		r.Mount("/", dash)
	})

	return r
}
