// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/clubdash/internal/app/system/fetchmetrics"
	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/dalemusser/clubdash/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds the backend dependencies for the app.
// The dashboard has no database; its only backend is the reports API.
type Deps struct {
	Reports *ourclub.Client

	// Limiter throttles requests that trigger a report fetch.
	// Nil when fetch_rate_limit is 0.
	Limiter *ratelimit.Limiter

	// Metrics observes every report fetch. Nil when metrics_enabled is false.
	Metrics *fetchmetrics.Recorder
}

// ConnectDB builds the reports client from the validated credentials.
// It performs no network I/O; the first request happens on the first page
// load.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	client := ourclub.NewClient(appCfg.Credentials(), appCfg.BaseURL, logger.Named("ourclub"))
	logger.Info("OurClub reports client ready",
		zap.String("club_id", appCfg.ClubID),
		zap.String("report_url", client.ReportURL()))

	deps := Deps{Reports: client}
	if appCfg.FetchRateLimit > 0 {
		deps.Limiter = ratelimit.New(appCfg.FetchRateLimit, time.Minute)
		logger.Info("report fetch rate limit enabled", zap.Int("per_minute", appCfg.FetchRateLimit))
	}
	if appCfg.MetricsEnabled {
		deps.Metrics = fetchmetrics.New()
	}
	return deps, nil
}

// EnsureSchema is a no-op: nothing is persisted.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
