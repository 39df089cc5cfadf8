// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown releases idle connections to the reports API and stops the
// rate limiter's cleanup loop.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if deps.Limiter != nil {
		deps.Limiter.Close()
	}
	if deps.Reports != nil {
		logger.Info("closing OurClub reports client")
		deps.Reports.Close()
	}
	return nil
}
