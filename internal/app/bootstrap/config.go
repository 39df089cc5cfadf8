// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/dalemusser/clubdash/internal/app/system/paging"
	"github.com/dalemusser/clubdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: ourclub_api_key, club_id, etc.
//   - Environment variables: CLUBDASH_OURCLUB_API_KEY, CLUBDASH_CLUB_ID, etc.
//   - Command-line flags: --ourclub_api_key, --club_id, etc.
var appConfigKeys = []config.AppKey{
	// Credentials have no defaults; ValidateConfig refuses to start without them.
	{Name: ourclub.KeyAPIKey, Default: "", Desc: "OurClub X-Api-Key (required)"},
	{Name: ourclub.KeyClientKey, Default: "", Desc: "OurClub X-Api-ClientKey (required)"},
	{Name: ourclub.KeyClubID, Default: "", Desc: "OurClub club identifier (required)"},
	{Name: "ourclub_base_url", Default: ourclub.DefaultBaseURL, Desc: "OurClub reports API base URL"},

	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Site name shown in the header"},
	{Name: "detail_page_size", Default: paging.PageSize, Desc: "Rows per page in the member detail table"},
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated origins allowed to read /summary.json"},
	{Name: "fetch_rate_limit", Default: 30, Desc: "Report-fetching requests per client IP per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)"},
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus report fetch metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// CLUBDASH_* environment variables and flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLUBDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	// Trim credentials so a pasted trailing newline does not turn into a 401.
	appCfg := AppConfig{
		APIKey:    strings.TrimSpace(appValues.String(ourclub.KeyAPIKey)),
		ClientKey: strings.TrimSpace(appValues.String(ourclub.KeyClientKey)),
		ClubID:    strings.TrimSpace(appValues.String(ourclub.KeyClubID)),
		BaseURL:   strings.TrimSpace(appValues.String("ourclub_base_url")),

		SiteName:          appValues.String("site_name"),
		DetailPageSize:    appValues.Int("detail_page_size"),
		CORSOrigins:       splitList(appValues.String("cors_allowed_origins")),
		FetchRateLimit:    appValues.Int("fetch_rate_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),
		MetricsEnabled:    appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A missing credential is fatal: the error wraps ourclub.ErrConfigMissing
// and names every absent key, and WAFFLE aborts before any fetch happens.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if missing := appCfg.Credentials().Missing(); len(missing) > 0 {
		err := ourclub.MissingConfigError(missing)
		logger.Error("required configuration missing", zap.Strings("keys", missing))
		return err
	}

	if appCfg.BaseURL != "" {
		u, err := url.Parse(appCfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			logger.Error("invalid OurClub base URL", zap.String("base_url", appCfg.BaseURL))
			return fmt.Errorf("invalid ourclub_base_url %q", appCfg.BaseURL)
		}
	}

	if appCfg.DetailPageSize < 1 {
		return fmt.Errorf("detail_page_size must be positive, got %d", appCfg.DetailPageSize)
	}
	if appCfg.FetchRateLimit < 0 {
		return fmt.Errorf("fetch_rate_limit must not be negative, got %d", appCfg.FetchRateLimit)
	}

	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
