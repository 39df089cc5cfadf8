// internal/app/bootstrap/appconfig.go
package bootstrap

import "github.com/dalemusser/clubdash/internal/app/system/ourclub"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers the HTTP server, logging and environment.
// AppConfig carries what is specific to the dashboard: the OurClub
// credential bundle and a few presentation settings. It is built once at
// startup and passed by value to every hook; nothing reads secrets from
// the environment after LoadConfig returns.
type AppConfig struct {
	// OurClub reports API
	APIKey    string // X-Api-Key header value
	ClientKey string // X-Api-ClientKey header value
	ClubID    string // club identifier in the report path
	BaseURL   string // reports host (default https://consultas.ourclub.io)

	// Presentation
	SiteName       string   // shown in the page header
	DetailPageSize int      // rows per page in the member detail table
	CORSOrigins    []string // origins allowed to read /summary.json

	// Upstream protection
	FetchRateLimit    int  // report-fetching requests per client IP per minute; 0 disables
	TrustProxyHeaders bool // take the client IP from X-Forwarded-For / X-Real-IP

	// Observability
	MetricsEnabled bool // serve Prometheus fetch metrics at /metrics
}

// Credentials returns the credential bundle handed to the reports client.
func (c AppConfig) Credentials() ourclub.Credentials {
	return ourclub.Credentials{
		APIKey:    c.APIKey,
		ClientKey: c.ClientKey,
		ClubID:    c.ClubID,
	}
}
