// internal/app/system/ourclub/client.go
package ourclub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the OurClub reports host.
const DefaultBaseURL = "https://consultas.ourclub.io"

// ReportRequest is the fixed filter payload sent with every personas fetch.
type ReportRequest struct {
	IncludeCSV        bool `json:"csv"`
	ActiveMembersOnly bool `json:"socio_vigente"`
}

// DefaultReportRequest asks for JSON (not CSV) and active members only.
func DefaultReportRequest() ReportRequest {
	return ReportRequest{IncludeCSV: false, ActiveMembersOnly: true}
}

// Client calls the OurClub reports API for a single club.
//
// HTTP has no timeout of its own. A fetch is bounded by the context of the
// page request that triggered it and is never retried.
type Client struct {
	Creds   Credentials
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewClient builds a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(creds Credentials, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		Creds:   creds,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Log:     logger,
	}
}

// ReportURL returns the personas endpoint for the configured club.
func (c *Client) ReportURL() string {
	return c.BaseURL + "/" + url.PathEscape(c.Creds.ClubID) + "/personas"
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", c.Creds.APIKey)
	req.Header.Set("X-Api-ClientKey", c.Creds.ClientKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// FetchMembershipReport issues one POST for the club's personas report.
//
// A 200 answer is decoded into an Envelope. Any other status yields a
// *ServerError carrying the status and body text; transport and decode
// failures yield a *ConnectionError.
func (c *Client) FetchMembershipReport(ctx context.Context) (Envelope, error) {
	log := c.Log.With(
		zap.String("fetch_id", uuid.NewString()),
		zap.String("club_id", c.Creds.ClubID),
	)

	body, err := json.Marshal(DefaultReportRequest())
	if err != nil {
		return Envelope{}, &ConnectionError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ReportURL(), bytes.NewReader(body))
	if err != nil {
		log.Error("build personas request failed", zap.Error(err))
		return Envelope{}, &ConnectionError{Message: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warn("personas request failed", zap.Error(err))
		return Envelope{}, &ConnectionError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, readErr := io.ReadAll(resp.Body)
		text := strings.TrimSpace(string(b))
		if readErr != nil {
			log.Warn("read personas error body failed",
				zap.Int("status", resp.StatusCode),
				zap.Error(readErr))
			text = strings.TrimSpace(text + " (respuesta incompleta: " + readErr.Error() + ")")
		}
		if resp.StatusCode == http.StatusInternalServerError {
			log.Error("personas report returned 500", zap.String("body", text))
		} else {
			log.Warn("personas report returned non-200",
				zap.Int("status", resp.StatusCode),
				zap.String("body", text))
		}
		return Envelope{}, &ServerError{Status: resp.StatusCode, Body: text}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Warn("decode personas report failed", zap.Error(err))
		return Envelope{}, &ConnectionError{Message: "malformed response: " + err.Error()}
	}

	log.Info("personas report fetched",
		zap.Int("records", env.Len()),
		zap.Int("invalid", env.InvalidCount()))
	return env, nil
}

// Close releases idle upstream connections.
func (c *Client) Close() {
	if c.HTTP != nil {
		c.HTTP.CloseIdleConnections()
	}
}
