// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"

	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/dalemusser/clubdash/internal/app/system/paging"
	"go.uber.org/zap"
)

// ReportFetcher retrieves the club's membership report.
// *ourclub.Client satisfies it.
type ReportFetcher interface {
	FetchMembershipReport(ctx context.Context) (ourclub.Envelope, error)
}

// Handler serves the membership dashboard and its exports.
//
// Every request runs the whole flow again: fetch, tabulate, filter,
// aggregate. Nothing is kept between requests.
type Handler struct {
	Reports  ReportFetcher
	ClubID   string
	PageSize int
	Log      *zap.Logger
}

// NewHandler constructs a dashboard Handler. A non-positive pageSize uses
// paging.PageSize.
func NewHandler(reports ReportFetcher, clubID string, pageSize int, logger *zap.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = paging.PageSize
	}
	return &Handler{
		Reports:  reports,
		ClubID:   clubID,
		PageSize: pageSize,
		Log:      logger,
	}
}

// load fetches the report and builds the view for q.
func (h *Handler) load(ctx context.Context, q Query) (View, error) {
	env, err := h.Reports.FetchMembershipReport(ctx)
	if err != nil {
		return BuildView(nil, err, q, h.PageSize), err
	}
	return BuildView(&env, nil, q, h.PageSize), nil
}
