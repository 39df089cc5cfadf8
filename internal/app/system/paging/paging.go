// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in the member detail table.
const PageSize = 50

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ClampStart pulls start back onto the last page when it points past total,
// so a stale link after a narrower filter still shows rows.
func ClampStart(start, total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if start < 1 || total == 0 {
		return 1
	}
	if start > total {
		return ((total-1)/pageSize)*pageSize + 1
	}
	return start
}

// Result holds prev/next indicators for an offset page.
type Result struct {
	HasPrev bool
	HasNext bool
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
}

// ComputeRange calculates display range values given the current start index,
// the number of items shown and the page size.
func ComputeRange(start, shown, pageSize int) Range {
	if shown == 0 {
		return Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}
	}

	prevStart := start - pageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
	}
}

// Indicators reports whether pages exist before and after the given window
// over a list of total rows.
func Indicators(start, shown, total int) Result {
	return Result{
		HasPrev: start > 1 && total > 0,
		HasNext: start+shown-1 < total,
	}
}
