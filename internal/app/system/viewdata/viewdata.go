// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
)

// DefaultSiteName is shown when no site name is configured.
const DefaultSiteName = "Club Dashboard"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	}
type BaseVM struct {
	SiteName string
	ClubID   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

var (
	siteName = DefaultSiteName
	clubID   string
)

// Init sets the site-wide values shown in the page chrome.
// Call this once at startup from bootstrap.
func Init(name, club string) {
	if name != "" {
		siteName = name
	}
	clubID = club
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    siteName,
		ClubID:      clubID,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
}
