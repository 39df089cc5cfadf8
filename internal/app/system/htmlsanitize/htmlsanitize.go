// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and attribute, keeping only text content.
var strict = bluemonday.StrictPolicy()

// maxNoticeLen bounds text shown to users from third-party responses.
const maxNoticeLen = 500

// PlainText reduces an upstream response body to a single line of readable
// text. HTML error pages come back as their text content; plain bodies pass
// through with whitespace collapsed.
func PlainText(body string) string {
	text := html.UnescapeString(strict.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxNoticeLen {
		cut := maxNoticeLen
		for cut > 0 && !isRuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "…"
	}
	return text
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
