package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLCleaner strips clutter from pasted job-board markup before it is
// handed to a completion provider, so the prompt window is spent on
// content rather than scripts and chrome.
type HTMLCleaner struct {
	removeTags []string
}

// NewHTMLCleaner creates a new HTML cleaner instance
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"svg", "path", "g", "defs", "use", "symbol",
			"meta", "link", "base",
		},
	}
}

var excessWhitespace = regexp.MustCompile(`\s{3,}`)

// Clean removes non-content elements and collapses whitespace. The result is
// still HTML: listing structure (headings, list items, anchors) carries
// signal the extraction prompt relies on.
func (hc *HTMLCleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range hc.removeTags {
		doc.Find(tag).Remove()
	}

	cleaned, err := doc.Html()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(excessWhitespace.ReplaceAllString(cleaned, " ")), nil
}

// StripMarkup reduces an HTML fragment to its text content with entities
// decoded. Used for feed item descriptions that arrive as embedded markup.
func StripMarkup(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
