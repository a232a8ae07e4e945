// Package extractor turns raw listing markup into deduplicated candidate
// records. Two independent strategies cover the two listing shapes seen in
// the wild: loosely structured pages (anchor heuristics) and row/column
// listings (table extraction). Both tolerate unknown or changed markup by
// cascading to fallback selectors and reporting a degraded-mode signal
// instead of failing.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gotender/internal/models"
)

// Strategy extracts candidates from one document.
type Strategy interface {
	Name() string
	Extract(html, baseURL string) (*Result, error)
}

// Result is the outcome of one extraction pass.
type Result struct {
	Candidates []models.Candidate
	// Region names the selector or content region that actually matched,
	// e.g. "main" or "table tr". A confidence signal for the orchestrator.
	Region string
	// Degraded is true when the primary structural assumption about the
	// markup did not hold and a fallback path was used.
	Degraded bool
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// cleanText returns the selection's visible text with runs of whitespace
// collapsed to single spaces.
func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// resolveRef resolves href against the base URL and returns the absolute
// form, or "" when the href cannot be parsed.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
