package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gotender/internal/logger"
	"github.com/jonesrussell/gotender/internal/models"
)

const (
	// minTitleRunes filters icon and spacer links: anchors with shorter
	// visible text are not content entries.
	minTitleRunes = 6
	// maxSnippetRunes caps the context snippet stored per candidate.
	maxSnippetRunes = 300
)

// dateRE matches date-shaped substrings like "4 Sep 2025".
var dateRE = regexp.MustCompile(`\d{1,2}\s+\w+\s+\d{4}`)

// AnchorStrategy extracts candidates from loosely structured pages by
// scanning hyperlinks within a narrowed content region.
type AnchorStrategy struct {
	logger logger.Logger
}

func NewAnchorStrategy(log logger.Logger) *AnchorStrategy {
	return &AnchorStrategy{logger: log}
}

func (s *AnchorStrategy) Name() string { return "anchor" }

// Extract scans all hyperlinks within the first matching content region
// (main, then #content, then the whole document), resolving each href
// against baseURL as the candidate identity. The first anchor per identity
// wins; later anchors pointing at the same target are duplicate "read more"
// links and are dropped.
func (s *AnchorStrategy) Extract(html, baseURL string) (*Result, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	region, regionName := contentRegion(doc)
	degraded := regionName == "document"
	if degraded {
		s.logger.Warn("No main or #content region found; scanning the whole document")
	}

	// Fallback input for date extraction when the anchor's own surroundings
	// carry no date.
	regionText := cleanText(region)

	seen := make(map[string]struct{})
	var candidates []models.Candidate

	region.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		title := cleanText(a)
		if utf8.RuneCountInString(title) < minTitleRunes {
			return
		}

		href, _ := a.Attr("href")
		identity := resolveRef(base, href)
		if identity == "" {
			s.logger.Debug("Skipping unresolvable href", logger.String("href", href))
			return
		}
		if _, dup := seen[identity]; dup {
			return
		}
		seen[identity] = struct{}{}

		parentText := title
		if p := a.Parent(); p.Length() > 0 {
			parentText = cleanText(p)
		}

		date := dateRE.FindString(parentText)
		if date == "" {
			date = dateRE.FindString(regionText)
		}

		snippet := truncateRunes(strings.TrimSpace(strings.ReplaceAll(parentText, title, "")), maxSnippetRunes)

		var attrs []models.Attribute
		if date != "" {
			attrs = append(attrs, models.Attribute{Key: models.AttrDate, Value: date})
		}
		if snippet != "" {
			attrs = append(attrs, models.Attribute{Key: models.AttrSnippet, Value: snippet})
		}

		candidates = append(candidates, models.Candidate{
			Identity: identity,
			Title:    title,
			Attrs:    attrs,
		})
	})

	return &Result{
		Candidates: candidates,
		Region:     regionName,
		Degraded:   degraded,
	}, nil
}

// contentRegion narrows extraction to the first of: a main element, an
// element with id "content", or the whole document.
func contentRegion(doc *goquery.Document) (*goquery.Selection, string) {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main, "main"
	}
	if content := doc.Find("#content").First(); content.Length() > 0 {
		return content, "#content"
	}
	return doc.Selection, "document"
}
