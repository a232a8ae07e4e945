package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gotender/internal/logger"
	"github.com/jonesrussell/gotender/internal/models"
)

const (
	primaryRowSelector  = "table.list_table tr"
	fallbackRowSelector = "table tr"
)

// Fixed column positions on the listing table. A row with fewer cells than
// an index yields an empty string for that field, never an error.
const (
	colTenderID     = 0
	colTitle        = 1
	colOrganisation = 2
	colClosingDate  = 4
)

// TableStrategy extracts candidates from row/column listings.
type TableStrategy struct {
	logger logger.Logger
}

func NewTableStrategy(log logger.Logger) *TableStrategy {
	return &TableStrategy{logger: log}
}

func (s *TableStrategy) Name() string { return "table" }

// Extract selects rows from the primary selector, falling back to a generic
// row selector when the primary yields zero rows or only a header row. The
// fallback path is a degraded-mode event, not an error. Identity is the
// first in-row hyperlink resolved absolute; rows without one share the empty
// identity and collide as unknown-identity duplicates.
func (s *TableStrategy) Extract(html, baseURL string) (*Result, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	region := primaryRowSelector
	degraded := false
	rows := doc.Find(primaryRowSelector)
	if rows.Length() <= 1 {
		rows = doc.Find(fallbackRowSelector)
		region = fallbackRowSelector
		degraded = true
		s.logger.Warn("Primary row selector returned no data rows; using fallback selector",
			logger.String("primary", primaryRowSelector),
			logger.Int("fallback_rows", rows.Length()),
		)
	}

	seen := make(map[string]struct{})
	var candidates []models.Candidate
	noIdentity := 0

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// Header or non-data row.
			return
		}

		cellText := func(i int) string {
			if i < cells.Length() {
				return cleanText(cells.Eq(i))
			}
			return ""
		}

		identity := ""
		if a := row.Find("a[href]").First(); a.Length() > 0 {
			href, _ := a.Attr("href")
			identity = resolveRef(base, href)
		}
		if identity == "" {
			noIdentity++
		}
		if _, dup := seen[identity]; dup {
			return
		}
		seen[identity] = struct{}{}

		var cellTexts []string
		cells.Each(func(_ int, td *goquery.Selection) {
			cellTexts = append(cellTexts, cleanText(td))
		})

		candidates = append(candidates, models.Candidate{
			Identity: identity,
			Title:    cellText(colTitle),
			Attrs: []models.Attribute{
				{Key: models.AttrTenderID, Value: cellText(colTenderID)},
				{Key: models.AttrOrganisation, Value: cellText(colOrganisation)},
				{Key: models.AttrClosingDate, Value: cellText(colClosingDate)},
				{Key: models.AttrExtraText, Value: strings.Join(cellTexts, " ")},
			},
		})
	})

	if noIdentity > 0 {
		s.logger.Warn("Rows without a resolvable link share the empty identity",
			logger.Int("rows", noIdentity))
	}

	return &Result{
		Candidates: candidates,
		Region:     region,
		Degraded:   degraded,
	}, nil
}
