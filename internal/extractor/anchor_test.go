package extractor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gotender/internal/extractor"
	"github.com/jonesrussell/gotender/internal/logger"
	"github.com/jonesrussell/gotender/internal/models"
)

const baseURL = "https://tenders.example.org/listing/"

func extractAnchors(t *testing.T, html string) *extractor.Result {
	t.Helper()
	s := extractor.NewAnchorStrategy(logger.NewNopLogger())
	result, err := s.Extract(html, baseURL)
	require.NoError(t, err)
	return result
}

func TestAnchorExtract_DropsShortTitles(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p><a href="/t/1">eProcurement Notice: Road Works</a></p>
		<p><a href="/t/2">x</a></p>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	c := result.Candidates[0]
	assert.Equal(t, "https://tenders.example.org/t/1", c.Identity)
	assert.Equal(t, "eProcurement Notice: Road Works", c.Title)
}

func TestAnchorExtract_DeduplicatesByResolvedIdentity(t *testing.T) {
	t.Parallel()

	// A headline link and a "read more" link pointing at the same target.
	html := `<html><body><main>
		<div>
			<a href="/t/42">Supply of laboratory equipment</a>
			<a href="https://tenders.example.org/t/42">Read more details</a>
		</div>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Supply of laboratory equipment", result.Candidates[0].Title)
}

func TestAnchorExtract_DateFromParentText(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<div><a href="/t/7">Construction of boundary wall</a> closing 4 Sep 2025</div>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "4 Sep 2025", result.Candidates[0].Attr(models.AttrDate))
}

func TestAnchorExtract_DateFallsBackToRegion(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p>Published 12 August 2025</p>
		<div><a href="/t/8">Annual maintenance contract</a></div>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "12 August 2025", result.Candidates[0].Attr(models.AttrDate))
}

func TestAnchorExtract_NoDateYieldsAbsentAttribute(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<div><a href="/t/9">Catering services tender</a></div>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	assert.Empty(t, result.Candidates[0].Attr(models.AttrDate))
}

func TestAnchorExtract_SnippetExcludesTitleAndIsTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("filler ", 80) // well over 300 runes
	html := `<html><body><main>
		<div><a href="/t/10">Road resurfacing works</a> ` + long + `</div>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 1)
	snippet := result.Candidates[0].Attr(models.AttrSnippet)
	assert.NotContains(t, snippet, "Road resurfacing works")
	assert.LessOrEqual(t, len([]rune(snippet)), 300)
}

func TestAnchorExtract_RegionNarrowing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantRegion   string
		wantDegraded bool
		wantCount    int
	}{
		{
			name: "main region preferred",
			html: `<html><body>
				<nav><a href="/nav/about">About this portal</a></nav>
				<main><a href="/t/1">Water supply pipeline tender</a></main>
			</body></html>`,
			wantRegion: "main",
			wantCount:  1,
		},
		{
			name: "content id when no main",
			html: `<html><body>
				<nav><a href="/nav/about">About this portal</a></nav>
				<div id="content"><a href="/t/2">Electrical works tender</a></div>
			</body></html>`,
			wantRegion: "#content",
			wantCount:  1,
		},
		{
			name: "whole document fallback",
			html: `<html><body>
				<div><a href="/t/3">Security services tender</a></div>
			</body></html>`,
			wantRegion:   "document",
			wantDegraded: true,
			wantCount:    1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := extractAnchors(t, tt.html)
			assert.Equal(t, tt.wantRegion, result.Region)
			assert.Equal(t, tt.wantDegraded, result.Degraded)
			assert.Len(t, result.Candidates, tt.wantCount)
		})
	}
}

func TestAnchorExtract_PreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p><a href="/t/b">Second listing entry here</a></p>
		<p><a href="/t/a">First listing entry here</a></p>
	</main></body></html>`

	result := extractAnchors(t, html)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "https://tenders.example.org/t/b", result.Candidates[0].Identity)
	assert.Equal(t, "https://tenders.example.org/t/a", result.Candidates[1].Identity)
}
