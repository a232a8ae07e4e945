// Package models defines shared data structures for the tender notifier.
package models

import (
	"strings"
	"time"
)

// Well-known attribute keys produced by the extraction strategies. Presence
// depends on the source layout; absence is valid.
const (
	AttrDate         = "date"
	AttrSnippet      = "snippet"
	AttrTenderID     = "tender_id"
	AttrOrganisation = "organisation"
	AttrClosingDate  = "closing_date"
	AttrExtraText    = "extra_text"
)

// Attribute is a single named optional field on a candidate. Attributes keep
// extraction order, which is why Candidate carries a slice and not a map.
type Attribute struct {
	Key   string
	Value string
}

// Candidate is one listing entry extracted from a document, before relevance
// filtering. Created fresh on every extraction pass and never mutated; only
// its projection (SeenEntry) is persisted.
type Candidate struct {
	Identity string // resolved absolute link, or provided id; dedup key
	Title    string
	Attrs    []Attribute
}

// Attr returns the value of the named attribute, or "" when absent.
func (c Candidate) Attr(key string) string {
	for _, a := range c.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// SearchText concatenates the title and all attribute values. This is the
// text the relevance filter matches keywords against.
func (c Candidate) SearchText() string {
	parts := make([]string, 0, len(c.Attrs)+1)
	parts = append(parts, c.Title)
	for _, a := range c.Attrs {
		if a.Value != "" {
			parts = append(parts, a.Value)
		}
	}
	return strings.Join(parts, " ")
}

// SeenEntry is the persisted record of a previously observed relevant
// candidate. Created exactly once, at first detection; never updated or
// deleted afterwards.
type SeenEntry struct {
	Title        string    `json:"title" db:"title"`
	Date         string    `json:"date,omitempty" db:"date"`
	Organisation string    `json:"organisation,omitempty" db:"organisation"`
	ClosingDate  string    `json:"closing_date,omitempty" db:"closing_date"`
	TenderID     string    `json:"tender_id,omitempty" db:"tender_id"`
	Notified     bool      `json:"notified" db:"notified"`
	FirstSeen    time.Time `json:"first_seen_timestamp" db:"first_seen_timestamp"`
}

// NewSeenEntry snapshots a candidate into its persisted projection.
func NewSeenEntry(c Candidate, notified bool, firstSeen time.Time) SeenEntry {
	return SeenEntry{
		Title:        c.Title,
		Date:         c.Attr(AttrDate),
		Organisation: c.Attr(AttrOrganisation),
		ClosingDate:  c.Attr(AttrClosingDate),
		TenderID:     c.Attr(AttrTenderID),
		Notified:     notified,
		FirstSeen:    firstSeen.UTC(),
	}
}
