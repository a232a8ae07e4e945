// Package notifier formats notifications for new tenders and delivers them
// through a pluggable sender boundary.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/gotender/internal/models"
)

// absenceMarker renders missing optional fields. Formatting never fails.
const absenceMarker = "none"

// Message is a formatted notification ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// Sender delivers one message. Implementations must be safe to call
// sequentially; the pipeline attempts deliveries one at a time.
type Sender interface {
	Send(ctx context.Context, msg Message, recipients []string) error
}

// Format renders the deterministic subject and body for a newly detected
// candidate. detectedAt is the UTC detection timestamp of the run.
func Format(c models.Candidate, detectedAt time.Time) Message {
	date := c.Attr(models.AttrDate)
	if date == "" {
		date = c.Attr(models.AttrClosingDate)
	}
	if date == "" {
		date = absenceMarker
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Link: %s\n", c.Identity)
	if org := c.Attr(models.AttrOrganisation); org != "" {
		fmt.Fprintf(&b, "Organisation: %s\n", org)
	}
	if snippet := c.Attr(models.AttrSnippet); snippet != "" {
		fmt.Fprintf(&b, "\n%s\n", snippet)
	}
	fmt.Fprintf(&b, "\n----\nDetected: %s UTC\n", detectedAt.UTC().Format(time.RFC3339))

	return Message{
		Subject: fmt.Sprintf("NEW Tender: %s", c.Title),
		Body:    b.String(),
	}
}
