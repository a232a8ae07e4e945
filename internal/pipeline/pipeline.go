// Package pipeline sequences one notification run: fetch, extract, filter,
// diff against the seen store, notify, persist. One invocation per external
// trigger; phases run strictly in order with no re-entry.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/gotender/internal/extractor"
	"github.com/jonesrussell/gotender/internal/logger"
	"github.com/jonesrussell/gotender/internal/models"
	"github.com/jonesrussell/gotender/internal/notifier"
	"github.com/jonesrussell/gotender/internal/relevance"
	"github.com/jonesrussell/gotender/internal/seenstore"
)

// DocumentSource supplies raw markup for an endpoint.
type DocumentSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Deps are the collaborators of one pipeline instance.
type Deps struct {
	Source     DocumentSource
	Strategy   extractor.Strategy
	Keywords   relevance.Keywords
	Store      seenstore.Store
	Sender     notifier.Sender
	Recipients []string
	SourceURL  string
	// Retries is the number of extra delivery attempts per item before the
	// item is recorded as notified=false. 0 keeps the single-attempt policy.
	Retries int
	Logger  logger.Logger
}

// Pipeline runs the change-detection and notification sequence.
type Pipeline struct {
	deps Deps
	now  func() time.Time
}

func New(deps Deps) *Pipeline {
	return &Pipeline{
		deps: deps,
		now:  time.Now,
	}
}

// Summary reports per-phase counts for one run.
type Summary struct {
	RunID      string
	Region     string
	Degraded   bool
	Candidates int
	Relevant   int
	New        int
	Notified   int
	Failed     int
}

// Run executes one full pass. Fetch, store-load and store-save failures are
// fatal and leave persisted state untouched; extraction degradation and
// delivery failures are recorded and the run proceeds. The store is written
// exactly once, after every new item has been processed.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := p.deps.Logger.With(logger.String("run_id", runID))

	html, err := p.deps.Source.Fetch(ctx, p.deps.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	result, err := p.deps.Strategy.Extract(html, p.deps.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("extract candidates: %w", err)
	}
	log.Info("Extraction complete",
		logger.String("strategy", p.deps.Strategy.Name()),
		logger.String("region", result.Region),
		logger.Bool("degraded", result.Degraded),
		logger.Int("candidates", len(result.Candidates)),
	)

	var relevant []models.Candidate
	for _, c := range result.Candidates {
		if p.deps.Keywords.Match(c.SearchText()) {
			relevant = append(relevant, c)
		}
	}
	log.Info("Relevance filter applied", logger.Int("relevant", len(relevant)))

	seen, err := p.deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seen store: %w", err)
	}

	fresh := seenstore.Diff(relevant, seen)
	log.Info("Novelty diff complete",
		logger.Int("seen_total", len(seen)),
		logger.Int("new", len(fresh)),
	)

	summary := &Summary{
		RunID:      runID,
		Region:     result.Region,
		Degraded:   result.Degraded,
		Candidates: len(result.Candidates),
		Relevant:   len(relevant),
		New:        len(fresh),
	}

	// New items are processed in extraction order. Delivery failure does
	// not block marking the item seen: the item will not be retried on the
	// next run.
	for _, c := range fresh {
		detectedAt := p.now().UTC()
		msg := notifier.Format(c, detectedAt)
		ok := p.deliver(ctx, log, msg, c.Identity)
		if ok {
			summary.Notified++
		} else {
			summary.Failed++
		}
		seen[c.Identity] = models.NewSeenEntry(c, ok, detectedAt)
	}

	if err := p.deps.Store.Save(ctx, seen); err != nil {
		return nil, fmt.Errorf("persist seen store: %w", err)
	}

	log.Info("Run complete",
		logger.Int("candidates", summary.Candidates),
		logger.Int("relevant", summary.Relevant),
		logger.Int("new", summary.New),
		logger.Int("notified", summary.Notified),
		logger.Int("failed", summary.Failed),
	)
	return summary, nil
}

// deliver makes one attempt plus the configured retries, reporting whether
// any attempt succeeded.
func (p *Pipeline) deliver(ctx context.Context, log logger.Logger, msg notifier.Message, identity string) bool {
	attempts := p.deps.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		err := p.deps.Sender.Send(ctx, msg, p.deps.Recipients)
		if err == nil {
			return true
		}
		log.Warn("Notification delivery failed",
			logger.String("identity", identity),
			logger.Int("attempt", attempt),
			logger.Error(err),
		)
	}
	return false
}
