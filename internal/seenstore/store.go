// Package seenstore persists which tender identities have already been
// observed and notified. The store is the single source of truth for
// novelty: a candidate is new iff its identity is absent from the loaded
// mapping. Each run loads the full mapping once and writes it back once.
package seenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/gotender/internal/config"
	"github.com/jonesrussell/gotender/internal/models"
)

// ErrCorrupt indicates the persisted payload could not be decoded. Fatal by
// contract: resetting a corrupt store would trigger mass re-notification.
var ErrCorrupt = errors.New("seen store: malformed payload")

// Store is a persistent identity -> SeenEntry mapping.
type Store interface {
	// Load returns the full mapping, or an empty mapping when no prior
	// state exists. Returns an error wrapping ErrCorrupt on a malformed
	// payload; never errors on absence.
	Load(ctx context.Context) (map[string]models.SeenEntry, error)
	// Save atomically replaces the persisted mapping with the given one.
	Save(ctx context.Context, entries map[string]models.SeenEntry) error
	Close() error
}

// Open constructs the configured store backend.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.StoreBackendFile:
		return NewFileStore(cfg.Path), nil
	case config.StoreBackendSQLite:
		return OpenSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Diff returns the candidates whose identity is absent from seen, in input
// order. Identity absence is the sole novelty criterion; content changes on
// an already-seen identity do not re-surface it.
func Diff(candidates []models.Candidate, seen map[string]models.SeenEntry) []models.Candidate {
	var fresh []models.Candidate
	for _, c := range candidates {
		if _, ok := seen[c.Identity]; !ok {
			fresh = append(fresh, c)
		}
	}
	return fresh
}
