package seenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/jonesrussell/gotender/internal/models"
)

const seenSchema = `
CREATE TABLE IF NOT EXISTS seen_tenders (
	identity             TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	date                 TEXT NOT NULL DEFAULT '',
	organisation         TEXT NOT NULL DEFAULT '',
	closing_date         TEXT NOT NULL DEFAULT '',
	tender_id            TEXT NOT NULL DEFAULT '',
	notified             INTEGER NOT NULL,
	first_seen_timestamp TEXT NOT NULL
)`

// SQLiteStore keeps the mapping in an embedded sqlite database, avoiding the
// O(n) full-file rewrite cost of FileStore as history grows. Same contract:
// load everything at the start of a run, replace everything at the end.
type SQLiteStore struct {
	db *sqlx.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
	}
	if _, err := db.Exec(seenSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

type seenRow struct {
	Identity     string `db:"identity"`
	Title        string `db:"title"`
	Date         string `db:"date"`
	Organisation string `db:"organisation"`
	ClosingDate  string `db:"closing_date"`
	TenderID     string `db:"tender_id"`
	Notified     bool   `db:"notified"`
	FirstSeen    string `db:"first_seen_timestamp"`
}

func (s *SQLiteStore) Load(ctx context.Context) (map[string]models.SeenEntry, error) {
	var rows []seenRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT identity, title, date, organisation, closing_date, tender_id,
		        notified, first_seen_timestamp
		 FROM seen_tenders`)
	if err != nil {
		return nil, fmt.Errorf("select seen_tenders: %w", err)
	}

	entries := make(map[string]models.SeenEntry, len(rows))
	for _, r := range rows {
		firstSeen, perr := time.Parse(time.RFC3339, r.FirstSeen)
		if perr != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q for %q: %v", ErrCorrupt, r.FirstSeen, r.Identity, perr)
		}
		entries[r.Identity] = models.SeenEntry{
			Title:        r.Title,
			Date:         r.Date,
			Organisation: r.Organisation,
			ClosingDate:  r.ClosingDate,
			TenderID:     r.TenderID,
			Notified:     r.Notified,
			FirstSeen:    firstSeen,
		}
	}
	return entries, nil
}

func (s *SQLiteStore) Save(ctx context.Context, entries map[string]models.SeenEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM seen_tenders`); err != nil {
		return fmt.Errorf("clear seen_tenders: %w", err)
	}

	for identity, e := range entries {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO seen_tenders
			   (identity, title, date, organisation, closing_date, tender_id,
			    notified, first_seen_timestamp)
			 VALUES
			   (:identity, :title, :date, :organisation, :closing_date, :tender_id,
			    :notified, :first_seen_timestamp)`,
			seenRow{
				Identity:     identity,
				Title:        e.Title,
				Date:         e.Date,
				Organisation: e.Organisation,
				ClosingDate:  e.ClosingDate,
				TenderID:     e.TenderID,
				Notified:     e.Notified,
				FirstSeen:    e.FirstSeen.UTC().Format(time.RFC3339),
			})
		if err != nil {
			return fmt.Errorf("insert %q: %w", identity, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seen_tenders: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
