// Package store persists the lookup history cache (SPEC_FULL.md §5
// Supplemental features): a record of recently looked-up words the UI can
// later surface, adapted from the teacher's words/sources/word_sources
// SQLite schema and upsert-and-cap patterns, repurposed to meikipop's
// lookup_history and lookup_contexts tables. This is a supplemental, non-core feature: the
// lookup engine itself never reads from it.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS lookup_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	surface TEXT NOT NULL,
	matched_form TEXT NOT NULL,
	entry_seq INTEGER NOT NULL,
	occurrence_count INTEGER NOT NULL DEFAULT 1,
	last_seen_at DATETIME NOT NULL,
	UNIQUE(surface, entry_seq)
);

CREATE TABLE IF NOT EXISTS lookup_contexts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	history_id INTEGER NOT NULL REFERENCES lookup_history(id),
	sentence TEXT NOT NULL
);
`

// InitDB runs the lookup-history migrations against conn, executing the
// full SQL batch in one Exec call (statement parsing delegated to SQLite,
// same rationale as the teacher's db.InitDB).
func InitDB(conn *sql.DB) error {
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := conn.Exec(migrationsSQL); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}
	return nil
}

// Executor is the subset of *sql.DB/*sql.Tx the store's functions need, so
// callers can batch several history writes inside a transaction.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// RecordLookup upserts one lookup-history row: a repeated lookup of the same
// surface/entry pair increments occurrence_count and refreshes last_seen_at,
// mirroring the teacher's word_sources upsert-and-increment pattern.
func RecordLookup(db Executor, surface, matchedForm string, entrySeq int64, at time.Time) (int64, error) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO lookup_history (surface, matched_form, entry_seq, occurrence_count, last_seen_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(surface, entry_seq) DO UPDATE SET
			occurrence_count = lookup_history.occurrence_count + 1,
			matched_form = excluded.matched_form,
			last_seen_at = excluded.last_seen_at
		RETURNING id`,
		surface, matchedForm, entrySeq, at).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: record lookup: %w", err)
	}
	return id, nil
}

// maxContextsPerHistory caps stored example sentences per history row,
// mirroring the teacher's 5-context cap on word_contexts.
const maxContextsPerHistory = 5

// RecordContext appends a context sentence for historyID, capped at
// maxContextsPerHistory, using the same race-safe
// INSERT...SELECT...WHERE-count pattern as the teacher's word_contexts
// insert.
func RecordContext(db Executor, historyID int64, sentence string) error {
	_, err := db.Exec(`
		INSERT INTO lookup_contexts (history_id, sentence)
		SELECT ?, ?
		WHERE (SELECT COUNT(*) FROM lookup_contexts WHERE history_id = ?) < ?`,
		historyID, sentence, historyID, maxContextsPerHistory)
	return err
}

// HistoryEntry is one row of lookup history, for surfacing "recently looked
// up" words.
type HistoryEntry struct {
	ID              int64
	Surface         string
	MatchedForm     string
	EntrySeq        int64
	OccurrenceCount int
	LastSeenAt      time.Time
}

// RecentHistory returns up to limit history entries, most recently seen
// first.
func RecentHistory(conn *sql.DB, limit int) ([]HistoryEntry, error) {
	rows, err := conn.Query(`
		SELECT id, surface, matched_form, entry_seq, occurrence_count, last_seen_at
		FROM lookup_history
		ORDER BY last_seen_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.Surface, &h.MatchedForm, &h.EntrySeq, &h.OccurrenceCount, &h.LastSeenAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
