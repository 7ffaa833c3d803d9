package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRecordLookupUpsertsOccurrenceCount(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Unix(1700000000, 0)
	id1, err := RecordLookup(db, "食べる", "食べる", 1, now)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	id2, err := RecordLookup(db, "食べる", "食べる", 1, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("record lookup again: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected the same history row id, got %d and %d", id1, id2)
	}

	entries, err := RecentHistory(db, 10)
	if err != nil {
		t.Fatalf("recent history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(entries))
	}
	if entries[0].OccurrenceCount != 2 {
		t.Errorf("OccurrenceCount = %d, want 2", entries[0].OccurrenceCount)
	}
}

func TestRecordLookupDistinctEntriesProduceDistinctRows(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Unix(1700000000, 0)
	if _, err := RecordLookup(db, "犬", "犬", 1, now); err != nil {
		t.Fatalf("record lookup 1: %v", err)
	}
	if _, err := RecordLookup(db, "犬", "犬", 2, now); err != nil {
		t.Fatalf("record lookup 2: %v", err)
	}

	entries, err := RecentHistory(db, 10)
	if err != nil {
		t.Fatalf("recent history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 distinct history rows for distinct entry_seq, got %d", len(entries))
	}
}

func TestRecordContextCapsAtMax(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := RecordLookup(db, "読む", "読む", 1, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}

	for i := 0; i < maxContextsPerHistory+3; i++ {
		if err := RecordContext(db, id, "example sentence"); err != nil {
			t.Fatalf("record context %d: %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM lookup_contexts WHERE history_id = ?", id).Scan(&count); err != nil {
		t.Fatalf("count contexts: %v", err)
	}
	if count != maxContextsPerHistory {
		t.Errorf("context count = %d, want %d", count, maxContextsPerHistory)
	}
}

func TestBatchWriterFlushesOnClose(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bw := NewBatchWriter(db, 10, 0)
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO lookup_history (surface, matched_form, entry_seq, occurrence_count, last_seen_at) VALUES (?, ?, ?, 1, ?)`,
			"です", "です", 99, time.Unix(1700000000, 0))
		return err
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := bw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM lookup_history WHERE entry_seq = 99").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the buffered write to be flushed on Close, got count=%d", count)
	}
}

func TestBatchWriterRejectsSubmitAfterClose(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bw := NewBatchWriter(db, 10, 0)
	if err := bw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error { return nil }); err != ErrBatchWriterClosed {
		t.Errorf("expected ErrBatchWriterClosed, got %v", err)
	}
}
