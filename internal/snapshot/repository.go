// Package snapshot archives point-in-time copies of the remote glossary in
// a local MySQL database for auditing.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/glosso-dev/glosso/internal/glossary"
)

// Snapshot is one archived copy of the glossary.
type Snapshot struct {
	ID         int64     `db:"id" yaml:"id"`
	TakenAt    time.Time `db:"taken_at" yaml:"taken_at"`
	EntryCount int       `db:"entry_count" yaml:"entry_count"`
	CreatedAt  time.Time `db:"created_at" yaml:"created_at"`
}

// SnapshotEntry links an archived entry to its remote glossary id.
type SnapshotEntry struct {
	ID         int64     `db:"id" yaml:"id"`
	SnapshotID int64     `db:"snapshot_id" yaml:"snapshot_id"`
	RemoteID   string    `db:"remote_id" yaml:"remote_id"`
	CreatedAt  time.Time `db:"created_at" yaml:"created_at"`
}

// SnapshotWord is a single word of an archived entry.
type SnapshotWord struct {
	ID              int64     `db:"id" yaml:"id"`
	SnapshotEntryID int64     `db:"snapshot_entry_id" yaml:"snapshot_entry_id"`
	Language        string    `db:"language" yaml:"language"`
	Position        int       `db:"position" yaml:"position"`
	Word            string    `db:"word" yaml:"word"`
	Comment         string    `db:"comment" yaml:"comment"`
	CreatedAt       time.Time `db:"created_at" yaml:"created_at"`
}

// Repository defines operations for managing snapshots.
type Repository interface {
	Create(ctx context.Context, takenAt time.Time, entries []glossary.Entry) (*Snapshot, error)
	FindLatest(ctx context.Context) (*Snapshot, error)
	FindAll(ctx context.Context) ([]Snapshot, error)
	FindEntries(ctx context.Context, snapshotID int64) ([]glossary.Entry, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create archives the entries as a new snapshot in a transaction.
func (r *DBRepository) Create(ctx context.Context, takenAt time.Time, entries []glossary.Entry) (*Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (taken_at, entry_count) VALUES (?, ?)",
		takenAt, len(entries))
	if err != nil {
		return nil, fmt.Errorf("tx.ExecContext(insert snapshot) > %w", err)
	}
	snapshotID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}

	for _, entry := range entries {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO snapshot_entries (snapshot_id, remote_id) VALUES (?, ?)",
			snapshotID, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("tx.ExecContext(insert snapshot_entry) > %w", err)
		}
		entryID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("result.LastInsertId() > %w", err)
		}

		if err := insertWords(ctx, tx, entryID, glossary.LanguageEnglish, entry.EN); err != nil {
			return nil, err
		}
		if err := insertWords(ctx, tx, entryID, glossary.LanguageGerman, entry.DE); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx.Commit() > %w", err)
	}
	return &Snapshot{ID: snapshotID, TakenAt: takenAt, EntryCount: len(entries)}, nil
}

func insertWords(ctx context.Context, tx *sqlx.Tx, entryID int64, lang glossary.Language, words []glossary.WordEntry) error {
	for position, word := range words {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO snapshot_words (snapshot_entry_id, language, position, word, comment) VALUES (?, ?, ?, ?, ?)",
			entryID, string(lang), position, word.Word, word.Comment)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(insert snapshot_word) > %w", err)
		}
	}
	return nil
}

// FindLatest returns the most recent snapshot, or nil if none exists.
func (r *DBRepository) FindLatest(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := r.db.GetContext(ctx, &s, "SELECT * FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(snapshot) > %w", err)
	}
	return &s, nil
}

// FindAll returns all snapshots, newest first.
func (r *DBRepository) FindAll(ctx context.Context) ([]Snapshot, error) {
	var snapshots []Snapshot
	if err := r.db.SelectContext(ctx, &snapshots, "SELECT * FROM snapshots ORDER BY taken_at DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(snapshots) > %w", err)
	}
	return snapshots, nil
}

// FindEntries reconstructs the archived glossary entries of a snapshot.
func (r *DBRepository) FindEntries(ctx context.Context, snapshotID int64) ([]glossary.Entry, error) {
	var rows []SnapshotEntry
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM snapshot_entries WHERE snapshot_id = ? ORDER BY id", snapshotID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(snapshot_entries) > %w", err)
	}

	entries := make([]glossary.Entry, 0, len(rows))
	for _, row := range rows {
		var words []SnapshotWord
		if err := r.db.SelectContext(ctx, &words,
			"SELECT * FROM snapshot_words WHERE snapshot_entry_id = ? ORDER BY language, position", row.ID); err != nil {
			return nil, fmt.Errorf("db.SelectContext(snapshot_words) > %w", err)
		}

		entry := glossary.Entry{ID: row.RemoteID}
		for _, word := range words {
			wordEntry := glossary.WordEntry{Word: word.Word, Comment: word.Comment}
			switch glossary.Language(word.Language) {
			case glossary.LanguageEnglish:
				entry.EN = append(entry.EN, wordEntry)
			case glossary.LanguageGerman:
				entry.DE = append(entry.DE, wordEntry)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
