package snapshot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/glosso-dev/glosso/internal/glossary"
	"github.com/glosso-dev/glosso/internal/glossary/api"
)

// TakeResult tracks what changed between the previous snapshot and this one.
type TakeResult struct {
	Snapshot         *Snapshot
	EntriesNew       int
	EntriesUpdated   int
	EntriesUnchanged int
	EntriesRemoved   int
	Skipped          bool
}

// TakeOptions controls archive behavior.
type TakeOptions struct {
	// Force archives even when nothing changed since the last snapshot.
	Force bool
}

// Archiver fetches the remote glossary and records it in the archive.
type Archiver struct {
	client api.Client
	repo   Repository
	writer io.Writer
	now    func() time.Time
}

// NewArchiver creates a new Archiver.
func NewArchiver(client api.Client, repo Repository, writer io.Writer) *Archiver {
	return &Archiver{
		client: client,
		repo:   repo,
		writer: writer,
		now:    time.Now,
	}
}

// Take fetches the current glossary and archives it. Without Force, the
// fetch is skipped from the archive when it matches the latest snapshot.
func (a *Archiver) Take(ctx context.Context, opts TakeOptions) (*TakeResult, error) {
	entries, err := a.client.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("client.GetAll() > %w", err)
	}

	var result TakeResult
	latest, err := a.repo.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.FindLatest() > %w", err)
	}
	if latest != nil {
		previous, err := a.repo.FindEntries(ctx, latest.ID)
		if err != nil {
			return nil, fmt.Errorf("repo.FindEntries() > %w", err)
		}
		a.diff(previous, entries, &result)
	} else {
		result.EntriesNew = len(entries)
	}

	changed := result.EntriesNew > 0 || result.EntriesUpdated > 0 || result.EntriesRemoved > 0
	if !changed && !opts.Force {
		result.Snapshot = latest
		result.Skipped = true
		fmt.Fprintf(a.writer, "No changes since snapshot %d, skipping\n", latest.ID)
		return &result, nil
	}

	snapshot, err := a.repo.Create(ctx, a.now(), entries)
	if err != nil {
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	result.Snapshot = snapshot
	fmt.Fprintf(a.writer, "Archived snapshot %d: %d entries (%d new, %d updated, %d removed)\n",
		snapshot.ID, snapshot.EntryCount, result.EntriesNew, result.EntriesUpdated, result.EntriesRemoved)
	return &result, nil
}

func (a *Archiver) diff(previous, current []glossary.Entry, result *TakeResult) {
	previousByID := make(map[string]glossary.Entry, len(previous))
	for _, entry := range previous {
		previousByID[entry.ID] = entry
	}

	seen := make(map[string]bool, len(current))
	for _, entry := range current {
		seen[entry.ID] = true
		before, ok := previousByID[entry.ID]
		if !ok {
			result.EntriesNew++
			continue
		}
		if sameEntry(before, entry) {
			result.EntriesUnchanged++
		} else {
			result.EntriesUpdated++
		}
	}
	for id := range previousByID {
		if !seen[id] {
			result.EntriesRemoved++
		}
	}
}

func sameEntry(a, b glossary.Entry) bool {
	return sameWords(a.EN, b.EN) && sameWords(a.DE, b.DE)
}

func sameWords(a, b []glossary.WordEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
