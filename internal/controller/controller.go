// Package controller owns the canonical in-memory entry list and performs
// all network calls against the glossary service.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glosso-dev/glosso/internal/editor"
	"github.com/glosso-dev/glosso/internal/glossary"
	"github.com/glosso-dev/glosso/internal/glossary/api"
)

// ErrRefreshPending rejects a mutation while the post-mutation re-fetch has
// not succeeded yet. The server is the source of truth; the table must not
// mutate on top of a known-stale list.
var ErrRefreshPending = errors.New("glossary list is stale: refresh required before further mutations")

// Controller holds the authoritative in-memory entry list and wires edit
// sessions, confirmations and the table together.
type Controller struct {
	client  api.Client
	entries []glossary.Entry

	// active search filter; Refresh re-runs it so the rendered list always
	// reflects the current server state for the current query.
	query string
	scope glossary.Language

	refreshPending bool
}

// New creates a controller with an empty canonical list. Call Refresh to
// perform the initial load.
func New(client api.Client) *Controller {
	return &Controller{
		client: client,
		scope:  glossary.LanguageAll,
	}
}

// Entries returns a copy of the canonical list.
func (c *Controller) Entries() []glossary.Entry {
	entries := make([]glossary.Entry, len(c.entries))
	for i, entry := range c.entries {
		entries[i] = entry.Clone()
	}
	return entries
}

// Refresh replaces the canonical list from the server, re-running the
// active search when one is set.
func (c *Controller) Refresh(ctx context.Context) error {
	var entries []glossary.Entry
	var err error
	if c.query != "" {
		entries, err = c.client.Search(ctx, c.query, c.scope)
	} else {
		entries, err = c.client.GetAll(ctx)
	}
	if err != nil {
		slog.Default().Error("glossary list refresh failed", "query", c.query, "error", err)
		return fmt.Errorf("refresh glossary list > %w", err)
	}
	c.entries = entries
	c.refreshPending = false
	return nil
}

// Search sets the active query and refreshes the list with it. An empty
// query returns to the unfiltered list.
func (c *Controller) Search(ctx context.Context, query string, scope glossary.Language) error {
	c.query = query
	if scope == "" {
		scope = glossary.LanguageAll
	}
	c.scope = scope
	return c.Refresh(ctx)
}

// Query returns the active search query and scope.
func (c *Controller) Query() (string, glossary.Language) {
	return c.query, c.scope
}

// EditSession opens an edit session for the given entry, or an add session
// when source is nil. The session's save collaborator creates or updates
// based on the draft's id and triggers the post-mutation refresh.
func (c *Controller) EditSession(source *glossary.Entry) *editor.Session {
	session := editor.NewSession(func(ctx context.Context, entry glossary.Entry) error {
		return c.saveEntry(ctx, entry)
	})
	session.Open(source)
	return session
}

func (c *Controller) saveEntry(ctx context.Context, entry glossary.Entry) error {
	if c.refreshPending {
		return ErrRefreshPending
	}

	var err error
	if entry.ID == "" {
		_, err = c.client.Create(ctx, entry)
	} else {
		_, err = c.client.Update(ctx, entry.ID, entry)
	}
	if err != nil {
		return err
	}

	c.refreshAfterMutation(ctx)
	return nil
}

// DeleteEntry removes one entry and refreshes. Transport errors are logged
// and returned for a status line; there is no retry policy for deletes.
func (c *Controller) DeleteEntry(ctx context.Context, id string) error {
	if c.refreshPending {
		return ErrRefreshPending
	}
	if err := c.client.Delete(ctx, id); err != nil {
		slog.Default().Error("entry delete failed", "entryID", id, "error", err)
		return fmt.Errorf("client.Delete(%s) > %w", id, err)
	}
	c.refreshAfterMutation(ctx)
	return nil
}

// DeleteEntries removes all entries with the given ids in one call and
// refreshes.
func (c *Controller) DeleteEntries(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if c.refreshPending {
		return ErrRefreshPending
	}
	if err := c.client.DeleteMany(ctx, ids); err != nil {
		slog.Default().Error("bulk delete failed", "count", len(ids), "error", err)
		return fmt.Errorf("client.DeleteMany > %w", err)
	}
	c.refreshAfterMutation(ctx)
	return nil
}

// refreshAfterMutation re-fetches the canonical list after a successful
// mutation. If the re-fetch fails the stale flag stays set and further
// mutations are rejected until a Refresh succeeds.
func (c *Controller) refreshAfterMutation(ctx context.Context) {
	c.refreshPending = true
	if err := c.Refresh(ctx); err != nil {
		slog.Default().Warn("post-mutation refresh failed, mutations blocked until the next refresh", "error", err)
	}
}

// ExportJSON returns the server's export blob, falling back to a
// pretty-printed serialization of the canonical list when the server export
// is unavailable.
func (c *Controller) ExportJSON(ctx context.Context) ([]byte, error) {
	blob, err := c.client.Export(ctx)
	if err == nil {
		return blob, nil
	}
	slog.Default().Warn("server export failed, falling back to client-side export", "error", err)

	blob, marshalErr := json.MarshalIndent(c.entries, "", "  ")
	if marshalErr != nil {
		return nil, fmt.Errorf("json.MarshalIndent(entries) > %w", marshalErr)
	}
	return blob, nil
}
