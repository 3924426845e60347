package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glosso-dev/glosso/internal/glossary"
	"github.com/glosso-dev/glosso/internal/glossary/api"
)

// State is the lifecycle position of an edit session.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
	StateSaving State = "saving"
)

// ErrorState is the inline error surfaced inside an open session.
type ErrorState struct {
	IsError bool
	Message string
}

// SaveFunc persists a cleaned entry. The caller decides whether it creates
// or updates; the session only knows the single collaborator.
type SaveFunc func(ctx context.Context, entry glossary.Entry) error

// ErrSessionClosed is returned when an operation needs an open session.
var ErrSessionClosed = errors.New("edit session is not open")

// Session is the edit-session state machine for one glossary entry. It owns
// a private deep-copied draft that is discarded on cancel and only handed to
// the save collaborator on a confirmed, validated save. The canonical entry
// is never mutated here.
type Session struct {
	state      State
	draft      glossary.Entry
	dirty      bool
	errorState ErrorState
	save       SaveFunc

	// generation invalidates in-flight saves: a save completing after the
	// session was cancelled or reopened is ignored.
	generation uint64
}

// NewSession creates a closed session backed by the given save collaborator.
func NewSession(save SaveFunc) *Session {
	return &Session{
		state: StateClosed,
		save:  save,
	}
}

// Open starts a session over a deep clone of the source entry, or over the
// two-language blank template when source is nil. Any previous error is
// cleared.
func (s *Session) Open(source *glossary.Entry) {
	s.generation++
	if source != nil {
		s.draft = source.Clone()
	} else {
		s.draft = glossary.NewBlankEntry()
	}
	s.dirty = false
	s.errorState = ErrorState{}
	s.state = StateOpen
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) IsDirty() bool {
	return s.dirty
}

func (s *Session) ErrorState() ErrorState {
	return s.errorState
}

// Draft returns a copy of the working draft.
func (s *Session) Draft() glossary.Entry {
	return s.draft.Clone()
}

// SetWords replaces one language's word list wholesale, the way a word-list
// editor emits its changes. This mutates the draft only, never the source.
func (s *Session) SetWords(lang glossary.Language, words []glossary.WordEntry) error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	copied := make([]glossary.WordEntry, len(words))
	copy(copied, words)
	switch lang {
	case glossary.LanguageGerman:
		s.draft.DE = copied
	default:
		s.draft.EN = copied
	}
	s.dirty = true
	return nil
}

// WordListFor returns a word-list editor for one side of the draft, wired to
// replace that side on every change.
func (s *Session) WordListFor(lang glossary.Language, label string) *WordList {
	return NewWordList(label, s.draft.Words(lang), func(words []glossary.WordEntry) {
		_ = s.SetWords(lang, words)
	})
}

// Save cleans and validates the draft, then hands it to the save
// collaborator. Validation failures and collaborator failures keep the
// session open with an inline error and make no further calls; on success
// the draft is reset and the session closes. The returned bool reports
// whether a save was committed, signaling the caller to refresh its list
// from the source of truth.
func (s *Session) Save(ctx context.Context) (bool, error) {
	if s.state != StateOpen {
		return false, ErrSessionClosed
	}

	cleaned := s.draft.Clean()
	if err := cleaned.Validate(); err != nil {
		s.errorState = ErrorState{IsError: true, Message: err.Error()}
		return false, err
	}

	s.state = StateSaving
	generation := s.generation
	err := s.save(ctx, cleaned)

	// The session was cancelled or reopened while the save was in flight;
	// the stale result is ignored regardless of outcome.
	if s.generation != generation {
		slog.Default().Debug("discarding stale save result", "entryID", cleaned.ID)
		return false, nil
	}

	if err != nil {
		var apiErr *api.APIError
		message := "Saving failed. Please try again."
		if errors.As(err, &apiErr) {
			message = apiErr.Message
		}
		slog.Default().Error("entry save failed", "entryID", cleaned.ID, "error", err)
		s.errorState = ErrorState{IsError: true, Message: message}
		s.state = StateOpen
		return false, fmt.Errorf("session save > %w", err)
	}

	s.draft = glossary.NewBlankEntry()
	s.dirty = false
	s.errorState = ErrorState{}
	s.state = StateClosed
	return true, nil
}

// Cancel discards the draft and closes the session. The canonical entry was
// only ever deep-copied, so there is nothing to restore. Cancelling while a
// save is in flight abandons that save's eventual result.
func (s *Session) Cancel() {
	if s.state == StateClosed {
		return
	}
	s.generation++
	s.draft = glossary.NewBlankEntry()
	s.dirty = false
	s.errorState = ErrorState{}
	s.state = StateClosed
}
