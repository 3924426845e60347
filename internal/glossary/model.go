// Package glossary provides the bilingual glossary domain model.
package glossary

import (
	"fmt"
	"strings"
)

// Language identifies one side of a bilingual entry.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"

	// LanguageAll is only valid as a search scope, never as an entry side.
	LanguageAll Language = "all"
)

// ParseLanguage converts a user-provided language code into a Language.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageGerman:
		return LanguageGerman, nil
	case LanguageAll:
		return LanguageAll, nil
	}
	return "", fmt.Errorf("unknown language %q: must be en, de or all", s)
}

// WordEntry is a single word with an optional comment.
type WordEntry struct {
	Word    string `json:"word" yaml:"word"`
	Comment string `json:"comment" yaml:"comment,omitempty"`
}

// Entry pairs an ordered English word list with an ordered German word list.
// ID is assigned by the server and empty for not-yet-created entries.
type Entry struct {
	ID string      `json:"id,omitempty" yaml:"id,omitempty"`
	EN []WordEntry `json:"en" yaml:"en"`
	DE []WordEntry `json:"de" yaml:"de"`
}

// NewBlankEntry returns the template used for "add" drafts: one empty word
// row per language.
func NewBlankEntry() Entry {
	return Entry{
		EN: []WordEntry{{}},
		DE: []WordEntry{{}},
	}
}

// Words returns the word list for the given entry side.
func (e Entry) Words(lang Language) []WordEntry {
	if lang == LanguageGerman {
		return e.DE
	}
	return e.EN
}

// Clone returns a deep copy of the entry. Drafts must never alias the
// canonical entry they were opened from.
func (e Entry) Clone() Entry {
	clone := Entry{
		ID: e.ID,
		EN: make([]WordEntry, len(e.EN)),
		DE: make([]WordEntry, len(e.DE)),
	}
	copy(clone.EN, e.EN)
	copy(clone.DE, e.DE)
	return clone
}

// Clean trims every word and comment and drops word entries whose trimmed
// word is empty. Cleaning is idempotent: cleaning a cleaned entry returns
// the same content.
func (e Entry) Clean() Entry {
	return Entry{
		ID: e.ID,
		EN: cleanWords(e.EN),
		DE: cleanWords(e.DE),
	}
}

func cleanWords(words []WordEntry) []WordEntry {
	cleaned := make([]WordEntry, 0, len(words))
	for _, w := range words {
		word := strings.TrimSpace(w.Word)
		if word == "" {
			continue
		}
		cleaned = append(cleaned, WordEntry{
			Word:    word,
			Comment: strings.TrimSpace(w.Comment),
		})
	}
	return cleaned
}

// ErrNoWords and ErrDuplicateWords are the two validation failures an edit
// session can surface. Their messages are shown to the user as-is.
var (
	ErrNoWords        = &ValidationError{Message: "There should be at least one English and one German word."}
	ErrDuplicateWords = &ValidationError{Message: "There are one or more duplicate words added. Please remove them before saving."}
)

// ValidationError is a recoverable user error found before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a cleaned entry. Both languages must contain at least one
// word, and within each language words must be unique case-insensitively.
// Checks run in order and fail fast on the first violation.
func (e Entry) Validate() error {
	if len(e.EN) == 0 || len(e.DE) == 0 {
		return ErrNoWords
	}
	if hasDuplicateWords(e.EN) || hasDuplicateWords(e.DE) {
		return ErrDuplicateWords
	}
	return nil
}

func hasDuplicateWords(words []WordEntry) bool {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		key := strings.ToLower(w.Word)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// JoinedWords joins one side's words with ", " for table display and
// sorting.
func (e Entry) JoinedWords(lang Language) string {
	words := e.Words(lang)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Word
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether any word in the given scope contains the query,
// case-insensitively. Scope LanguageAll checks both sides.
func (e Entry) Matches(query string, scope Language) bool {
	if query == "" {
		return true
	}
	lowered := strings.ToLower(query)
	if scope == LanguageAll {
		return containsWord(e.EN, lowered) || containsWord(e.DE, lowered)
	}
	return containsWord(e.Words(scope), lowered)
}

func containsWord(words []WordEntry, loweredQuery string) bool {
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Word), loweredQuery) {
			return true
		}
	}
	return false
}
