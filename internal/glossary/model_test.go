package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Language
		wantErr bool
	}{
		{name: "english", input: "en", want: LanguageEnglish},
		{name: "german", input: "de", want: LanguageGerman},
		{name: "all", input: "all", want: LanguageAll},
		{name: "mixed case with spaces", input: " EN ", want: LanguageEnglish},
		{name: "unknown", input: "fr", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLanguage(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEntry_Clone(t *testing.T) {
	original := Entry{
		ID: "42",
		EN: []WordEntry{{Word: "house", Comment: "building"}},
		DE: []WordEntry{{Word: "Haus"}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	// Mutating the clone must not leak into the original.
	clone.EN[0].Word = "home"
	clone.DE = append(clone.DE, WordEntry{Word: "Heim"})
	assert.Equal(t, "house", original.EN[0].Word)
	assert.Len(t, original.DE, 1)
}

func TestEntry_Clean(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  Entry
	}{
		{
			name: "trims words and comments",
			entry: Entry{
				EN: []WordEntry{{Word: "  house ", Comment: " a building "}},
				DE: []WordEntry{{Word: "Haus  "}},
			},
			want: Entry{
				EN: []WordEntry{{Word: "house", Comment: "a building"}},
				DE: []WordEntry{{Word: "Haus"}},
			},
		},
		{
			name: "drops entries with empty trimmed word",
			entry: Entry{
				EN: []WordEntry{{Word: "cat"}, {Word: "   "}, {Word: ""}},
				DE: []WordEntry{{Word: "Katze"}, {Word: " ", Comment: "kept comment, dropped word"}},
			},
			want: Entry{
				EN: []WordEntry{{Word: "cat"}},
				DE: []WordEntry{{Word: "Katze"}},
			},
		},
		{
			name: "keeps id",
			entry: Entry{
				ID: "7",
				EN: []WordEntry{{Word: "dog"}},
				DE: []WordEntry{{Word: "Hund"}},
			},
			want: Entry{
				ID: "7",
				EN: []WordEntry{{Word: "dog"}},
				DE: []WordEntry{{Word: "Hund"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.entry.Clean()
			assert.Equal(t, tc.want, got)

			// Cleaning is idempotent.
			assert.Equal(t, got, got.Clean())
		})
	}
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: Entry{
				EN: []WordEntry{{Word: "house"}},
				DE: []WordEntry{{Word: "Haus"}},
			},
		},
		{
			name: "empty english side",
			entry: Entry{
				DE: []WordEntry{{Word: "Haus"}},
			},
			wantErr: ErrNoWords,
		},
		{
			name: "empty german side",
			entry: Entry{
				EN: []WordEntry{{Word: "house"}},
			},
			wantErr: ErrNoWords,
		},
		{
			name: "case-insensitive duplicate in one language",
			entry: Entry{
				EN: []WordEntry{{Word: "cat"}, {Word: "Cat"}},
				DE: []WordEntry{{Word: "Katze"}},
			},
			wantErr: ErrDuplicateWords,
		},
		{
			name: "same word in both languages is fine",
			entry: Entry{
				EN: []WordEntry{{Word: "Computer"}},
				DE: []WordEntry{{Word: "Computer"}},
			},
		},
		{
			name:    "empty sides are reported before duplicates",
			entry:   Entry{EN: []WordEntry{}, DE: []WordEntry{}},
			wantErr: ErrNoWords,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEntry_JoinedWords(t *testing.T) {
	entry := Entry{
		EN: []WordEntry{{Word: "house"}, {Word: "home"}},
		DE: []WordEntry{{Word: "Haus"}},
	}

	assert.Equal(t, "house, home", entry.JoinedWords(LanguageEnglish))
	assert.Equal(t, "Haus", entry.JoinedWords(LanguageGerman))
	assert.Equal(t, "", Entry{}.JoinedWords(LanguageEnglish))
}

func TestEntry_Matches(t *testing.T) {
	entry := Entry{
		EN: []WordEntry{{Word: "Apple tree"}},
		DE: []WordEntry{{Word: "Apfelbaum"}},
	}

	tests := []struct {
		name  string
		query string
		scope Language
		want  bool
	}{
		{name: "empty query matches", query: "", scope: LanguageEnglish, want: true},
		{name: "substring in english", query: "tree", scope: LanguageEnglish, want: true},
		{name: "case insensitive", query: "APFEL", scope: LanguageGerman, want: true},
		{name: "wrong scope", query: "Apfel", scope: LanguageEnglish, want: false},
		{name: "all scope checks both sides", query: "apfel", scope: LanguageAll, want: true},
		{name: "no match anywhere", query: "pear", scope: LanguageAll, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entry.Matches(tc.query, tc.scope))
		})
	}
}

func TestNewBlankEntry(t *testing.T) {
	blank := NewBlankEntry()

	assert.Empty(t, blank.ID)
	require.Len(t, blank.EN, 1)
	require.Len(t, blank.DE, 1)
	assert.Equal(t, WordEntry{}, blank.EN[0])

	// A blank template never survives cleaning.
	cleaned := blank.Clean()
	assert.Empty(t, cleaned.EN)
	assert.Empty(t, cleaned.DE)
}
