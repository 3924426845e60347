// Package editor provides the per-language word-list editor and the edit
// session that composes two of them into one entry draft.
package editor

import (
	"strings"

	"github.com/glosso-dev/glosso/internal/glossary"
)

// WordList edits an ordered sequence of word entries for a single language.
// Every structural change emits the full replacement list through onChange;
// the word list knows nothing about the other language or about persistence,
// and it never validates. Validation is the owning session's job.
type WordList struct {
	label    string
	words    []glossary.WordEntry
	onChange func([]glossary.WordEntry)
}

// NewWordList creates an editor over a copy of the given words.
func NewWordList(label string, words []glossary.WordEntry, onChange func([]glossary.WordEntry)) *WordList {
	copied := make([]glossary.WordEntry, len(words))
	copy(copied, words)
	return &WordList{
		label:    label,
		words:    copied,
		onChange: onChange,
	}
}

func (l *WordList) Label() string {
	return l.label
}

// Words returns a copy of the current list.
func (l *WordList) Words() []glossary.WordEntry {
	words := make([]glossary.WordEntry, len(l.words))
	copy(words, l.words)
	return words
}

// WordCount counts entries with a non-blank word, matching the "N words"
// header of the original editor.
func (l *WordList) WordCount() int {
	count := 0
	for _, w := range l.words {
		if strings.TrimSpace(w.Word) != "" {
			count++
		}
	}
	return count
}

// AddRow appends a blank word entry.
func (l *WordList) AddRow() {
	l.words = append(l.words, glossary.WordEntry{})
	l.emit()
}

// Remove drops the entry at idx. Out-of-range indexes are ignored.
func (l *WordList) Remove(idx int) {
	if idx < 0 || idx >= len(l.words) {
		return
	}
	l.words = append(l.words[:idx], l.words[idx+1:]...)
	l.emit()
}

// SetWord replaces the word text at idx.
func (l *WordList) SetWord(idx int, word string) {
	if idx < 0 || idx >= len(l.words) {
		return
	}
	l.words[idx].Word = word
	l.emit()
}

func (l *WordList) emit() {
	if l.onChange != nil {
		l.onChange(l.Words())
	}
}

// OpenComment starts a comment sub-session for the entry at idx. It returns
// nil when idx is out of range or the entry's word is blank, mirroring the
// disabled comment action of the original editor.
func (l *WordList) OpenComment(idx int) *CommentEditor {
	if idx < 0 || idx >= len(l.words) {
		return nil
	}
	if strings.TrimSpace(l.words[idx].Word) == "" {
		return nil
	}
	return &CommentEditor{
		list: l,
		idx:  idx,
		word: l.words[idx].Word,
		text: l.words[idx].Comment,
	}
}

// CommentEditor edits the comment of a single word entry. Saving applies the
// text to the entry that was open, re-resolved by word text in case rows were
// removed in the meantime; cancelling leaves the list untouched.
type CommentEditor struct {
	list   *WordList
	idx    int
	word   string
	text   string
	closed bool
}

func (c *CommentEditor) Text() string {
	return c.text
}

func (c *CommentEditor) SetText(text string) {
	if c.closed {
		return
	}
	c.text = text
}

// Save writes the comment back into the owning list and closes the editor.
// The target is re-resolved against the word text captured at open time, so
// a row removed below the open index cannot shift the comment onto a
// different word. A removed target discards the comment.
func (c *CommentEditor) Save() {
	if c.closed {
		return
	}
	c.closed = true
	if idx := c.resolveTarget(); idx >= 0 {
		c.list.words[idx].Comment = c.text
		c.list.emit()
	}
}

func (c *CommentEditor) resolveTarget() int {
	if c.idx < len(c.list.words) && c.list.words[c.idx].Word == c.word {
		return c.idx
	}
	for i, w := range c.list.words {
		if w.Word == c.word {
			return i
		}
	}
	return -1
}

// Cancel closes the editor without touching the list.
func (c *CommentEditor) Cancel() {
	c.closed = true
}
