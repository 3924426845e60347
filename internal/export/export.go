// Package export writes the glossary to downloadable files: pretty JSON,
// YAML, and a printable PDF sheet rendered from markdown.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
	"gopkg.in/yaml.v3"

	"github.com/glosso-dev/glosso/internal/glossary"
)

const (
	jsonFileName     = "glossary.json"
	yamlFileName     = "glossary.yml"
	markdownFileName = "glossary.md"
)

// WriteJSON serializes the entries as pretty-printed JSON into
// dir/glossary.json and returns the written path.
func WriteJSON(dir string, entries []glossary.Entry) (string, error) {
	blob, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json.MarshalIndent(entries) > %w", err)
	}
	return writeFile(dir, jsonFileName, blob)
}

// WriteJSONBlob writes a server-provided export blob unchanged into
// dir/glossary.json.
func WriteJSONBlob(dir string, blob []byte) (string, error) {
	return writeFile(dir, jsonFileName, blob)
}

// WriteYAML serializes the entries as YAML into dir/glossary.yml.
func WriteYAML(dir string, entries []glossary.Entry) (string, error) {
	blob, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("yaml.Marshal(entries) > %w", err)
	}
	return writeFile(dir, yamlFileName, blob)
}

// WritePDF renders the entries as a markdown glossary sheet and converts it
// to dir/glossary.pdf. The intermediate markdown file is kept next to the
// PDF.
func WritePDF(dir string, entries []glossary.Entry) (string, error) {
	markdownPath, err := writeFile(dir, markdownFileName, []byte(renderMarkdown(entries)))
	if err != nil {
		return "", err
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

func writeFile(dir, name string, blob []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// renderMarkdown produces a two-column glossary table. Comments render as
// parenthesized italics after their word.
func renderMarkdown(entries []glossary.Entry) string {
	var b strings.Builder
	b.WriteString("# Glossary\n\n")
	b.WriteString("| English | German |\n")
	b.WriteString("|---|---|\n")
	for _, entry := range entries {
		b.WriteString("| ")
		b.WriteString(renderWords(entry.EN))
		b.WriteString(" | ")
		b.WriteString(renderWords(entry.DE))
		b.WriteString(" |\n")
	}
	return b.String()
}

func renderWords(words []glossary.WordEntry) string {
	parts := make([]string, len(words))
	for i, w := range words {
		if w.Comment != "" {
			parts[i] = fmt.Sprintf("%s *(%s)*", w.Word, w.Comment)
			continue
		}
		parts[i] = w.Word
	}
	return strings.Join(parts, ", ")
}
