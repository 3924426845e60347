// Package testutil provides shared test helpers for creating config files
// and glossary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glosso-dev/glosso/internal/glossary"
)

// ConfigOption configures optional fields when creating a test config file.
type ConfigOption func(*configOptions)

type configOptions struct {
	baseURL     string
	rowsPerPage int
	columnOrder string
}

// WithBaseURL overrides the API base URL in the generated config.
func WithBaseURL(baseURL string) ConfigOption {
	return func(cfg *configOptions) {
		cfg.baseURL = baseURL
	}
}

// WithRowsPerPage overrides the table page size in the generated config.
func WithRowsPerPage(n int) ConfigOption {
	return func(cfg *configOptions) {
		cfg.rowsPerPage = n
	}
}

// WithColumnOrder overrides the table column order in the generated config.
func WithColumnOrder(order string) ConfigOption {
	return func(cfg *configOptions) {
		cfg.columnOrder = order
	}
}

// SetupTestConfig creates a config file and the exports directory for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := configOptions{
		baseURL:     "http://localhost:3001/api/glossary",
		rowsPerPage: 10,
		columnOrder: "en-de",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	exportsDir := filepath.Join(tmpDir, "exports")
	require.NoError(t, os.MkdirAll(exportsDir, 0755))

	configContent := fmt.Sprintf(`api:
  base_url: %s
table:
  rows_per_page: %d
  column_order: %s
exports:
  directory: %s
`,
		cfg.baseURL,
		cfg.rowsPerPage,
		cfg.columnOrder,
		exportsDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// Entry builds a glossary entry from word lists, one words argument per
// language side.
func Entry(id string, enWords, deWords []string) glossary.Entry {
	entry := glossary.Entry{ID: id}
	for _, w := range enWords {
		entry.EN = append(entry.EN, glossary.WordEntry{Word: w})
	}
	for _, w := range deWords {
		entry.DE = append(entry.DE, glossary.WordEntry{Word: w})
	}
	return entry
}
