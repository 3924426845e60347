package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "valid config file with custom values",
			configContent: `api:
  base_url: https://glossary.example.com/api/glossary
  timeout_seconds: 10
  retry_attempts: 1
table:
  rows_per_page: 25
  column_order: de-en
exports:
  directory: custom/exports
`,
			want: &Config{
				API: APIConfig{
					BaseURL:        "https://glossary.example.com/api/glossary",
					TimeoutSeconds: 10,
					RetryAttempts:  1,
				},
				Table: TableConfig{
					RowsPerPage: 25,
					ColumnOrder: "de-en",
				},
				Exports: ExportsConfig{
					Directory: "custom/exports",
				},
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     3306,
					Database: "glosso",
					Username: "glosso",
				},
			},
		},
		{
			name:          "defaults only",
			configContent: "",
			want: &Config{
				API: APIConfig{
					BaseURL:        "http://localhost:3001/api/glossary",
					TimeoutSeconds: 30,
					RetryAttempts:  2,
				},
				Table: TableConfig{
					RowsPerPage: 10,
					ColumnOrder: "en-de",
				},
				Exports: ExportsConfig{
					Directory: "exports",
				},
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     3306,
					Database: "glosso",
					Username: "glosso",
				},
			},
		},
		{
			name: "environment variable overrides base url",
			env: map[string]string{
				"GLOSSO_API_BASE_URL": "https://prod.example.com/api/glossary",
			},
			want: &Config{
				API: APIConfig{
					BaseURL:        "https://prod.example.com/api/glossary",
					TimeoutSeconds: 30,
					RetryAttempts:  2,
				},
				Table: TableConfig{
					RowsPerPage: 10,
					ColumnOrder: "en-de",
				},
				Exports: ExportsConfig{
					Directory: "exports",
				},
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     3306,
					Database: "glosso",
					Username: "glosso",
				},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `api:
  base_url: https://example.com
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "rows per page outside the preset list",
			configContent: `table:
  rows_per_page: 7
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"rows_per_page",
			},
		},
		{
			name: "unknown column order",
			configContent: `table:
  column_order: de-fr
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"column_order",
			},
		},
		{
			name: "base url must be a url",
			configContent: `api:
  base_url: not a url
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"base_url",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yml")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.configContent), 0644))

			got, err := Load(configPath)
			if tc.wantErr {
				require.Error(t, err)
				for _, want := range tc.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api/glossary", got.API.BaseURL)
	assert.Equal(t, 10, got.Table.RowsPerPage)
}
