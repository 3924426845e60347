package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glosso-dev/glosso/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir(),
		testutil.WithBaseURL("https://glossary.example.com/api/glossary"),
		testutil.WithRowsPerPage(25),
		testutil.WithColumnOrder("de-en"),
	)
	configFile = cfgPath
	t.Cleanup(func() { configFile = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://glossary.example.com/api/glossary", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.Table.RowsPerPage)
	assert.Equal(t, "de-en", cfg.Table.ColumnOrder)
}

func TestNewBrowseCommand(t *testing.T) {
	cmd := newBrowseCommand()

	assert.Equal(t, "browse", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewListCommand(t *testing.T) {
	cmd := newListCommand()

	assert.Equal(t, "list [query]", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flag := cmd.PersistentFlags().Lookup("lang")
	assert.NotNil(t, flag)
	assert.Equal(t, "all", flag.Value.String())
}

func TestNewExportCommand(t *testing.T) {
	cmd := newExportCommand()

	assert.Equal(t, "export", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := make([]string, 0, 3)
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Use)
	}
	assert.ElementsMatch(t, []string{"json", "yaml", "pdf"}, subcommands)
}

func TestNewSnapshotCommand(t *testing.T) {
	cmd := newSnapshotCommand()

	assert.Equal(t, "snapshot", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
	assert.NotNil(t, cmd.PersistentFlags().Lookup("force"))
}

func TestSearchLanguage(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "english", value: "en"},
		{name: "german", value: "de"},
		{name: "all", value: "all"},
		{name: "unknown", value: "fr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lang searchLanguage
			err := lang.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.value, lang.String())
		})
	}
}
