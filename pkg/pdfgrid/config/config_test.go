package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pdfgrid.yaml")

	configData := `
reconstruct:
  y_tolerance: 0
  policy: chain

source:
  merge_glyphs: false
  gap_factor: 0.5

output:
  sheet_name: "Statement"
  auto_filter: true
  print_area: false
  page_separator: false
  format: json

workers: 2

log:
  level: debug
  format: json

server:
  addr: "127.0.0.1:9000"
  max_upload_mb: 8
`
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	require.NotNil(t, config.Reconstruct.YTolerance)
	assert.Equal(t, 0.0, *config.Reconstruct.YTolerance)
	assert.Equal(t, "chain", config.Reconstruct.Policy)
	assert.False(t, *config.Source.MergeGlyphs)
	assert.Equal(t, 0.5, config.Source.GapFactor)
	assert.Equal(t, 0.1, config.Source.SpaceFactor)
	assert.Equal(t, "Statement", config.Output.SheetName)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
	assert.Empty(t, config.Validate())

	opts := config.Options()
	assert.Equal(t, 0.0, opts.Tolerance())
	assert.Equal(t, reconstruct.PolicyChain, opts.Policy)
	assert.False(t, opts.ShouldMergeGlyphs())
	assert.False(t, opts.ShouldSeparatePages())
	assert.Equal(t, 2, opts.Workers)

	xlsx := config.XLSXOptions()
	assert.Equal(t, "Statement", xlsx.SheetName)
	assert.True(t, xlsx.AutoFilter)
	assert.False(t, xlsx.PrintArea)
	assert.True(t, xlsx.ColumnWidths)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, reconstruct.DefaultYTolerance, *config.Reconstruct.YTolerance)
	assert.Equal(t, "anchor", config.Reconstruct.Policy)
	assert.True(t, *config.Source.MergeGlyphs)
	assert.Equal(t, "Data", config.Output.SheetName)
	assert.Equal(t, "xlsx", config.Output.Format)
	assert.True(t, *config.Output.PageSeparator)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 32, config.Server.MaxUploadMB)
	assert.Empty(t, config.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("reconstruct: [1, 2"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "error parsing config file")
}

func TestConfigValidation(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorMessages []string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name: "invalid config",
			mutate: func(c *Config) {
				c.Reconstruct.YTolerance = &negative
				c.Reconstruct.Policy = "nearest"
				c.Output.SheetName = "a sheet name that is far too long for excel"
				c.Output.Format = "csv"
				c.Workers = -2
			},
			errorMessages: []string{
				"reconstruct.y_tolerance: y_tolerance must be non-negative",
				"reconstruct.policy: policy must be anchor or chain",
				"output.sheet_name: sheet_name must be at most 31 characters",
				"output.format: invalid format: csv",
				"workers: workers must be non-negative",
			},
		},
		{
			name: "glyph merge factors",
			mutate: func(c *Config) {
				c.Source.GapFactor = 0
				c.Source.SpaceFactor = -0.1
			},
			errorMessages: []string{
				"source.gap_factor: gap_factor must be positive",
				"source.space_factor: space_factor must be positive",
			},
		},
		{
			name: "bad sheet characters and logging",
			mutate: func(c *Config) {
				c.Output.SheetName = "Q1/Q2"
				c.Log.Level = "verbose"
				c.Log.Format = "xml"
				c.Server.MaxUploadMB = -1
			},
			errorMessages: []string{
				"output.sheet_name: sheet_name contains an invalid character",
				"log.level: level must be debug, info, warn or error",
				"log.format: format must be text or json",
				"server.max_upload_mb: max_upload_mb must be positive",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			applyDefaults(config)
			tt.mutate(config)

			errors := config.Validate()
			require.Len(t, errors, len(tt.errorMessages))
			for i, msg := range tt.errorMessages {
				assert.Contains(t, errors[i].Error(), msg)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PDFGRID_Y_TOLERANCE", "2.5")
	t.Setenv("PDFGRID_LOG_LEVEL", "debug")
	t.Setenv("PDFGRID_ADDR", ":9999")

	config := &Config{}
	require.NoError(t, mergeWithEnv(config))

	assert.Equal(t, 2.5, *config.Reconstruct.YTolerance)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, ":9999", config.Server.Addr)

	t.Setenv("PDFGRID_Y_TOLERANCE", "wide")
	assert.Error(t, mergeWithEnv(&Config{}))
}
