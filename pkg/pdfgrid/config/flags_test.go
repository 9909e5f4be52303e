package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pdfgrid", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.String("log-level", "", "")
	return fs
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "no flags keep file values",
			args: nil,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 7.5, *c.Reconstruct.YTolerance)
				assert.Equal(t, "chain", c.Reconstruct.Policy)
				assert.Equal(t, "Statement", c.Output.SheetName)
				assert.Equal(t, "json", c.Output.Format)
				assert.Equal(t, 3, c.Workers)
				assert.True(t, *c.Output.PageSeparator)
				assert.Equal(t, "info", c.Log.Level)
			},
		},
		{
			name: "flags override file values",
			args: []string{"--tolerance", "2", "--policy", "anchor", "--sheet", "Rows",
				"--format", "xlsx", "--workers", "1", "--log-level", "debug"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 2.0, *c.Reconstruct.YTolerance)
				assert.Equal(t, "anchor", c.Reconstruct.Policy)
				assert.Equal(t, "Rows", c.Output.SheetName)
				assert.Equal(t, "xlsx", c.Output.Format)
				assert.Equal(t, 1, c.Workers)
				assert.Equal(t, "debug", c.Log.Level)
			},
		},
		{
			name: "explicit zero tolerance",
			args: []string{"--tolerance=0"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0.0, *c.Reconstruct.YTolerance)
			},
		},
		{
			name: "no separator",
			args: []string{"--no-separator"},
			check: func(t *testing.T, c *Config) {
				assert.False(t, *c.Output.PageSeparator)
				assert.False(t, c.Options().ShouldSeparatePages())
			},
		},
		{
			name: "no separator set false",
			args: []string{"--no-separator=false"},
			check: func(t *testing.T, c *Config) {
				assert.True(t, *c.Output.PageSeparator)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tol := 7.5
			config := &Config{}
			config.Reconstruct.YTolerance = &tol
			config.Reconstruct.Policy = "chain"
			config.Output.SheetName = "Statement"
			config.Output.Format = "json"
			config.Workers = 3
			config.Log.Level = "info"
			applyDefaults(config)

			fs := newFlagSet()
			require.NoError(t, fs.Parse(tt.args))
			require.NoError(t, config.ApplyFlags(fs))
			tt.check(t, config)
		})
	}
}

func TestApplyFlagsUndefined(t *testing.T) {
	config := &Config{}
	applyDefaults(config)

	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.String("addr", "", "")
	require.NoError(t, fs.Parse([]string{"--addr", ":7000"}))
	require.NoError(t, config.ApplyFlags(fs))

	assert.Equal(t, ":7000", config.Server.Addr)
	assert.Equal(t, "Data", config.Output.SheetName)
}
