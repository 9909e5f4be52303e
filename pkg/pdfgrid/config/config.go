// Package config loads pdfgrid settings from YAML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/output"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/source"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Reconstruct struct {
		// YTolerance is a pointer so an explicit 0 survives applyDefaults.
		YTolerance *float64 `yaml:"y_tolerance"`
		Policy     string   `yaml:"policy"`
	} `yaml:"reconstruct"`

	Source struct {
		MergeGlyphs *bool   `yaml:"merge_glyphs"`
		GapFactor   float64 `yaml:"gap_factor"`
		SpaceFactor float64 `yaml:"space_factor"`
	} `yaml:"source"`

	Output struct {
		SheetName     string `yaml:"sheet_name"`
		AutoFilter    bool   `yaml:"auto_filter"`
		PrintArea     *bool  `yaml:"print_area"`
		ColumnWidths  *bool  `yaml:"column_widths"`
		PageSeparator *bool  `yaml:"page_separator"`
		Format        string `yaml:"format"`
	} `yaml:"output"`

	Workers int `yaml:"workers"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Server struct {
		Addr        string `yaml:"addr"`
		MaxUploadMB int    `yaml:"max_upload_mb"`
	} `yaml:"server"`
}

// DefaultLocations lists the files LoadConfig tries when no path is given.
func DefaultLocations() []string {
	return []string{
		"pdfgrid.yaml",
		"pdfgrid.yml",
		filepath.Join(os.Getenv("HOME"), ".config/pdfgrid/config.yaml"),
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, loc := range DefaultLocations() {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := mergeWithEnv(&config); err != nil {
		return nil, err
	}
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	if err := mergeWithEnv(config); err != nil {
		return nil, err
	}
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Reconstruct.YTolerance == nil {
		tol := reconstruct.DefaultYTolerance
		config.Reconstruct.YTolerance = &tol
	}
	if config.Reconstruct.Policy == "" {
		config.Reconstruct.Policy = string(reconstruct.PolicyAnchor)
	}

	if config.Source.MergeGlyphs == nil {
		config.Source.MergeGlyphs = boolPtr(true)
	}
	runs := source.DefaultRunOptions()
	if config.Source.GapFactor == 0 {
		config.Source.GapFactor = runs.GapFactor
	}
	if config.Source.SpaceFactor == 0 {
		config.Source.SpaceFactor = runs.SpaceFactor
	}

	if config.Output.SheetName == "" {
		config.Output.SheetName = output.DefaultSheetName
	}
	if config.Output.PrintArea == nil {
		config.Output.PrintArea = boolPtr(true)
	}
	if config.Output.ColumnWidths == nil {
		config.Output.ColumnWidths = boolPtr(true)
	}
	if config.Output.PageSeparator == nil {
		config.Output.PageSeparator = boolPtr(true)
	}
	if config.Output.Format == "" {
		config.Output.Format = "xlsx"
	}

	if config.Log.Level == "" {
		config.Log.Level = "warn"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.MaxUploadMB == 0 {
		config.Server.MaxUploadMB = 32
	}
}

func mergeWithEnv(config *Config) error {
	if v := os.Getenv("PDFGRID_Y_TOLERANCE"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PDFGRID_Y_TOLERANCE: %w", err)
		}
		config.Reconstruct.YTolerance = &tol
	}
	if v := os.Getenv("PDFGRID_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("PDFGRID_ADDR"); v != "" {
		config.Server.Addr = v
	}
	return nil
}

// Options converts the configuration into conversion options.
func (c *Config) Options() pdfgrid.Options {
	opts := pdfgrid.DefaultOptions()
	opts.YTolerance = c.Reconstruct.YTolerance
	opts.Policy = reconstruct.Policy(c.Reconstruct.Policy)
	opts.MergeGlyphs = c.Source.MergeGlyphs
	opts.GapFactor = c.Source.GapFactor
	opts.SpaceFactor = c.Source.SpaceFactor
	opts.PageSeparator = c.Output.PageSeparator
	opts.Workers = c.Workers
	return opts
}

// XLSXOptions converts the configuration into spreadsheet options.
func (c *Config) XLSXOptions() output.XLSXOptions {
	opts := output.DefaultXLSXOptions()
	opts.SheetName = c.Output.SheetName
	opts.AutoFilter = c.Output.AutoFilter
	if c.Output.PrintArea != nil {
		opts.PrintArea = *c.Output.PrintArea
	}
	if c.Output.ColumnWidths != nil {
		opts.ColumnWidths = *c.Output.ColumnWidths
	}
	return opts
}

func boolPtr(b bool) *bool {
	return &b
}
