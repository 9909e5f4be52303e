package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags adds the command line flags that override config values.
// The log-level flag is left to the caller, which usually makes it persistent.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64("tolerance", 0, "Vertical tolerance for grouping text into rows (default 4)")
	fs.String("policy", "", "Row grouping policy: anchor, chain")
	fs.String("sheet", "", "Worksheet name")
	fs.String("format", "", "Output format: xlsx, json")
	fs.Int("workers", 0, "Pages processed concurrently (default: number of CPUs)")
	fs.Bool("no-separator", false, "Do not insert an empty row between pages")
}

// ApplyFlags overrides config values with the flags the user set.
// Flags that are not defined on fs, or were left unset, keep the file values.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	if fs.Changed("log-level") {
		v, err := fs.GetString("log-level")
		if err != nil {
			return err
		}
		c.Log.Level = v
	}
	if fs.Changed("tolerance") {
		v, err := fs.GetFloat64("tolerance")
		if err != nil {
			return err
		}
		c.Reconstruct.YTolerance = &v
	}
	if fs.Changed("policy") {
		v, err := fs.GetString("policy")
		if err != nil {
			return err
		}
		c.Reconstruct.Policy = v
	}
	if fs.Changed("sheet") {
		v, err := fs.GetString("sheet")
		if err != nil {
			return err
		}
		c.Output.SheetName = v
	}
	if fs.Changed("format") {
		v, err := fs.GetString("format")
		if err != nil {
			return err
		}
		c.Output.Format = v
	}
	if fs.Changed("workers") {
		v, err := fs.GetInt("workers")
		if err != nil {
			return err
		}
		c.Workers = v
	}
	if fs.Changed("no-separator") {
		v, err := fs.GetBool("no-separator")
		if err != nil {
			return err
		}
		c.Output.PageSeparator = boolPtr(!v)
	}
	if fs.Changed("addr") {
		v, err := fs.GetString("addr")
		if err != nil {
			return err
		}
		c.Server.Addr = v
	}
	return nil
}
