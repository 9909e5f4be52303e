// Package main provides the CLI entry point for pdfgrid-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/config"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/output"
)

var (
	outputPath string
	pretty     bool
	pagesDir   string
	verify     bool
	configPath string
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdfgrid [input.pdf]",
		Short: "Convert tabular PDF text into a spreadsheet",
		Long: `pdfgrid-go groups the text of each PDF page into rows by vertical
position, orders each row left to right and writes the result as xlsx or JSON.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: pdfgrid.yaml, then ~/.config/pdfgrid/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input name with .xlsx or .json)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&pagesDir, "pages-dir", "", "Directory for per-page JSON files")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Reopen the written xlsx and check it against the grid")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and status output")
	config.RegisterFlags(rootCmd.Flags())

	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(validationErrors(errs)...)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLogger(logging.New(os.Stderr, level, cfg.Log.Format))
	return cfg, nil
}

func validationErrors(errs []config.ValidationError) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.Options()
	var bar *progressbar.ProgressBar
	if !quiet {
		color.Blue("Converting %s", inputPath)
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(color.BlueString("Processing pages...")),
			progressbar.OptionSetItsString("pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetRenderBlankState(true),
		)
		opts.OnPage = func(done, total int) {
			bar.ChangeMax(total)
			bar.Add(1)
		}
	}

	doc, err := pdfgrid.Convert(ctx, inputPath, opts)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if doc.Empty() {
		color.Yellow("No extractable text found in %s; nothing written", inputPath)
		return nil
	}

	target := outputPath
	switch cfg.Output.Format {
	case "json":
		if target == "" {
			target = output.OutputName(inputPath, ".json")
		}
		if err := writeJSON(doc, target); err != nil {
			return err
		}
	default:
		if target == "" {
			target = output.OutputName(inputPath, ".xlsx")
		}
		xlsxOpts := cfg.XLSXOptions()
		if err := output.SaveXLSX(target, doc.Rows, xlsxOpts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if verify {
			if err := output.VerifyXLSX(target, doc.Rows, xlsxOpts); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
		}
	}

	if pagesDir != "" {
		if err := writePageFiles(doc, pagesDir); err != nil {
			return fmt.Errorf("failed to write page files: %w", err)
		}
	}

	if !quiet {
		color.Green("✓ %d pages, %d rows, %d cells written to %s",
			doc.PageCount, len(doc.Rows), doc.Rows.CellCount(), target)
	}
	return nil
}

func writeJSON(doc *models.DocumentData, path string) error {
	jsonData, err := output.ToJSON(doc, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if path == "-" {
		fmt.Println(string(jsonData))
		return nil
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writePageFiles(doc *models.DocumentData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	base := output.OutputName(doc.DocName, "")
	for _, page := range doc.Pages {
		jsonData, err := output.PageToJSON(&page, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%s_page%d.json", base, page.Page))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
