package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve PDF conversion over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Addr:           cfg.Server.Addr,
				MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
				Options:        cfg.Options(),
				XLSX:           cfg.XLSXOptions(),
			})
			color.Cyan("Listening on %s (POST /convert)", cfg.Server.Addr)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	return cmd
}
