// Package server exposes PDF to spreadsheet conversion over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/output"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Config configures the HTTP server.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Options        pdfgrid.Options
	XLSX           output.XLSXOptions
}

// Server converts uploaded PDFs into spreadsheets.
type Server struct {
	config Config
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 32 << 20
	}
	return &Server{config: config}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	log := logging.Logger()

	if r.ContentLength > s.config.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "missing pdf upload in field \"file\"")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	opts := s.config.Options
	if v := r.URL.Query().Get("tolerance"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol < 0 {
			writeError(w, http.StatusBadRequest, "tolerance must be a non-negative number")
			return
		}
		opts.YTolerance = &tol
	}

	name := filepath.Base(header.Filename)
	doc, err := pdfgrid.ConvertReader(r.Context(), bytes.NewReader(data), int64(len(data)), name, opts)
	if err != nil {
		log.Warn("conversion failed", "doc", name, "error", err)
		if errors.Is(err, pdfgrid.ErrInvalidFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if doc.Empty() {
		writeError(w, http.StatusUnprocessableEntity, pdfgrid.ErrNothingExtractable.Error())
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "xlsx":
		var buf bytes.Buffer
		if err := output.WriteXLSX(&buf, doc.Rows, s.config.XLSX); err != nil {
			log.Error("xlsx encoding failed", "doc", name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to build spreadsheet")
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.OutputName(name, ".xlsx")))
		w.Write(buf.Bytes())
	case "json":
		data, err := output.ToJSON(doc, false)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode json")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "format must be xlsx or json")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
