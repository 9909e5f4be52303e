package config

import (
	"fmt"
	"strings"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
)

// maxSheetNameLength is the longest worksheet name Excel accepts.
const maxSheetNameLength = 31

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if tol := c.Reconstruct.YTolerance; tol != nil && *tol < 0 {
		errors = append(errors, ValidationError{
			Field:   "reconstruct.y_tolerance",
			Message: "y_tolerance must be non-negative",
		})
	}

	if _, err := reconstruct.ParsePolicy(c.Reconstruct.Policy); err != nil {
		errors = append(errors, ValidationError{
			Field:   "reconstruct.policy",
			Message: "policy must be anchor or chain",
		})
	}

	if c.Source.GapFactor <= 0 {
		errors = append(errors, ValidationError{
			Field:   "source.gap_factor",
			Message: "gap_factor must be positive",
		})
	}
	if c.Source.SpaceFactor <= 0 {
		errors = append(errors, ValidationError{
			Field:   "source.space_factor",
			Message: "space_factor must be positive",
		})
	}

	if c.Output.SheetName == "" {
		errors = append(errors, ValidationError{
			Field:   "output.sheet_name",
			Message: "sheet_name is required",
		})
	} else if len([]rune(c.Output.SheetName)) > maxSheetNameLength {
		errors = append(errors, ValidationError{
			Field:   "output.sheet_name",
			Message: fmt.Sprintf("sheet_name must be at most %d characters", maxSheetNameLength),
		})
	} else if strings.ContainsAny(c.Output.SheetName, `:\/?*[]`) {
		errors = append(errors, ValidationError{
			Field:   "output.sheet_name",
			Message: "sheet_name contains an invalid character",
		})
	}

	switch c.Output.Format {
	case "xlsx", "json":
	default:
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid format: %s (must be xlsx or json)", c.Output.Format),
		})
	}

	if c.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "workers",
			Message: "workers must be non-negative",
		})
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Message: "level must be debug, info, warn or error",
		})
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Message: "format must be text or json",
		})
	}

	if c.Server.MaxUploadMB < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_upload_mb",
			Message: "max_upload_mb must be positive",
		})
	}

	return errors
}
