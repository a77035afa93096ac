package pictable

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyData indicates that a generation was requested for a table
	// without columns or without rows. Recoverable by re-supplying data.
	ErrEmptyData = errors.New("table has no columns or no rows")

	// ErrGenerationInProgress indicates that a generation was requested
	// while another one is still running on the same pipeline.
	// Recoverable by retrying after the running generation finished.
	ErrGenerationInProgress = errors.New("generation already in progress")

	// ErrUnsupportedExportTarget indicates that no renderer is registered
	// for the requested export target.
	ErrUnsupportedExportTarget = errors.New("unsupported export target")

	// ErrNothingToPersist indicates that a write was requested before any
	// artifact has been generated for the current export target.
	// Recoverable by generating first.
	ErrNothingToPersist = errors.New("no artifact generated for export target")
)

// RenderError wraps a drawing or measurement failure of a render backend.
// The partially drawn output is discarded, never returned.
type RenderError struct {
	Target ExportTarget
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %s", e.Target, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
