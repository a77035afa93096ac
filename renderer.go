package pictable

import "context"

// Artifact is a rendered output object, either a raster image or a
// paginated document. Encode serializes the artifact to the byte form
// matching its target's MediaType. Encoding is cached, so Encode may be
// called repeatedly.
type Artifact interface {
	// ID identifies this artifact instance.
	ID() string

	// Target returns the export target the artifact was rendered for.
	Target() ExportTarget

	// Encode returns the serialized bytes of the artifact.
	Encode() ([]byte, error)
}

// ProgressFunc receives rendering progress in the range [0,1].
// Within one render call the reported values are monotonically
// non-decreasing and the final successful call reports exactly 1.
type ProgressFunc func(progress float64)

// Renderer renders a LayoutPlan into an Artifact.
//
// Implementations draw every unit of the plan: per-column background fills,
// the cell grid and the text runs of column names and cell values. After
// each completed unit (or each row for single-unit plans) onProgress is
// called. On failure the partial output is discarded and the underlying
// cause is returned wrapped in a RenderError.
//
// The context is only checked between units, a renderer never aborts
// inside a unit.
type Renderer interface {
	// Target returns the export target this renderer produces.
	Target() ExportTarget

	Render(ctx context.Context, plan *LayoutPlan, onProgress ProgressFunc) (Artifact, error)
}

// Measurer is the font-metrics collaborator of the layout engine.
// See the fontmetrics package for the default implementation.
type Measurer interface {
	// Measure returns the rendered width and line height of text at fontSize.
	Measure(text string, fontSize float64) (width, height float64, err error)

	// Ascent returns the baseline offset from the top of a line at fontSize.
	Ascent(fontSize float64) (float64, error)
}
