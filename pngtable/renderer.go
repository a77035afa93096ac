// Package pngtable renders a pictable.LayoutPlan as a single PNG image.
// All layout units are composed into one continuous image, stacked
// vertically and as wide as the widest unit.
package pngtable

import (
	"context"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/domonda/go-pictable"
	"github.com/domonda/go-pictable/fontmetrics"
)

var (
	gridColor   = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
	canvasColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Renderer renders layout plans into raster image artifacts.
type Renderer struct {
	fonts     *fontmetrics.Source
	lineWidth float64
}

// NewRenderer returns a raster renderer drawing text with faces
// from the passed font source.
func NewRenderer(fonts *fontmetrics.Source) *Renderer {
	return &Renderer{fonts: fonts, lineWidth: 1}
}

// WithGridLineWidth sets the stroke width of the cell grid in pixels.
func (r *Renderer) WithGridLineWidth(width float64) *Renderer {
	if width > 0 {
		r.lineWidth = width
	}
	return r
}

// Target returns pictable.RasterImage.
func (r *Renderer) Target() pictable.ExportTarget {
	return pictable.RasterImage
}

// Render draws every unit of the plan into one image, reporting progress
// after each completed unit, or after each row if the plan has a single
// unit. The final successful progress report is exactly 1.
func (r *Renderer) Render(ctx context.Context, plan *pictable.LayoutPlan, onProgress pictable.ProgressFunc) (pictable.Artifact, error) {
	if len(plan.Units) == 0 {
		return nil, &pictable.RenderError{Target: r.Target(), Err: pictable.ErrEmptyData}
	}

	face, err := r.fonts.Face(plan.FontSize)
	if err != nil {
		return nil, &pictable.RenderError{Target: r.Target(), Err: err}
	}

	var width, height float64
	for _, unit := range plan.Units {
		width = math.Max(width, unit.Width)
		height += unit.Height
	}

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetColor(canvasColor)
	dc.Clear()
	dc.SetFontFace(face)

	progress := newProgressCounter(plan, onProgress)

	var offsetY float64
	for _, unit := range plan.Units {
		if err := ctx.Err(); err != nil {
			return nil, &pictable.RenderError{Target: r.Target(), Err: err}
		}

		drawCells(dc, unit.Header, offsetY, plan, r.lineWidth)
		for _, row := range unit.Rows {
			drawCells(dc, row, offsetY, plan, r.lineWidth)
			progress.rowDone()
		}

		offsetY += unit.Height
		progress.unitDone()
	}

	return newImageArtifact(dc.Image()), nil
}

func drawCells(dc *gg.Context, cells []pictable.Cell, offsetY float64, plan *pictable.LayoutPlan, lineWidth float64) {
	for _, cell := range cells {
		rect := cell.Rect

		dc.SetColor(cell.Style.Background())
		dc.DrawRectangle(rect.X, offsetY+rect.Y, rect.Width, rect.Height)
		dc.Fill()

		dc.SetColor(gridColor)
		dc.SetLineWidth(lineWidth)
		dc.DrawRectangle(rect.X, offsetY+rect.Y, rect.Width, rect.Height)
		dc.Stroke()

		dc.SetColor(cell.Style.TextColor())
		dc.DrawString(cell.Text, rect.X+plan.CellPadding, offsetY+rect.Y+plan.Baseline)
	}
}

// progressCounter reports per unit, or per row for single-unit plans,
// so a one-strip render still shows incremental progress.
type progressCounter struct {
	onProgress pictable.ProgressFunc
	perRow     bool
	total      int
	done       int
}

func newProgressCounter(plan *pictable.LayoutPlan, onProgress pictable.ProgressFunc) *progressCounter {
	p := &progressCounter{onProgress: onProgress}
	if len(plan.Units) == 1 {
		p.perRow = true
		p.total = len(plan.Units[0].Rows)
	} else {
		p.total = len(plan.Units)
	}
	if p.total == 0 {
		p.total = 1
	}
	return p
}

func (p *progressCounter) rowDone() {
	if p.perRow {
		p.step()
	}
}

func (p *progressCounter) unitDone() {
	if !p.perRow {
		p.step()
	}
}

func (p *progressCounter) step() {
	p.done++
	if p.onProgress != nil {
		p.onProgress(float64(p.done) / float64(p.total))
	}
}
