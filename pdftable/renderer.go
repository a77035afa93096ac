// Package pdftable renders a pictable.LayoutPlan as a paginated PDF
// document with one page per layout unit, each page sized to its unit.
package pdftable

import (
	"context"

	"github.com/jung-kurt/gofpdf"

	"github.com/domonda/go-pictable"
)

// Defaults for document metadata and the PDF core font.
const (
	DefaultTitle      = "Table"
	DefaultAuthor     = "go-pictable"
	DefaultFontFamily = "Helvetica"
)

// Renderer renders layout plans into paginated PDF artifacts.
type Renderer struct {
	title      string
	author     string
	fontFamily string
	lineWidth  float64
}

// NewRenderer returns a PDF renderer with default metadata and font.
func NewRenderer() *Renderer {
	return &Renderer{
		title:      DefaultTitle,
		author:     DefaultAuthor,
		fontFamily: DefaultFontFamily,
		lineWidth:  0.5,
	}
}

// WithTitle sets the document title metadata.
func (r *Renderer) WithTitle(title string) *Renderer {
	r.title = title
	return r
}

// WithAuthor sets the document author metadata.
func (r *Renderer) WithAuthor(author string) *Renderer {
	r.author = author
	return r
}

// WithFontFamily sets the PDF core font family used for all text.
func (r *Renderer) WithFontFamily(family string) *Renderer {
	if family != "" {
		r.fontFamily = family
	}
	return r
}

// WithGridLineWidth sets the stroke width of the cell grid in points.
func (r *Renderer) WithGridLineWidth(width float64) *Renderer {
	if width > 0 {
		r.lineWidth = width
	}
	return r
}

// Target returns pictable.PaginatedDocument.
func (r *Renderer) Target() pictable.ExportTarget {
	return pictable.PaginatedDocument
}

// Render emits one page per unit of the plan, each page sized to the
// unit's dimensions, and attaches the configured title and author
// metadata. Progress is reported after each completed page and reaches
// exactly 1 before returning.
//
// Cell text is translated to the PDF core font's cp1252 encoding by
// gofpdf, so no characters reach the content stream unescaped.
func (r *Renderer) Render(ctx context.Context, plan *pictable.LayoutPlan, onProgress pictable.ProgressFunc) (pictable.Artifact, error) {
	if len(plan.Units) == 0 {
		return nil, &pictable.RenderError{Target: r.Target(), Err: pictable.ErrEmptyData}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size: gofpdf.SizeType{
			Wd: plan.Units[0].Width,
			Ht: plan.Units[0].Height,
		},
	})
	pdf.SetTitle(r.title, true)
	pdf.SetAuthor(r.author, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetFont(r.fontFamily, "", plan.FontSize)
	pdf.SetLineWidth(r.lineWidth)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	total := len(plan.Units)
	for i, unit := range plan.Units {
		if err := ctx.Err(); err != nil {
			return nil, &pictable.RenderError{Target: r.Target(), Err: err}
		}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: unit.Width, Ht: unit.Height})

		r.drawCells(pdf, translate, unit.Header, plan)
		for _, row := range unit.Rows {
			r.drawCells(pdf, translate, row, plan)
		}

		if pdf.Err() {
			return nil, &pictable.RenderError{Target: r.Target(), Err: pdf.Error()}
		}
		if onProgress != nil {
			onProgress(float64(i+1) / float64(total))
		}
	}

	return newDocumentArtifact(pdf), nil
}

func (r *Renderer) drawCells(pdf *gofpdf.Fpdf, translate func(string) string, cells []pictable.Cell, plan *pictable.LayoutPlan) {
	for _, cell := range cells {
		rect := cell.Rect

		bg := cell.Style.Background()
		pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		pdf.SetDrawColor(0xB0, 0xB0, 0xB0)
		pdf.Rect(rect.X, rect.Y, rect.Width, rect.Height, "FD")

		text := cell.Style.TextColor()
		pdf.SetTextColor(int(text.R), int(text.G), int(text.B))
		pdf.Text(rect.X+plan.CellPadding, rect.Y+plan.Baseline, translate(cell.Text))
	}
}
