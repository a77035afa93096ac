package pictable

import (
	"fmt"
)

// Rect is an axis-aligned rectangle with absolute coordinates
// within its unit, in points.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Cell is one positioned cell of a layout unit: its bounding rectangle,
// the text to draw and the style of its column. Text is passed through
// verbatim, backend-safe encoding is the renderer's responsibility.
type Cell struct {
	Rect  Rect
	Text  string
	Style Style
}

// Unit is one page (PaginatedDocument) or one vertical strip (RasterImage)
// of a LayoutPlan. Every unit repeats the header row geometry followed by
// its share of the data rows.
type Unit struct {
	Index  int
	Width  float64
	Height float64
	Header []Cell
	Rows   [][]Cell
}

// LayoutPlan is the computed geometry for rendering a table: per-column
// widths, the uniform row height, the text baseline offset from a cell's
// top edge, and the ordered units.
type LayoutPlan struct {
	FontSize     float64
	CellPadding  float64
	ColumnWidths []float64
	RowHeight    float64
	Baseline     float64
	Units        []Unit
}

// NumUnits returns the number of layout units.
func (p *LayoutPlan) NumUnits() int { return len(p.Units) }

// Default layout parameters used by NewLayouter.
const (
	DefaultFontSize    = 14.0
	DefaultCellPadding = 6.0
)

// Layouter computes LayoutPlans for tables.
//
// Column widths fit the widest rendered value of each column, header or
// data, at the configured font size. Row height fits one line of text.
// Both are measured through the Measurer collaborator.
type Layouter struct {
	measurer       Measurer
	fontSize       float64
	cellPadding    float64
	maxRowsPerUnit int
}

// NewLayouter returns a Layouter with default font size and cell padding
// and no per-unit row limit.
func NewLayouter(measurer Measurer) *Layouter {
	return &Layouter{
		measurer:    measurer,
		fontSize:    DefaultFontSize,
		cellPadding: DefaultCellPadding,
	}
}

// WithFontSize sets the font size in points.
func (l *Layouter) WithFontSize(fontSize float64) *Layouter {
	if fontSize > 0 {
		l.fontSize = fontSize
	}
	return l
}

// WithCellPadding sets the padding around cell text in points.
func (l *Layouter) WithCellPadding(padding float64) *Layouter {
	if padding >= 0 {
		l.cellPadding = padding
	}
	return l
}

// WithMaxRowsPerUnit limits how many data rows a unit may hold.
// Zero or negative means all rows form a single unit.
func (l *Layouter) WithMaxRowsPerUnit(maxRows int) *Layouter {
	l.maxRowsPerUnit = maxRows
	return l
}

// FontSize returns the configured font size.
func (l *Layouter) FontSize() float64 { return l.fontSize }

// Layout computes the LayoutPlan for table with one style per column.
//
// Rows are partitioned in original order into consecutive units of at most
// the configured max rows per unit. Every unit repeats the header geometry
// and carries absolute cell rectangles within its own coordinate space.
//
// A table without columns or rows is a precondition violation and returns
// ErrEmptyData. A styles slice shorter than the column count is an error,
// extra styles are ignored.
func (l *Layouter) Layout(table *Table, styles []Style) (*LayoutPlan, error) {
	if table.IsEmpty() {
		return nil, ErrEmptyData
	}
	if len(styles) < len(table.Columns) {
		return nil, fmt.Errorf("got %d styles for %d columns", len(styles), len(table.Columns))
	}

	numCols := len(table.Columns)

	colWidths := make([]float64, numCols)
	var textHeight float64
	for col, column := range table.Columns {
		w, h, err := l.measurer.Measure(column.Name, l.fontSize)
		if err != nil {
			return nil, fmt.Errorf("measuring column %d name: %w", col, err)
		}
		colWidths[col] = w
		if h > textHeight {
			textHeight = h
		}
	}
	for _, row := range table.Rows {
		for col := 0; col < numCols; col++ {
			w, h, err := l.measurer.Measure(row.Value(col), l.fontSize)
			if err != nil {
				return nil, fmt.Errorf("measuring row %d column %d: %w", row.Index, col, err)
			}
			if w > colWidths[col] {
				colWidths[col] = w
			}
			if h > textHeight {
				textHeight = h
			}
		}
	}

	ascent, err := l.measurer.Ascent(l.fontSize)
	if err != nil {
		return nil, fmt.Errorf("measuring font ascent: %w", err)
	}

	for col := range colWidths {
		colWidths[col] += 2 * l.cellPadding
	}
	rowHeight := textHeight + 2*l.cellPadding

	var unitWidth float64
	for _, w := range colWidths {
		unitWidth += w
	}

	plan := &LayoutPlan{
		FontSize:     l.fontSize,
		CellPadding:  l.cellPadding,
		ColumnWidths: colWidths,
		RowHeight:    rowHeight,
		Baseline:     l.cellPadding + ascent,
	}

	rowsPerUnit := l.maxRowsPerUnit
	if rowsPerUnit <= 0 {
		rowsPerUnit = len(table.Rows)
	}

	for start := 0; start < len(table.Rows); start += rowsPerUnit {
		end := start + rowsPerUnit
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		unitRows := table.Rows[start:end]

		unit := Unit{
			Index:  len(plan.Units),
			Width:  unitWidth,
			Height: rowHeight * float64(len(unitRows)+1),
		}

		var x float64
		for col, column := range table.Columns {
			unit.Header = append(unit.Header, Cell{
				Rect:  Rect{X: x, Y: 0, Width: colWidths[col], Height: rowHeight},
				Text:  column.Name,
				Style: styles[col],
			})
			x += colWidths[col]
		}

		for i, row := range unitRows {
			y := rowHeight * float64(i+1)
			cells := make([]Cell, 0, numCols)
			x = 0
			for col := 0; col < numCols; col++ {
				cells = append(cells, Cell{
					Rect:  Rect{X: x, Y: y, Width: colWidths[col], Height: rowHeight},
					Text:  row.Value(col),
					Style: styles[col],
				})
				x += colWidths[col]
			}
			unit.Rows = append(unit.Rows, cells)
		}

		plan.Units = append(plan.Units, unit)
	}

	return plan, nil
}
