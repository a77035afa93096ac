// Package pictable converts delimited text into a table model and computes
// the layout needed to render that model as a raster image or a paginated
// document. The root package holds the table model, the style palette,
// the layout engine and the interfaces connecting them to the render
// backends in the pngtable and pdftable subpackages.
package pictable

import (
	"strconv"
	"strings"
)

// Ellipsis is appended to field values truncated by BuildTable.
const Ellipsis = "…"

// Column is one table column with its assigned visual style.
// Column identity is positional within Table.Columns.
type Column struct {
	Name  string
	Style Style
}

// Row is one data row of a Table.
//
// Index is the 1-based position of the row's line within the original
// source text, counting the header line as line 0. The first data row
// therefore has Index 1 regardless of how many rows precede it.
//
// Values may be shorter than the table's column count. Missing cells are
// returned as empty strings by Value, extra values beyond the column count
// are ignored by the layout engine.
type Row struct {
	Index  int
	Values []string
}

// Value returns the cell value for the given column index,
// or an empty string if the row has no value for that column.
func (r Row) Value(col int) string {
	if col < 0 || col >= len(r.Values) {
		return ""
	}
	return r.Values[col]
}

// Table is the parsed model of delimited text: the separator it was split
// with, its columns and its data rows.
//
// A Table is owned by the pipeline instance that built it and must not be
// mutated while a generation is in flight. Bulk replacement via ReplaceRows
// and ReplaceColumns is the only supported mutation.
type Table struct {
	Separator string
	Columns   []Column
	Rows      []Row
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// IsEmpty reports whether the table has no columns or no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Columns) == 0 || len(t.Rows) == 0
}

// ReplaceRows replaces all data rows of the table.
func (t *Table) ReplaceRows(rows []Row) {
	t.Rows = rows
}

// ReplaceColumns replaces all columns of the table.
func (t *Table) ReplaceColumns(columns []Column) {
	t.Columns = columns
}

// BuildTable tokenizes rawText into a Table.
//
// Lines are split on any carriage-return or line-feed boundary, empty lines
// are discarded. The first remaining line is split on separator into the
// column names, every following line becomes a Row. Splitting preserves
// empty fields, so "a,,b" yields three fields with an empty middle one.
//
// If exactly one non-empty line remains, numeric column names "0".."N-1"
// are synthesized for its field count and the line itself becomes the sole
// data row with Index 1.
//
// If maxFieldLength is > 0, any field longer than that many runes is cut
// to maxFieldLength runes and Ellipsis is appended. Column names and data
// values are truncated alike.
//
// BuildTable is deterministic: identical rawText, separator and
// maxFieldLength always produce a structurally identical Table.
// Styles are not assigned here, see StyleAssigner.
func BuildTable(rawText, separator string, maxFieldLength int) *Table {
	lines := splitLines(rawText)
	if len(lines) == 0 {
		return &Table{Separator: separator}
	}

	headerFields := strings.Split(lines[0], separator)
	dataLines := lines[1:]

	if len(lines) == 1 {
		// Single line of input: synthesize numeric column names for its
		// field count and keep the line as the only data row.
		names := make([]string, len(headerFields))
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		headerFields = names
		dataLines = lines
	}

	table := &Table{Separator: separator}

	for _, name := range headerFields {
		table.Columns = append(table.Columns, Column{
			Name: truncateField(sanitizeField(name), maxFieldLength),
		})
	}

	for i, line := range dataLines {
		fields := strings.Split(line, separator)
		values := make([]string, len(fields))
		for col, field := range fields {
			values[col] = truncateField(sanitizeField(field), maxFieldLength)
		}
		table.Rows = append(table.Rows, Row{Index: i + 1, Values: values})
	}

	return table
}

// DetectSeparator guesses the field separator of rawText by counting
// occurrences of comma, semicolon and tab across all non-empty lines and
// returning the most frequent one. Comma wins ties and is the fallback
// for input without any of the three.
func DetectSeparator(rawText string) string {
	var commas, semicolons, tabs int
	for _, line := range splitLines(rawText) {
		commas += strings.Count(line, ",")
		semicolons += strings.Count(line, ";")
		tabs += strings.Count(line, "\t")
	}
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	default:
		return ","
	}
}

// splitLines splits on any CR or LF boundary and drops empty lines,
// so "\r\n", "\n", "\r" and "\n\r" line endings all work.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

// sanitizeField replaces the Unicode replacement character and
// no-break spaces left over from decoding with plain spaces.
func sanitizeField(field string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '�', ' ':
			return ' '
		default:
			return r
		}
	}, field)
}

func truncateField(field string, maxLength int) string {
	if maxLength <= 0 {
		return field
	}
	runes := []rune(field)
	if len(runes) <= maxLength {
		return field
	}
	return string(runes[:maxLength]) + Ellipsis
}
