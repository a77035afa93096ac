package pictable

// ExportTarget selects the kind of artifact a generation produces.
type ExportTarget int

const (
	// RasterImage renders all layout units stacked into one PNG image.
	RasterImage ExportTarget = iota

	// PaginatedDocument renders one PDF page per layout unit.
	PaginatedDocument
)

// Valid reports whether the target is one of the defined values.
func (t ExportTarget) Valid() bool {
	return t == RasterImage || t == PaginatedDocument
}

// Extension returns the file extension of the target without a dot.
func (t ExportTarget) Extension() string {
	switch t {
	case RasterImage:
		return "png"
	case PaginatedDocument:
		return "pdf"
	}
	return ""
}

// MediaType returns the MIME type of the target's artifact encoding.
func (t ExportTarget) MediaType() string {
	switch t {
	case RasterImage:
		return "image/png"
	case PaginatedDocument:
		return "application/pdf"
	}
	return ""
}

func (t ExportTarget) String() string {
	switch t {
	case RasterImage:
		return "RasterImage"
	case PaginatedDocument:
		return "PaginatedDocument"
	}
	return "invalid ExportTarget"
}
