package pdftable

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/domonda/go-pictable"
)

// DocumentArtifact is a rendered paginated PDF document.
//
// A gofpdf document can only be output once, so Encode serializes it on
// the first call and caches the bytes for all further calls.
type DocumentArtifact struct {
	id  string
	pdf *gofpdf.Fpdf

	mu      sync.Mutex
	encoded []byte
}

func newDocumentArtifact(pdf *gofpdf.Fpdf) *DocumentArtifact {
	return &DocumentArtifact{id: uuid.NewString(), pdf: pdf}
}

// ID returns the unique ID of the artifact.
func (a *DocumentArtifact) ID() string { return a.id }

// Target returns pictable.PaginatedDocument.
func (a *DocumentArtifact) Target() pictable.ExportTarget {
	return pictable.PaginatedDocument
}

// NumPages returns the number of pages of the document.
func (a *DocumentArtifact) NumPages() int {
	return a.pdf.PageCount()
}

// Encode returns the document serialized as PDF.
func (a *DocumentArtifact) Encode() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.encoded != nil {
		return a.encoded, nil
	}
	var buf bytes.Buffer
	if err := a.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encoding PDF: %w", err)
	}
	a.encoded = buf.Bytes()
	return a.encoded, nil
}
