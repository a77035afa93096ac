package pngtable

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/google/uuid"

	"github.com/domonda/go-pictable"
)

// ImageArtifact is a rendered raster image.
// Encode serializes it as PNG, caching the result.
type ImageArtifact struct {
	id    string
	image image.Image

	mu      sync.Mutex
	encoded []byte
}

func newImageArtifact(img image.Image) *ImageArtifact {
	return &ImageArtifact{id: uuid.NewString(), image: img}
}

// ID returns the unique ID of the artifact.
func (a *ImageArtifact) ID() string { return a.id }

// Target returns pictable.RasterImage.
func (a *ImageArtifact) Target() pictable.ExportTarget {
	return pictable.RasterImage
}

// Image returns the rendered image.
func (a *ImageArtifact) Image() image.Image { return a.image }

// Encode returns the image serialized as PNG.
func (a *ImageArtifact) Encode() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.encoded != nil {
		return a.encoded, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, a.image); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	a.encoded = buf.Bytes()
	return a.encoded, nil
}
