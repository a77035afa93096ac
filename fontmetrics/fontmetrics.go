// Package fontmetrics implements the pictable.Measurer collaborator on top
// of golang.org/x/image opentype font faces.
//
// A Source holds one parsed font and hands out lightweight per-size faces,
// caching them so measuring and drawing at the same size share a face.
package fontmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const measureDPI = 72 // 1 point == 1 pixel

// Source is a parsed TTF/OTF font that can measure text and create
// font.Face instances at arbitrary sizes. Safe for concurrent use.
type Source struct {
	font *sfnt.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses TTF/OTF font data into a Source.
func New(fontData []byte) (*Source, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Source{font: f, faces: make(map[float64]font.Face)}, nil
}

// GoRegular returns a Source for the embedded Go Regular font.
func GoRegular() (*Source, error) {
	return New(goregular.TTF)
}

// Face returns a font.Face of the source's font at the given size in points.
// Faces are cached per size. The returned face itself is not safe for
// concurrent use, callers drawing with it must serialize access.
func (s *Source) Face(fontSize float64) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face(fontSize)
}

// face must be called with mu held.
func (s *Source) face(fontSize float64) (font.Face, error) {
	if face, ok := s.faces[fontSize]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     measureDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %gpt face: %w", fontSize, err)
	}
	s.faces[fontSize] = face
	return face, nil
}

// Measure returns the advance width of text and the line height
// of the font at fontSize, both in points.
func (s *Source) Measure(text string, fontSize float64) (width, height float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(fontSize)
	if err != nil {
		return 0, 0, err
	}
	metrics := face.Metrics()
	width = fixedToFloat(font.MeasureString(face, text))
	height = fixedToFloat(metrics.Ascent + metrics.Descent)
	return width, height, nil
}

// Ascent returns the baseline offset from the top of a line at fontSize.
func (s *Source) Ascent(fontSize float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(fontSize)
	if err != nil {
		return 0, err
	}
	return fixedToFloat(face.Metrics().Ascent), nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
