// Package ingest acquires decoded text for the table pipeline.
//
// The pipeline core only accepts decoded text. This package is the
// collaborator boundary in front of it: it reads raw bytes from a file
// and decodes them, trying UTF-8, UTF-16, UTF-32 and ASCII in that order.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
	"github.com/ungerik/go-fs"
	"golang.org/x/text/encoding/unicode/utf32"
)

// ErrNoUsableEncoding indicates that the source bytes could not be
// decoded with any of the supported encodings.
var ErrNoUsableEncoding = errors.New("no usable encoding")

// SourceError wraps a failure to read or decode a source.
// It carries the source identifier and, where available,
// the raw bytes for diagnostics.
type SourceError struct {
	Source string
	Data   []byte
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %s", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ReadFile reads the file and decodes its content via Decode.
// Read and decode failures are wrapped in a SourceError carrying the
// file path and, for decode failures, the raw bytes.
func ReadFile(ctx context.Context, file fs.File) (string, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return "", &SourceError{Source: file.Path(), Err: err}
	}
	text, _, err := Decode(data)
	if err != nil {
		return "", &SourceError{Source: file.Path(), Data: data, Err: err}
	}
	return text, nil
}

// Decode decodes raw bytes into text, trying UTF-8, UTF-16, UTF-32 and
// ASCII in that order. It returns the decoded text and the name of the
// encoding that succeeded, or ErrNoUsableEncoding wrapped with context
// if every attempt failed.
func Decode(data []byte) (text string, encoding string, err error) {
	attempts := []struct {
		encoding string
		decode   func([]byte) (string, bool)
	}{
		{"UTF-8", decodeUTF8},
		{"UTF-16", decodeUTF16},
		{"UTF-32", decodeUTF32},
		{"ASCII", decodeASCII},
	}
	for _, attempt := range attempts {
		if text, ok := attempt.decode(data); ok {
			return text, attempt.encoding, nil
		}
	}
	return "", "", fmt.Errorf("decoding %d bytes: %w", len(data), ErrNoUsableEncoding)
}

func decodeUTF8(data []byte) (string, bool) {
	data = charset.TrimBOM(data, charset.BOMUTF8)
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return "", false
	}
	return string(data), true
}

func decodeUTF16(data []byte) (string, bool) {
	var name string
	switch {
	case hasBOM(data, 0xFF, 0xFE) && !hasBOM(data, 0xFF, 0xFE, 0, 0):
		name = "UTF-16LE"
	case hasBOM(data, 0xFE, 0xFF):
		name = "UTF-16BE"
	default:
		return "", false
	}
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return "", false
	}
	decoded, err := enc.Decode(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", false
	}
	// The charset decoder keeps the BOM as a leading U+FEFF rune.
	decoded = bytes.TrimPrefix(decoded, []byte("\ufeff"))
	return string(decoded), true
}

func decodeUTF32(data []byte) (string, bool) {
	var endianness utf32.Endianness
	switch {
	case hasBOM(data, 0xFF, 0xFE, 0, 0):
		endianness = utf32.LittleEndian
	case hasBOM(data, 0, 0, 0xFE, 0xFF):
		endianness = utf32.BigEndian
	default:
		return "", false
	}
	decoded, err := utf32.UTF32(endianness, utf32.UseBOM).NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", false
	}
	return string(decoded), true
}

func decodeASCII(data []byte) (string, bool) {
	for _, b := range data {
		if b == 0 || b >= 0x80 {
			return "", false
		}
	}
	return string(data), true
}

func hasBOM(data []byte, bom ...byte) bool {
	return bytes.HasPrefix(data, bom)
}
