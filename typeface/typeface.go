// Package typeface decodes TrueType and OpenType font assets.
//
// Parsing is done by github.com/go-text/typesetting. The parsed face is
// read-only and can be shared by every owner of the asset:
//
//	fonts := assets.New(root, typeface.Decode)
//	regular, err := fonts.Load("fonts/regular.ttf")
package typeface

import (
	"bytes"
	"errors"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
)

// ErrEmptyData is returned when font data is empty.
var ErrEmptyData = errors.New("typeface: empty data")

// Font is a parsed font file.
type Font struct {
	face *gotext.Face
	size int
}

// Decode parses data as a TrueType or OpenType font.
func Decode(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	// ParseTTF retains the reader; copy so the caller may reuse data.
	buf := bytes.Clone(data)
	face, err := gotext.ParseTTF(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("typeface: parse: %w", err)
	}
	return &Font{face: face, size: len(data)}, nil
}

// Face returns the go-text face, or nil after Release.
func (f *Font) Face() *gotext.Face { return f.face }

// Upem returns the units per em of the font, or 0 after Release.
func (f *Font) Upem() uint16 {
	if f.face == nil {
		return 0
	}
	return f.face.Upem()
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	if f.face == nil {
		return false
	}
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// Size returns the size of the font file in bytes.
func (f *Font) Size() int { return f.size }

// Release drops the parsed face.
func (f *Font) Release() {
	f.face = nil
}

// Released reports whether Release has been called.
func (f *Font) Released() bool { return f.face == nil }
