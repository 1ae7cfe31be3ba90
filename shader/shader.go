// Package shader decodes WGSL shader assets and compiles them to SPIR-V.
//
// Compilation uses github.com/gogpu/naga, so a shader that loads
// successfully is known to be valid before it ever reaches a GPU device.
package shader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// Magic is the first word of every SPIR-V module.
const Magic uint32 = 0x07230203

// Shader errors.
var (
	// ErrEmptySource is returned when the WGSL source is empty or blank.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrInvalidSPIRV is returned when the compiler output is not a
	// whole number of little-endian words starting with Magic.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V output")
)

// Shader is a WGSL source and its compiled SPIR-V module.
type Shader struct {
	source string
	spirv  []uint32
}

// Decode compiles data as WGSL source.
func Decode(data []byte) (*Shader, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySource
	}

	source := string(data)
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	words, err := toWords(spirvBytes)
	if err != nil {
		return nil, err
	}
	return &Shader{source: source, spirv: words}, nil
}

// toWords converts SPIR-V bytes to 32-bit words.
// SPIR-V is little-endian 32-bit words.
func toWords(b []byte) ([]uint32, error) {
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != Magic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}

// Source returns the WGSL source.
func (s *Shader) Source() string { return s.source }

// SPIRV returns the compiled module, or nil after Release.
func (s *Shader) SPIRV() []uint32 { return s.spirv }

// Size returns the size of the compiled module in bytes.
func (s *Shader) Size() int { return len(s.spirv) * 4 }

// Release drops the source and compiled module.
func (s *Shader) Release() {
	s.source = ""
	s.spirv = nil
}

// Released reports whether Release has been called.
func (s *Shader) Released() bool { return s.spirv == nil }
