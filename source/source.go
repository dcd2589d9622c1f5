// Package source loads container buffers from disk, unwrapping the
// compression layers they are usually shipped in
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Formats recognized by Detect
const (
	FormatRaw Format = iota
	FormatYaz0
	FormatZstd
	FormatZlib
)

// maxLayers limits how many compression layers are unwrapped
const maxLayers = 4

type (
	// Format names the outer wrapping of a buffer
	Format uint8

	// Layer describes one unwrapped compression layer
	Layer struct {
		Format         Format
		CompressedSize int
		Size           int
	}
)

var (
	// ErrCorrupt is returned for compressed streams which can not be
	// expanded to their declared size
	ErrCorrupt = errors.New("corrupt compressed stream")
	// ErrTooManyLayers is returned when a buffer is wrapped more often
	// than Unpack is willing to unwrap
	ErrTooManyLayers = errors.New("too many compression layers")

	magicYaz0 = []byte("Yaz0")
	magicZstd = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// Detect inspects the magic of the buffer
func Detect(buf []byte) Format {
	switch {
	case bytes.HasPrefix(buf, magicYaz0):
		return FormatYaz0
	case bytes.HasPrefix(buf, magicZstd):
		return FormatZstd
	case isZlib(buf):
		return FormatZlib
	default:
		return FormatRaw
	}
}

// ReadFile reads the named file and unwraps it
func ReadFile(name string) ([]byte, []Layer, error) {
	buf, err := os.ReadFile(name) //#nosec:G304 // Intended to open arbitrary files
	if err != nil {
		return nil, nil, fmt.Errorf("reading input file: %w", err)
	}

	return Unpack(buf)
}

// Unpack removes all compression layers from buf and returns the
// payload together with the layers removed (outermost first)
func Unpack(buf []byte) (out []byte, layers []Layer, err error) {
	out = buf
	for range maxLayers {
		f := Detect(out)
		if f == FormatRaw {
			return out, layers, nil
		}

		l := Layer{Format: f, CompressedSize: len(out)}
		if out, err = unwrap(f, out); err != nil {
			return nil, nil, fmt.Errorf("unwrapping %s layer: %w", f, err)
		}
		l.Size = len(out)

		layers = append(layers, l)
	}

	if Detect(out) != FormatRaw {
		return nil, nil, ErrTooManyLayers
	}

	return out, layers, nil
}

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatYaz0:
		return "yaz0"
	case FormatZstd:
		return "zstd"
	case FormatZlib:
		return "zlib"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

func unwrap(f Format, buf []byte) ([]byte, error) {
	switch f {
	case FormatYaz0:
		return decodeYaz0(buf)

	case FormatZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()

		out, err := dec.DecodeAll(buf, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return out, nil

	case FormatZlib:
		zr, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("opening zlib reader: %w", err)
		}
		defer zr.Close() //nolint:errcheck

		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return out, nil

	default:
		return buf, nil
	}
}

// isZlib checks for a deflate CMF/FLG pair
func isZlib(buf []byte) bool {
	if len(buf) < 2 { //nolint:mnd
		return false
	}

	return buf[0]&0x0F == 8 && buf[0]>>4 <= 7 && (uint16(buf[0])<<8|uint16(buf[1]))%31 == 0
}
