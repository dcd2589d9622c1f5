package fres

import (
	"errors"
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

var (
	// ErrOutOfBounds is returned when a record or data block would
	// extend past the end of the buffer
	ErrOutOfBounds = layout.ErrOutOfBounds

	// ErrUnsupportedEncoding is returned for unknown field encodings and
	// unknown curve encodings
	ErrUnsupportedEncoding = layout.ErrUnsupportedEncoding

	// ErrInvalidMagic is returned when a header does not start with the
	// expected signature
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrUnsupportedElementType is returned for RenderInfo records with
	// an unknown element type
	ErrUnsupportedElementType = errors.New("unsupported element type")
)

// EntryError describes a subfile which could not be decoded. Index is
// -1 when the dictionary of the category itself failed.
type EntryError struct {
	Category Category
	Index    int
	Name     string
	Err      error
}

func (e *EntryError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decoding %s dictionary: %s", e.Category, e.Err)
	}
	return fmt.Sprintf("decoding %s #%d (%q): %s", e.Category, e.Index, e.Name, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

func checkMagic(got []byte, want string) error {
	if string(got) != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrInvalidMagic, want, got)
	}
	return nil
}
