package fres

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Luzifer/fres-extract/layout"
)

// Target platforms with their own record tables
const (
	WiiU Platform = iota
	Switch
)

type (
	// Platform selects the record table used to decode a container
	Platform uint8

	// SchemaSet is the complete record table for one platform. Both
	// sets use the same field names for everything the decoders read,
	// so decoders never need to know which platform they work on.
	SchemaSet struct {
		Platform Platform
		Order    binary.ByteOrder

		schemas map[recordID]*layout.Schema
		slots   [CategoryCount]categorySlot

		// dictMagic is checked at the start of every dictionary if set
		dictMagic string
		// stringPrefix is skipped before reading a name
		stringPrefix int64
	}

	// categorySlot names the header fields holding the dictionary
	// offset and entry count of one category. An index of -1 denotes a
	// scalar field, an empty field name a category the platform does
	// not carry. With a baseField the subfiles are stored back to back
	// (stride bytes apart) at that offset and the dictionary only
	// supplies their names.
	categorySlot struct {
		baseField   string
		stride      int64
		offsetField string
		offsetIndex int
		countField  string
		countIndex  int
	}
)

var (
	magicContainer = []byte("FRES")
	switchPadding  = []byte("    ")

	schemaSets = map[Platform]*SchemaSet{
		WiiU:   newWiiUSchemaSet(),
		Switch: newSwitchSchemaSet(),
	}
)

// DetectPlatform inspects the container magic. Switch containers
// follow the magic with four spaces.
func DetectPlatform(buf []byte) (Platform, bool) {
	if len(buf) < 8 || !bytes.Equal(buf[:4], magicContainer) { //nolint:mnd
		return 0, false
	}

	if bytes.Equal(buf[4:8], switchPadding) {
		return Switch, true
	}

	return WiiU, true
}

// ParsePlatform resolves a platform by its (case-insensitive) name
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "wiiu", "wii-u", "cafe":
		return WiiU, nil
	case "switch", "nx":
		return Switch, nil
	default:
		return 0, fmt.Errorf("unknown platform %q", name)
	}
}

// Schemas returns the record table of the platform
func (p Platform) Schemas() *SchemaSet {
	s, ok := schemaSets[p]
	if !ok {
		return schemaSets[WiiU]
	}
	return s
}

func (p Platform) String() string {
	switch p {
	case WiiU:
		return "WiiU"
	case Switch:
		return "Switch"
	default:
		return fmt.Sprintf("Platform(%d)", p)
	}
}

// Schema returns the layout of the named record (e.g. "FMDLHeader")
func (s *SchemaSet) Schema(name string) (*layout.Schema, bool) {
	for _, sc := range s.schemas {
		if sc.Name == name {
			return sc, true
		}
	}
	return nil, false
}

func (s *SchemaSet) schema(id recordID) *layout.Schema {
	sc, ok := s.schemas[id]
	if !ok {
		// Tables are static, a missing entry is a programming error
		panic(fmt.Sprintf("no schema for record %d on %s", id, s.Platform))
	}
	return sc
}

func (s *SchemaSet) decode(id recordID, buf []byte, pos int64) (*layout.Record, error) {
	return layout.Decode(s.schema(id), s.Order, buf, pos)
}

func (s *SchemaSet) decodeN(id recordID, buf []byte, pos int64, count int) ([]*layout.Record, error) {
	if layout.IsSentinel(pos) {
		return []*layout.Record{}, nil
	}
	return layout.DecodeN(s.schema(id), s.Order, buf, pos, count)
}

func (s *SchemaSet) array(f layout.FieldSpec, buf []byte, pos int64, count int) (layout.Value, error) {
	if layout.IsSentinel(pos) {
		return layout.Value{Encoding: f.Encoding, Offset: f.Offset}, nil
	}
	return layout.DecodeArray(f, count, s.Order, buf, pos)
}

// dictOffset returns the dictionary address of the category as stored
// in the container header
func (s *SchemaSet) dictOffset(header *layout.Record, c Category) int64 {
	slot := s.slots[c]
	if slot.offsetField == "" {
		return 0
	}

	if slot.offsetIndex < 0 {
		return header.Offset(slot.offsetField)
	}

	offs := header.Offsets(slot.offsetField)
	if slot.offsetIndex >= len(offs) {
		return 0
	}
	return offs[slot.offsetIndex]
}

// dictCount returns the entry count the container header declares
// for the category
func (s *SchemaSet) dictCount(header *layout.Record, c Category) int {
	slot := s.slots[c]
	if slot.countField == "" {
		return 0
	}

	if slot.countIndex < 0 {
		return int(header.Uint(slot.countField)) //#nosec:G115 // counts are 16 bit
	}

	counts := header.Uints(slot.countField)
	if slot.countIndex >= len(counts) {
		return 0
	}
	return int(counts[slot.countIndex]) //#nosec:G115 // counts are 16 bit
}

// baseOffset returns the address of the first subfile of the category
// and the distance between subfiles. ok is false for categories
// addressed through their dictionary.
func (s *SchemaSet) baseOffset(header *layout.Record, c Category) (pos, stride int64, ok bool) {
	slot := s.slots[c]
	if slot.baseField == "" {
		return 0, 0, false
	}
	return header.Offset(slot.baseField), slot.stride, true
}
