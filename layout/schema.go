// Package layout contains a declarative description of fixed binary
// record layouts and a decoder turning such a description into
// typed values
package layout

const (
	// EncUint is an unsigned integer of 1, 2, 4 or 8 bytes
	EncUint Encoding = iota + 1
	// EncInt is a two's complement signed integer of 1, 2, 4 or 8 bytes
	EncInt
	// EncFloat is an IEEE-754 float of 4 or 8 bytes
	EncFloat
	// EncBytes is a fixed-length byte string, Width holds its length
	EncBytes
	// EncPad is skipped entirely and produces no value
	EncPad
)

const (
	// NotOffset marks a plain value
	NotOffset OffsetKind = iota
	// Relative marks an offset counted from the storage location of
	// the element holding it, relocated to an absolute address
	Relative
	// Absolute marks offsets which already are absolute (or relative
	// to something the caller knows about) and are stored verbatim
	Absolute
)

type (
	// Encoding describes how the bytes of a field are interpreted
	Encoding uint8

	// OffsetKind describes whether and how a field is relocated
	OffsetKind uint8

	// FieldSpec describes one field inside a record. Width is the
	// size of a single element in bytes, Count the number of elements
	// and Pad the number of bytes skipped after the field.
	FieldSpec struct {
		Name     string
		Encoding Encoding
		Width    int
		Count    int
		Offset   OffsetKind
		Pad      int
	}

	// Schema is the ordered list of fields making up one record.
	// Field order must match the binary layout exactly.
	Schema struct {
		Name   string
		Fields []FieldSpec

		index map[string]int
		size  int
	}
)

// New creates a schema from the given field list
func New(name string, fields ...FieldSpec) *Schema {
	s := &Schema{
		Name:   name,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		s.size += f.Size()
		if f.Encoding != EncPad && f.Name != "" {
			s.index[f.Name] = i
		}
	}

	return s
}

// Size returns the encoded size of the record in bytes
func (s *Schema) Size() int { return s.size }

// Field returns the spec of the named field
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.Fields[i], true
}

// FieldOffset returns the position of the named field relative to
// the start of the record
func (s *Schema) FieldOffset(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}

	var off int
	for _, f := range s.Fields[:i] {
		off += f.Size()
	}
	return off, true
}

// Size returns the encoded size of the field including trailing
// padding
func (f FieldSpec) Size() int {
	return f.Width*f.count() + f.Pad
}

func (f FieldSpec) count() int {
	if f.Count < 1 {
		return 1
	}
	return f.Count
}

// Times sets the element count of the field
func (f FieldSpec) Times(n int) FieldSpec {
	f.Count = n
	return f
}

// Relative marks the field as relative offset (see Relative)
func (f FieldSpec) Relative() FieldSpec {
	f.Offset = Relative
	return f
}

// Absolute marks the field as verbatim offset list (see Absolute)
func (f FieldSpec) Absolute() FieldSpec {
	f.Offset = Absolute
	return f
}

// Padded adds n bytes of padding after the field
func (f FieldSpec) Padded(n int) FieldSpec {
	f.Pad = n
	return f
}

// U8 declares an unsigned byte
func U8(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncUint, Width: 1, Count: 1} }

// U16 declares an unsigned 16 bit integer
func U16(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncUint, Width: 2, Count: 1} }

// U32 declares an unsigned 32 bit integer
func U32(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncUint, Width: 4, Count: 1} }

// U64 declares an unsigned 64 bit integer
func U64(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncUint, Width: 8, Count: 1} }

// I8 declares a signed byte
func I8(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncInt, Width: 1, Count: 1} }

// I16 declares a signed 16 bit integer
func I16(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncInt, Width: 2, Count: 1} }

// I32 declares a signed 32 bit integer
func I32(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncInt, Width: 4, Count: 1} }

// F32 declares a 32 bit float
func F32(name string) FieldSpec { return FieldSpec{Name: name, Encoding: EncFloat, Width: 4, Count: 1} }

// Bytes declares a fixed-length byte string of n bytes
func Bytes(name string, n int) FieldSpec {
	return FieldSpec{Name: name, Encoding: EncBytes, Width: n, Count: 1}
}

// Pad declares n bytes of padding not bound to a preceding field
func Pad(n int) FieldSpec { return FieldSpec{Encoding: EncPad, Width: n, Count: 1} }

func (e Encoding) String() string {
	switch e {
	case EncUint:
		return "uint"
	case EncInt:
		return "int"
	case EncFloat:
		return "float"
	case EncBytes:
		return "bytes"
	case EncPad:
		return "pad"
	default:
		return "unknown"
	}
}
