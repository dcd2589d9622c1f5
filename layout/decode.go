package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfBounds is returned when a read would exceed the buffer
	ErrOutOfBounds = errors.New("read out of bounds")

	// ErrUnsupportedEncoding is returned when a field declares an
	// encoding or width the decoder does not know
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// IsSentinel reports whether an offset marks absent data
func IsSentinel(off int64) bool {
	return off == 0 || off == -1
}

// Decode reads one record described by s from buf starting at base.
// Nothing outside [base, base+s.Size()) is read.
func Decode(s *Schema, order binary.ByteOrder, buf []byte, base int64) (*Record, error) {
	if err := CheckBounds(s.Name, buf, base, int64(s.size)); err != nil {
		return nil, err
	}

	rec := &Record{
		schema: s,
		base:   base,
		values: make([]Value, len(s.Fields)),
	}

	cursor := base
	for i, f := range s.Fields {
		if f.Encoding != EncPad {
			v, err := decodeField(f, order, buf, cursor)
			if err != nil {
				return nil, fmt.Errorf("decoding %s.%s: %w", s.Name, f.Name, err)
			}
			rec.values[i] = v
		}

		cursor += int64(f.Size())
	}

	return rec, nil
}

// DecodeN reads count consecutive records of s starting at pos. The
// whole run is bounds-checked before anything is allocated.
func DecodeN(s *Schema, order binary.ByteOrder, buf []byte, pos int64, count int) ([]*Record, error) {
	if count <= 0 {
		return []*Record{}, nil
	}

	stride := int64(s.size)
	if err := CheckBounds(s.Name, buf, pos, stride*int64(count)); err != nil {
		return nil, err
	}

	out := make([]*Record, count)
	for i := range out {
		rec, err := Decode(s, order, buf, pos+int64(i)*stride)
		if err != nil {
			return nil, fmt.Errorf("decoding %s #%d: %w", s.Name, i, err)
		}
		out[i] = rec
	}

	return out, nil
}

// DecodeArray reads a field holding count elements at pos. It is used
// for arrays whose length is only known at runtime.
func DecodeArray(f FieldSpec, count int, order binary.ByteOrder, buf []byte, pos int64) (Value, error) {
	if count <= 0 {
		return Value{Encoding: f.Encoding, Offset: f.Offset}, nil
	}

	rec, err := Decode(New(f.Name, f.Times(count)), order, buf, pos)
	if err != nil {
		return Value{}, err
	}

	return rec.values[0], nil
}

// CheckBounds returns ErrOutOfBounds unless [pos, pos+size) lies within
// buf
func CheckBounds(what string, buf []byte, pos, size int64) error {
	if pos < 0 || size < 0 || pos > int64(len(buf)) || size > int64(len(buf))-pos {
		return fmt.Errorf("%w: %s needs 0x%x bytes at 0x%x, buffer holds 0x%x", ErrOutOfBounds, what, size, pos, len(buf))
	}
	return nil
}

func decodeField(f FieldSpec, order binary.ByteOrder, buf []byte, pos int64) (Value, error) {
	v := Value{Encoding: f.Encoding, Offset: f.Offset}
	n := f.count()

	switch f.Encoding {
	case EncBytes:
		if f.Width < 0 {
			return v, fmt.Errorf("%w: %d byte string", ErrUnsupportedEncoding, f.Width)
		}
		v.bytes = append([]byte{}, buf[pos:pos+int64(f.Width)]...)

	case EncUint, EncInt:
		if f.Width != 1 && f.Width != 2 && f.Width != 4 && f.Width != 8 {
			return v, fmt.Errorf("%w: %d byte %s", ErrUnsupportedEncoding, f.Width, f.Encoding)
		}

		v.ints = make([]int64, n)
		for i := range v.ints {
			slot := pos + int64(i*f.Width)
			raw, allOnes := readInt(order, buf[slot:slot+int64(f.Width)], f.Encoding == EncInt)

			switch {
			case f.Offset != Relative:
				// plain value or verbatim offset
			case raw == 0 || raw == -1 || allOnes:
				// absent marker, normalised so unsigned fields compare
				// equal to their signed counterparts
				if raw != 0 {
					raw = -1
				}
			default:
				raw += slot
			}

			v.ints[i] = raw
		}

	case EncFloat:
		if f.Width != 4 && f.Width != 8 {
			return v, fmt.Errorf("%w: %d byte float", ErrUnsupportedEncoding, f.Width)
		}

		v.floats = make([]float64, n)
		for i := range v.floats {
			slot := pos + int64(i*f.Width)
			if f.Width == 4 { //nolint:mnd
				v.floats[i] = float64(math.Float32frombits(order.Uint32(buf[slot : slot+4])))
			} else {
				v.floats[i] = math.Float64frombits(order.Uint64(buf[slot : slot+8]))
			}
		}

	default:
		return v, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f.Encoding)
	}

	return v, nil
}

// readInt returns the value and whether all bits were set
func readInt(order binary.ByteOrder, b []byte, signed bool) (int64, bool) {
	switch len(b) {
	case 1:
		if signed {
			return int64(int8(b[0])), b[0] == math.MaxUint8
		}
		return int64(b[0]), b[0] == math.MaxUint8

	case 2: //nolint:mnd
		u := order.Uint16(b)
		if signed {
			return int64(int16(u)), u == math.MaxUint16 //#nosec:G115 // two's complement reinterpretation
		}
		return int64(u), u == math.MaxUint16

	case 4: //nolint:mnd
		u := order.Uint32(b)
		if signed {
			return int64(int32(u)), u == math.MaxUint32 //#nosec:G115 // two's complement reinterpretation
		}
		return int64(u), u == math.MaxUint32

	default:
		u := order.Uint64(b)
		return int64(u), u == math.MaxUint64 //#nosec:G115 // bit pattern is kept intentionally
	}
}
