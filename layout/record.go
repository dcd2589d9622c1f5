package layout

type (
	// Value holds the decoded elements of one field. Integers (signed,
	// unsigned and relocated offsets) are kept as int64, unsigned 64 bit
	// values keep their bit pattern.
	Value struct {
		Encoding Encoding
		Offset   OffsetKind

		ints   []int64
		floats []float64
		bytes  []byte
	}

	// Record is the immutable result of decoding one Schema at a
	// given position
	Record struct {
		schema *Schema
		base   int64
		values []Value
	}
)

// Schema returns the schema the record was decoded with
func (r *Record) Schema() *Schema { return r.schema }

// Base returns the absolute position the record was decoded from
func (r *Record) Base() int64 { return r.base }

// Has reports whether the record carries the named field
func (r *Record) Has(name string) bool {
	_, ok := r.schema.index[name]
	return ok
}

// Lookup returns the value of the named field
func (r *Record) Lookup(name string) (Value, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// Int returns the first element of the named integer field or 0
func (r *Record) Int(name string) int64 {
	v, _ := r.Lookup(name)
	return v.Int()
}

// Uint returns the first element of the named integer field
// reinterpreted as unsigned or 0
func (r *Record) Uint(name string) uint64 {
	v, _ := r.Lookup(name)
	return uint64(v.Int()) //#nosec:G115 // bit pattern is kept intentionally
}

// Float returns the first element of the named float field or 0
func (r *Record) Float(name string) float64 {
	v, _ := r.Lookup(name)
	if len(v.floats) == 0 {
		return 0
	}
	return v.floats[0]
}

// Bytes returns the named byte string or nil
func (r *Record) Bytes(name string) []byte {
	v, _ := r.Lookup(name)
	return v.Bytes()
}

// Ints returns all elements of the named integer field
func (r *Record) Ints(name string) []int64 {
	v, _ := r.Lookup(name)
	return v.Ints()
}

// Uints returns all elements of the named integer field reinterpreted
// as unsigned
func (r *Record) Uints(name string) []uint64 {
	v, _ := r.Lookup(name)
	return v.Uints()
}

// Floats returns all elements of the named float field narrowed to
// float32
func (r *Record) Floats(name string) []float32 {
	v, _ := r.Lookup(name)
	return v.Floats32()
}

// Offset returns the absolute address stored in the named offset
// field. Sentinel values (0 and -1) are returned unchanged.
func (r *Record) Offset(name string) int64 { return r.Int(name) }

// Offsets returns all absolute addresses of the named offset field
func (r *Record) Offsets(name string) []int64 { return r.Ints(name) }

// Len returns the number of elements in the value
func (v Value) Len() int {
	switch v.Encoding {
	case EncFloat:
		return len(v.floats)
	case EncBytes:
		return len(v.bytes)
	default:
		return len(v.ints)
	}
}

// Int returns the first integer element or 0
func (v Value) Int() int64 {
	if len(v.ints) == 0 {
		return 0
	}
	return v.ints[0]
}

// Ints returns a copy of the integer elements
func (v Value) Ints() []int64 {
	return append([]int64(nil), v.ints...)
}

// Uints returns a copy of the integer elements reinterpreted as
// unsigned
func (v Value) Uints() []uint64 {
	out := make([]uint64, len(v.ints))
	for i, n := range v.ints {
		out[i] = uint64(n) //#nosec:G115 // bit pattern is kept intentionally
	}
	return out
}

// Floats returns a copy of the float elements
func (v Value) Floats() []float64 {
	return append([]float64(nil), v.floats...)
}

// Floats32 returns the float elements narrowed to float32
func (v Value) Floats32() []float32 {
	out := make([]float32, len(v.floats))
	for i, f := range v.floats {
		out[i] = float32(f)
	}
	return out
}

// Bytes returns a copy of the byte string
func (v Value) Bytes() []byte {
	if v.bytes == nil {
		return nil
	}
	return append([]byte(nil), v.bytes...)
}
