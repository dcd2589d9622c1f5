package fres

import (
	"bytes"
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// reader bundles the buffer with the platform table for the subfile
// decoders
type reader struct {
	set *SchemaSet
	buf []byte
}

// header decodes a subfile header and verifies its magic
func (r reader) header(id recordID, pos int64, magic string) (*layout.Record, error) {
	rec, err := r.set.decode(id, r.buf, pos)
	if err != nil {
		return nil, err
	}

	if err = checkMagic(rec.Bytes("magic"), magic); err != nil {
		return nil, err
	}

	return rec, nil
}

// record decodes a single optional record: sentinel offsets yield nil
func (r reader) record(id recordID, pos int64) (*layout.Record, error) {
	if layout.IsSentinel(pos) {
		return nil, nil
	}
	return r.set.decode(id, r.buf, pos)
}

func (r reader) records(id recordID, pos int64, count int) ([]*layout.Record, error) {
	return r.set.decodeN(id, r.buf, pos, count)
}

// dict decodes an optional dictionary: sentinel offsets yield nil
func (r reader) dict(pos int64) (*IndexGroup, error) {
	if layout.IsSentinel(pos) {
		return nil, nil
	}
	return DecodeIndexGroup(r.set, r.buf, pos)
}

// decodeDict decodes the dictionary at pos and hands every entry
// pointing to data to fn, results keep the entry order
func decodeDict[T any](r reader, pos int64, fn func(e IndexEntry) (T, error)) (*IndexGroup, []T, error) {
	dict, err := r.dict(pos)
	if err != nil {
		return nil, nil, err
	}

	out := make([]T, 0, dict.Len())
	if dict == nil {
		return nil, out, nil
	}

	for _, e := range dict.Entries {
		if layout.IsSentinel(e.DataOffset) {
			continue
		}

		v, err := fn(e)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %q: %w", e.Name, err)
		}
		out = append(out, v)
	}

	return dict, out, nil
}

func (r reader) array(f layout.FieldSpec, pos int64, count int) (layout.Value, error) {
	return r.set.array(f, r.buf, pos, count)
}

// slice returns a copy-free view of length bytes at pos
func (r reader) slice(what string, pos, length int64) ([]byte, error) {
	if layout.IsSentinel(pos) || length == 0 {
		return nil, nil
	}

	if err := layout.CheckBounds(what, r.buf, pos, length); err != nil {
		return nil, err
	}

	return r.buf[pos : pos+length : pos+length], nil
}

// str reads the name stored at pos
func (r reader) str(pos int64) string { return r.set.readName(r.buf, pos) }

// readName reads a name from the string table, skipping the length
// prefix the platform stores in front of it
func (s *SchemaSet) readName(buf []byte, pos int64) string {
	if layout.IsSentinel(pos) {
		return ""
	}
	return readString(buf, pos+s.stringPrefix)
}

// readString returns the NUL-terminated string at pos or an empty
// string for sentinel and out-of-range positions
func readString(buf []byte, pos int64) string {
	if layout.IsSentinel(pos) || pos < 0 || pos >= int64(len(buf)) {
		return ""
	}

	end := bytes.IndexByte(buf[pos:], 0)
	if end < 0 {
		return string(buf[pos:])
	}

	return string(buf[pos : pos+int64(end)])
}

// countOf converts a decoded count field for use as slice length
func countOf(rec *layout.Record, name string) int {
	return int(rec.Uint(name)) //#nosec:G115 // count fields are at most 32 bit
}

// NamedRecord is a decoded record with its name resolved from the
// string table
type NamedRecord struct {
	*layout.Record
	Name string
}

// named decodes count records at pos and resolves their name_offset
func (r reader) named(id recordID, pos int64, n int) ([]NamedRecord, error) {
	recs, err := r.records(id, pos, n)
	if err != nil {
		return nil, err
	}

	out := make([]NamedRecord, len(recs))
	for i, rec := range recs {
		out[i] = NamedRecord{Record: rec, Name: r.str(rec.Offset("name_offset"))}
	}
	return out, nil
}

func toUint16(v layout.Value) []uint16 {
	ints := v.Ints()
	out := make([]uint16, len(ints))
	for i, n := range ints {
		out[i] = uint16(n) //#nosec:G115 // decoded from 16 bit fields
	}
	return out
}
