package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// indexEntriesStart is the distance between the start of an index
// group and its first non-root entry: the 8 byte group header is
// followed by the 16 byte root entry
const indexEntriesStart = 24

type (
	// IndexGroup is the name / data dictionary used throughout the
	// container. Entries are kept in storage order, the embedded
	// search tree is not used.
	IndexGroup struct {
		Offset  int64
		Length  uint32
		Entries []IndexEntry
	}

	// IndexEntry is one dictionary entry with both offsets already
	// converted into absolute buffer positions
	IndexEntry struct {
		SearchValue int32
		LeftIndex   uint16
		RightIndex  uint16
		NameOffset  int64
		DataOffset  int64
		Name        string
	}
)

// DecodeIndexGroup reads the dictionary located at pos
func DecodeIndexGroup(set *SchemaSet, buf []byte, pos int64) (*IndexGroup, error) {
	hdr, err := set.decode(recIndexGroup, buf, pos)
	if err != nil {
		return nil, fmt.Errorf("decoding index group header: %w", err)
	}

	if set.dictMagic != "" {
		if err = checkMagic(hdr.Bytes("magic"), set.dictMagic); err != nil {
			return nil, fmt.Errorf("decoding index group header: %w", err)
		}
	}

	// the whole entry run is bounds-checked before allocating
	recs, err := layout.DecodeN(set.schema(recIndexEntry), set.Order, buf, pos+indexEntriesStart, int(hdr.Uint("count"))) //#nosec:G115 // count is a u32
	if err != nil {
		return nil, fmt.Errorf("decoding index entries: %w", err)
	}

	g := &IndexGroup{
		Offset:  pos,
		Length:  uint32(hdr.Uint("length")), //#nosec:G115 // field is a u32
		Entries: make([]IndexEntry, len(recs)),
	}

	for i, rec := range recs {
		g.Entries[i] = IndexEntry{
			SearchValue: int32(rec.Int("search_value")),  //#nosec:G115 // field is an i32
			LeftIndex:   uint16(rec.Uint("left_index")),  //#nosec:G115 // field is a u16
			RightIndex:  uint16(rec.Uint("right_index")), //#nosec:G115 // field is a u16
			NameOffset:  rec.Offset("name_offset"),
			DataOffset:  rec.Offset("data_offset"),
			Name:        set.readName(buf, rec.Offset("name_offset")),
		}
	}

	return g, nil
}

// Len returns the number of entries, a nil group is empty
func (g *IndexGroup) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Entries)
}

// Lookup returns the first entry with the given name
func (g *IndexGroup) Lookup(name string) (IndexEntry, bool) {
	if g == nil {
		return IndexEntry{}, false
	}

	for _, e := range g.Entries {
		if e.Name == name {
			return e, true
		}
	}

	return IndexEntry{}, false
}

// Names returns the entry names in storage order
func (g *IndexGroup) Names() []string {
	if g == nil {
		return nil
	}

	out := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = e.Name
	}
	return out
}
