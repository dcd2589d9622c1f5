package fres

import (
	"encoding/binary"
	"math"
)

// testBuffer assembles synthetic containers for the tests
type testBuffer struct {
	order binary.ByteOrder
	buf   []byte
}

type testEntry struct {
	name    string
	namePos int
	dataPos int
}

func newTestBuffer(size int) *testBuffer {
	return &testBuffer{order: binary.BigEndian, buf: make([]byte, size)}
}

func (t *testBuffer) bytes(pos int, b []byte) { copy(t.buf[pos:], b) }

func (t *testBuffer) str(pos int, s string) {
	copy(t.buf[pos:], s)
	t.buf[pos+len(s)] = 0
}

func (t *testBuffer) u8(pos int, v uint8) { t.buf[pos] = v }

func (t *testBuffer) u16(pos int, v uint16) { t.order.PutUint16(t.buf[pos:], v) }

func (t *testBuffer) u32(pos int, v uint32) { t.order.PutUint32(t.buf[pos:], v) }

func (t *testBuffer) u64(pos int, v uint64) { t.order.PutUint64(t.buf[pos:], v) }

func (t *testBuffer) i16(pos int, v int16) { t.u16(pos, uint16(v)) } //#nosec:G115 // test data

func (t *testBuffer) i32(pos int, v int32) { t.u32(pos, uint32(v)) } //#nosec:G115 // test data

func (t *testBuffer) f32(pos int, v float32) { t.u32(pos, math.Float32bits(v)) }

// rel stores a self-relative offset at pos pointing to target
func (t *testBuffer) rel(pos, target int) { t.i32(pos, int32(target-pos)) } //#nosec:G115 // test data

// wiiuHeader writes a WiiU container header at 0 and points the given
// category slots to their dictionaries
func (t *testBuffer) wiiuHeader(namePos int, dicts map[Category]int) {
	t.bytes(0, []byte("FRES"))
	t.u32(0x04, 0x03040000)
	t.u16(0x08, 0xFEFF)
	t.u16(0x0A, 0x10)
	t.u32(0x0C, uint32(len(t.buf))) //#nosec:G115 // test data
	t.u32(0x10, 0x2000)
	if namePos > 0 {
		t.rel(0x14, namePos)
	}

	for c, pos := range dicts {
		t.rel(0x20+4*int(c), pos)
		t.u16(0x50+2*int(c), 1)
	}
}

// dict writes an index group with a root entry followed by entries
func (t *testBuffer) dict(pos int, entries ...testEntry) {
	t.u32(pos, uint32(indexEntriesStart+16*len(entries))) //#nosec:G115 // test data
	t.u32(pos+4, uint32(len(entries)))                     //#nosec:G115 // test data
	t.i32(pos+8, -1)

	for i, e := range entries {
		ep := pos + indexEntriesStart + 16*i
		t.i32(ep, int32(i))      //#nosec:G115 // test data
		t.u16(ep+4, uint16(i))   //#nosec:G115 // test data
		t.u16(ep+6, uint16(i+1)) //#nosec:G115 // test data
		if e.namePos > 0 {
			t.str(e.namePos, e.name)
			t.rel(ep+8, e.namePos)
		}
		if e.dataPos > 0 {
			t.rel(ep+12, e.dataPos)
		}
	}
}

// emptyModel writes an FMDL header without any content
func (t *testBuffer) emptyModel(pos, namePos int, name string) {
	t.bytes(pos, []byte("FMDL"))
	if namePos > 0 {
		t.str(namePos, name)
		t.rel(pos+4, namePos)
	}
}

// prefixed writes a name with its u16 length in front
func (t *testBuffer) prefixed(pos int, s string) {
	t.u16(pos, uint16(len(s))) //#nosec:G115 // test data
	t.str(pos+2, s)
}

// switchDict writes a _DIC with a root entry followed by one entry per
// name key
func (t *testBuffer) switchDict(pos int, keys ...int) {
	t.bytes(pos, []byte("_DIC"))
	t.u32(pos+4, uint32(len(keys))) //#nosec:G115 // test data
	t.i32(pos+8, -1)

	for i, key := range keys {
		ep := pos + indexEntriesStart + 16*i
		t.i32(ep, int32(i))      //#nosec:G115 // test data
		t.u16(ep+4, uint16(i))   //#nosec:G115 // test data
		t.u16(ep+6, uint16(i+1)) //#nosec:G115 // test data
		t.u64(ep+8, uint64(key)) //#nosec:G115 // test data
	}
}

// switchContainer holds two models stored back to back at 0x180 named
// by a _DIC at 0x100 and one embedded file at 0x280
func switchContainer() *testBuffer {
	tb := newTestBuffer(0x400)
	tb.order = binary.LittleEndian

	tb.bytes(0, []byte("FRES    "))
	tb.u32(0x08, 0x00080000)
	tb.u16(0x0C, 0xFEFF)
	tb.u32(0x10, 0x380)
	tb.str(0x380, "container")

	tb.u64(0x28, 0x180) // model_offset
	tb.u64(0x30, 0x100) // model_dict_offset
	tb.u16(0xBC, 2)     // model_count

	tb.switchDict(0x100, 0x300, 0x310)
	tb.prefixed(0x300, "body")
	tb.prefixed(0x310, "legs")

	tb.bytes(0x180, []byte("FMDL"))
	tb.bytes(0x1F8, []byte("FMDL"))
	tb.u64(0x1F8+8, 0x320) // file_name_offset
	tb.prefixed(0x320, "nx_legs")

	tb.u64(0x98, 0x280) // embedded_files_offset
	tb.u64(0xA0, 0x290) // embedded_files_dict_offset
	tb.u16(0xC8, 1)     // embedded_file_count

	tb.u64(0x280, 0x2C0)
	tb.u32(0x288, 5)
	tb.bytes(0x2C0, []byte("hello"))
	tb.switchDict(0x290, 0x330)
	tb.prefixed(0x330, "readme.md")

	return tb
}
