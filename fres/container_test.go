package fres

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalContainer() *testBuffer {
	tb := newTestBuffer(0x300)
	tb.str(0x280, "container")
	tb.wiiuHeader(0x280, map[Category]int{CategoryModel: 0x80})
	tb.dict(0x80, testEntry{name: "model", namePos: 0x200, dataPos: 0x100})
	tb.emptyModel(0x100, 0x210, "body")
	return tb
}

func TestDecodeMinimalContainer(t *testing.T) {
	c, err := Decode(minimalContainer().buf)
	require.NoError(t, err)

	assert.Equal(t, WiiU, c.Platform)
	assert.Equal(t, "container", c.Name)
	assert.Empty(t, c.Errors)

	for _, cat := range Categories() {
		assert.NotNil(t, c.Subfiles[cat], cat.String())
		if cat != CategoryModel {
			assert.Empty(t, c.Subfiles[cat], cat.String())
		}
	}

	models := c.Models()
	require.Len(t, models, 1)

	m := models[0]
	assert.Equal(t, "body", m.Name())
	assert.Equal(t, CategoryModel, m.Category())
	assert.Nil(t, m.Skeleton)
	assert.Empty(t, m.VertexBuffers)
	assert.Empty(t, m.Shapes)
	assert.Empty(t, m.Materials)
	assert.Nil(t, m.ShapeDict)
}

func TestDecodeAbsentCategoryIsNotRead(t *testing.T) {
	tb := minimalContainer()
	// garbage at address 0 would fail to decode as dictionary entries
	// if the texture slot (offset 0) was followed
	require.Equal(t, int32(0), int32(binary.BigEndian.Uint32(tb.buf[0x24:]))) //#nosec:G115 // test data

	c, err := Decode(tb.buf)
	require.NoError(t, err)
	assert.Empty(t, c.Subfiles[CategoryTexture])
	assert.Nil(t, c.Dicts[CategoryTexture])
	assert.Empty(t, c.Errors)
}

func TestDecodeTruncated(t *testing.T) {
	c, err := Decode(minimalContainer().buf[:0x40])
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeInvalidMagic(t *testing.T) {
	tb := minimalContainer()
	tb.bytes(0, []byte("SERF"))

	c, err := Decode(tb.buf)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeEntryFailureKeepsSiblings(t *testing.T) {
	tb := newTestBuffer(0x400)
	tb.wiiuHeader(0, map[Category]int{
		CategoryModel:         0x80,
		CategoryEmbeddedFiles: 0xE0,
	})
	tb.dict(0x80,
		testEntry{name: "broken", namePos: 0x300, dataPos: 0x140},
		testEntry{name: "ok", namePos: 0x310, dataPos: 0x180},
	)
	tb.bytes(0x140, []byte("XXXX"))
	tb.emptyModel(0x180, 0, "")

	tb.dict(0xE0, testEntry{name: "readme.txt", namePos: 0x320, dataPos: 0x1E0})
	tb.rel(0x1E0, 0x200)
	tb.u32(0x1E4, 5)
	tb.bytes(0x200, []byte("hello"))

	logger, hook := test.NewNullLogger()

	c, err := Decode(tb.buf, WithLogger(logger))
	require.NoError(t, err)

	models := c.Models()
	require.Len(t, models, 1)
	// without a file name the dictionary name is used
	assert.Equal(t, "ok", models[0].Name())

	files := c.EmbeddedFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "readme.txt", files[0].Name())
	assert.Equal(t, []byte("hello"), files[0].Data)

	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0], ErrInvalidMagic)

	var entryErr *EntryError
	require.True(t, errors.As(c.Errors[0], &entryErr))
	assert.Equal(t, CategoryModel, entryErr.Category)
	assert.Equal(t, 0, entryErr.Index)
	assert.Equal(t, "broken", entryErr.Name)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["name"] == "broken" {
			warned = true
		}
	}
	assert.True(t, warned, "failure is logged")
}

func TestDecodeBrokenDictionary(t *testing.T) {
	tb := minimalContainer()
	tb.rel(0x20+4*int(CategoryTexture), 0x2F8)
	tb.u32(0x2FC, 9) // count, entries run past the buffer

	c, err := Decode(tb.buf)
	require.NoError(t, err)
	assert.Len(t, c.Models(), 1)

	require.Len(t, c.Errors, 1)
	var entryErr *EntryError
	require.True(t, errors.As(c.Errors[0], &entryErr))
	assert.Equal(t, CategoryTexture, entryErr.Category)
	assert.Equal(t, -1, entryErr.Index)
	assert.ErrorIs(t, entryErr, ErrOutOfBounds)
}

func TestDecodeSkipsSentinelEntries(t *testing.T) {
	tb := minimalContainer()
	tb.dict(0x80,
		testEntry{name: "model", namePos: 0x200, dataPos: 0x100},
		testEntry{name: "nothing", namePos: 0x220},
	)

	c, err := Decode(tb.buf)
	require.NoError(t, err)
	assert.Len(t, c.Models(), 1)
	assert.Len(t, c.Dicts[CategoryModel].Entries, 2)
	assert.Empty(t, c.Errors)
}

func TestDecodeConcurrentOrder(t *testing.T) {
	const models = 16

	tb := newTestBuffer(0x1000)
	tb.wiiuHeader(0, map[Category]int{CategoryModel: 0x80})

	entries := make([]testEntry, models)
	for i := range entries {
		entries[i] = testEntry{name: fmt.Sprintf("entry%02d", i), namePos: 0x800 + 0x10*i, dataPos: 0x200 + 0x30*i}
		if i == 5 {
			tb.bytes(entries[i].dataPos, []byte("BAD!"))
			continue
		}
		tb.emptyModel(entries[i].dataPos, 0, "")
	}
	tb.dict(0x80, entries...)

	seq, err := Decode(tb.buf)
	require.NoError(t, err)

	par, err := DecodeAt(context.Background(), tb.buf, 0, WithConcurrency(4))
	require.NoError(t, err)

	names := func(c *Container) (out []string) {
		for _, m := range c.Models() {
			out = append(out, m.Name())
		}
		return out
	}

	assert.Len(t, seq.Models(), models-1)
	assert.Equal(t, names(seq), names(par))
	assert.Equal(t, seq.Errors, par.Errors)
}

func TestDecodeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecodeAt(ctx, minimalContainer().buf, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeCategoryFilter(t *testing.T) {
	c, err := Decode(minimalContainer().buf, WithCategories(CategoryTexture))
	require.NoError(t, err)

	assert.Empty(t, c.Models())
	assert.NotNil(t, c.Subfiles[CategoryModel])
}

func TestDecodeSwitchContainer(t *testing.T) {
	tb := switchContainer()

	p, ok := DetectPlatform(tb.buf)
	require.True(t, ok)
	require.Equal(t, Switch, p)

	c, err := Decode(tb.buf)
	require.NoError(t, err)
	assert.Equal(t, Switch, c.Platform)
	assert.Equal(t, "container", c.Name)
	assert.Empty(t, c.Errors)

	assert.Equal(t, []string{"body", "legs"}, c.Dicts[CategoryModel].Names())

	models := c.Models()
	require.Len(t, models, 2)
	// without a file name the dictionary name is used
	assert.Equal(t, "body", models[0].Name())
	assert.Equal(t, "nx_legs", models[1].Name())
	assert.Equal(t, int64(0x1F8), models[1].Header().Base())

	files := c.EmbeddedFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "readme.md", files[0].Name())
	assert.Equal(t, []byte("hello"), files[0].Data)
}

func TestDecodeSwitchBrokenDictionary(t *testing.T) {
	tb := switchContainer()
	tb.bytes(0x100, []byte("XXXX"))

	c, err := Decode(tb.buf)
	require.NoError(t, err)

	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0], ErrInvalidMagic)

	var entryErr *EntryError
	require.True(t, errors.As(c.Errors[0], &entryErr))
	assert.Equal(t, CategoryModel, entryErr.Category)
	assert.Equal(t, -1, entryErr.Index)

	// subfiles are still found through the base offset
	models := c.Models()
	require.Len(t, models, 2)
	assert.Empty(t, models[0].Name())
	assert.Equal(t, "nx_legs", models[1].Name())
}

func TestDecodeSwitchWithoutDictionary(t *testing.T) {
	tb := switchContainer()
	tb.u64(0x30, 0) // model_dict_offset

	c, err := Decode(tb.buf)
	require.NoError(t, err)
	assert.Empty(t, c.Errors)
	assert.Nil(t, c.Dicts[CategoryModel])
	assert.Len(t, c.Models(), 2)
}
