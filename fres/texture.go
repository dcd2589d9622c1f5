package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// Texture is a decoded FTEX subfile. Surface data is returned as
// stored, no detiling or format conversion is done.
type Texture struct {
	subfile

	Path string

	Width, Height, Depth uint32
	MipmapCount          uint32
	Format               uint32
	TileMode             uint32

	Data       []byte
	MipmapData []byte

	// MipmapOffsets holds the absolute position of mip levels
	// 1..MipmapCount-1
	MipmapOffsets []int64
}

func decodeTexture(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recTextureHeader, e.DataOffset, "FTEX")
	if err != nil {
		return nil, fmt.Errorf("decoding texture header: %w", err)
	}

	t := &Texture{
		subfile:     newSubfile(r, CategoryTexture, hdr, e, "file_name_offset"),
		Path:        r.str(hdr.Offset("file_path_offset")),
		Width:       uint32(hdr.Uint("width")),        //#nosec:G115 // field is a u32
		Height:      uint32(hdr.Uint("height")),       //#nosec:G115 // field is a u32
		Depth:       uint32(hdr.Uint("depth")),        //#nosec:G115 // field is a u32
		MipmapCount: uint32(hdr.Uint("mipmap_count")), //#nosec:G115 // field is a u32
		Format:      uint32(hdr.Uint("format")),       //#nosec:G115 // field is a u32
		TileMode:    uint32(hdr.Uint("tile_mode")),    //#nosec:G115 // field is a u32
	}

	if t.Data, err = r.slice("texture data", hdr.Offset("data_offset"), hdr.Int("data_length")); err != nil {
		return nil, fmt.Errorf("decoding texture data: %w", err)
	}

	mipBase := hdr.Offset("mipmap_data_offset")
	if t.MipmapData, err = r.slice("mipmap data", mipBase, hdr.Int("mipmap_data_length")); err != nil {
		return nil, fmt.Errorf("decoding mipmap data: %w", err)
	}

	t.MipmapOffsets = []int64{}
	if t.MipmapCount > 1 && !layout.IsSentinel(mipBase) {
		offs := hdr.Offsets("mipmap_offsets")
		// level 0 lives in Data and level 1 starts the mipmap block, the
		// first table slot holds the size of level 0 instead of a position
		t.MipmapOffsets = append(t.MipmapOffsets, mipBase)
		for lvl := 2; lvl < int(t.MipmapCount) && lvl-1 < len(offs); lvl++ {
			t.MipmapOffsets = append(t.MipmapOffsets, mipBase+offs[lvl-1])
		}
	}

	return t, nil
}
