package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// Variants sharing the FVIS layout
const (
	VisibilityBone VisibilityKind = iota
	VisibilityMaterial
)

type (
	// VisibilityKind tells whether a VisibilityAnimation toggles bones
	// or materials
	VisibilityKind uint8

	// VisibilityAnimation is a decoded FVIS subfile
	VisibilityAnimation struct {
		subfile

		Kind       VisibilityKind
		Path       string
		Flags      uint16
		FrameCount int32

		BindIndices []uint16
		Names       []string
		Curves      []*Curve
		BaseValues  []bool
	}
)

var visibilityCategories = map[VisibilityKind]Category{
	VisibilityBone:     CategoryVisibilityAnimation,
	VisibilityMaterial: CategoryMaterialVisibilityAnimation,
}

func (k VisibilityKind) String() string {
	if k == VisibilityMaterial {
		return "Material"
	}
	return "Bone"
}

func visibilityDecoder(kind VisibilityKind) subfileDecoder {
	return func(r reader, e IndexEntry) (Subfile, error) {
		hdr, err := r.header(recVisibilityAnimHeader, e.DataOffset, "FVIS")
		if err != nil {
			return nil, fmt.Errorf("decoding visibility animation header: %w", err)
		}

		a := &VisibilityAnimation{
			subfile:    newSubfile(r, visibilityCategories[kind], hdr, e, "file_name_offset"),
			Kind:       kind,
			Path:       r.str(hdr.Offset("file_path_offset")),
			Flags:      uint16(hdr.Uint("flags")),      //#nosec:G115 // field is a u16
			FrameCount: int32(hdr.Int("frame_count")), //#nosec:G115 // field is an i32
		}

		n := countOf(hdr, "animation_count")

		bind, err := r.array(layout.U16("bind_indices"), hdr.Offset("bind_indices_offset"), n)
		if err != nil {
			return nil, fmt.Errorf("decoding bind indices: %w", err)
		}
		a.BindIndices = toUint16(bind)

		// every slot holds an offset relative to itself
		names, err := r.array(layout.I32("names").Relative(), hdr.Offset("names_offset"), n)
		if err != nil {
			return nil, fmt.Errorf("decoding names: %w", err)
		}

		a.Names = make([]string, 0, n)
		for _, off := range names.Ints() {
			a.Names = append(a.Names, r.str(off))
		}

		if a.Curves, err = r.curves(hdr.Offset("curves_offset"), countOf(hdr, "curve_count")); err != nil {
			return nil, err
		}

		if a.BaseValues, err = r.bitSet(hdr.Offset("base_values_offset"), n); err != nil {
			return nil, fmt.Errorf("decoding base values: %w", err)
		}

		return a, nil
	}
}

// bitSet reads n flags packed into 32 bit words, least significant bit
// first
func (r reader) bitSet(pos int64, n int) ([]bool, error) {
	const bitsPerWord = 32

	words, err := r.array(layout.U32("words"), pos, (n+bitsPerWord-1)/bitsPerWord)
	if err != nil {
		return nil, err
	}

	w := words.Uints()
	if len(w) == 0 {
		return []bool{}, nil
	}

	out := make([]bool, n)
	for i := range out {
		out[i] = w[i/bitsPerWord]&(1<<(i%bitsPerWord)) != 0
	}
	return out, nil
}
