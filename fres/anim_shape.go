package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

type (
	// ShapeAnimation is a decoded FSHA subfile
	ShapeAnimation struct {
		subfile

		Path       string
		Flags      uint16
		FrameCount int32

		BindIndices           []uint16
		VertexShapeAnimations []*VertexShapeAnimation
	}

	// VertexShapeAnimation blends the key shapes of one shape
	VertexShapeAnimation struct {
		Record     *layout.Record
		Name       string
		Keys       []NamedRecord
		Curves     []*Curve
		BaseValues []float32
	}
)

func decodeShapeAnimation(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recShapeAnimHeader, e.DataOffset, "FSHA")
	if err != nil {
		return nil, fmt.Errorf("decoding shape animation header: %w", err)
	}

	a := &ShapeAnimation{
		subfile:    newSubfile(r, CategoryShapeAnimation, hdr, e, "file_name_offset"),
		Path:       r.str(hdr.Offset("file_path_offset")),
		Flags:      uint16(hdr.Uint("flags")),      //#nosec:G115 // field is a u16
		FrameCount: int32(hdr.Int("frame_count")), //#nosec:G115 // field is an i32
	}

	n := countOf(hdr, "vertex_shape_animation_count")

	bind, err := r.array(layout.U16("bind_indices"), hdr.Offset("bind_indices_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding bind indices: %w", err)
	}
	a.BindIndices = toUint16(bind)

	recs, err := r.records(recVertexShapeAnim, hdr.Offset("vertex_shape_animations_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding vertex shape animations: %w", err)
	}

	a.VertexShapeAnimations = make([]*VertexShapeAnimation, len(recs))
	for i, rec := range recs {
		if a.VertexShapeAnimations[i], err = r.vertexShapeAnimation(rec); err != nil {
			return nil, fmt.Errorf("decoding vertex shape animation #%d: %w", i, err)
		}
	}

	return a, nil
}

func (r reader) vertexShapeAnimation(rec *layout.Record) (*VertexShapeAnimation, error) {
	v := &VertexShapeAnimation{Record: rec, Name: r.str(rec.Offset("name_offset"))}

	var err error
	if v.Keys, err = r.named(recShapeAnimKey, rec.Offset("keys_offset"), countOf(rec, "key_count")); err != nil {
		return nil, fmt.Errorf("decoding shape keys: %w", err)
	}

	if v.Curves, err = r.curves(rec.Offset("curves_offset"), countOf(rec, "curve_count")); err != nil {
		return nil, err
	}

	// one weight per key shape
	base, err := r.array(layout.F32("base_values"), rec.Offset("base_values_offset"), len(v.Keys))
	if err != nil {
		return nil, fmt.Errorf("decoding base values: %w", err)
	}
	v.BaseValues = base.Floats32()

	return v, nil
}
