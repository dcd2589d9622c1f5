package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// Base data selectors of a bone animation
const (
	BoneBaseScale       = 1 << 0
	BoneBaseRotation    = 1 << 1
	BoneBaseTranslation = 1 << 2
)

// Rotation modes of a skeletal animation
const (
	RotationQuaternion uint8 = iota
	RotationEuler
)

type (
	// SkeletalAnimation is a decoded FSKA subfile
	SkeletalAnimation struct {
		subfile

		Path         string
		Flags        uint32
		Baked        bool
		Looping      bool
		ScaleMode    uint8
		RotationMode uint8
		FrameCount   uint32

		BindIndices    []uint16
		BoneAnimations []*BoneAnimation
	}

	// BoneAnimation animates a single bone
	BoneAnimation struct {
		Record *layout.Record
		Name   string

		Flags           uint32
		BaseData        uint8
		AvailableCurves uint16
		TransformEffect uint8

		// Base values are nil unless selected by BaseData
		Scale       []float32
		Rotation    []float32
		Translation []float32

		Curves []*Curve
	}
)

func decodeSkeletalAnimation(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recSkeletalAnimHeader, e.DataOffset, "FSKA")
	if err != nil {
		return nil, fmt.Errorf("decoding skeletal animation header: %w", err)
	}

	flags := uint32(hdr.Uint("flags")) //#nosec:G115 // field is a u32

	a := &SkeletalAnimation{
		subfile:      newSubfile(r, CategorySkeletalAnimation, hdr, e, "file_name_offset"),
		Path:         r.str(hdr.Offset("file_path_offset")),
		Flags:        flags,
		Baked:        flags&(1<<0) != 0,
		Looping:      flags&(1<<2) != 0,
		ScaleMode:    uint8((flags & 0x300) >> 8), //nolint:mnd
		RotationMode: uint8((flags >> 12) & 1),
		FrameCount:   uint32(hdr.Uint("frame_count")), //#nosec:G115 // field is a u32
	}

	n := countOf(hdr, "bone_animation_count")

	bind, err := r.array(layout.U16("bind_indices"), hdr.Offset("bind_indices_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding bind indices: %w", err)
	}
	a.BindIndices = toUint16(bind)

	recs, err := r.records(recBoneAnimation, hdr.Offset("bone_animations_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding bone animations: %w", err)
	}

	a.BoneAnimations = make([]*BoneAnimation, len(recs))
	for i, rec := range recs {
		if a.BoneAnimations[i], err = r.boneAnimation(rec); err != nil {
			return nil, fmt.Errorf("decoding bone animation #%d: %w", i, err)
		}
	}

	return a, nil
}

//nolint:mnd // bit layout of the flags
func (r reader) boneAnimation(rec *layout.Record) (*BoneAnimation, error) {
	flags := uint32(rec.Uint("flags")) //#nosec:G115 // field is a u32

	b := &BoneAnimation{
		Record:          rec,
		Name:            r.str(rec.Offset("name_offset")),
		Flags:           flags,
		BaseData:        uint8((flags >> 3) & 0b111),
		AvailableCurves: uint16((flags >> 6) & 0x3FF),
		TransformEffect: uint8((flags >> 23) & 0x3F),
	}

	var (
		parts = []struct {
			bit  uint8
			size int
			dst  *[]float32
		}{
			{BoneBaseScale, 3, &b.Scale},
			{BoneBaseRotation, 4, &b.Rotation},
			{BoneBaseTranslation, 3, &b.Translation},
		}
		total int
	)

	for _, p := range parts {
		if b.BaseData&p.bit != 0 {
			total += p.size
		}
	}

	base, err := r.array(layout.F32("base_data"), rec.Offset("base_data_offset"), total)
	if err != nil {
		return nil, fmt.Errorf("decoding base data: %w", err)
	}

	// selected values are stored back to back in scale, rotation,
	// translation order
	values := base.Floats32()
	for _, p := range parts {
		if b.BaseData&p.bit == 0 || len(values) < p.size {
			continue
		}
		*p.dst, values = values[:p.size:p.size], values[p.size:]
	}

	if b.Curves, err = r.curves(rec.Offset("curves_offset"), countOf(rec, "curve_count")); err != nil {
		return nil, err
	}

	return b, nil
}
