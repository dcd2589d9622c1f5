package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// Variants sharing the FSHU layout
const (
	ShaderParamMaterial ShaderParamKind = iota
	ShaderParamColor
	ShaderParamTextureSRT
)

type (
	// ShaderParamKind tells which category a ShaderParamAnimation was
	// listed in
	ShaderParamKind uint8

	// ShaderParamAnimation is a decoded FSHU subfile (material, color
	// or texture SRT animation)
	ShaderParamAnimation struct {
		subfile

		Kind       ShaderParamKind
		Path       string
		Flags      uint32
		FrameCount int32

		BindIndices        []uint16
		MaterialAnimations []*MaterialAnimation
	}

	// MaterialAnimation animates the parameters of one material
	MaterialAnimation struct {
		Record    *layout.Record
		Name      string
		Params    []NamedRecord
		Curves    []*Curve
		Constants []*layout.Record
	}
)

var shaderParamCategories = map[ShaderParamKind]Category{
	ShaderParamMaterial:   CategoryMaterialAnimation,
	ShaderParamColor:      CategoryColorAnimation,
	ShaderParamTextureSRT: CategoryTextureSRTAnimation,
}

func (k ShaderParamKind) String() string {
	return shaderParamCategories[k].String()
}

func shaderParamDecoder(kind ShaderParamKind) subfileDecoder {
	return func(r reader, e IndexEntry) (Subfile, error) {
		hdr, err := r.header(recShaderParamAnimHeader, e.DataOffset, "FSHU")
		if err != nil {
			return nil, fmt.Errorf("decoding shader parameter animation header: %w", err)
		}

		a := &ShaderParamAnimation{
			subfile:    newSubfile(r, shaderParamCategories[kind], hdr, e, "file_name_offset"),
			Kind:       kind,
			Path:       r.str(hdr.Offset("file_path_offset")),
			Flags:      uint32(hdr.Uint("flags")),      //#nosec:G115 // field is a u32
			FrameCount: int32(hdr.Int("frame_count")), //#nosec:G115 // field is an i32
		}

		n := countOf(hdr, "material_animation_count")

		bind, err := r.array(layout.U16("bind_indices"), hdr.Offset("bind_indices_offset"), n)
		if err != nil {
			return nil, fmt.Errorf("decoding bind indices: %w", err)
		}
		a.BindIndices = toUint16(bind)

		recs, err := r.records(recMaterialAnimation, hdr.Offset("material_animations_offset"), n)
		if err != nil {
			return nil, fmt.Errorf("decoding material animations: %w", err)
		}

		a.MaterialAnimations = make([]*MaterialAnimation, len(recs))
		for i, rec := range recs {
			if a.MaterialAnimations[i], err = r.materialAnimation(rec); err != nil {
				return nil, fmt.Errorf("decoding material animation #%d: %w", i, err)
			}
		}

		return a, nil
	}
}

func (r reader) materialAnimation(rec *layout.Record) (*MaterialAnimation, error) {
	m := &MaterialAnimation{Record: rec, Name: r.str(rec.Offset("name_offset"))}

	var err error
	if m.Params, err = r.named(recParamAnimInfo, rec.Offset("param_anim_infos_offset"), countOf(rec, "param_anim_info_count")); err != nil {
		return nil, fmt.Errorf("decoding parameter infos: %w", err)
	}

	if m.Curves, err = r.curves(rec.Offset("curves_offset"), countOf(rec, "curve_count")); err != nil {
		return nil, err
	}

	if m.Constants, err = r.records(recAnimConstant, rec.Offset("constants_offset"), countOf(rec, "constant_count")); err != nil {
		return nil, fmt.Errorf("decoding constants: %w", err)
	}

	return m, nil
}
