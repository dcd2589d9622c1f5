package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

type (
	// PatternAnimation is a decoded FTXP subfile
	PatternAnimation struct {
		subfile

		Path       string
		Flags      uint16
		FrameCount int32

		BindIndices      []uint16
		MaterialPatterns []*MaterialPattern
		TextureRefs      *IndexGroup
		TextureRefNames  []string
	}

	// MaterialPattern switches the textures of one material
	MaterialPattern struct {
		Record     *layout.Record
		Name       string
		Infos      []NamedRecord
		Curves     []*Curve
		BaseValues []uint16
	}
)

func decodePatternAnimation(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recPatternAnimHeader, e.DataOffset, "FTXP")
	if err != nil {
		return nil, fmt.Errorf("decoding pattern animation header: %w", err)
	}

	a := &PatternAnimation{
		subfile:    newSubfile(r, CategoryPatternAnimation, hdr, e, "file_name_offset"),
		Path:       r.str(hdr.Offset("file_path_offset")),
		Flags:      uint16(hdr.Uint("flags")),      //#nosec:G115 // field is a u16
		FrameCount: int32(hdr.Int("frame_count")), //#nosec:G115 // field is an i32
	}

	n := countOf(hdr, "material_pattern_count")

	bind, err := r.array(layout.U16("bind_indices"), hdr.Offset("bind_indices_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding bind indices: %w", err)
	}
	a.BindIndices = toUint16(bind)

	recs, err := r.records(recMaterialPatternAnim, hdr.Offset("material_patterns_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding material patterns: %w", err)
	}

	a.MaterialPatterns = make([]*MaterialPattern, len(recs))
	for i, rec := range recs {
		if a.MaterialPatterns[i], err = r.materialPattern(rec); err != nil {
			return nil, fmt.Errorf("decoding material pattern #%d: %w", i, err)
		}
	}

	if a.TextureRefs, err = r.dict(hdr.Offset("texture_ref_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding texture references: %w", err)
	}
	a.TextureRefNames = a.TextureRefs.Names()

	return a, nil
}

func (r reader) materialPattern(rec *layout.Record) (*MaterialPattern, error) {
	m := &MaterialPattern{Record: rec, Name: r.str(rec.Offset("name_offset"))}

	var err error
	if m.Infos, err = r.named(recPatternAnimInfo, rec.Offset("pattern_infos_offset"), countOf(rec, "pattern_info_count")); err != nil {
		return nil, fmt.Errorf("decoding pattern infos: %w", err)
	}

	if m.Curves, err = r.curves(rec.Offset("curves_offset"), countOf(rec, "curve_count")); err != nil {
		return nil, err
	}

	// one base value per pattern info
	base, err := r.array(layout.U16("base_values"), rec.Offset("base_values_offset"), len(m.Infos))
	if err != nil {
		return nil, fmt.Errorf("decoding base values: %w", err)
	}
	m.BaseValues = toUint16(base)

	return m, nil
}
