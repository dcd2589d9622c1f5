package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// RenderInfo element types
const (
	RenderInfoTypeUint32Pair uint8 = iota
	RenderInfoTypeFloat32Pair
	RenderInfoTypeUint32
)

// array data follows the 8 byte RenderInfo record
const renderInfoDataOffset = 8

type (
	// Material is a decoded FMAT record
	Material struct {
		Header *layout.Record
		Name   string

		TextureRefs   []*TextureRef
		Samplers      []NamedRecord
		SamplerDict   *IndexGroup
		Parameters    []NamedRecord
		ParameterDict *IndexGroup
		ParameterData []byte

		RenderInfoDict *IndexGroup
		RenderInfos    []*RenderInfo
		RenderState    *layout.Record
		ShaderAssign   *ShaderAssign
	}

	// TextureRef names a texture used by a material and points to its
	// FTEX header
	TextureRef struct {
		Record        *layout.Record
		Name          string
		TextureOffset int64
	}

	// ShaderAssign binds a material to a shading model
	ShaderAssign struct {
		Record        *layout.Record
		ShaderArchive string
		ShadingModel  string

		VertexShaderInputs   *IndexGroup
		FragmentShaderInputs *IndexGroup
		Params               *IndexGroup
	}

	// RenderInfo is a named render setting of a material
	RenderInfo struct {
		Record      *layout.Record
		Name        string
		ElementType uint8
		Value       RenderInfoValue
	}

	// RenderInfoValue is one of RenderInfoUint32Pair,
	// RenderInfoFloat32Pair or RenderInfoUint32
	RenderInfoValue interface {
		renderInfoValue()
	}

	// RenderInfoUint32Pair is the value of element type 0
	RenderInfoUint32Pair [2]uint32
	// RenderInfoFloat32Pair is the value of element type 1
	RenderInfoFloat32Pair [2]float32
	// RenderInfoUint32 is the value of element type 2
	RenderInfoUint32 uint32
)

var renderInfoValues = map[uint8]struct {
	record  recordID
	convert func(*layout.Record) RenderInfoValue
}{
	RenderInfoTypeUint32Pair: {recRenderInfoUint32Pair, func(rec *layout.Record) RenderInfoValue {
		var v RenderInfoUint32Pair
		for i, n := range rec.Uints("values") {
			v[i] = uint32(n) //#nosec:G115 // decoded from u32
		}
		return v
	}},

	RenderInfoTypeFloat32Pair: {recRenderInfoFloat32Pair, func(rec *layout.Record) RenderInfoValue {
		var v RenderInfoFloat32Pair
		copy(v[:], rec.Floats("values"))
		return v
	}},

	RenderInfoTypeUint32: {recRenderInfoUint32, func(rec *layout.Record) RenderInfoValue {
		return RenderInfoUint32(rec.Uint("values")) //#nosec:G115 // decoded from u32
	}},
}

func (RenderInfoUint32Pair) renderInfoValue()  {}
func (RenderInfoFloat32Pair) renderInfoValue() {}
func (RenderInfoUint32) renderInfoValue()      {}

func (r reader) material(e IndexEntry) (*Material, error) {
	hdr, err := r.header(recMaterialHeader, e.DataOffset, "FMAT")
	if err != nil {
		return nil, err
	}

	m := &Material{Header: hdr, Name: r.str(hdr.Offset("name_offset"))}

	refs, err := r.named(recTextureRef, hdr.Offset("texture_refs_offset"), countOf(hdr, "texture_ref_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding texture references: %w", err)
	}

	m.TextureRefs = make([]*TextureRef, len(refs))
	for i, ref := range refs {
		m.TextureRefs[i] = &TextureRef{Record: ref.Record, Name: ref.Name, TextureOffset: ref.Offset("texture_offset")}
	}

	if m.Samplers, err = r.named(recTextureSampler, hdr.Offset("samplers_offset"), countOf(hdr, "sampler_count")); err != nil {
		return nil, fmt.Errorf("decoding samplers: %w", err)
	}

	if m.SamplerDict, err = r.dict(hdr.Offset("sampler_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding sampler dictionary: %w", err)
	}

	if m.Parameters, err = r.named(recMaterialParameter, hdr.Offset("params_offset"), countOf(hdr, "param_count")); err != nil {
		return nil, fmt.Errorf("decoding parameters: %w", err)
	}

	if m.ParameterDict, err = r.dict(hdr.Offset("param_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding parameter dictionary: %w", err)
	}

	if m.ParameterData, err = r.slice("parameter data", hdr.Offset("param_data_offset"), hdr.Int("param_data_length")); err != nil {
		return nil, fmt.Errorf("decoding parameter data: %w", err)
	}

	if m.RenderInfoDict, m.RenderInfos, err = decodeDict(r, hdr.Offset("render_info_dict_offset"), r.renderInfo); err != nil {
		return nil, fmt.Errorf("decoding render infos: %w", err)
	}

	if m.RenderState, err = r.record(recRenderState, hdr.Offset("render_state_offset")); err != nil {
		return nil, fmt.Errorf("decoding render state: %w", err)
	}

	if m.ShaderAssign, err = r.shaderAssign(hdr.Offset("shader_assign_offset")); err != nil {
		return nil, fmt.Errorf("decoding shader assign: %w", err)
	}

	return m, nil
}

func (r reader) renderInfo(e IndexEntry) (*RenderInfo, error) {
	return decodeRenderInfo(r, e.DataOffset)
}

func decodeRenderInfo(r reader, pos int64) (*RenderInfo, error) {
	rec, err := r.set.decode(recRenderInfo, r.buf, pos)
	if err != nil {
		return nil, err
	}

	ri := &RenderInfo{
		Record:      rec,
		Name:        r.str(rec.Offset("name_offset")),
		ElementType: uint8(rec.Uint("element_type")), //#nosec:G115 // field is a u8
	}

	variant, ok := renderInfoValues[ri.ElementType]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedElementType, ri.ElementType)
	}

	data, err := r.set.decode(variant.record, r.buf, pos+renderInfoDataOffset)
	if err != nil {
		return nil, fmt.Errorf("decoding render info value: %w", err)
	}
	ri.Value = variant.convert(data)

	return ri, nil
}

func (r reader) shaderAssign(pos int64) (*ShaderAssign, error) {
	rec, err := r.record(recShaderAssign, pos)
	if err != nil || rec == nil {
		return nil, err
	}

	s := &ShaderAssign{
		Record:        rec,
		ShaderArchive: r.str(rec.Offset("shader_archive_name_offset")),
		ShadingModel:  r.str(rec.Offset("shading_model_name_offset")),
	}

	if s.VertexShaderInputs, err = r.dict(rec.Offset("vertex_shader_input_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding vertex shader inputs: %w", err)
	}

	if s.FragmentShaderInputs, err = r.dict(rec.Offset("fragment_shader_input_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding fragment shader inputs: %w", err)
	}

	if s.Params, err = r.dict(rec.Offset("param_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding shader params: %w", err)
	}

	return s, nil
}
