package fres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderInfoBuffer(elementType uint8) *testBuffer {
	tb := newTestBuffer(0x100)
	tb.u16(0x40, 1)
	tb.u8(0x42, elementType)
	tb.str(0x80, "gsys_render_state_mode")
	tb.rel(0x44, 0x80)
	return tb
}

func TestRenderInfoVariants(t *testing.T) {
	t.Run("Uint32Pair", func(t *testing.T) {
		tb := renderInfoBuffer(0)
		tb.u32(0x48, 7)
		tb.u32(0x4C, 9)

		ri, err := decodeRenderInfo(reader{set: WiiU.Schemas(), buf: tb.buf}, 0x40)
		require.NoError(t, err)
		assert.Equal(t, "gsys_render_state_mode", ri.Name)
		assert.Equal(t, RenderInfoUint32Pair{7, 9}, ri.Value)
	})

	t.Run("Float32Pair", func(t *testing.T) {
		tb := renderInfoBuffer(1)
		tb.f32(0x48, 0.5)
		tb.f32(0x4C, -2)

		ri, err := decodeRenderInfo(reader{set: WiiU.Schemas(), buf: tb.buf}, 0x40)
		require.NoError(t, err)
		assert.Equal(t, RenderInfoFloat32Pair{0.5, -2}, ri.Value)
	})

	t.Run("Uint32", func(t *testing.T) {
		tb := renderInfoBuffer(2)
		tb.u32(0x48, 0xCAFE)

		ri, err := decodeRenderInfo(reader{set: WiiU.Schemas(), buf: tb.buf}, 0x40)
		require.NoError(t, err)
		assert.Equal(t, RenderInfoUint32(0xCAFE), ri.Value)
	})

	t.Run("Unsupported", func(t *testing.T) {
		tb := renderInfoBuffer(3)

		_, err := decodeRenderInfo(reader{set: WiiU.Schemas(), buf: tb.buf}, 0x40)
		assert.ErrorIs(t, err, ErrUnsupportedElementType)
	})

	t.Run("TruncatedValue", func(t *testing.T) {
		tb := renderInfoBuffer(0)

		_, err := decodeRenderInfo(reader{set: WiiU.Schemas(), buf: tb.buf[:0x4C]}, 0x40)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestDecodeMaterial(t *testing.T) {
	tb := newTestBuffer(0x400)

	const mat = 0x40
	tb.bytes(mat, []byte("FMAT"))
	tb.str(0x300, "mat_body")
	tb.rel(mat+0x04, 0x300)
	tb.u16(mat+0x0E, 1) // render_info_count
	tb.u8(mat+0x10, 1)  // texture_ref_count
	tb.u8(mat+0x11, 1)  // sampler_count
	tb.u16(mat+0x12, 1) // param_count
	tb.u16(mat+0x16, 4) // param_data_length

	tb.rel(mat+0x1C, 0x100) // render info dict
	tb.rel(mat+0x20, 0x140) // render state
	tb.rel(mat+0x24, 0x180) // shader assign
	tb.rel(mat+0x28, 0x1A0) // texture refs
	tb.rel(mat+0x2C, 0x1B0) // samplers
	tb.rel(mat+0x34, 0x1D0) // params
	tb.rel(mat+0x3C, 0x1F0) // param data

	tb.dict(0x100, testEntry{name: "gsys_pass", namePos: 0x310, dataPos: 0x200})
	tb.u8(0x202, 2)
	tb.rel(0x204, 0x310)
	tb.u32(0x208, 1)

	tb.u32(0x140, 0x11)     // render state flags
	tb.f32(0x140+0x10, 0.5) // alpha_test_ref
	tb.f32(0x140+0x2C, 1)   // blend_color alpha

	tb.str(0x320, "shader_archive")
	tb.rel(0x180, 0x320)

	tb.str(0x330, "_a0")
	tb.rel(0x1A0, 0x330)
	tb.rel(0x1A4, 0x240)

	tb.str(0x340, "_s0")
	tb.rel(0x1B0+0x10, 0x340)

	tb.str(0x350, "const_color0")
	tb.u8(0x1D0, 0x0E)
	tb.rel(0x1D0+0x10, 0x350)

	tb.bytes(0x1F0, []byte{1, 2, 3, 4})

	m, err := reader{set: WiiU.Schemas(), buf: tb.buf}.material(IndexEntry{Name: "mat_body", DataOffset: mat})
	require.NoError(t, err)

	assert.Equal(t, "mat_body", m.Name)

	require.Len(t, m.TextureRefs, 1)
	assert.Equal(t, "_a0", m.TextureRefs[0].Name)
	assert.Equal(t, int64(0x240), m.TextureRefs[0].TextureOffset)

	require.Len(t, m.Samplers, 1)
	assert.Equal(t, "_s0", m.Samplers[0].Name)

	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "const_color0", m.Parameters[0].Name)
	assert.Equal(t, uint64(0x0E), m.Parameters[0].Uint("type"))
	assert.Equal(t, []byte{1, 2, 3, 4}, m.ParameterData)

	require.Len(t, m.RenderInfos, 1)
	assert.Equal(t, "gsys_pass", m.RenderInfos[0].Name)
	assert.Equal(t, RenderInfoUint32(1), m.RenderInfos[0].Value)

	require.NotNil(t, m.RenderState)
	assert.Equal(t, 0.5, m.RenderState.Float("alpha_test_ref"))
	assert.Equal(t, []float32{0, 0, 0, 1}, m.RenderState.Floats("blend_color"))

	require.NotNil(t, m.ShaderAssign)
	assert.Equal(t, "shader_archive", m.ShaderAssign.ShaderArchive)
	assert.Empty(t, m.ShaderAssign.ShadingModel)
	assert.Nil(t, m.ShaderAssign.Params)
}
