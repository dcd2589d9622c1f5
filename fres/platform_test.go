package fres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSizes(t *testing.T) {
	for id, size := range map[recordID]int{
		recContainerHeader:       0x6C,
		recIndexGroup:            0x08,
		recIndexEntry:            0x10,
		recModelHeader:           0x30,
		recVertexHeader:          0x20,
		recVertexAttribute:       0x0C,
		recVertexBuffer:          0x18,
		recSkeletonHeader:        0x24,
		recBone:                  0x40,
		recShapeHeader:           0x38,
		recLODModel:              0x1C,
		recVisibilityGroup:       0x08,
		recMaterialHeader:        0x4C,
		recRenderInfo:            0x08,
		recTextureSampler:        0x18,
		recMaterialParameter:     0x14,
		recRenderState:           0x30,
		recShaderAssign:          0x1C,
		recTextureHeader:         0xC0,
		recSkeletalAnimHeader:    0x30,
		recBoneAnimation:         0x18,
		recShaderParamAnimHeader: 0x34,
		recMaterialAnimation:     0x20,
		recParamAnimInfo:         0x10,
		recAnimConstant:          0x08,
		recPatternAnimHeader:     0x38,
		recMaterialPatternAnim:   0x1C,
		recPatternAnimInfo:       0x08,
		recVisibilityAnimHeader:  0x34,
		recShapeAnimHeader:       0x30,
		recVertexShapeAnim:       0x24,
		recShapeAnimKey:          0x08,
		recSceneAnimHeader:       0x24,
		recCameraAnimHeader:      0x24,
		recLightAnimHeader:       0x30,
		recFogAnimHeader:         0x30,
		recCurve:                 0x24,
		recEmbeddedFile:          0x08,
	} {
		s := WiiU.Schemas().schema(id)
		assert.Equal(t, size, s.Size(), s.Name)
	}
}

func TestSwitchRecordSizes(t *testing.T) {
	set := Switch.Schemas()

	assert.Equal(t, 0xD0, set.schema(recContainerHeader).Size())
	assert.Equal(t, 0x78, set.schema(recModelHeader).Size())
	assert.Equal(t, 0x40, set.schema(recBone).Size())
	assert.Equal(t, 0x08, set.schema(recIndexGroup).Size())
	assert.Equal(t, 0x10, set.schema(recIndexEntry).Size())
	assert.Equal(t, 0x10, set.schema(recEmbeddedFile).Size())

	off, ok := set.schema(recContainerHeader).FieldOffset("model_offset")
	require.True(t, ok)
	assert.Equal(t, 0x28, off)

	off, ok = set.schema(recContainerHeader).FieldOffset("embedded_file_count")
	require.True(t, ok)
	assert.Equal(t, 0xC8, off)
}

func TestSchemaSetsShareFieldNames(t *testing.T) {
	wiiu, nx := WiiU.Schemas(), Switch.Schemas()
	require.Equal(t, len(wiiu.schemas), len(nx.schemas))

	// every field the model decoder reads exists on both platforms
	for _, name := range []string{
		"magic", "file_name_offset", "file_path_offset", "skeleton_offset",
		"vertex_buffers_offset", "vertex_buffer_count", "shape_dict_offset",
		"material_dict_offset",
	} {
		_, ok := wiiu.schema(recModelHeader).Field(name)
		assert.True(t, ok, "WiiU %s", name)
		_, ok = nx.schema(recModelHeader).Field(name)
		assert.True(t, ok, "Switch %s", name)
	}

	for _, cat := range Categories() {
		for _, set := range []*SchemaSet{wiiu, nx} {
			slot := set.slots[cat]
			if slot.offsetField == "" {
				continue
			}
			_, ok := set.schema(recContainerHeader).Field(slot.offsetField)
			assert.True(t, ok, "%s %s offset", set.Platform, cat)
			_, ok = set.schema(recContainerHeader).Field(slot.countField)
			assert.True(t, ok, "%s %s count", set.Platform, cat)
			if slot.baseField != "" {
				_, ok = set.schema(recContainerHeader).Field(slot.baseField)
				assert.True(t, ok, "%s %s base", set.Platform, cat)
				assert.Positive(t, slot.stride, "%s %s stride", set.Platform, cat)
			}
		}
	}
}

func TestSchemaLookupByName(t *testing.T) {
	s, ok := WiiU.Schemas().Schema("FTEXHeader")
	require.True(t, ok)

	off, ok := s.FieldOffset("mipmap_offsets")
	require.True(t, ok)
	assert.Equal(t, 0x44, off)

	off, ok = s.FieldOffset("user_data_count")
	require.True(t, ok)
	assert.Equal(t, 0xBC, off)

	_, ok = WiiU.Schemas().Schema("Unknown")
	assert.False(t, ok)
}

func TestDetectPlatform(t *testing.T) {
	p, ok := DetectPlatform([]byte("FRES\x00\x03\x00\x04"))
	require.True(t, ok)
	assert.Equal(t, WiiU, p)

	p, ok = DetectPlatform([]byte("FRES    \x00\x00"))
	require.True(t, ok)
	assert.Equal(t, Switch, p)

	_, ok = DetectPlatform([]byte("Yaz0...."))
	assert.False(t, ok)

	_, ok = DetectPlatform([]byte("FRES"))
	assert.False(t, ok)
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("WiiU")
	require.NoError(t, err)
	assert.Equal(t, WiiU, p)

	p, err = ParsePlatform("switch")
	require.NoError(t, err)
	assert.Equal(t, Switch, p)

	_, err = ParsePlatform("gamecube")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("embeddedfiles")
	require.NoError(t, err)
	assert.Equal(t, CategoryEmbeddedFiles, c)
	assert.Equal(t, "EmbeddedFiles", c.String())

	_, err = ParseCategory("sound")
	assert.Error(t, err)

	assert.Len(t, Categories(), CategoryCount)
	assert.Equal(t, "Category(42)", Category(42).String())
}
