package fres

import (
	"encoding/binary"

	"github.com/Luzifer/fres-extract/layout"
)

const (
	noSlot = -1

	// names are stored with a u16 length in front of the characters
	switchStringPrefix = 2

	switchModelStride        = 0x78
	switchSkeletalAnimStride = 0x60
	switchMaterialAnimStride = 0x78
)

func newSwitchSchemaSet() *SchemaSet {
	s := &SchemaSet{
		Platform: Switch,
		Order:    binary.LittleEndian,
		schemas:  wiiuSchemas(),
	}

	// Switch headers use 64 bit absolute offsets
	s.schemas[recContainerHeader] = layout.New("Header",
		layout.Bytes("magic", 4),
		layout.Bytes("signature", 4),
		layout.U32("version"),
		layout.U16("bom"),
		layout.U8("alignment"),
		layout.U8("target_address_size"),
		layout.U32("name_offset").Absolute(),
		layout.U16("flags"),
		layout.U16("block_offset"),
		layout.U32("relocation_table_offset").Absolute(),
		layout.U32("file_size"),
		layout.U64("name_length_offset").Absolute(),
		layout.U64("model_offset").Absolute(),
		layout.U64("model_dict_offset").Absolute(),
		layout.U64("skeletal_anim_offset").Absolute(),
		layout.U64("skeletal_anim_dict_offset").Absolute(),
		layout.U64("material_anim_offset").Absolute(),
		layout.U64("material_anim_dict_offset").Absolute(),
		layout.U64("bone_vis_anim_offset").Absolute(),
		layout.U64("bone_vis_anim_dict_offset").Absolute(),
		layout.U64("shape_anim_offset").Absolute(),
		layout.U64("shape_anim_dict_offset").Absolute(),
		layout.U64("scene_anim_offset").Absolute(),
		layout.U64("scene_anim_dict_offset").Absolute(),
		layout.U64("memory_pool_offset").Absolute(),
		layout.U64("buffer_section_offset").Absolute(),
		layout.U64("embedded_files_offset").Absolute(),
		layout.U64("embedded_files_dict_offset").Absolute().Padded(8),
		layout.U64("string_table_offset").Absolute(),
		layout.U32("string_table_size"),
		layout.U16("model_count"),
		layout.U16("skeletal_anim_count"),
		layout.U16("material_anim_count"),
		layout.U16("bone_vis_anim_count"),
		layout.U16("shape_anim_count"),
		layout.U16("scene_anim_count"),
		layout.U16("embedded_file_count").Padded(6),
	)

	s.schemas[recModelHeader] = layout.New("FMDLHeader",
		layout.Bytes("magic", 4),
		layout.U32("flags"),
		layout.U64("file_name_offset").Absolute(),
		layout.U64("file_path_offset").Absolute(),
		layout.U64("skeleton_offset").Absolute(),
		layout.U64("vertex_buffers_offset").Absolute(),
		layout.U64("shapes_offset").Absolute(),
		layout.U64("shape_dict_offset").Absolute(),
		layout.U64("materials_offset").Absolute(),
		layout.U64("material_dict_offset").Absolute(),
		layout.U64("user_data_offset").Absolute(),
		layout.U64("user_data_dict_offset").Absolute().Padded(16),
		layout.U16("vertex_buffer_count"),
		layout.U16("shape_count"),
		layout.U16("material_count"),
		layout.U16("user_data_count"),
		layout.U32("total_vertex_count").Padded(4),
	)

	// Dictionaries only carry names, the subfiles are stored back to
	// back starting at the category base offset
	s.schemas[recIndexGroup] = layout.New("IndexGroup",
		layout.Bytes("magic", 4),
		layout.U32("count"),
	)

	s.schemas[recIndexEntry] = layout.New("IndexEntry",
		layout.I32("search_value"),
		layout.U16("left_index"),
		layout.U16("right_index"),
		layout.U64("name_offset").Absolute(),
	)

	s.schemas[recEmbeddedFile] = layout.New("EmbeddedFile",
		layout.U64("data_offset").Absolute(),
		layout.U32("length").Padded(4),
	)

	s.dictMagic = "_DIC"
	s.stringPrefix = switchStringPrefix

	walk := func(base, dict, count string, stride int64) categorySlot {
		return categorySlot{
			baseField:   base,
			stride:      stride,
			offsetField: dict,
			offsetIndex: noSlot,
			countField:  count,
			countIndex:  noSlot,
		}
	}

	s.slots[CategoryModel] = walk("model_offset", "model_dict_offset", "model_count", switchModelStride)
	s.slots[CategorySkeletalAnimation] = walk("skeletal_anim_offset", "skeletal_anim_dict_offset", "skeletal_anim_count", switchSkeletalAnimStride)
	s.slots[CategoryMaterialAnimation] = walk("material_anim_offset", "material_anim_dict_offset", "material_anim_count", switchMaterialAnimStride)
	s.slots[CategoryVisibilityAnimation] = walk("bone_vis_anim_offset", "bone_vis_anim_dict_offset", "bone_vis_anim_count",
		int64(s.schemas[recVisibilityAnimHeader].Size()))
	s.slots[CategoryShapeAnimation] = walk("shape_anim_offset", "shape_anim_dict_offset", "shape_anim_count",
		int64(s.schemas[recShapeAnimHeader].Size()))
	s.slots[CategorySceneAnimation] = walk("scene_anim_offset", "scene_anim_dict_offset", "scene_anim_count",
		int64(s.schemas[recSceneAnimHeader].Size()))
	s.slots[CategoryEmbeddedFiles] = walk("embedded_files_offset", "embedded_files_dict_offset", "embedded_file_count",
		int64(s.schemas[recEmbeddedFile].Size()))

	return s
}
