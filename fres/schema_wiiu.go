package fres

import (
	"encoding/binary"

	"github.com/Luzifer/fres-extract/layout"
)

func newWiiUSchemaSet() *SchemaSet {
	s := &SchemaSet{
		Platform: WiiU,
		Order:    binary.BigEndian,
		schemas:  wiiuSchemas(),
	}

	for i := range s.slots {
		s.slots[i] = categorySlot{
			offsetField: "dicts_offsets", offsetIndex: i,
			countField: "dicts_counts", countIndex: i,
		}
	}

	return s
}

//nolint:funlen,mnd // this is a table
func wiiuSchemas() map[recordID]*layout.Schema {
	return map[recordID]*layout.Schema{
		recContainerHeader: layout.New("Header",
			layout.Bytes("magic", 4),
			layout.U32("version"),
			layout.U16("bom"),
			layout.U16("length"),
			layout.U32("file_size"),
			layout.U32("file_align"),
			layout.I32("name_offset").Relative(),
			layout.I32("string_table_length"),
			layout.I32("string_table_offset").Relative(),
			layout.I32("dicts_offsets").Times(CategoryCount).Relative(),
			layout.U16("dicts_counts").Times(CategoryCount),
			layout.U32("user_pointer"),
		),

		recIndexGroup: layout.New("IndexGroup",
			layout.U32("length"),
			layout.U32("count"),
		),

		recIndexEntry: layout.New("IndexEntry",
			layout.I32("search_value"),
			layout.U16("left_index"),
			layout.U16("right_index"),
			layout.U32("name_offset").Relative(),
			layout.I32("data_offset").Relative(),
		),

		// Model

		recModelHeader: layout.New("FMDLHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.I32("skeleton_offset").Relative(),
			layout.I32("vertex_buffers_offset").Relative(),
			layout.I32("shape_dict_offset").Relative(),
			layout.I32("material_dict_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
			layout.U16("vertex_buffer_count"),
			layout.U16("shape_count"),
			layout.U16("material_count"),
			layout.U16("user_data_count"),
			layout.U32("total_vertex_count"),
			layout.U32("user_pointer"),
		),

		recVertexHeader: layout.New("FVTXHeader",
			layout.Bytes("magic", 4),
			layout.U8("attrib_count"),
			layout.U8("buffer_count"),
			layout.U16("section_index"),
			layout.U32("vertex_count"),
			layout.U8("vertex_skin_count").Padded(3),
			layout.I32("attribs_offset").Relative(),
			layout.I32("attrib_dict_offset").Relative(),
			layout.I32("buffers_offset").Relative(),
			layout.U32("user_pointer"),
		),

		recVertexAttribute: layout.New("FVTXAttribute",
			layout.I32("name_offset").Relative(),
			layout.U8("buffer_index").Padded(1),
			// position inside the buffer element, not an address
			layout.U16("buffer_offset"),
			layout.U32("format"),
		),

		recVertexBuffer: layout.New("FVTXBuffer",
			layout.U32("data_pointer"),
			layout.U32("length"),
			layout.U32("handle"),
			layout.U16("stride"),
			layout.U16("buffering_count"),
			layout.U32("context_pointer"),
			layout.I32("data_offset").Relative(),
		),

		recSkeletonHeader: layout.New("FSKLHeader",
			layout.Bytes("magic", 4),
			layout.U32("flags"),
			layout.U16("bone_count"),
			layout.U16("smooth_index_count"),
			layout.U16("rigid_index_count").Padded(2),
			layout.I32("bone_dict_offset").Relative(),
			layout.I32("bones_offset").Relative(),
			layout.I32("smooth_index_offset").Relative(),
			layout.I32("smooth_matrix_offset").Relative(),
			layout.U32("user_pointer"),
		),

		recBone: layout.New("Bone",
			layout.I32("name_offset").Relative(),
			layout.U16("bone_index"),
			layout.I16("parent_index"),
			layout.I16("smooth_matrix_index"),
			layout.I16("rigid_matrix_index"),
			layout.I16("billboard_index"),
			layout.U16("user_data_count"),
			layout.U32("flags"),
			layout.F32("scale").Times(3),
			layout.F32("rotation").Times(4),
			layout.F32("translation").Times(3),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recShapeHeader: layout.New("FSHPHeader",
			layout.Bytes("magic", 4),
			layout.I32("name_offset").Relative(),
			layout.U32("flags"),
			layout.U16("section_index"),
			layout.U16("material_index"),
			layout.U16("skeleton_index"),
			layout.U16("vertex_buffer_index"),
			layout.U16("skin_bone_index_count"),
			layout.U8("vertex_skin_count"),
			layout.U8("lod_count"),
			layout.U8("key_shape_count"),
			layout.U8("target_attrib_count"),
			layout.U16("visibility_node_count"),
			layout.F32("bounding_radius"),
			layout.I32("vertex_buffer_offset").Relative(),
			layout.I32("lods_offset").Relative(),
			layout.I32("skin_bone_indices_offset").Relative(),
			layout.I32("key_shape_dict_offset").Relative(),
			layout.I32("visibility_ranges_offset").Relative(),
			layout.U32("user_pointer"),
		),

		recLODModel: layout.New("LoDModel",
			layout.U32("primitive_type"),
			layout.U32("index_format"),
			layout.U32("point_count"),
			layout.U16("visibility_group_count").Padded(2),
			layout.I32("visibility_groups_offset").Relative(),
			layout.I32("index_buffer_offset").Relative(),
			layout.U32("vertex_skip_count"),
		),

		recVisibilityGroup: layout.New("VisibilityGroup",
			// byte position inside the index buffer
			layout.U32("index_byte_offset"),
			layout.U32("count"),
		),

		recMaterialHeader: layout.New("FMATHeader",
			layout.Bytes("magic", 4),
			layout.I32("name_offset").Relative(),
			layout.U32("flags"),
			layout.U16("section_index"),
			layout.U16("render_info_count"),
			layout.U8("texture_ref_count"),
			layout.U8("sampler_count"),
			layout.U16("param_count"),
			layout.U16("volatile_param_count"),
			layout.U16("param_data_length"),
			layout.U16("raw_param_data_length"),
			layout.U16("user_data_count"),
			layout.I32("render_info_dict_offset").Relative(),
			layout.I32("render_state_offset").Relative(),
			layout.I32("shader_assign_offset").Relative(),
			layout.I32("texture_refs_offset").Relative(),
			layout.I32("samplers_offset").Relative(),
			layout.I32("sampler_dict_offset").Relative(),
			layout.I32("params_offset").Relative(),
			layout.I32("param_dict_offset").Relative(),
			layout.I32("param_data_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
			layout.I32("volatile_flags_offset").Relative(),
			layout.I32("user_pointer"),
		),

		recRenderInfo: layout.New("RenderInfo",
			layout.U16("array_length"),
			layout.U8("element_type").Padded(1),
			layout.I32("name_offset").Relative(),
		),
		recRenderInfoUint32Pair:  layout.New("RenderInfoUint32Pair", layout.U32("values").Times(2)),
		recRenderInfoFloat32Pair: layout.New("RenderInfoFloat32Pair", layout.F32("values").Times(2)),
		recRenderInfoUint32:      layout.New("RenderInfoUint32", layout.U32("values")),

		recTextureRef: layout.New("TextureRef",
			layout.I32("name_offset").Relative(),
			layout.I32("texture_offset").Relative(),
		),

		recTextureSampler: layout.New("TextureSampler",
			layout.U32("gx2_sampler").Times(3),
			layout.U32("handle"),
			layout.I32("name_offset").Relative(),
			layout.U8("element_index").Padded(3),
		),

		recMaterialParameter: layout.New("MaterialParameter",
			layout.U8("type"),
			layout.U8("size"),
			// position inside the parameter data block
			layout.U16("data_offset"),
			layout.I32("uniform_offset"),
			layout.U32("callback_pointer"),
			layout.U16("index"),
			layout.U16("index_copy"),
			layout.I32("name_offset").Relative(),
		),

		recRenderState: layout.New("RenderState",
			layout.U32("flags"),
			layout.U32("polygon_control"),
			layout.U32("depth_control"),
			layout.U32("alpha_test_control"),
			layout.F32("alpha_test_ref"),
			layout.U32("color_control"),
			layout.U32("blend_control_target"),
			layout.U32("blend_control"),
			layout.F32("blend_color").Times(4),
		),

		recShaderAssign: layout.New("ShaderAssign",
			layout.I32("shader_archive_name_offset").Relative(),
			layout.I32("shading_model_name_offset").Relative(),
			layout.U32("revision"),
			layout.U8("vertex_shader_input_count"),
			layout.U8("fragment_shader_input_count"),
			layout.U16("param_count"),
			layout.I32("vertex_shader_input_dict_offset").Relative(),
			layout.I32("fragment_shader_input_dict_offset").Relative(),
			layout.I32("param_dict_offset").Relative(),
		),

		// Texture

		recTextureHeader: layout.New("FTEXHeader",
			layout.Bytes("magic", 4),
			layout.U32("dimension"),
			layout.U32("width"),
			layout.U32("height"),
			layout.U32("depth"),
			layout.U32("mipmap_count"),
			layout.U32("format"),
			layout.U32("aa_mode"),
			layout.U32("usage"),
			layout.U32("data_length"),
			layout.U32("data_pointer"),
			layout.U32("mipmap_data_length"),
			layout.U32("mipmap_pointer"),
			layout.U32("tile_mode"),
			layout.U32("swizzle"),
			layout.U32("alignment"),
			layout.U32("pitch"),
			// offsets into the mipmap data block
			layout.U32("mipmap_offsets").Times(13).Absolute(),
			layout.U32("first_mipmap"),
			layout.U32("mipmap_count_copy"),
			layout.U32("first_slice"),
			layout.U32("slice_count"),
			layout.U8("component_selector").Times(4),
			layout.U32("texture_registers").Times(5),
			layout.U32("texture_handle"),
			layout.U8("array_length").Padded(3),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.I32("data_offset").Relative(),
			layout.I32("mipmap_data_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
			layout.U16("user_data_count").Padded(2),
		),

		// Skeletal animation

		recSkeletalAnimHeader: layout.New("FSKAHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U32("flags"),
			layout.U32("frame_count"),
			layout.U16("bone_animation_count"),
			layout.U16("user_data_count"),
			layout.U32("curve_count"),
			layout.U32("baked_length"),
			layout.I32("bone_animations_offset").Relative(),
			layout.I32("skeleton_offset").Relative(),
			layout.I32("bind_indices_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recBoneAnimation: layout.New("BoneAnimation",
			layout.U32("flags"),
			layout.U32("name_offset").Relative(),
			layout.U8("start_rotation"),
			layout.U8("start_translation"),
			layout.U8("curve_count"),
			// position of the translation inside the base data
			layout.U8("base_translate_offset"),
			layout.U8("start_curve_index").Padded(3),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_data_offset").Relative(),
		),

		// Shader parameter animations

		recShaderParamAnimHeader: layout.New("FSHUHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U32("flags"),
			layout.I32("frame_count"),
			layout.U16("material_animation_count"),
			layout.U16("user_data_count"),
			layout.I32("param_anim_info_count"),
			layout.U32("curve_count"),
			layout.U32("baked_length"),
			layout.I32("model_offset").Relative(),
			layout.I32("bind_indices_offset").Relative(),
			layout.I32("material_animations_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recMaterialAnimation: layout.New("MaterialAnimation",
			layout.U16("param_anim_info_count"),
			layout.U16("curve_count"),
			layout.U16("constant_count").Padded(2),
			layout.I32("start_curve_index"),
			layout.I32("start_param_anim_info_index"),
			layout.I32("name_offset").Relative(),
			layout.I32("param_anim_infos_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("constants_offset").Relative(),
		),

		recParamAnimInfo: layout.New("ParameterAnimationInfo",
			layout.U16("start_curve_index"),
			layout.U16("float_curve_count"),
			layout.U16("int_curve_count"),
			layout.U16("start_constant_index"),
			layout.U16("constant_count"),
			layout.U16("sub_bind_index"),
			layout.I32("name_offset").Relative(),
		),

		recAnimConstant: layout.New("AnimationConstant",
			// position inside the animated data, not an address
			layout.U32("anim_data_offset"),
			layout.I32("value"),
		),

		// Texture pattern animation

		recPatternAnimHeader: layout.New("FTXPHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U16("flags"),
			layout.U16("user_data_count"),
			layout.I32("frame_count"),
			layout.U16("texture_ref_count"),
			layout.U16("material_pattern_count"),
			layout.U32("pattern_info_count"),
			layout.U32("curve_count"),
			layout.U32("baked_length"),
			layout.I32("model_offset").Relative(),
			layout.I32("bind_indices_offset").Relative(),
			layout.I32("material_patterns_offset").Relative(),
			layout.I32("texture_ref_dict_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recMaterialPatternAnim: layout.New("MaterialPatternAnimation",
			layout.U16("pattern_info_count"),
			layout.U16("curve_count"),
			layout.I32("start_curve_index"),
			layout.I32("start_pattern_info_index"),
			layout.I32("name_offset").Relative(),
			layout.I32("pattern_infos_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_values_offset").Relative(),
		),

		recPatternAnimInfo: layout.New("PatternAnimationInfo",
			layout.I8("curve_index"),
			layout.I8("sub_bind_index").Padded(2),
			layout.I32("name_offset").Relative(),
		),

		// Visibility animation

		recVisibilityAnimHeader: layout.New("FVISHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U16("flags"),
			layout.U16("user_data_count"),
			layout.I32("frame_count"),
			layout.U16("animation_count"),
			layout.U16("curve_count"),
			layout.U32("baked_length"),
			layout.I32("model_offset").Relative(),
			layout.I32("bind_indices_offset").Relative(),
			layout.I32("names_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_values_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		// Shape animation

		recShapeAnimHeader: layout.New("FSHAHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U16("flags"),
			layout.U16("user_data_count"),
			layout.I32("frame_count"),
			layout.U16("vertex_shape_animation_count"),
			layout.U16("key_count"),
			layout.U16("curve_count").Padded(2),
			layout.U32("baked_length"),
			layout.I32("model_offset").Relative(),
			layout.I32("bind_indices_offset").Relative(),
			layout.I32("vertex_shape_animations_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recVertexShapeAnim: layout.New("VertexShapeAnimation",
			layout.U16("curve_count"),
			layout.U16("key_count"),
			layout.I32("start_curve_index"),
			layout.I32("start_key_index"),
			layout.I32("name_offset").Relative().Padded(8),
			layout.I32("keys_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_values_offset").Relative(),
		),

		recShapeAnimKey: layout.New("ShapeAnimationKey",
			layout.I8("curve_index"),
			layout.I8("sub_bind_index").Padded(2),
			layout.I32("name_offset").Relative(),
		),

		// Scene animation

		recSceneAnimHeader: layout.New("FSCNHeader",
			layout.Bytes("magic", 4),
			layout.I32("file_name_offset").Relative(),
			layout.I32("file_path_offset").Relative(),
			layout.U16("user_data_count"),
			layout.U16("camera_anim_count"),
			layout.U16("light_anim_count"),
			layout.U16("fog_anim_count"),
			layout.I32("camera_dict_offset").Relative(),
			layout.I32("light_dict_offset").Relative(),
			layout.I32("fog_dict_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recCameraAnimHeader: layout.New("FCAMHeader",
			layout.Bytes("magic", 4),
			layout.U16("flags").Padded(2),
			layout.I32("frame_count"),
			layout.U8("curve_count").Padded(1),
			layout.U16("user_data_count"),
			layout.U32("baked_length"),
			layout.I32("name_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_data_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recCameraAnimData: layout.New("CameraAnimationData",
			layout.F32("near"),
			layout.F32("far"),
			layout.F32("aspect_ratio"),
			layout.F32("height"),
			layout.F32("position").Times(3),
			layout.F32("rotation").Times(3),
			layout.F32("twist"),
		),

		recLightAnimHeader: layout.New("FLITHeader",
			layout.Bytes("magic", 4),
			layout.U16("flags"),
			layout.U16("user_data_count"),
			layout.I32("frame_count"),
			layout.U8("curve_count"),
			layout.I8("light_type_index"),
			layout.I8("distance_attenuation_function_index"),
			layout.I8("angle_attenuation_function_index"),
			layout.U32("baked_length"),
			layout.I32("name_offset").Relative(),
			layout.I32("light_type_name_offset").Relative(),
			layout.I32("distance_attenuation_function_name_offset").Relative(),
			layout.I32("angle_attenuation_function_name_offset").Relative(),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_data_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recLightAnimData: layout.New("LightAnimationData",
			layout.I32("enable"),
			layout.F32("position").Times(3),
			layout.F32("rotation").Times(3),
			layout.F32("distance_attenuation").Times(2),
			layout.F32("angle_attenuation").Times(2),
			layout.F32("color0").Times(3),
			layout.F32("color1").Times(3),
		),

		recFogAnimHeader: layout.New("FFOGHeader",
			layout.Bytes("magic", 4),
			layout.U16("flags").Padded(2),
			layout.I32("frame_count"),
			layout.U8("curve_count"),
			layout.U8("distance_attenuation_function_index"),
			layout.U16("user_data_count"),
			layout.U32("baked_length"),
			layout.I32("name_offset").Relative(),
			layout.I32("distance_attenuation_function_name_offset").Relative().Padded(8),
			layout.I32("curves_offset").Relative(),
			layout.I32("base_data_offset").Relative(),
			layout.I32("user_data_dict_offset").Relative(),
		),

		recFogAnimData: layout.New("FogAnimationData",
			layout.F32("distance_attenuation").Times(2),
			layout.F32("color").Times(3),
		),

		recCurve: layout.New("CurveHeader",
			layout.U16("flags"),
			layout.U16("key_count"),
			// position inside the animated data, not an address
			layout.U32("anim_data_offset"),
			layout.F32("start_frame"),
			layout.F32("end_frame"),
			layout.F32("scale"),
			layout.F32("offset"),
			layout.F32("delta"),
			layout.I32("frames_offset").Relative(),
			layout.I32("keys_offset").Relative(),
		),

		// Embedded files

		recEmbeddedFile: layout.New("EmbeddedFile",
			layout.I32("data_offset").Relative(),
			layout.U32("length"),
		),
	}
}
