package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

const (
	// values per smooth skinning matrix (3x4, row major)
	smoothMatrixSize = 12

	boneRotationShift = 12
	boneRotationMask  = 0x7
)

type (
	// Model is a decoded FMDL subfile
	Model struct {
		subfile

		Path          string
		Skeleton      *Skeleton
		VertexBuffers []*VertexBuffer

		ShapeDict    *IndexGroup
		Shapes       []*Shape
		MaterialDict *IndexGroup
		Materials    []*Material
	}

	// Skeleton is the bone hierarchy of a model
	Skeleton struct {
		Header   *layout.Record
		Bones    []*Bone
		BoneDict *IndexGroup

		// MatrixIndices maps smooth and rigid skinning matrices (in this
		// order) to bones
		MatrixIndices  []uint16
		SmoothMatrices [][smoothMatrixSize]float32
	}

	// Bone is one skeleton bone in its bind pose
	Bone struct {
		Record *layout.Record
		Name   string

		Index       uint16
		ParentIndex int16
		Flags       uint32

		Scale       [3]float32
		Rotation    [4]float32
		Translation [3]float32
	}

	// VertexBuffer is a decoded FVTX record
	VertexBuffer struct {
		Header        *layout.Record
		Attributes    []NamedRecord
		AttributeDict *IndexGroup
		Buffers       []*BufferData
	}

	// BufferData is a GPU buffer descriptor with its raw contents
	BufferData struct {
		Record *layout.Record
		Data   []byte
	}

	// Shape is a decoded FSHP record
	Shape struct {
		Header *layout.Record
		Name   string

		LODs             []*LODModel
		VisibilityRanges []*layout.Record
		SkinBoneIndices  []uint16
		KeyShapeDict     *IndexGroup
	}

	// LODModel is one level of detail of a shape
	LODModel struct {
		Record           *layout.Record
		VisibilityGroups []*layout.Record
		IndexBuffer      *BufferData
	}
)

func decodeModel(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recModelHeader, e.DataOffset, "FMDL")
	if err != nil {
		return nil, fmt.Errorf("decoding model header: %w", err)
	}

	m := &Model{
		subfile: newSubfile(r, CategoryModel, hdr, e, "file_name_offset"),
		Path:    r.str(hdr.Offset("file_path_offset")),
	}

	if m.Skeleton, err = r.skeleton(hdr.Offset("skeleton_offset")); err != nil {
		return nil, fmt.Errorf("decoding skeleton: %w", err)
	}

	vtxHeaders, err := r.records(recVertexHeader, hdr.Offset("vertex_buffers_offset"), countOf(hdr, "vertex_buffer_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding vertex buffers: %w", err)
	}

	m.VertexBuffers = make([]*VertexBuffer, len(vtxHeaders))
	for i, vh := range vtxHeaders {
		if m.VertexBuffers[i], err = r.vertexBuffer(vh); err != nil {
			return nil, fmt.Errorf("decoding vertex buffer #%d: %w", i, err)
		}
	}

	if m.ShapeDict, m.Shapes, err = decodeDict(r, hdr.Offset("shape_dict_offset"), r.shape); err != nil {
		return nil, fmt.Errorf("decoding shapes: %w", err)
	}

	if m.MaterialDict, m.Materials, err = decodeDict(r, hdr.Offset("material_dict_offset"), r.material); err != nil {
		return nil, fmt.Errorf("decoding materials: %w", err)
	}

	return m, nil
}

func (r reader) skeleton(pos int64) (*Skeleton, error) {
	if layout.IsSentinel(pos) {
		return nil, nil
	}

	hdr, err := r.header(recSkeletonHeader, pos, "FSKL")
	if err != nil {
		return nil, err
	}

	s := &Skeleton{Header: hdr}

	bones, err := r.records(recBone, hdr.Offset("bones_offset"), countOf(hdr, "bone_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding bones: %w", err)
	}

	s.Bones = make([]*Bone, len(bones))
	for i, b := range bones {
		s.Bones[i] = r.bone(b)
	}

	if s.BoneDict, err = r.dict(hdr.Offset("bone_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding bone dictionary: %w", err)
	}

	smooth := countOf(hdr, "smooth_index_count")

	indices, err := r.array(layout.U16("matrix_indices"), hdr.Offset("smooth_index_offset"), smooth+countOf(hdr, "rigid_index_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding matrix indices: %w", err)
	}
	s.MatrixIndices = toUint16(indices)

	matrices, err := r.array(layout.F32("smooth_matrices"), hdr.Offset("smooth_matrix_offset"), smooth*smoothMatrixSize)
	if err != nil {
		return nil, fmt.Errorf("decoding smooth matrices: %w", err)
	}

	values := matrices.Floats32()
	s.SmoothMatrices = make([][smoothMatrixSize]float32, len(values)/smoothMatrixSize)
	for i := range s.SmoothMatrices {
		copy(s.SmoothMatrices[i][:], values[i*smoothMatrixSize:])
	}

	return s, nil
}

func (r reader) bone(rec *layout.Record) *Bone {
	b := &Bone{
		Record:      rec,
		Name:        r.str(rec.Offset("name_offset")),
		Index:       uint16(rec.Uint("bone_index")), //#nosec:G115 // field is a u16
		ParentIndex: int16(rec.Int("parent_index")), //#nosec:G115 // field is an i16
		Flags:       uint32(rec.Uint("flags")),      //#nosec:G115 // field is a u32
	}

	copy(b.Scale[:], rec.Floats("scale"))
	copy(b.Rotation[:], rec.Floats("rotation"))
	copy(b.Translation[:], rec.Floats("translation"))

	return b
}

// IsRoot reports whether the bone has no parent
func (b *Bone) IsRoot() bool { return b.ParentIndex < 0 }

// RotationMode tells how Rotation is to be read: RotationQuaternion
// (x, y, z, w) or RotationEuler (x, y, z radians, w unused)
func (b *Bone) RotationMode() uint8 {
	return uint8(b.Flags >> boneRotationShift & boneRotationMask) //#nosec:G115 // masked to 3 bit
}

func (r reader) vertexBuffer(hdr *layout.Record) (*VertexBuffer, error) {
	if err := checkMagic(hdr.Bytes("magic"), "FVTX"); err != nil {
		return nil, err
	}

	v := &VertexBuffer{Header: hdr}

	var err error
	if v.Attributes, err = r.named(recVertexAttribute, hdr.Offset("attribs_offset"), countOf(hdr, "attrib_count")); err != nil {
		return nil, fmt.Errorf("decoding attributes: %w", err)
	}

	if v.AttributeDict, err = r.dict(hdr.Offset("attrib_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding attribute dictionary: %w", err)
	}

	bufs, err := r.records(recVertexBuffer, hdr.Offset("buffers_offset"), countOf(hdr, "buffer_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding buffers: %w", err)
	}

	v.Buffers = make([]*BufferData, len(bufs))
	for i, b := range bufs {
		if v.Buffers[i], err = r.bufferData(b); err != nil {
			return nil, fmt.Errorf("decoding buffer #%d: %w", i, err)
		}
	}

	return v, nil
}

func (r reader) bufferData(rec *layout.Record) (*BufferData, error) {
	if rec == nil {
		return nil, nil
	}

	data, err := r.slice("buffer data", rec.Offset("data_offset"), rec.Int("length"))
	if err != nil {
		return nil, err
	}

	return &BufferData{Record: rec, Data: data}, nil
}

func (r reader) shape(e IndexEntry) (*Shape, error) {
	hdr, err := r.header(recShapeHeader, e.DataOffset, "FSHP")
	if err != nil {
		return nil, err
	}

	s := &Shape{Header: hdr, Name: r.str(hdr.Offset("name_offset"))}

	lods, err := r.records(recLODModel, hdr.Offset("lods_offset"), countOf(hdr, "lod_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding LOD models: %w", err)
	}

	s.LODs = make([]*LODModel, len(lods))
	for i, lod := range lods {
		if s.LODs[i], err = r.lodModel(lod); err != nil {
			return nil, fmt.Errorf("decoding LOD model #%d: %w", i, err)
		}
	}

	if s.VisibilityRanges, err = r.records(recVisibilityGroup, hdr.Offset("visibility_ranges_offset"), countOf(hdr, "visibility_node_count")); err != nil {
		return nil, fmt.Errorf("decoding visibility ranges: %w", err)
	}

	skin, err := r.array(layout.U16("skin_bone_indices"), hdr.Offset("skin_bone_indices_offset"), countOf(hdr, "skin_bone_index_count"))
	if err != nil {
		return nil, fmt.Errorf("decoding skin bone indices: %w", err)
	}
	s.SkinBoneIndices = toUint16(skin)

	if s.KeyShapeDict, err = r.dict(hdr.Offset("key_shape_dict_offset")); err != nil {
		return nil, fmt.Errorf("decoding key shape dictionary: %w", err)
	}

	return s, nil
}

func (r reader) lodModel(rec *layout.Record) (*LODModel, error) {
	l := &LODModel{Record: rec}

	var err error
	if l.VisibilityGroups, err = r.records(recVisibilityGroup, rec.Offset("visibility_groups_offset"), countOf(rec, "visibility_group_count")); err != nil {
		return nil, fmt.Errorf("decoding visibility groups: %w", err)
	}

	ib, err := r.record(recVertexBuffer, rec.Offset("index_buffer_offset"))
	if err != nil {
		return nil, fmt.Errorf("decoding index buffer: %w", err)
	}

	if l.IndexBuffer, err = r.bufferData(ib); err != nil {
		return nil, fmt.Errorf("decoding index buffer: %w", err)
	}

	return l, nil
}
