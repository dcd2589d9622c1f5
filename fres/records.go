package fres

// Records known to the decoders. Every platform table carries all of
// them, platforms only differ in byte order and the layout of a few
// headers.
const (
	recContainerHeader recordID = iota
	recIndexGroup
	recIndexEntry

	recModelHeader
	recVertexHeader
	recVertexAttribute
	recVertexBuffer
	recSkeletonHeader
	recBone
	recShapeHeader
	recLODModel
	recVisibilityGroup
	recMaterialHeader
	recRenderInfo
	recRenderInfoUint32Pair
	recRenderInfoFloat32Pair
	recRenderInfoUint32
	recTextureRef
	recTextureSampler
	recMaterialParameter
	recRenderState
	recShaderAssign

	recTextureHeader

	recSkeletalAnimHeader
	recBoneAnimation
	recShaderParamAnimHeader
	recMaterialAnimation
	recParamAnimInfo
	recAnimConstant
	recPatternAnimHeader
	recMaterialPatternAnim
	recPatternAnimInfo
	recVisibilityAnimHeader
	recShapeAnimHeader
	recVertexShapeAnim
	recShapeAnimKey
	recSceneAnimHeader
	recCameraAnimHeader
	recCameraAnimData
	recLightAnimHeader
	recLightAnimData
	recFogAnimHeader
	recFogAnimData
	recCurve

	recEmbeddedFile
)

// recordID addresses one record layout inside a SchemaSet
type recordID int
