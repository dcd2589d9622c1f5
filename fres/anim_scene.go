package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

type (
	// SceneAnimation is a decoded FSCN subfile
	SceneAnimation struct {
		subfile

		Path string

		CameraDict *IndexGroup
		Cameras    []*CameraAnimation
		LightDict  *IndexGroup
		Lights     []*LightAnimation
		FogDict    *IndexGroup
		Fogs       []*FogAnimation
	}

	// SceneTrack holds what camera, light and fog animations share
	SceneTrack struct {
		Header     *layout.Record
		Name       string
		Flags      uint16
		FrameCount int32
		BaseData   *layout.Record
		Curves     []*Curve
	}

	// CameraAnimation is a decoded FCAM record
	CameraAnimation struct {
		SceneTrack
	}

	// LightAnimation is a decoded FLIT record
	LightAnimation struct {
		SceneTrack

		LightType           string
		DistanceAttenuation string
		AngleAttenuation    string
	}

	// FogAnimation is a decoded FFOG record
	FogAnimation struct {
		SceneTrack

		DistanceAttenuation string
	}
)

func decodeSceneAnimation(r reader, e IndexEntry) (Subfile, error) {
	hdr, err := r.header(recSceneAnimHeader, e.DataOffset, "FSCN")
	if err != nil {
		return nil, fmt.Errorf("decoding scene animation header: %w", err)
	}

	a := &SceneAnimation{
		subfile: newSubfile(r, CategorySceneAnimation, hdr, e, "file_name_offset"),
		Path:    r.str(hdr.Offset("file_path_offset")),
	}

	if a.CameraDict, a.Cameras, err = decodeDict(r, hdr.Offset("camera_dict_offset"), r.cameraAnimation); err != nil {
		return nil, fmt.Errorf("decoding camera animations: %w", err)
	}

	if a.LightDict, a.Lights, err = decodeDict(r, hdr.Offset("light_dict_offset"), r.lightAnimation); err != nil {
		return nil, fmt.Errorf("decoding light animations: %w", err)
	}

	if a.FogDict, a.Fogs, err = decodeDict(r, hdr.Offset("fog_dict_offset"), r.fogAnimation); err != nil {
		return nil, fmt.Errorf("decoding fog animations: %w", err)
	}

	return a, nil
}

func (r reader) sceneTrack(id, dataID recordID, pos int64, magic string) (SceneTrack, error) {
	hdr, err := r.header(id, pos, magic)
	if err != nil {
		return SceneTrack{}, err
	}

	t := SceneTrack{
		Header:     hdr,
		Name:       r.str(hdr.Offset("name_offset")),
		Flags:      uint16(hdr.Uint("flags")),      //#nosec:G115 // field is a u16
		FrameCount: int32(hdr.Int("frame_count")), //#nosec:G115 // field is an i32
	}

	if t.BaseData, err = r.record(dataID, hdr.Offset("base_data_offset")); err != nil {
		return SceneTrack{}, fmt.Errorf("decoding base data: %w", err)
	}

	if t.Curves, err = r.curves(hdr.Offset("curves_offset"), countOf(hdr, "curve_count")); err != nil {
		return SceneTrack{}, err
	}

	return t, nil
}

func (r reader) cameraAnimation(e IndexEntry) (*CameraAnimation, error) {
	t, err := r.sceneTrack(recCameraAnimHeader, recCameraAnimData, e.DataOffset, "FCAM")
	if err != nil {
		return nil, err
	}
	return &CameraAnimation{SceneTrack: t}, nil
}

func (r reader) lightAnimation(e IndexEntry) (*LightAnimation, error) {
	t, err := r.sceneTrack(recLightAnimHeader, recLightAnimData, e.DataOffset, "FLIT")
	if err != nil {
		return nil, err
	}

	return &LightAnimation{
		SceneTrack:          t,
		LightType:           r.str(t.Header.Offset("light_type_name_offset")),
		DistanceAttenuation: r.str(t.Header.Offset("distance_attenuation_function_name_offset")),
		AngleAttenuation:    r.str(t.Header.Offset("angle_attenuation_function_name_offset")),
	}, nil
}

func (r reader) fogAnimation(e IndexEntry) (*FogAnimation, error) {
	t, err := r.sceneTrack(recFogAnimHeader, recFogAnimData, e.DataOffset, "FFOG")
	if err != nil {
		return nil, err
	}

	return &FogAnimation{
		SceneTrack:          t,
		DistanceAttenuation: r.str(t.Header.Offset("distance_attenuation_function_name_offset")),
	}, nil
}
