package fres

import (
	"fmt"

	"github.com/Luzifer/fres-extract/layout"
)

// Frame encodings (flags bits 0-1)
const (
	FrameFloat32 FrameEncoding = iota
	FrameFixedPoint16
	FrameUint8
)

// Key encodings (flags bits 2-3)
const (
	KeyFloat32 KeyEncoding = iota
	KeyInt16
	KeyInt8
)

// Curve kinds (flags bits 4-6), 3 is not assigned
const (
	CurveCubic      CurveKind = 0
	CurveLinear     CurveKind = 1
	CurveBakedFloat CurveKind = 2
	CurveStepInt    CurveKind = 4
	CurveBakedInt   CurveKind = 5
	CurveStepBool   CurveKind = 6
	CurveBakedBool  CurveKind = 7
)

// fixed point frames carry 5 fractional bits
const fixedPointFrameScale = 1 << 5

type (
	// FrameEncoding describes how curve frames are stored
	FrameEncoding uint8
	// KeyEncoding describes how curve keys are stored
	KeyEncoding uint8
	// CurveKind describes the interpolation of a curve
	CurveKind uint8

	// Curve is one animation curve. Frames are converted to float,
	// Keys are the stored values: scale, offset and interpolation are
	// left to the consumer.
	Curve struct {
		Header *layout.Record

		FrameEncoding FrameEncoding
		KeyEncoding   KeyEncoding
		Kind          CurveKind

		StartFrame float32
		EndFrame   float32
		Scale      float32
		Offset     float32
		Delta      float32

		Frames []float32
		Keys   []float32
	}
)

var (
	frameSpecs = map[FrameEncoding]layout.FieldSpec{
		FrameFloat32:      layout.F32("frames"),
		FrameFixedPoint16: layout.I16("frames"),
		FrameUint8:        layout.U8("frames"),
	}

	keySpecs = map[KeyEncoding]layout.FieldSpec{
		KeyFloat32: layout.F32("keys"),
		KeyInt16:   layout.I16("keys"),
		KeyInt8:    layout.I8("keys"),
	}

	curveKinds = map[CurveKind]string{
		CurveCubic:      "Cubic",
		CurveLinear:     "Linear",
		CurveBakedFloat: "BakedFloat",
		CurveStepInt:    "StepInt",
		CurveBakedInt:   "BakedInt",
		CurveStepBool:   "StepBool",
		CurveBakedBool:  "BakedBool",
	}
)

func (k CurveKind) String() string {
	if n, ok := curveKinds[k]; ok {
		return n
	}
	return fmt.Sprintf("CurveKind(%d)", k)
}

// curveSelectors splits the curve flags into its three selectors
func curveSelectors(flags uint64) (FrameEncoding, KeyEncoding, CurveKind, error) {
	fe := FrameEncoding(flags & 0b11)       //#nosec:G115 // masked
	ke := KeyEncoding((flags >> 2) & 0b11)  //#nosec:G115 // masked
	kind := CurveKind((flags >> 4) & 0b111) //#nosec:G115 // masked

	if _, ok := frameSpecs[fe]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: frame encoding %d", ErrUnsupportedEncoding, fe)
	}

	if _, ok := keySpecs[ke]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: key encoding %d", ErrUnsupportedEncoding, ke)
	}

	if _, ok := curveKinds[kind]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: curve kind %d", ErrUnsupportedEncoding, kind)
	}

	return fe, ke, kind, nil
}

func (r reader) curves(pos int64, n int) ([]*Curve, error) {
	recs, err := r.records(recCurve, pos, n)
	if err != nil {
		return nil, fmt.Errorf("decoding curve headers: %w", err)
	}

	out := make([]*Curve, len(recs))
	for i, rec := range recs {
		if out[i], err = r.curve(rec); err != nil {
			return nil, fmt.Errorf("decoding curve #%d: %w", i, err)
		}
	}

	return out, nil
}

func (r reader) curve(rec *layout.Record) (*Curve, error) {
	fe, ke, kind, err := curveSelectors(rec.Uint("flags"))
	if err != nil {
		return nil, err
	}

	c := &Curve{
		Header:        rec,
		FrameEncoding: fe,
		KeyEncoding:   ke,
		Kind:          kind,
		StartFrame:    float32(rec.Float("start_frame")),
		EndFrame:      float32(rec.Float("end_frame")),
		Scale:         float32(rec.Float("scale")),
		Offset:        float32(rec.Float("offset")),
		Delta:         float32(rec.Float("delta")),
	}

	n := countOf(rec, "key_count")

	frames, err := r.array(frameSpecs[fe], rec.Offset("frames_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding frames: %w", err)
	}

	keys, err := r.array(keySpecs[ke], rec.Offset("keys_offset"), n)
	if err != nil {
		return nil, fmt.Errorf("decoding keys: %w", err)
	}

	c.Frames = toFloat32(frames)
	if fe == FrameFixedPoint16 {
		for i := range c.Frames {
			c.Frames[i] /= fixedPointFrameScale
		}
	}
	c.Keys = toFloat32(keys)

	return c, nil
}

// toFloat32 widens or narrows the decoded elements to float32
func toFloat32(v layout.Value) []float32 {
	if v.Encoding == layout.EncFloat {
		return v.Floats32()
	}

	ints := v.Ints()
	out := make([]float32, len(ints))
	for i, n := range ints {
		out[i] = float32(n)
	}
	return out
}
