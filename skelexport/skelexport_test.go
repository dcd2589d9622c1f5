package skelexport

import (
	"bytes"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luzifer/fres-extract/fres"
)

func testSkeleton() *fres.Skeleton {
	return &fres.Skeleton{Bones: []*fres.Bone{
		{Name: "root", ParentIndex: -1, Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}},
		{Name: "spine", Index: 1, ParentIndex: 0, Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}, Translation: [3]float32{0, 1, 0}},
		{Name: "arm_l", Index: 2, ParentIndex: 1, Flags: 1 << 12, Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{math.Pi / 2, 0, 0, 1}},
		{Name: "arm_r", Index: 3, ParentIndex: 1, Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}},
		{Name: "prop", Index: 4, ParentIndex: -1, Scale: [3]float32{2, 2, 2}, Rotation: [4]float32{0, 0, 0, 1}},
	}}
}

func TestDocument(t *testing.T) {
	doc, err := Document("hero", testSkeleton())
	require.NoError(t, err)

	assert.Equal(t, "hero", doc.Scenes[0].Name)
	assert.Equal(t, []uint32{0, 4}, doc.Scenes[0].Nodes)

	require.Len(t, doc.Nodes, 5)
	assert.Equal(t, "spine", doc.Nodes[1].Name)
	assert.Equal(t, []uint32{1}, doc.Nodes[0].Children)
	assert.Equal(t, []uint32{2, 3}, doc.Nodes[1].Children)
	assert.Empty(t, doc.Nodes[2].Children)
	assert.Equal(t, [3]float64{0, 1, 0}, doc.Nodes[1].Translation)
	assert.Equal(t, [3]float64{2, 2, 2}, doc.Nodes[4].Scale)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, doc.Nodes[3].Rotation)

	// euler bone is converted
	r := doc.Nodes[2].Rotation
	assert.InDelta(t, math.Sqrt2/2, r[0], 1e-6)
	assert.InDelta(t, 0, r[1], 1e-6)
	assert.InDelta(t, 0, r[2], 1e-6)
	assert.InDelta(t, math.Sqrt2/2, r[3], 1e-6)
}

func TestDocumentWithoutSkeleton(t *testing.T) {
	doc, err := Document("empty", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Scenes[0].Nodes)
}

func TestDocumentInvalidHierarchy(t *testing.T) {
	t.Run("ParentOutOfRange", func(t *testing.T) {
		s := testSkeleton()
		s.Bones[3].ParentIndex = 9

		_, err := Document("broken", s)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

	t.Run("SelfParent", func(t *testing.T) {
		s := testSkeleton()
		s.Bones[3].ParentIndex = 3

		_, err := Document("broken", s)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})

	t.Run("Cycle", func(t *testing.T) {
		s := testSkeleton()
		s.Bones[1].ParentIndex = 2

		_, err := Document("broken", s)
		assert.ErrorIs(t, err, ErrInvalidHierarchy)
	})
}

func TestEulerToQuaternion(t *testing.T) {
	for name, tc := range map[string]struct {
		x, y, z float32
		expect  [4]float64
	}{
		"Identity": {0, 0, 0, [4]float64{0, 0, 0, 1}},
		"HalfX":    {math.Pi, 0, 0, [4]float64{1, 0, 0, 0}},
		"QuarterY": {0, math.Pi / 2, 0, [4]float64{0, math.Sqrt2 / 2, 0, math.Sqrt2 / 2}},
		"QuarterZ": {0, 0, math.Pi / 2, [4]float64{0, 0, math.Sqrt2 / 2, math.Sqrt2 / 2}},
	} {
		t.Run(name, func(t *testing.T) {
			q := eulerToQuaternion(tc.x, tc.y, tc.z)
			for i := range q {
				assert.InDelta(t, tc.expect[i], q[i], 1e-6, "component %d", i)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	t.Run("Binary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, "hero", testSkeleton(), true))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("glTF")))
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, "hero", testSkeleton(), false))

		var doc gltf.Document
		require.NoError(t, gltf.NewDecoder(&buf).Decode(&doc))

		require.Len(t, doc.Nodes, 5)
		assert.Equal(t, "arm_r", doc.Nodes[3].Name)
		assert.Equal(t, []uint32{2, 3}, doc.Nodes[1].Children)
		assert.Equal(t, generator, doc.Asset.Generator)
	})

	t.Run("InvalidHierarchy", func(t *testing.T) {
		s := testSkeleton()
		s.Bones[0].ParentIndex = 0

		var buf bytes.Buffer
		assert.ErrorIs(t, Write(&buf, "broken", s, true), ErrInvalidHierarchy)
	})
}
