// Package skelexport converts decoded skeletons into glTF node
// hierarchies for inspection in common 3D tools
package skelexport

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/Luzifer/fres-extract/fres"
)

const generator = "fres-extract"

// ErrInvalidHierarchy is returned when parent indices do not form a
// forest (out of range parents or cycles)
var ErrInvalidHierarchy = errors.New("invalid bone hierarchy")

// Document builds a glTF document holding one node per bone. Node
// indices equal bone positions, root bones are placed in the scene.
func Document(name string, s *fres.Skeleton) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	doc.Scenes[0].Name = name

	if s == nil {
		return doc, nil
	}

	doc.Nodes = make([]*gltf.Node, len(s.Bones))
	for i, b := range s.Bones {
		doc.Nodes[i] = &gltf.Node{
			Name:        b.Name,
			Translation: vec3(b.Translation),
			Rotation:    rotation(b),
			Scale:       vec3(b.Scale),
		}
	}

	for i, b := range s.Bones {
		if b.IsRoot() {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(i)) //#nosec:G115 // bone counts are 16 bit
			continue
		}

		parent := int(b.ParentIndex)
		if parent >= len(s.Bones) || parent == i {
			return nil, fmt.Errorf("%w: bone %q has parent %d", ErrInvalidHierarchy, b.Name, parent)
		}

		doc.Nodes[parent].Children = append(doc.Nodes[parent].Children, uint32(i)) //#nosec:G115 // bone counts are 16 bit
	}

	if n := reachable(doc); n != len(doc.Nodes) {
		return nil, fmt.Errorf("%w: %d of %d bones are part of a cycle", ErrInvalidHierarchy, len(doc.Nodes)-n, len(doc.Nodes))
	}

	return doc, nil
}

// Write encodes the skeleton as glTF, binary (GLB) or JSON
func Write(w io.Writer, name string, s *fres.Skeleton, asBinary bool) error {
	doc, err := Document(name, s)
	if err != nil {
		return fmt.Errorf("building document: %w", err)
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = asBinary
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	return nil
}

// reachable counts the nodes reachable from the scene roots
func reachable(doc *gltf.Document) int {
	var (
		seen  = make([]bool, len(doc.Nodes))
		stack = append([]uint32(nil), doc.Scenes[0].Nodes...)
		count int
	)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[n] {
			continue
		}
		seen[n] = true
		count++

		stack = append(stack, doc.Nodes[n].Children...)
	}

	return count
}

func rotation(b *fres.Bone) [4]float64 {
	if b.RotationMode() == fres.RotationEuler {
		return eulerToQuaternion(b.Rotation[0], b.Rotation[1], b.Rotation[2])
	}

	return [4]float64{
		float64(b.Rotation[0]),
		float64(b.Rotation[1]),
		float64(b.Rotation[2]),
		float64(b.Rotation[3]),
	}
}

// eulerToQuaternion converts XYZ angles (radians, X applied first)
// into an (x, y, z, w) quaternion
func eulerToQuaternion(x, y, z float32) [4]float64 {
	sx, cx := math.Sincos(float64(x) / 2) //nolint:mnd
	sy, cy := math.Sincos(float64(y) / 2) //nolint:mnd
	sz, cz := math.Sincos(float64(z) / 2) //nolint:mnd

	return [4]float64{
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}

func vec3(v [3]float32) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}
