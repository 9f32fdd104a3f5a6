package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	seMath "scene-editor/math"
)

// ImportGLTF opens a .gltf or .glb file and flattens every triangle
// primitive reachable from the default scene into one editable mesh,
// baking node transforms into the vertex positions.
// Any primitive that is not a triangle list fails with ErrNonTriangulatedFace.
func ImportGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	b := &gltfBuilder{doc: doc}
	for _, root := range gltfRoots(doc) {
		if err := b.addNode(root, seMath.Mat4Identity()); err != nil {
			return nil, fmt.Errorf("load gltf %q: %w", path, err)
		}
	}

	m := NewMesh(meshNameFromPath(path), b.vertices, b.indices, true)
	slog.Debug("imported gltf", "path", path, "vertices", len(m.Vertices), "triangles", m.TriangleCount())
	return m, nil
}

type gltfBuilder struct {
	doc      *gltf.Document
	vertices []seMath.Vec4
	indices  []int
	depth    int
}

// gltfRoots returns the default scene's nodes, or every parentless node
// when the document has no default scene.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (b *gltfBuilder) addNode(idx int, parent seMath.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	// guards against cyclic hierarchies in malformed files
	if b.depth > len(b.doc.Nodes) {
		return fmt.Errorf("node %d: hierarchy too deep", idx)
	}
	b.depth++
	defer func() { b.depth-- }()

	n := b.doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(n))

	if n.Mesh != nil && *n.Mesh < len(b.doc.Meshes) {
		gm := b.doc.Meshes[*n.Mesh]
		for pi, prim := range gm.Primitives {
			if err := b.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, pi, err)
			}
		}
	}
	for _, c := range n.Children {
		if err := b.addNode(c, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *gltfBuilder) addPrimitive(prim *gltf.Primitive, world seMath.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return fmt.Errorf("primitive mode %v: %w", prim.Mode, ErrNonTriangulatedFace)
	}
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	base := len(b.vertices)
	for _, p := range positions {
		v := world.MulVec(seMath.Point(float64(p[0]), float64(p[1]), float64(p[2])))
		b.vertices = append(b.vertices, v)
	}

	if prim.Indices == nil {
		if len(positions)%3 != 0 {
			return fmt.Errorf("%d unindexed positions: %w", len(positions), ErrNonTriangulatedFace)
		}
		for i := range positions {
			b.indices = append(b.indices, base+i)
		}
		return nil
	}

	indices, err := modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%d indices: %w", len(indices), ErrNonTriangulatedFace)
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return fmt.Errorf("index %d out of range", i)
		}
		b.indices = append(b.indices, base+int(i))
	}
	return nil
}

// nodeMatrix converts a node's local transform. glTF matrices are column-major.
func nodeMatrix(n *gltf.Node) seMath.Mat4 {
	if n.Matrix != gltf.DefaultMatrix {
		var m seMath.Mat4
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				m[row][col] = n.Matrix[col*4+row]
			}
		}
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // [x, y, z, w]
	s := n.ScaleOrDefault()
	return seMath.Mat4TRS(
		seMath.Vec3{X: t[0], Y: t[1], Z: t[2]},
		seMath.Quaternion{X: r[0], Y: r[1], Z: r[2], W: r[3]}.Normalize(),
		seMath.Vec3{X: s[0], Y: s[1], Z: s[2]},
	)
}

// Import loads a mesh file, choosing the format from its extension.
func Import(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return ImportOBJ(path)
	case ".gltf", ".glb":
		return ImportGLTF(path)
	default:
		return nil, fmt.Errorf("import %q: unsupported format %q", path, ext)
	}
}
