package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	seMath "scene-editor/math"
)

// ParseOBJ reads a Wavefront .obj stream into a single editable mesh.
// Only "v" and "f" records are used. Face references may be written as
// "v", "v/vt", "v//vn" or "v/vt/vn"; only the position index is kept and
// negative references count back from the last vertex read.
// Every face must have exactly three references: a quad or larger polygon
// fails with ErrNonTriangulatedFace and no mesh is returned.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var vertices []seMath.Vec4
	var indices []int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates: %w", lineNo, ErrMalformedOBJ)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedOBJ, err)
				}
				xyz[i] = f
			}
			vertices = append(vertices, seMath.Point(xyz[0], xyz[1], xyz[2]))

		case "f":
			refs := fields[1:]
			if len(refs) > 3 {
				return nil, fmt.Errorf("line %d: face with %d vertices: %w", lineNo, len(refs), ErrNonTriangulatedFace)
			}
			if len(refs) < 3 {
				return nil, fmt.Errorf("line %d: face with %d vertices: %w", lineNo, len(refs), ErrMalformedOBJ)
			}
			for _, ref := range refs {
				idx, err := parseFaceRef(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("vertex reference %d out of range [1, %d]: %w", idx+1, len(vertices), ErrMalformedOBJ)
		}
	}

	return NewMesh(name, vertices, indices, true), nil
}

// parseFaceRef returns the 0-based position index of one face token.
func parseFaceRef(tok string, seen int) (int, error) {
	pos, _, _ := strings.Cut(tok, "/")
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("face reference %q: %w", tok, ErrMalformedOBJ)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return seen + n, nil
	}
	return 0, fmt.Errorf("face reference %q: %w", tok, ErrMalformedOBJ)
}

// ImportOBJ loads a mesh from an .obj file, naming it after the file.
func ImportOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f, meshNameFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load obj %q: %w", path, err)
	}
	slog.Debug("imported obj", "path", path, "vertices", len(m.Vertices), "triangles", m.TriangleCount())
	return m, nil
}

func meshNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
