package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// WriteOBJ writes meshes as Wavefront .obj text, one "o" group per mesh.
// Vertices are written in world space so the file reloads as it looks.
func WriteOBJ(w io.Writer, meshes ...*Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# scene-editor")

	base := 1
	for _, m := range meshes {
		fmt.Fprintf(bw, "\no %s\n", m.Name())
		for _, v := range m.WorldVertices() {
			fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
		}
		for f := 0; f+2 < len(m.Indices); f += 3 {
			i0, i1, i2, ok := m.Face(f)
			if !ok {
				continue
			}
			fmt.Fprintf(bw, "f %d %d %d\n", i0+base, i1+base, i2+base)
		}
		base += len(m.Vertices)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ExportOBJ writes meshes to an .obj file at path.
func ExportOBJ(path string, meshes ...*Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	if err := WriteOBJ(f, meshes...); err != nil {
		f.Close()
		return fmt.Errorf("export %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}
	slog.Debug("exported obj", "path", path, "meshes", len(meshes))
	return nil
}
