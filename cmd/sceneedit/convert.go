package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scene-editor/scene"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output.obj>",
		Short: "Convert a mesh file to Wavefront OBJ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if ext := strings.ToLower(filepath.Ext(out)); ext != ".obj" {
				return fmt.Errorf("convert: output must be .obj, got %q", ext)
			}
			m, err := scene.Import(in)
			if err != nil {
				return err
			}
			if err := scene.ExportOBJ(out, m); err != nil {
				return err
			}
			a.log.Info("converted", "input", in, "output", out, "triangles", m.TriangleCount())
			return nil
		},
	}
}
