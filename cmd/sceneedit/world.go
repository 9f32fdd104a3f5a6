package main

import (
	"fmt"
	"log/slog"

	"scene-editor/config"
	"scene-editor/scene"
)

// gridSize is the world extent covered by the floor grid.
const gridSize = 10

// buildWorld creates the camera, grid and light from cfg and imports each
// mesh file. Without files the scene holds a single cube. The returned
// map holds the object loaded from each path.
func buildWorld(cfg *config.Config, width, height int, files []string, log *slog.Logger) (*scene.World, map[string]scene.Object, error) {
	cam := scene.NewCamera(cfg.Camera.FOV, float64(width)/float64(height), cfg.Camera.Near, cfg.Camera.Far)
	cam.SetRadius(cfg.Camera.Radius)

	world := scene.NewWorld(cam, float64(width), float64(height))
	if cfg.Editor.ShowGrid {
		world.AddObject(scene.NewGrid(gridSize, gridSize))
	}

	loaded := make(map[string]scene.Object, len(files))
	for _, path := range files {
		m, err := scene.Import(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load scene: %w", err)
		}
		log.Info("imported mesh", "path", path, "vertices", len(m.Vertices), "triangles", m.TriangleCount())
		world.AddObject(m)
		loaded[path] = m
	}
	if len(files) == 0 {
		world.AddObject(scene.NewCube(1))
	}

	world.AddObject(scene.NewLight(1, scene.DefaultLightPosition))
	return world, loaded, nil
}
