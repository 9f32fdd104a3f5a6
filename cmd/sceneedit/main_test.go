package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/config"
	"scene-editor/scene"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestBuildWorldDefaults(t *testing.T) {
	cfg := config.Default()
	world, loaded, err := buildWorld(cfg, 200, 100, nil, slog.Default())
	require.NoError(t, err)
	assert.Empty(t, loaded)

	kinds := make([]scene.Kind, 0, 3)
	for _, o := range world.Objects() {
		kinds = append(kinds, o.Kind())
	}
	assert.Equal(t, []scene.Kind{scene.KindGrid, scene.KindMesh, scene.KindLight}, kinds)
	assert.InDelta(t, 2, world.Camera.AspectRatio, 1e-12)
	assert.InDelta(t, cfg.Camera.Radius, world.Camera.Position.Length(), 1e-9)
}

func TestBuildWorldClampsCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.FOV = 500
	cfg.Camera.Radius = 0.01

	world, _, err := buildWorld(cfg, 100, 100, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, scene.MaxFOV, world.Camera.FOV)
	assert.Equal(t, scene.MinRadius, world.Camera.Radius)
	assert.InDelta(t, scene.MinRadius, world.Camera.Position.Length(), 1e-9)
}

func TestBuildWorldImportError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"), 0o644))

	_, _, err := buildWorld(config.Default(), 10, 10, []string{path}, slog.Default())
	assert.ErrorIs(t, err, scene.ErrNonTriangulatedFace)
}

func TestTraceCommandWritesImages(t *testing.T) {
	dir := t.TempDir()
	mesh := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(mesh, []byte(triangleOBJ), 0o644))
	ppm := filepath.Join(dir, "out.ppm")
	png := filepath.Join(dir, "out.png")

	_, err := run(t, "--config", filepath.Join(dir, "none.toml"), "--log-level", "error",
		"trace", "--width", "8", "--height", "6", "-o", ppm, "--png", png, mesh)
	require.NoError(t, err)

	data, err := os.ReadFile(ppm)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "P6\n8 6\n255\n"))
	assert.Len(t, data, len("P6\n8 6\n255\n")+8*6*3)
	assert.FileExists(t, png)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(in, []byte(triangleOBJ), 0o644))
	out := filepath.Join(dir, "copy.obj")
	cfg := filepath.Join(dir, "none.toml")

	_, err := run(t, "--config", cfg, "--log-level", "error", "convert", in, out)
	require.NoError(t, err)
	m, err := scene.Import(out)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TriangleCount())

	_, err = run(t, "--config", cfg, "convert", in, filepath.Join(dir, "copy.glb"))
	assert.ErrorContains(t, err, "output must be .obj")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err, "refuses to overwrite")
	_, err = run(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "loud", "config", "init")
	assert.Error(t, err)
}

func TestWatcherReloadsChangedMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	mw, err := watchMeshes([]string{path}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer mw.Close()

	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ+"v 0 0 1\nf 1 2 4\n"), 0o644))

	// truncation may be seen as its own write, so wait for the full file
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-mw.Reloads():
			assert.Equal(t, path, r.path)
			if r.mesh.TriangleCount() == 2 {
				return
			}
		case <-timeout:
			t.Fatal("no reload")
		}
	}
}
