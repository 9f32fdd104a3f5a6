package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"scene-editor/scene"
)

// reload is a re-imported mesh file.
type reload struct {
	path string
	mesh *scene.Mesh
}

// meshWatcher re-imports mesh files when they change on disk. Parent
// directories are watched so editors that save by rename are noticed.
type meshWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]string // absolute path -> path as given
	reloads chan reload
	done    chan struct{}
	log     *slog.Logger
}

func watchMeshes(paths []string, log *slog.Logger) (*meshWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	mw := &meshWatcher{
		watcher: fw,
		files:   make(map[string]string, len(paths)),
		reloads: make(chan reload, 16),
		done:    make(chan struct{}),
		log:     log,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		mw.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	go mw.run()
	return mw, nil
}

// Reloads delivers meshes re-imported after a change. A file that fails
// to parse, for example while it is still being written, is skipped.
func (mw *meshWatcher) Reloads() <-chan reload { return mw.reloads }

func (mw *meshWatcher) run() {
	for {
		select {
		case ev, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, ok := mw.files[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			m, err := scene.Import(path)
			if err != nil {
				mw.log.Warn("reload failed", "path", path, "error", err)
				continue
			}
			mw.log.Info("reloaded mesh", "path", path, "vertices", len(m.Vertices), "triangles", m.TriangleCount())
			select {
			case mw.reloads <- reload{path: path, mesh: m}:
			case <-mw.done:
				return
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			mw.log.Warn("watcher error", "error", err)
		case <-mw.done:
			return
		}
	}
}

func (mw *meshWatcher) Close() error {
	close(mw.done)
	return mw.watcher.Close()
}
