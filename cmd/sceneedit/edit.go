package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"scene-editor/canvas"
	"scene-editor/editor"
	"scene-editor/internal/opengl"
	"scene-editor/scene"
)

func newEditCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "edit [mesh files...]",
		Short: "Open the interactive editor",
		Long: `Open the interactive editor on the given .obj, .gltf or .glb files.

Navigation: space+mouse orbit, q+mouse zoom, w+mouse pan, x/y/z snap view,
5 toggles orthographic. Click selects, tab toggles edit mode, 1/2 pick
vertices or faces. g/r/s move, rotate or scale (x/y/z constrain, click
confirms, escape cancels). e extrudes the selected face. a adds a cube,
shift+a a plane. backspace deletes. ctrl+z / ctrl+shift+z undo and redo.
p saves a screenshot. ctrl+s writes the selected mesh as .obj.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(args, watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload mesh files when they change on disk")
	return cmd
}

func (a *app) runEdit(files []string, watch bool) error {
	wc := opengl.DefaultWindowConfig()
	wc.Width, wc.Height, wc.Title = a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title

	win, err := opengl.NewWindow(wc)
	if err != nil {
		return err
	}
	defer win.Destroy()

	presenter, err := opengl.NewPresenter(a.log)
	if err != nil {
		return err
	}
	defer presenter.Destroy()

	world, loaded, err := buildWorld(a.cfg, win.Width, win.Height, files, a.log)
	if err != nil {
		return err
	}
	ed := editor.NewEditor(world, editor.Options{
		Width:        float64(win.Width),
		Height:       float64(win.Height),
		PickRadius:   a.cfg.Editor.VertexPickRadius,
		HistoryDepth: a.cfg.Editor.HistoryDepth,
		ShowGizmo:    a.cfg.Editor.ShowGizmo,
		Logger:       a.log,
	})

	cv := canvas.New(win.Width, win.Height)
	ed.OnScreenshot = func() {
		path := filepath.Join(a.cfg.Editor.ScreenshotDir, fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405")))
		if err := cv.SavePNG(path); err != nil {
			a.log.Error("screenshot", "error", err)
			return
		}
		a.log.Info("saved screenshot", "path", path)
		ed.StatusText = "Saved " + path
	}
	ed.OnSave = func(m *scene.Mesh) {
		path := filepath.Join(a.cfg.Editor.ScreenshotDir, m.Name()+".obj")
		if err := scene.ExportOBJ(path, m); err != nil {
			a.log.Error("save mesh", "error", err)
			return
		}
		a.log.Info("saved mesh", "path", path)
		ed.StatusText = "Saved " + path
	}
	win.Bind(ed)

	var reloads <-chan reload
	if watch && len(files) > 0 {
		mw, err := watchMeshes(files, a.log)
		if err != nil {
			return err
		}
		defer mw.Close()
		reloads = mw.Reloads()
	}

	title := ""
	for !win.ShouldClose() {
		win.PollEvents()

	drain:
		for {
			select {
			case r := <-reloads:
				ed.Replace(loaded[r.path], r.mesh)
				loaded[r.path] = r.mesh
				ed.StatusText = "Reloaded " + r.path
			default:
				break drain
			}
		}

		cv.Resize(win.Width, win.Height)
		cv.Clear()
		ed.Frame(cv)
		fbw, fbh := win.GetFramebufferSize()
		presenter.Present(cv.Image(), fbw, fbh)
		win.SwapBuffers()

		if t := statusTitle(a.cfg.Window.Title, ed); t != title {
			win.SetTitle(t)
			title = t
		}
	}
	return nil
}

// statusTitle summarizes editor state for the window title bar.
func statusTitle(base string, ed *editor.Editor) string {
	mode := "Object"
	if ed.EditMode {
		mode = "Edit"
		if m, ok := ed.SelectedMesh(); ok {
			mode = fmt.Sprintf("Edit/%s", m.Mode)
		}
	}
	if ed.TransformMode != scene.TransformNone {
		mode += " " + ed.TransformMode.String()
		if ed.Axis != scene.AxisNone {
			mode += " " + ed.Axis.String()
		}
	}
	objects, vertices, faces := ed.Stats()
	return fmt.Sprintf("%s | %s | %d objects, %d vertices, %d faces | %s",
		base, mode, objects, vertices, faces, ed.StatusText)
}
