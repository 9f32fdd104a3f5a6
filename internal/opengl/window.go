package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-editor/editor"
)

func init() {
	runtime.LockOSThread()
}

// Handler receives decoded window input. *editor.Editor implements it.
type Handler interface {
	KeyDown(k editor.Key, mods editor.Modifiers)
	KeyUp(k editor.Key)
	PointerMove(x, y float64)
	PointerDown(x, y float64)
	PointerUp(x, y float64)
	Resize(width, height float64)
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1000,
		Height:    1000,
		Title:     "Scene Editor",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}
	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

// Bind forwards keyboard, pointer and resize events to h. Pointer
// coordinates are in window units with the origin at the top left.
func (w *Window) Bind(h Handler) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k, ok := translateKey(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			h.KeyDown(k, translateMods(mods))
		case glfw.Release:
			h.KeyUp(k)
		}
	})
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.PointerMove(x, y)
	})
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			h.PointerDown(x, y)
		case glfw.Release:
			h.PointerUp(x, y)
		}
	})
	w.Handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		h.Resize(float64(width), float64(height))
	})
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var namedKeys = map[glfw.Key]editor.Key{
	glfw.KeySpace:     editor.KeySpace,
	glfw.KeyTab:       editor.KeyTab,
	glfw.KeyEscape:    editor.KeyEscape,
	glfw.KeyBackspace: editor.KeyBackspace,
	glfw.KeyDelete:    editor.KeyDelete,
}

// translateKey maps a glfw key to the editor's token. Letters become
// lowercase and digits keep their character.
func translateKey(key glfw.Key) (editor.Key, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return editor.Key(rune('a' + key - glfw.KeyA)), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return editor.Key(rune('0' + key - glfw.Key0)), true
	}
	k, ok := namedKeys[key]
	return k, ok
}

func translateMods(mods glfw.ModifierKey) editor.Modifiers {
	var m editor.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= editor.ModShift
	}
	if mods&(glfw.ModControl|glfw.ModSuper) != 0 {
		m |= editor.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= editor.ModAlt
	}
	return m
}
