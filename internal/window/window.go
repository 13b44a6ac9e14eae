// Package window opens the GLFW window and OpenGL context the demos draw
// into and turns raw input into drag, scroll and key events.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	dragging     bool
	lastX, lastY float64

	onDrag   func(dx, dy float64)
	onScroll func(yoff float64)
	onKey    func(key Key)
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Title:     "lightlab",
		Resizable: true,
		VSync:     true,
	}
}

// New creates the window with a current OpenGL 4.1 core context.
func New(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Handle: handle,
		Title:  config.Title,
	}
	w.Width, w.Height = handle.GetFramebufferSize()

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
	})
	handle.SetMouseButtonCallback(w.mouseButton)
	handle.SetCursorPosCallback(w.cursorPos)
	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(yoff)
		}
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release || w.onKey == nil {
			return
		}
		w.onKey(Key(key))
	})

	return w, nil
}

func (w *Window) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	w.dragging = action == glfw.Press
	if w.dragging {
		w.lastX, w.lastY = w.Handle.GetCursorPos()
	}
}

func (w *Window) cursorPos(_ *glfw.Window, x, y float64) {
	if !w.dragging {
		return
	}
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	if w.onDrag != nil {
		w.onDrag(dx, dy)
	}
}

// OnDrag registers a handler for left-button drags, in pixels.
func (w *Window) OnDrag(fn func(dx, dy float64)) { w.onDrag = fn }

// OnScroll registers a handler for vertical wheel movement.
func (w *Window) OnScroll(fn func(yoff float64)) { w.onScroll = fn }

// OnKey registers a handler called on key press and repeat.
func (w *Window) OnKey(fn func(key Key)) { w.onKey = fn }

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) Aspect() float64 {
	if w.Height == 0 {
		return 1
	}
	return float64(w.Width) / float64(w.Height)
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
		return glfw.True
	}
	return glfw.False
}

// Key identifies a keyboard key.
type Key int

const (
	KeyEscape = Key(glfw.KeyEscape)
	KeyLeft   = Key(glfw.KeyLeft)
	KeyRight  = Key(glfw.KeyRight)
	KeyUp     = Key(glfw.KeyUp)
	KeyDown   = Key(glfw.KeyDown)
	KeyEqual  = Key(glfw.KeyEqual)
	KeyMinus  = Key(glfw.KeyMinus)
	KeyKPAdd  = Key(glfw.KeyKPAdd)
	KeyKPSub  = Key(glfw.KeyKPSubtract)
	KeyA      = Key(glfw.KeyA)
	KeyW      = Key(glfw.KeyW)
	Key1      = Key(glfw.Key1)
	Key9      = Key(glfw.Key9)
)
