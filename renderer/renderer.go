// Package renderer runs a scene group in a window: it owns the OpenGL
// backend, steers the camera from mouse and keyboard input and draws one
// frame per loop iteration.
package renderer

import (
	"context"
	"fmt"
	"log/slog"

	"lightlab/camera"
	"lightlab/config"
	"lightlab/internal/opengl"
	"lightlab/internal/window"
	"lightlab/scene"
)

// KeyHandler receives keys the engine does not consume itself. It reports
// whether the key was handled.
type KeyHandler func(key window.Key) bool

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *window.Window

	Group      *scene.Group
	Camera     *camera.Camera
	Controller *camera.Spherical

	onKey KeyHandler

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastTriangles int
}

// New opens a window per cfg and attaches a spherical camera controller
// positioned from cfg.Camera.
func New(cfg config.Config, title string) (*RenderEngine, error) {
	wc := window.DefaultConfig()
	wc.Width, wc.Height = cfg.Window.Width, cfg.Window.Height
	wc.VSync = cfg.Window.VSync
	wc.Title = title
	if cfg.Window.Title != "" && cfg.Window.Title != config.Default().Window.Title {
		wc.Title = cfg.Window.Title
	}

	win, err := window.New(wc)
	if err != nil {
		return nil, err
	}
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	glRenderer.SetViewport(win.Width, win.Height)

	cam := camera.New(cfg.Camera.FieldOfView)
	ctrl := camera.NewSpherical(cam, cfg.Camera.Distance, cfg.Camera.Theta, cfg.Camera.Phi)
	ctrl.DragSpeed = cfg.Camera.DragSpeed
	ctrl.WheelFactor = cfg.Camera.WheelFactor

	re := &RenderEngine{
		gl:         glRenderer,
		window:     win,
		Group:      scene.NewGroup(),
		Camera:     cam,
		Controller: ctrl,
	}
	win.OnDrag(ctrl.Drag)
	win.OnScroll(ctrl.Wheel)
	win.OnKey(re.handleKey)

	slog.Info("render engine initialized", "backend", "opengl", "width", win.Width, "height", win.Height)
	return re, nil
}

// OnKey registers fn for keys not bound to the camera or the engine.
func (re *RenderEngine) OnKey(fn KeyHandler) { re.onKey = fn }

func (re *RenderEngine) handleKey(k window.Key) {
	switch k {
	case window.KeyEscape:
		re.window.Close()
		return
	case window.KeyW:
		re.SetWireframe(!re.IsWireframe())
		return
	}
	if ck, ok := cameraKey(k); ok {
		re.Controller.HandleKey(ck)
		return
	}
	if re.onKey == nil || !re.onKey(k) {
		slog.Debug("key ignored", "key", int(k))
	}
}

func cameraKey(k window.Key) (camera.Key, bool) {
	switch k {
	case window.KeyLeft:
		return camera.KeyLeft, true
	case window.KeyRight:
		return camera.KeyRight, true
	case window.KeyUp:
		return camera.KeyUp, true
	case window.KeyDown:
		return camera.KeyDown, true
	case window.KeyEqual, window.KeyKPAdd:
		return camera.KeyZoomIn, true
	case window.KeyMinus, window.KeyKPSub:
		return camera.KeyZoomOut, true
	}
	return 0, false
}

// Render draws the group from the camera into the back buffer.
func (re *RenderEngine) Render() {
	re.gl.SetViewport(re.window.Width, re.window.Height)
	re.gl.Draw(re.Group, re.Camera, re.window.Aspect())

	objects, triangles := 0, 0
	for _, m := range re.Group.Models() {
		if m.Material == nil || m.Mesh == nil {
			continue
		}
		objects++
		triangles += m.Mesh.TriangleCount()
	}
	re.lastObjects, re.lastTriangles = objects, triangles
}

// Present swaps buffers. Call after Render.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

// Run renders until the window closes or ctx is done.
func (re *RenderEngine) Run(ctx context.Context) error {
	for !re.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		re.window.PollEvents()
		re.Render()
		re.Present()
	}
	return nil
}

// SetTitle updates the window caption.
func (re *RenderEngine) SetTitle(title string) {
	re.window.SetTitle(title)
}

// SetWireframe toggles wireframe rendering.
func (re *RenderEngine) SetWireframe(enabled bool) {
	re.gl.SetWireframe(enabled)
}

func (re *RenderEngine) IsWireframe() bool {
	return re.gl.IsWireframe()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, triangles int) {
	return re.lastObjects, re.lastTriangles
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
	re.window.Destroy()
}
