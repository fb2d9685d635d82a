// Package opengl is the glfw + OpenGL 4.1 backend.
package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"galaxy/core"
	"galaxy/rendering"
	"galaxy/rendering/opengl/overlay"
	"galaxy/rendering/opengl/shaders"
)

// Options configures the window
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

var _ rendering.Backend = (*Renderer)(nil)

// Renderer draws the galaxy with native OpenGL
type Renderer struct {
	window  *glfw.Window
	handler rendering.InputHandler

	// Shader programs
	bodyProgram  *shaders.Program
	glowProgram  *shaders.Program
	ringProgram  *shaders.Program
	pointProgram *shaders.Program
	lineProgram  *shaders.Program

	// Geometry shared by every sphere; scaled per draw
	sphere *gpuMesh

	// Per-body resources, released on EventBodyRemoved
	bodyTextures map[core.BodyID]uint32
	bodyRings    map[core.BodyID][]*gpuMesh
	whiteTexture uint32

	stars    *pointBuffer
	starsSky *core.Sky
	sparkles *pointBuffer
	streaks  *pointBuffer
	effects  *pointBuffer
	scratch  []float32

	panels *overlay.PanelRenderer

	// Uniforms
	viewMatrix mgl32.Mat4
	projMatrix mgl32.Mat4

	// Window size in screen coordinates (input, overlay) and framebuffer
	// size in pixels (viewport)
	width, height     int
	fbWidth, fbHeight int

	handCursor *glfw.Cursor
	cursor     core.Cursor
}

// NewRenderer opens a window and compiles every shader. It must run on the
// main OS thread.
func NewRenderer(opts Options) (*Renderer, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	fmt.Println("OpenGL version:", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &Renderer{
		window:       window,
		bodyTextures: make(map[core.BodyID]uint32),
		bodyRings:    make(map[core.BodyID][]*gpuMesh),
		handCursor:   glfw.CreateStandardCursor(glfw.HandCursor),
	}
	r.width, r.height = window.GetSize()
	r.fbWidth, r.fbHeight = window.GetFramebufferSize()

	if err := r.compilePrograms(); err != nil {
		r.Terminate()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0, 0, 0.02, 1)

	r.sphere = uploadMesh(core.SphereMesh(1, 64, 32))
	r.whiteTexture = solidTexture(255, 255, 255)
	r.stars = newPointBuffer()
	r.sparkles = newPointBuffer()
	r.streaks = newPointBuffer()
	r.effects = newPointBuffer()

	panels, err := overlay.NewPanelRenderer(r.width, r.height)
	if err != nil {
		r.Terminate()
		return nil, fmt.Errorf("failed to create overlay renderer: %w", err)
	}
	r.panels = panels

	r.installCallbacks()
	return r, nil
}

func (r *Renderer) compilePrograms() error {
	var err error
	if r.bodyProgram, err = shaders.NewBodyProgram(); err != nil {
		return err
	}
	if r.glowProgram, err = shaders.NewGlowProgram(); err != nil {
		return err
	}
	if r.ringProgram, err = shaders.NewRingProgram(); err != nil {
		return err
	}
	if r.pointProgram, err = shaders.NewPointProgram(); err != nil {
		return err
	}
	if r.lineProgram, err = shaders.NewLineProgram(); err != nil {
		return err
	}
	return nil
}

// Size returns the window size in screen coordinates
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// SetInputHandler routes window input to h
func (r *Renderer) SetInputHandler(h rendering.InputHandler) {
	r.handler = h
	if h != nil {
		h.Resize(r.width, r.height)
	}
}

// SetCursor switches between the arrow and the hand cursor
func (r *Renderer) SetCursor(c core.Cursor) {
	if c == r.cursor {
		return
	}
	r.cursor = c
	if c == core.CursorPointer {
		r.window.SetCursor(r.handCursor)
	} else {
		r.window.SetCursor(nil)
	}
}

// ShouldClose returns true if the window should close
func (r *Renderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// PollEvents processes pending window events
func (r *Renderer) PollEvents() {
	glfw.PollEvents()
}

// OnWorldEvent frees the GPU copies of a removed body's texture and rings
func (r *Renderer) OnWorldEvent(e core.Event) {
	if e.Kind != core.EventBodyRemoved || e.Body == nil {
		return
	}
	r.releaseBody(e.Body.ID)
}

func (r *Renderer) releaseBody(id core.BodyID) {
	if tex, ok := r.bodyTextures[id]; ok {
		gl.DeleteTextures(1, &tex)
		delete(r.bodyTextures, id)
	}
	for _, m := range r.bodyRings[id] {
		m.release()
	}
	delete(r.bodyRings, id)
}

// Terminate releases every GL object and closes the window
func (r *Renderer) Terminate() {
	for id := range r.bodyTextures {
		r.releaseBody(id)
	}
	for id := range r.bodyRings {
		r.releaseBody(id)
	}
	if r.whiteTexture != 0 {
		gl.DeleteTextures(1, &r.whiteTexture)
	}
	for _, pb := range []*pointBuffer{r.stars, r.sparkles, r.streaks, r.effects} {
		pb.release()
	}
	r.sphere.release()
	if r.panels != nil {
		r.panels.Release()
	}
	for _, p := range []*shaders.Program{r.bodyProgram, r.glowProgram, r.ringProgram, r.pointProgram, r.lineProgram} {
		p.Delete()
	}
	if r.handCursor != nil {
		r.handCursor.Destroy()
	}
	r.window.Destroy()
	glfw.Terminate()
}
