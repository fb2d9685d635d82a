// Package raylib draws the galaxy with raylib. It is the portable fallback
// for machines without an OpenGL 4.1 core context; lighting is unlit.
package raylib

import (
	"image"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"galaxy/core"
	"galaxy/rendering"
	"galaxy/ui"
)

var _ rendering.Backend = (*Renderer)(nil)

var (
	colBg  = rl.NewColor(0, 0, 5, 255)
	colSun = rl.NewColor(255, 222, 89, 255)
)

// ringStrokes is how many concentric circles approximate one ring band
const ringStrokes = 6

type panelTexture struct {
	tex     rl.Texture2D
	version uint64
}

// Renderer is the raylib backend
type Renderer struct {
	handler rendering.InputHandler
	camera  rl.Camera3D

	// created lazily once the GL context exists
	sphere       rl.Model
	sphereLoaded bool

	bodyTextures map[core.BodyID]rl.Texture2D
	panels       map[*ui.Panel]*panelTexture

	width, height int
	lastMouse     rl.Vector2
	cursor        core.Cursor
	quit          bool
}

// NewRenderer opens the window
func NewRenderer(width, height int, title string, vsync bool) *Renderer {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if vsync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(0)
	if !vsync {
		rl.SetTargetFPS(0)
	}

	return &Renderer{
		camera: rl.Camera3D{
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       core.CameraFovY,
			Projection: rl.CameraPerspective,
		},
		bodyTextures: make(map[core.BodyID]rl.Texture2D),
		panels:       make(map[*ui.Panel]*panelTexture),
		width:        int(rl.GetScreenWidth()),
		height:       int(rl.GetScreenHeight()),
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// matrix converts a column-major mgl32 matrix; raylib stores the same order
func matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func color(c mgl32.Vec3, alpha float32) rl.Color {
	clamp := func(f float32) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(f)*255)))
	}
	return rl.NewColor(clamp(c[0]), clamp(c[1]), clamp(c[2]), clamp(alpha))
}

func loadTexture(img *image.RGBA) rl.Texture2D {
	ri := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(ri)
	rl.UnloadImage(ri)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) SetInputHandler(h rendering.InputHandler) {
	r.handler = h
	if h != nil {
		h.Resize(r.width, r.height)
	}
}

func (r *Renderer) SetCursor(c core.Cursor) {
	if c == r.cursor {
		return
	}
	r.cursor = c
	if c == core.CursorPointer {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (r *Renderer) ShouldClose() bool {
	return r.quit || rl.WindowShouldClose()
}

// PollEvents turns raylib's polled input state into handler calls. raylib
// gathers the events itself at the end of each frame.
func (r *Renderer) PollEvents() {
	if rl.IsWindowResized() {
		r.width, r.height = int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		if r.handler != nil {
			r.handler.Resize(r.width, r.height)
		}
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		r.quit = true
	}
	if r.handler == nil {
		return
	}

	mouse := rl.GetMousePosition()
	if mouse != r.lastMouse {
		r.lastMouse = mouse
		r.handler.PointerMove(float64(mouse.X), float64(mouse.Y))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		r.handler.PointerClick(float64(mouse.X), float64(mouse.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		r.handler.KeyPressed(rendering.KeyEscape)
	case rl.IsKeyPressed(rl.KeyM), rl.IsKeyPressed(rl.KeySpace):
		r.handler.KeyPressed(rendering.KeyToggleMotion)
	case rl.IsKeyPressed(rl.KeyR):
		r.handler.KeyPressed(rendering.KeyReset)
	}
}

func (r *Renderer) OnWorldEvent(e core.Event) {
	if e.Kind != core.EventBodyRemoved || e.Body == nil {
		return
	}
	if tex, ok := r.bodyTextures[e.Body.ID]; ok {
		rl.UnloadTexture(tex)
		delete(r.bodyTextures, e.Body.ID)
	}
}

func (r *Renderer) ensureSphere() {
	if r.sphereLoaded {
		return
	}
	r.sphere = rl.LoadModelFromMesh(rl.GenMeshSphere(1, 32, 64))
	r.sphereLoaded = true
}

func (r *Renderer) bodyTexture(b *core.Body) (rl.Texture2D, bool) {
	if tex, ok := r.bodyTextures[b.ID]; ok {
		return tex, true
	}
	if b.Texture == nil {
		return rl.Texture2D{}, false
	}
	tex := loadTexture(b.Texture)
	r.bodyTextures[b.ID] = tex
	return tex, true
}

// Render draws one frame
func (r *Renderer) Render(w *core.World, o *ui.Overlay) {
	r.ensureSphere()
	cam := w.Camera
	r.camera.Position = vec3(cam.Position)
	r.camera.Target = vec3(cam.Target)
	r.camera.Up = vec3(cam.Up)
	r.camera.Fovy = cam.FovY

	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(r.camera)
	r.drawSky(w.Sky)
	r.drawSun(w.Sun)
	bodies := rendering.VisibleBodies(w)
	r.drawBodies(bodies)
	r.drawRings(bodies)
	r.drawGlows(bodies)
	r.drawEffects(w.Effects())
	rl.EndMode3D()

	for _, l := range rendering.Labels(w, o, r.width, r.height) {
		r.drawPanel(l.Panel, l.Rect(), 1)
	}
	for _, p := range o.Panels() {
		r.drawPanel(p, p.Rect, p.Opacity)
	}
	rl.EndDrawing()
}

// RenderStatus draws only the overlay panels
func (r *Renderer) RenderStatus(o *ui.Overlay) {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)
	for _, p := range o.Panels() {
		r.drawPanel(p, p.Rect, p.Opacity)
	}
	rl.EndDrawing()
}

// drawSky draws the starfield. Stars past raylib's far clip plane drop out,
// which leaves the sky a little thinner than in the GL backend.
func (r *Renderer) drawSky(sky *core.Sky) {
	for _, s := range sky.Stars {
		rl.DrawPoint3D(vec3(s.Position), color(s.Color, rendering.StarOpacity))
	}
	for _, s := range sky.Sparkles {
		rl.DrawSphereEx(vec3(s.Position), 0.25*s.Scale, 4, 4, color(s.Color, s.Opacity))
	}
	for _, s := range sky.ShootingStars {
		rl.DrawLine3D(vec3(s.Head), vec3(s.Tail()), rl.Fade(rl.White, s.Opacity))
	}
}

func (r *Renderer) drawSun(sun *core.Sun) {
	if sun.Destroyed {
		return
	}
	rl.DrawSphereEx(rl.NewVector3(0, 0, 0), sun.Radius, 24, 32, colSun)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, g := range sun.Glows {
		rl.DrawSphereEx(rl.NewVector3(0, 0, 0), g.Radius, 16, 24, color(sun.Color, g.Opacity))
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawBodies(bodies []*core.Body) {
	for _, b := range bodies {
		tex, ok := r.bodyTexture(b)
		tint := rl.White
		if ok {
			rl.SetMaterialTexture(r.sphere.Materials, rl.MapDiffuse, tex)
		} else {
			tint = color(b.Color, 1)
		}
		r.sphere.Transform = matrix(b.Model())
		rl.DrawModel(r.sphere, rl.NewVector3(0, 0, 0), 1, tint)
	}
}

// drawRings approximates each band with concentric circles
func (r *Renderer) drawRings(bodies []*core.Body) {
	for _, b := range bodies {
		for _, ring := range b.Rings {
			c := color(b.Color, ring.Opacity)
			angle := 90 + mgl32.RadToDeg(ring.TiltX)
			for i := 0; i < ringStrokes; i++ {
				radius := ring.Inner + (ring.Outer-ring.Inner)*float32(i)/(ringStrokes-1)
				rl.DrawCircle3D(vec3(b.Position), radius, rl.NewVector3(1, 0, 0), angle, c)
			}
		}
	}
}

func (r *Renderer) drawGlows(bodies []*core.Body) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, b := range bodies {
		if b.GlowOpacity > 0 {
			rl.DrawSphereEx(vec3(b.Position), b.GlowSize, 16, 24, color(b.Color, b.GlowOpacity))
		}
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawEffects(effects []core.Effect) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, e := range effects {
		ps := e.Particles()
		for i, p := range ps {
			alpha := e.Opacity()
			if e.Kind() == core.EffectTrail {
				alpha *= 1 - float32(i)/float32(len(ps))
			}
			rl.DrawSphereEx(vec3(p.Position), e.PointSize()*0.5, 3, 4, color(p.Color, alpha))
		}
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawPanel(p *ui.Panel, rect ui.Rect, opacity float32) {
	if p == nil || p.Image == nil || opacity <= 0 {
		return
	}
	pt, ok := r.panels[p]
	if !ok || pt.version != p.Version {
		if ok {
			rl.UnloadTexture(pt.tex)
		}
		pt = &panelTexture{tex: loadTexture(p.Image), version: p.Version}
		r.panels[p] = pt
	}
	src := rl.NewRectangle(0, 0, float32(pt.tex.Width), float32(pt.tex.Height))
	dst := rl.NewRectangle(float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H))
	rl.DrawTexturePro(pt.tex, src, dst, rl.NewVector2(0, 0), 0, rl.Fade(rl.White, opacity))
}

// Terminate unloads every texture and closes the window
func (r *Renderer) Terminate() {
	for id, tex := range r.bodyTextures {
		rl.UnloadTexture(tex)
		delete(r.bodyTextures, id)
	}
	for p, pt := range r.panels {
		rl.UnloadTexture(pt.tex)
		delete(r.panels, p)
	}
	if r.sphereLoaded {
		// body textures are already gone; keep UnloadModel off them
		rl.SetMaterialTexture(r.sphere.Materials, rl.MapDiffuse, rl.Texture2D{})
		rl.UnloadModel(r.sphere)
	}
	rl.CloseWindow()
}
