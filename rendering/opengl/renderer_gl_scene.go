package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"galaxy/core"
	"galaxy/rendering"
	"galaxy/rendering/opengl/shaders"
	"galaxy/ui"
)

// Render draws one frame and swaps buffers
func (r *Renderer) Render(w *core.World, o *ui.Overlay) {
	gl.Viewport(0, 0, int32(r.fbWidth), int32(r.fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.updateMatrices(w.Camera)

	r.drawSky(w.Sky)
	r.drawSun(w.Sun)

	bodies := rendering.VisibleBodies(w)
	r.drawBodies(bodies)
	r.drawRings(bodies)
	r.drawGlows(bodies)
	r.drawEffects(w.Effects())

	r.drawOverlay(w, o)
	r.window.SwapBuffers()
}

func (r *Renderer) updateMatrices(cam *core.Camera) {
	r.viewMatrix = cam.View()
	r.projMatrix = cam.Projection(float32(r.width) / float32(r.height))
}

func (r *Renderer) setCamera(p *shaders.Program) {
	gl.UniformMatrix4fv(p.Uniform("view"), 1, false, &r.viewMatrix[0])
	gl.UniformMatrix4fv(p.Uniform("projection"), 1, false, &r.projMatrix[0])
}

// beginTranslucent disables depth writes and picks the blend mode
func beginTranslucent(additive bool) {
	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)
}

func endTranslucent() {
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawSky(sky *core.Sky) {
	if sky != r.starsSky {
		r.scratch = rendering.StarPoints(sky, r.scratch)
		r.stars.upload(r.scratch)
		r.starsSky = sky
	}

	beginTranslucent(false)
	r.pointProgram.Use()
	r.setCamera(r.pointProgram)
	gl.Uniform1f(r.pointProgram.Uniform("viewportHeight"), float32(r.fbHeight))
	r.stars.draw(gl.POINTS)

	r.scratch = rendering.SparklePoints(sky, r.scratch)
	r.sparkles.upload(r.scratch)
	r.sparkles.draw(gl.POINTS)

	if len(sky.ShootingStars) > 0 {
		r.lineProgram.Use()
		r.setCamera(r.lineProgram)
		r.scratch = rendering.ShootingStarLines(sky, r.scratch)
		r.streaks.upload(r.scratch)
		r.streaks.draw(gl.LINES)
	}
	endTranslucent()
}

func (r *Renderer) drawSun(sun *core.Sun) {
	if sun.Destroyed {
		return
	}
	model := mgl32.HomogRotate3DY(sun.Rotation).Mul4(mgl32.Scale3D(sun.Radius, sun.Radius, sun.Radius))

	r.bodyProgram.Use()
	r.setCamera(r.bodyProgram)
	gl.UniformMatrix4fv(r.bodyProgram.Uniform("model"), 1, false, &model[0])
	gl.Uniform3f(r.bodyProgram.Uniform("tint"), sun.Color[0], sun.Color[1], sun.Color[2])
	gl.Uniform1f(r.bodyProgram.Uniform("emissive"), 3)
	gl.Uniform1f(r.bodyProgram.Uniform("sunLight"), 0)
	gl.Uniform1i(r.bodyProgram.Uniform("albedo"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.whiteTexture)
	r.sphere.draw()

	beginTranslucent(true)
	gl.CullFace(gl.FRONT)
	r.glowProgram.Use()
	r.setCamera(r.glowProgram)
	for _, g := range sun.Glows {
		m := mgl32.Scale3D(g.Radius, g.Radius, g.Radius)
		gl.UniformMatrix4fv(r.glowProgram.Uniform("model"), 1, false, &m[0])
		gl.Uniform3f(r.glowProgram.Uniform("color"), sun.Color[0], sun.Color[1], sun.Color[2])
		gl.Uniform1f(r.glowProgram.Uniform("opacity"), g.Opacity)
		r.sphere.draw()
	}
	gl.CullFace(gl.BACK)
	endTranslucent()
}

func (r *Renderer) drawBodies(bodies []*core.Body) {
	r.bodyProgram.Use()
	r.setCamera(r.bodyProgram)
	gl.Uniform3f(r.bodyProgram.Uniform("tint"), 1, 1, 1)
	gl.Uniform1f(r.bodyProgram.Uniform("emissive"), 1)
	gl.Uniform1f(r.bodyProgram.Uniform("sunLight"), 1)
	gl.Uniform1i(r.bodyProgram.Uniform("albedo"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, b := range bodies {
		model := b.Model()
		gl.UniformMatrix4fv(r.bodyProgram.Uniform("model"), 1, false, &model[0])
		gl.BindTexture(gl.TEXTURE_2D, r.bodyTexture(b))
		r.sphere.draw()
	}
}

func (r *Renderer) drawRings(bodies []*core.Body) {
	beginTranslucent(false)
	gl.Disable(gl.CULL_FACE)
	r.ringProgram.Use()
	r.setCamera(r.ringProgram)
	for _, b := range bodies {
		meshes := r.ringMeshes(b)
		for i, ring := range b.Rings {
			model := mgl32.Translate3D(b.Position[0], b.Position[1], b.Position[2]).
				Mul4(mgl32.HomogRotate3DX(ring.TiltX)).
				Mul4(mgl32.HomogRotate3DZ(ring.TiltY))
			gl.UniformMatrix4fv(r.ringProgram.Uniform("model"), 1, false, &model[0])
			gl.Uniform3f(r.ringProgram.Uniform("color"), b.Color[0], b.Color[1], b.Color[2])
			gl.Uniform1f(r.ringProgram.Uniform("opacity"), ring.Opacity)
			meshes[i].draw()
		}
	}
	gl.Enable(gl.CULL_FACE)
	endTranslucent()
}

// drawGlows draws the hover shells from the inside so they halo the planet
func (r *Renderer) drawGlows(bodies []*core.Body) {
	beginTranslucent(true)
	gl.CullFace(gl.FRONT)
	r.glowProgram.Use()
	r.setCamera(r.glowProgram)
	for _, b := range bodies {
		if b.GlowOpacity <= 0 {
			continue
		}
		model := mgl32.Translate3D(b.Position[0], b.Position[1], b.Position[2]).
			Mul4(mgl32.Scale3D(b.GlowSize, b.GlowSize, b.GlowSize))
		gl.UniformMatrix4fv(r.glowProgram.Uniform("model"), 1, false, &model[0])
		gl.Uniform3f(r.glowProgram.Uniform("color"), b.Color[0], b.Color[1], b.Color[2])
		gl.Uniform1f(r.glowProgram.Uniform("opacity"), b.GlowOpacity)
		r.sphere.draw()
	}
	gl.CullFace(gl.BACK)
	endTranslucent()
}

func (r *Renderer) drawEffects(effects []core.Effect) {
	if len(effects) == 0 {
		return
	}
	r.scratch = rendering.EffectPoints(effects, r.scratch)
	r.effects.upload(r.scratch)

	beginTranslucent(true)
	r.pointProgram.Use()
	r.setCamera(r.pointProgram)
	gl.Uniform1f(r.pointProgram.Uniform("viewportHeight"), float32(r.fbHeight))
	r.effects.draw(gl.POINTS)
	endTranslucent()
}
