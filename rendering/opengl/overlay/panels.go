// Package overlay draws rasterized UI panels as textured quads in screen space.
package overlay

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"galaxy/rendering/opengl/shaders"
	"galaxy/ui"
)

const panelVertexShader = `
#version 410 core

const vec2 positions[4] = vec2[](
    vec2(0.0, 0.0),
    vec2(1.0, 0.0),
    vec2(0.0, 1.0),
    vec2(1.0, 1.0)
);

uniform vec2 offset;
uniform vec2 size;
uniform vec2 screenSize;

out vec2 texCoord;

void main() {
    vec2 pos = positions[gl_VertexID];
    texCoord = pos;
    vec2 pixelPos = offset + pos * size;
    vec2 ndcPos = (pixelPos / screenSize) * 2.0 - 1.0;
    ndcPos.y = -ndcPos.y; // top-left origin
    gl_Position = vec4(ndcPos, 0.0, 1.0);
}
`

const panelFragmentShader = `
#version 410 core

in vec2 texCoord;

uniform sampler2D panel;
uniform float opacity;

out vec4 outColor;

void main() {
    vec4 c = texture(panel, texCoord);
    outColor = vec4(c.rgb, c.a * opacity);
}
`

type cachedTexture struct {
	id      uint32
	version uint64
}

// PanelRenderer uploads panel images once per version and draws them
type PanelRenderer struct {
	program  *shaders.Program
	vao      uint32
	textures map[*ui.Panel]*cachedTexture

	width, height float32
}

// NewPanelRenderer compiles the quad shader
func NewPanelRenderer(width, height int) (*PanelRenderer, error) {
	program, err := shaders.NewProgram("panel", panelVertexShader, panelFragmentShader)
	if err != nil {
		return nil, err
	}
	pr := &PanelRenderer{
		program:  program,
		textures: make(map[*ui.Panel]*cachedTexture),
	}
	// vertices are generated in the shader
	gl.GenVertexArrays(1, &pr.vao)
	pr.UpdateSize(width, height)
	return pr, nil
}

// UpdateSize updates the screen size used for pixel to NDC conversion
func (pr *PanelRenderer) UpdateSize(width, height int) {
	pr.width = float32(width)
	pr.height = float32(height)
}

// Begin sets blend state for a batch of panels
func (pr *PanelRenderer) Begin() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	pr.program.Use()
	gl.Uniform2f(pr.program.Uniform("screenSize"), pr.width, pr.height)
	gl.Uniform1i(pr.program.Uniform("panel"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(pr.vao)
}

// End restores the 3D pass state
func (pr *PanelRenderer) End() {
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
}

// Draw draws a panel at rect. Call between Begin and End.
func (pr *PanelRenderer) Draw(p *ui.Panel, rect ui.Rect, opacity float32) {
	if p == nil || p.Image == nil || opacity <= 0 {
		return
	}
	tex := pr.texture(p)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform2f(pr.program.Uniform("offset"), float32(rect.X), float32(rect.Y))
	gl.Uniform2f(pr.program.Uniform("size"), float32(rect.W), float32(rect.H))
	gl.Uniform1f(pr.program.Uniform("opacity"), opacity)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

func (pr *PanelRenderer) texture(p *ui.Panel) uint32 {
	c, ok := pr.textures[p]
	if ok && c.version == p.Version {
		return c.id
	}
	if !ok {
		c = &cachedTexture{}
		gl.GenTextures(1, &c.id)
		pr.textures[p] = c
	}
	Upload(c.id, p.Image)
	c.version = p.Version
	return c.id
}

// Upload copies an RGBA image into a 2D texture with linear filtering
func Upload(id uint32, img *image.RGBA) {
	b := img.Bounds()
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Release frees every cached texture and the program
func (pr *PanelRenderer) Release() {
	for p, c := range pr.textures {
		gl.DeleteTextures(1, &c.id)
		delete(pr.textures, p)
	}
	if pr.vao != 0 {
		gl.DeleteVertexArrays(1, &pr.vao)
	}
	pr.program.Delete()
}
