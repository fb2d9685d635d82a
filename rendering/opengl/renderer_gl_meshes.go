package opengl

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"galaxy/core"
	"galaxy/rendering"
	"galaxy/rendering/opengl/overlay"
)

// gpuMesh is an indexed mesh in the core.Mesh vertex layout
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func uploadMesh(m core.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(core.Stride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (g *gpuMesh) release() {
	if g == nil {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// pointBuffer is a streamed vertex buffer in the rendering.PointStride layout
type pointBuffer struct {
	vao, vbo uint32
	count    int32
	capacity int
}

func newPointBuffer() *pointBuffer {
	pb := &pointBuffer{}
	gl.GenVertexArrays(1, &pb.vao)
	gl.GenBuffers(1, &pb.vbo)

	gl.BindVertexArray(pb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, pb.vbo)

	// position (3), color (4), size (1)
	stride := int32(rendering.PointStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, gl.PtrOffset(7*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return pb
}

// upload replaces the buffer contents, growing it when needed
func (pb *pointBuffer) upload(data []float32) {
	pb.count = int32(len(data) / rendering.PointStride)
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, pb.vbo)
	if len(data) > pb.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
		pb.capacity = len(data)
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
}

func (pb *pointBuffer) draw(mode uint32) {
	if pb.count == 0 {
		return
	}
	gl.BindVertexArray(pb.vao)
	gl.DrawArrays(mode, 0, pb.count)
}

func (pb *pointBuffer) release() {
	if pb == nil {
		return
	}
	gl.DeleteVertexArrays(1, &pb.vao)
	gl.DeleteBuffers(1, &pb.vbo)
}

// bodyTexture uploads a body's generated texture on first use
func (r *Renderer) bodyTexture(b *core.Body) uint32 {
	if tex, ok := r.bodyTextures[b.ID]; ok {
		return tex
	}
	if b.Texture == nil {
		return r.whiteTexture
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	overlay.Upload(tex, b.Texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	r.bodyTextures[b.ID] = tex
	return tex
}

// ringMeshes builds the annuli for a ringed body on first use
func (r *Renderer) ringMeshes(b *core.Body) []*gpuMesh {
	if len(b.Rings) == 0 {
		return nil
	}
	if ms, ok := r.bodyRings[b.ID]; ok {
		return ms
	}
	ms := make([]*gpuMesh, len(b.Rings))
	for i, ring := range b.Rings {
		ms[i] = uploadMesh(core.AnnulusMesh(ring.Inner, ring.Outer, 96))
	}
	r.bodyRings[b.ID] = ms
	return ms
}

func solidTexture(red, green, blue uint8) uint32 {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = red, green, blue, 255
	var tex uint32
	gl.GenTextures(1, &tex)
	overlay.Upload(tex, img)
	return tex
}
