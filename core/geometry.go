package core

import (
	"math"
)

// Mesh is interleaved vertex data (position xyz, normal xyz, uv) plus triangle indices
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// Stride is the number of floats per vertex in a Mesh
const Stride = 8

// VertexCount returns how many vertices the mesh holds
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / Stride
}

// SphereMesh builds a UV sphere. Planets, glow shells and the sun all share it,
// scaled per draw.
func SphereMesh(radius float32, segments, rings int) Mesh {
	if segments <= 0 {
		segments = 64
	}
	if rings <= 0 {
		rings = 32
	}

	m := Mesh{
		Vertices: make([]float32, 0, (rings+1)*(segments+1)*Stride),
		Indices:  make([]uint32, 0, rings*segments*6),
	}

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta, cosTheta := math.Sincos(theta)

		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2 * math.Pi / float64(segments)
			sinPhi, cosPhi := math.Sincos(phi)

			x := float32(cosPhi * sinTheta)
			y := float32(cosTheta)
			z := float32(sinPhi * sinTheta)

			u := float32(seg) / float32(segments)
			v := float32(ring) / float32(rings)
			m.Vertices = append(m.Vertices, x*radius, y*radius, z*radius, x, y, z, u, v)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments) + 1
			m.Indices = append(m.Indices, current, next, current+1, current+1, next, next+1)
		}
	}
	return m
}

// AnnulusMesh builds a flat ring in the XZ plane between inner and outer radius.
// Normals point up; u runs around the ring, v runs from inner to outer edge.
func AnnulusMesh(inner, outer float32, segments int) Mesh {
	if segments < 3 {
		segments = 64
	}
	m := Mesh{
		Vertices: make([]float32, 0, (segments+1)*2*Stride),
		Indices:  make([]uint32, 0, segments*6),
	}
	for seg := 0; seg <= segments; seg++ {
		phi := float64(seg) * 2 * math.Pi / float64(segments)
		sin, cos := math.Sincos(phi)
		c, s := float32(cos), float32(sin)
		u := float32(seg) / float32(segments)
		m.Vertices = append(m.Vertices,
			c*inner, 0, s*inner, 0, 1, 0, u, 0,
			c*outer, 0, s*outer, 0, 1, 0, u, 1,
		)
	}
	for seg := 0; seg < segments; seg++ {
		i := uint32(seg * 2)
		m.Indices = append(m.Indices, i, i+1, i+2, i+2, i+1, i+3)
	}
	return m
}
