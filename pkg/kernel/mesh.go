package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which worksheet entry or shape this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

func (m *Mesh) vertex(i uint32) [3]float64 {
	return [3]float64{
		float64(m.Vertices[3*i]),
		float64(m.Vertices[3*i+1]),
		float64(m.Vertices[3*i+2]),
	}
}

func (m *Mesh) triangle(t int) (a, b, c [3]float64) {
	return m.vertex(m.Indices[3*t]), m.vertex(m.Indices[3*t+1]), m.vertex(m.Indices[3*t+2])
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Volume returns the enclosed volume of a closed mesh, summing signed
// tetrahedra against the origin. The result is independent of winding.
func (m *Mesh) Volume() float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.triangle(t)
		sum += dot(a, cross(b, c))
	}
	return math.Abs(sum) / 6
}

// SurfaceArea returns the total area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.triangle(t)
		n := cross(sub(b, a), sub(c, a))
		sum += math.Sqrt(dot(n, n))
	}
	return sum / 2
}

// Bounds returns the axis-aligned bounds of the mesh vertices.
// An empty mesh returns zero bounds.
func (m *Mesh) Bounds() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	min = m.vertex(0)
	max = min
	for i := uint32(1); i < uint32(m.VertexCount()); i++ {
		v := m.vertex(i)
		for j := 0; j < 3; j++ {
			min[j] = math.Min(min[j], v[j])
			max[j] = math.Max(max[j], v[j])
		}
	}
	return min, max
}
