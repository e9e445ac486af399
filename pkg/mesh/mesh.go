// Package mesh converts between the csg polygon representation and flat
// triangle meshes suitable for rendering or export. Conversion handles
// vertex welding, index buffers and submesh-by-material splitting; the
// csg core itself never sees this representation.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Submesh is a contiguous index range sharing one material tag.
type Submesh struct {
	Material any    `json:"material"`
	Offset   int    `json:"offset"` // first index
	Count    int    `json:"count"`  // number of indices
}

// Mesh is a triangle mesh with flat arrays: vertices and normals hold 3
// floats per vertex, uvs 2 floats per vertex, indices 3 uint32s per
// triangle. Submeshes partition the index buffer by material.
type Mesh struct {
	Vertices  []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals   []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs       []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices   []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Submeshes []Submesh `json:"submeshes"`
	Name      string    `json:"name"` // which scene solid this came from
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

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(m.Vertices[i*3]),
		float64(m.Vertices[i*3+1]),
		float64(m.Vertices[i*3+2]),
	}
}

// Volume returns the enclosed volume via the signed tetrahedron sum.
// Meaningful only for closed, consistently wound meshes.
func (m *Mesh) Volume() float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		a := m.Position(int(m.Indices[t*3]))
		b := m.Position(int(m.Indices[t*3+1]))
		c := m.Position(int(m.Indices[t*3+2]))
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}

// Bounds returns the axis-aligned bounding box over all vertices.
func (m *Mesh) Bounds() (min, max [3]float64) {
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		if i == 0 {
			min = [3]float64{p.X(), p.Y(), p.Z()}
			max = min
			continue
		}
		for j := 0; j < 3; j++ {
			if p[j] < min[j] {
				min[j] = p[j]
			}
			if p[j] > max[j] {
				max[j] = p[j]
			}
		}
	}
	return min, max
}
