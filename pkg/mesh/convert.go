package mesh

import (
	"fmt"

	"github.com/chazu/burl/pkg/csg"
	"github.com/go-gl/mathgl/mgl64"
)

// vertKey identifies a weldable vertex by its exact attribute values.
// Two vertices weld only when position, normal and uv0 all match
// bit-for-bit; boolean results share interpolated vertices by
// construction, so exact comparison is enough.
type vertKey struct {
	px, py, pz float64
	nx, ny, nz float64
	u, v       float64
}

// FromPolygons converts a polygon soup into an indexed triangle mesh.
// Vertices are welded, each polygon loop is fan-triangulated (loops are
// assumed convex, which holds for all fragments the csg core emits from
// convex inputs), and triangles are grouped into one submesh per
// distinct material tag, in order of first appearance.
func FromPolygons(name string, polys []*csg.Polygon) *Mesh {
	m := &Mesh{Name: name}
	welded := make(map[vertKey]uint32)

	// Group polygons by material, preserving first-appearance order.
	var order []any
	groups := make(map[any][]*csg.Polygon)
	for _, p := range polys {
		if len(p.Vertices) < 3 {
			continue // degenerate, below the split resolution
		}
		if _, ok := groups[p.Material]; !ok {
			order = append(order, p.Material)
		}
		groups[p.Material] = append(groups[p.Material], p)
	}

	emit := func(v csg.Vertex) uint32 {
		pos := v.Position()
		n := v.Normal()
		uv := v.UV0()
		key := vertKey{pos.X(), pos.Y(), pos.Z(), n.X(), n.Y(), n.Z(), uv.X(), uv.Y()}
		if idx, ok := welded[key]; ok {
			return idx
		}
		idx := uint32(m.VertexCount())
		m.Vertices = append(m.Vertices, float32(pos.X()), float32(pos.Y()), float32(pos.Z()))
		m.Normals = append(m.Normals, float32(n.X()), float32(n.Y()), float32(n.Z()))
		m.UVs = append(m.UVs, float32(uv.X()), float32(uv.Y()))
		welded[key] = idx
		return idx
	}

	for _, mat := range order {
		offset := len(m.Indices)
		for _, p := range groups[mat] {
			i0 := emit(p.Vertices[0])
			for i := 1; i+1 < len(p.Vertices); i++ {
				m.Indices = append(m.Indices, i0, emit(p.Vertices[i]), emit(p.Vertices[i+1]))
			}
		}
		m.Submeshes = append(m.Submeshes, Submesh{
			Material: mat,
			Offset:   offset,
			Count:    len(m.Indices) - offset,
		})
	}
	return m
}

// ToPolygons converts an indexed triangle mesh back into csg polygons,
// one triangle polygon per index triple. Each submesh contributes its
// material tag; triangles outside any submesh carry a nil tag. Indices
// out of range or degenerate (collinear) triangles are ingestion errors
// and fail fast.
func ToPolygons(m *Mesh) ([]*csg.Polygon, error) {
	materialFor := func(indexPos int) any {
		for _, sm := range m.Submeshes {
			if indexPos >= sm.Offset && indexPos < sm.Offset+sm.Count {
				return sm.Material
			}
		}
		return nil
	}

	nVerts := m.VertexCount()
	polys := make([]*csg.Polygon, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		verts := make([]csg.Vertex, 3)
		for j := 0; j < 3; j++ {
			idx := int(m.Indices[t*3+j])
			if idx >= nVerts {
				return nil, fmt.Errorf("mesh: triangle %d references vertex %d of %d", t, idx, nVerts)
			}
			v := csg.NewVertex(m.Position(idx))
			if len(m.Normals) >= (idx+1)*3 {
				v.SetNormal(mgl64.Vec3{
					float64(m.Normals[idx*3]),
					float64(m.Normals[idx*3+1]),
					float64(m.Normals[idx*3+2]),
				})
			}
			if len(m.UVs) >= (idx+1)*2 {
				v.SetUV0(mgl64.Vec2{
					float64(m.UVs[idx*2]),
					float64(m.UVs[idx*2+1]),
				})
			}
			verts[j] = v
		}
		p := csg.NewPolygon(verts, materialFor(t*3))
		if !p.Plane.Valid() {
			return nil, fmt.Errorf("mesh: triangle %d is degenerate (collinear vertices)", t)
		}
		polys = append(polys, p)
	}
	return polys, nil
}

// PolygonsFromLoops ingests raw vertex loops, one polygon per loop, all
// sharing one material tag. Loops with fewer than three vertices or a
// collinear leading triple are rejected here, before they can reach the
// tree algorithms.
func PolygonsFromLoops(loops [][]mgl64.Vec3, material any) ([]*csg.Polygon, error) {
	polys := make([]*csg.Polygon, 0, len(loops))
	for i, loop := range loops {
		if len(loop) < 3 {
			return nil, fmt.Errorf("mesh: loop %d has %d vertices, need at least 3", i, len(loop))
		}
		verts := make([]csg.Vertex, len(loop))
		for j, pos := range loop {
			verts[j] = csg.NewVertex(pos)
		}
		p := csg.NewPolygon(verts, material)
		if !p.Plane.Valid() {
			return nil, fmt.Errorf("mesh: loop %d has collinear leading vertices", i)
		}
		polys = append(polys, p)
	}
	return polys, nil
}
