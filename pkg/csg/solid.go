package csg

import "github.com/go-gl/mathgl/mgl64"

// Solid is a closed polygonal solid, the caller-facing handle for
// boolean operations. The polygon list is treated as immutable: boolean
// operations and transforms return new solids and leave their operands
// intact.
type Solid struct {
	polygons []*Polygon
}

// NewSolid wraps a polygon list as a solid. The list is not copied;
// callers hand over ownership.
func NewSolid(polygons []*Polygon) *Solid {
	return &Solid{polygons: polygons}
}

// Polygons returns the solid's polygon list. The returned slice is a
// copy; the polygons themselves are shared and must not be mutated.
func (s *Solid) Polygons() []*Polygon {
	return append([]*Polygon(nil), s.polygons...)
}

// Union returns the solid covering the region inside s or o.
func (s *Solid) Union(o *Solid) *Solid {
	return &Solid{polygons: Union(NewNode(s.polygons), NewNode(o.polygons)).AllPolygons()}
}

// Subtract returns the solid covering the region inside s but not o.
func (s *Solid) Subtract(o *Solid) *Solid {
	return &Solid{polygons: Subtract(NewNode(s.polygons), NewNode(o.polygons)).AllPolygons()}
}

// Intersect returns the solid covering the region inside both s and o.
func (s *Solid) Intersect(o *Solid) *Solid {
	return &Solid{polygons: Intersect(NewNode(s.polygons), NewNode(o.polygons)).AllPolygons()}
}

// Transformed returns a new solid with every vertex mapped through fn.
// Polygon planes are re-derived from the transformed vertices.
func (s *Solid) Transformed(fn func(Vertex) Vertex) *Solid {
	out := make([]*Polygon, len(s.polygons))
	for i, p := range s.polygons {
		verts := make([]Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = fn(v)
		}
		out[i] = NewPolygon(verts, p.Material)
	}
	return &Solid{polygons: out}
}

// Volume returns the enclosed volume of the solid, computed as the
// signed tetrahedron sum over fan-triangulated polygons. The result is
// meaningful only for closed, consistently wound surfaces.
func (s *Solid) Volume() float64 {
	var sum float64
	for _, p := range s.polygons {
		if len(p.Vertices) < 3 {
			continue
		}
		a := p.Vertices[0].Position()
		for i := 1; i+1 < len(p.Vertices); i++ {
			b := p.Vertices[i].Position()
			c := p.Vertices[i+1].Position()
			sum += a.Dot(b.Cross(c))
		}
	}
	return sum / 6
}

// Bounds returns the axis-aligned bounding box over all vertices. An
// empty solid yields two zero vectors.
func (s *Solid) Bounds() (min, max mgl64.Vec3) {
	first := true
	for _, p := range s.polygons {
		for _, v := range p.Vertices {
			pos := v.Position()
			if first {
				min, max = pos, pos
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				if pos[i] < min[i] {
					min[i] = pos[i]
				}
				if pos[i] > max[i] {
					max[i] = pos[i]
				}
			}
		}
	}
	return min, max
}
