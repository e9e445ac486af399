package csg

// Polygon is an ordered loop of at least three vertices sharing one
// material tag and one derived plane. Winding order is meaningful: it
// determines the plane's orientation. The plane is computed from the
// first three vertices at construction and never recomputed; callers
// must never reverse the vertex order without flipping the plane and
// every vertex with it (use Flip).
type Polygon struct {
	Vertices []Vertex
	Plane    Plane
	// Material is an opaque tag carried through splitting and boolean
	// combination unmodified. Fragments inherit their parent's tag.
	Material any
}

// NewPolygon builds a polygon over the given vertex loop. The loop must
// have at least three vertices with non-collinear first three points;
// shorter or degenerate loops are a caller error (enforced at ingestion,
// not here).
func NewPolygon(vertices []Vertex, material any) *Polygon {
	pl := PlaneFromPoints(
		vertices[0].Position(),
		vertices[1].Position(),
		vertices[2].Position(),
	)
	return &Polygon{Vertices: vertices, Plane: pl, Material: material}
}

// Flip reverses the polygon's winding, flips each vertex's directional
// attributes, and flips the plane, keeping all three consistent.
func (p *Polygon) Flip() {
	for i, j := 0, len(p.Vertices)-1; i < j; i, j = i+1, j-1 {
		p.Vertices[i], p.Vertices[j] = p.Vertices[j], p.Vertices[i]
	}
	for i := range p.Vertices {
		p.Vertices[i].Flip()
	}
	p.Plane.Flip()
}

// Flipped returns a reversed copy, leaving the receiver untouched. Tree
// mutation goes through Flipped rather than Flip so that polygons shared
// between a clone and its original are never changed in place.
func (p *Polygon) Flipped() *Polygon {
	out := &Polygon{
		Vertices: append([]Vertex(nil), p.Vertices...),
		Plane:    p.Plane,
		Material: p.Material,
	}
	out.Flip()
	return out
}
