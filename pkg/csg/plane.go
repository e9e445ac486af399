package csg

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the tolerance below which a signed point-plane distance is
// treated as zero. It is the kernel's only numeric tuning surface: large
// enough to absorb floating-point noise, small enough to keep thin
// slivers non-degenerate.
var Epsilon = 1e-5

// Classification of a point or polygon relative to a plane. The values
// are bit flags: ORing per-vertex results yields the polygon-level
// classification, with Front|Back = Spanning.
type Classification int

const (
	Coplanar Classification = 0
	Front    Classification = 1
	Back     Classification = 2
	Spanning Classification = 3
)

// Plane is an infinite oriented plane: a unit normal plus the signed
// distance W of the plane from the origin along that normal. The zero
// Plane is invalid and serves as the "no partition yet" sentinel in
// empty tree nodes.
type Plane struct {
	Normal mgl64.Vec3
	W      float64
}

// PlaneFromPoints derives the plane through three non-collinear points,
// oriented by their winding. Collinear points yield an invalid plane.
func PlaneFromPoints(a, b, c mgl64.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return Plane{}
	}
	n = n.Normalize()
	return Plane{Normal: n, W: n.Dot(a)}
}

// Valid reports whether the plane has a usable (non-zero) normal.
func (p Plane) Valid() bool {
	return p.Normal != (mgl64.Vec3{})
}

// Flip reverses the plane's orientation.
func (p *Plane) Flip() {
	p.Normal = p.Normal.Mul(-1)
	p.W = -p.W
}

// Classify buckets a point by its signed distance from the plane.
func (p Plane) Classify(point mgl64.Vec3) Classification {
	d := p.Normal.Dot(point) - p.W
	switch {
	case d < -Epsilon:
		return Back
	case d > Epsilon:
		return Front
	default:
		return Coplanar
	}
}

// Split classifies poly against the plane and routes it to one of the
// four output lists. Coplanar polygons go to coplanarFront or
// coplanarBack depending on whether their own normal agrees with the
// plane's; strictly front/back polygons pass through unmodified;
// spanning polygons are cut into a front and a back fragment with a
// shared interpolated vertex at each true edge crossing. Fragments left
// with fewer than three vertices are degenerate slivers below the
// epsilon resolution and are dropped.
func (p Plane) Split(poly *Polygon, coplanarFront, coplanarBack, front, back *[]*Polygon) {
	polyType := Coplanar
	types := make([]Classification, len(poly.Vertices))
	for i, v := range poly.Vertices {
		t := p.Classify(v.Position())
		types[i] = t
		polyType |= t
	}

	switch polyType {
	case Coplanar:
		if p.Normal.Dot(poly.Plane.Normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case Front:
		*front = append(*front, poly)
	case Back:
		*back = append(*back, poly)
	case Spanning:
		var f, b []Vertex
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.Vertices[i], poly.Vertices[j]
			if ti != Back {
				f = append(f, vi)
			}
			if ti != Front {
				b = append(b, vi)
			}
			if ti|tj == Spanning {
				// The endpoints lie on strictly opposite sides, so the
				// denominator cannot be zero.
				dir := vj.Position().Sub(vi.Position())
				t := (p.W - p.Normal.Dot(vi.Position())) / p.Normal.Dot(dir)
				mid := vi.Interpolated(vj, t)
				f = append(f, mid)
				b = append(b, mid)
			}
		}
		if len(f) >= 3 {
			*front = append(*front, NewPolygon(f, poly.Material))
		}
		if len(b) >= 3 {
			*back = append(*back, NewPolygon(b, poly.Material))
		}
	}
}
