// Package bsp implements the kernel.Kernel interface on the native
// csg boolean core. Solids are closed polygon meshes and booleans run
// through BSP tree clipping, so results stay exact polygon soups
// rather than sampled surfaces.
package bsp

import (
	"math"

	"github.com/chazu/burl/pkg/csg"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultSegments is used when a caller passes a non-positive segment
// count for a curved primitive.
const defaultSegments = 16

// bspSolid wraps a csg.Solid to implement kernel.Solid.
type bspSolid struct {
	s *csg.Solid
}

// BoundingBox returns the axis-aligned bounding box.
func (s *bspSolid) BoundingBox() (min, max [3]float64) {
	lo, hi := s.s.Bounds()
	return [3]float64{lo.X(), lo.Y(), lo.Z()}, [3]float64{hi.X(), hi.Y(), hi.Z()}
}

// Kernel implements kernel.Kernel using the csg polygon core.
type Kernel struct{}

// New returns a new bsp Kernel.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying csg.Solid from a kernel.Solid.
func unwrap(s kernel.Solid) *csg.Solid {
	return s.(*bspSolid).s
}

// wrap creates a kernel.Solid from a csg.Solid.
func wrap(s *csg.Solid) kernel.Solid {
	return &bspSolid{s: s}
}

// vertex builds a position+normal vertex.
func vertex(pos, normal mgl64.Vec3) csg.Vertex {
	v := csg.NewVertex(pos)
	v.SetNormal(normal)
	return v
}

// quad builds one flat-shaded polygon from a CCW loop.
func quad(normal mgl64.Vec3, pts ...mgl64.Vec3) *csg.Polygon {
	verts := make([]csg.Vertex, len(pts))
	for i, p := range pts {
		verts[i] = vertex(p, normal)
	}
	return csg.NewPolygon(verts, nil)
}

// Box creates a box with the given dimensions. The resulting solid has
// its minimum corner at the origin (0,0,0) so that placement
// translations work intuitively.
func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	var (
		p000 = mgl64.Vec3{0, 0, 0}
		p100 = mgl64.Vec3{x, 0, 0}
		p010 = mgl64.Vec3{0, y, 0}
		p110 = mgl64.Vec3{x, y, 0}
		p001 = mgl64.Vec3{0, 0, z}
		p101 = mgl64.Vec3{x, 0, z}
		p011 = mgl64.Vec3{0, y, z}
		p111 = mgl64.Vec3{x, y, z}
	)
	polys := []*csg.Polygon{
		quad(mgl64.Vec3{-1, 0, 0}, p000, p001, p011, p010),
		quad(mgl64.Vec3{1, 0, 0}, p100, p110, p111, p101),
		quad(mgl64.Vec3{0, -1, 0}, p000, p100, p101, p001),
		quad(mgl64.Vec3{0, 1, 0}, p010, p011, p111, p110),
		quad(mgl64.Vec3{0, 0, -1}, p000, p010, p110, p100),
		quad(mgl64.Vec3{0, 0, 1}, p001, p101, p111, p011),
	}
	return wrap(csg.NewSolid(polys))
}

// Cylinder creates a cylinder of the given height and radius, standing
// on the xy plane with its axis along +z. Side walls get smooth radial
// normals; caps are flat.
func (k *Kernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments < 3 {
		segments = defaultSegments
	}
	bottomC := vertex(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})
	topC := vertex(mgl64.Vec3{0, 0, height}, mgl64.Vec3{0, 0, 1})

	rim := func(i int) (pos mgl64.Vec3, out mgl64.Vec3) {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out = mgl64.Vec3{math.Cos(a), math.Sin(a), 0}
		return out.Mul(radius), out
	}

	polys := make([]*csg.Polygon, 0, segments*3)
	for i := 0; i < segments; i++ {
		p0, n0 := rim(i)
		p1, n1 := rim(i + 1)
		up := mgl64.Vec3{0, 0, height}

		// Bottom cap wound to face -z, top cap to face +z.
		polys = append(polys,
			csg.NewPolygon([]csg.Vertex{
				bottomC,
				vertex(p1, mgl64.Vec3{0, 0, -1}),
				vertex(p0, mgl64.Vec3{0, 0, -1}),
			}, nil),
			csg.NewPolygon([]csg.Vertex{
				vertex(p0, n0),
				vertex(p1, n1),
				vertex(p1.Add(up), n1),
				vertex(p0.Add(up), n0),
			}, nil),
			csg.NewPolygon([]csg.Vertex{
				topC,
				vertex(p0.Add(up), mgl64.Vec3{0, 0, 1}),
				vertex(p1.Add(up), mgl64.Vec3{0, 0, 1}),
			}, nil),
		)
	}
	return wrap(csg.NewSolid(polys))
}

// Sphere creates a sphere of the given radius centered at the origin,
// tessellated as segments longitude slices by segments/2 latitude
// stacks, with smooth normals.
func (k *Kernel) Sphere(radius float64, segments int) kernel.Solid {
	if segments < 4 {
		segments = defaultSegments
	}
	stacks := segments / 2

	at := func(slice, stack int) csg.Vertex {
		theta := 2 * math.Pi * float64(slice) / float64(segments)
		phi := math.Pi * float64(stack) / float64(stacks)
		n := mgl64.Vec3{
			math.Cos(theta) * math.Sin(phi),
			math.Sin(theta) * math.Sin(phi),
			math.Cos(phi),
		}
		return vertex(n.Mul(radius), n)
	}

	var polys []*csg.Polygon
	for slice := 0; slice < segments; slice++ {
		for stack := 0; stack < stacks; stack++ {
			var verts []csg.Vertex
			verts = append(verts, at(slice, stack))
			if stack > 0 {
				verts = append(verts, at(slice+1, stack))
			}
			if stack < stacks-1 {
				verts = append(verts, at(slice+1, stack+1))
			}
			verts = append(verts, at(slice, stack+1))
			polys = append(polys, csg.NewPolygon(verts, nil))
		}
	}
	return wrap(csg.NewSolid(polys))
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Union(unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Subtract(unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(unwrap(a).Intersect(unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	d := mgl64.Vec3{x, y, z}
	return wrap(unwrap(s).Transformed(func(v csg.Vertex) csg.Vertex {
		v.SetPosition(v.Position().Add(d))
		return v
	}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in X then Y then Z order about the origin.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := mgl64.Rotate3DZ(mgl64.DegToRad(z)).
		Mul3(mgl64.Rotate3DY(mgl64.DegToRad(y))).
		Mul3(mgl64.Rotate3DX(mgl64.DegToRad(x)))

	return wrap(unwrap(s).Transformed(func(v csg.Vertex) csg.Vertex {
		v.SetPosition(m.Mul3x1(v.Position()))
		if v.Has(csg.HasNormal) {
			v.SetNormal(m.Mul3x1(v.Normal()))
		}
		return v
	}))
}

// ToMesh converts a solid to an indexed triangle mesh.
func (k *Kernel) ToMesh(s kernel.Solid) (*mesh.Mesh, error) {
	return mesh.FromPolygons("", unwrap(s).Polygons()), nil
}
