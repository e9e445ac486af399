package csg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const floatTol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTol
}

// cubeFaces enumerates an axis-aligned cube's six quads. Each entry is
// four corner indices (bit 0 = x, bit 1 = y, bit 2 = z) wound CCW as
// seen from outside, plus the outward normal.
var cubeFaces = []struct {
	idx    [4]int
	normal mgl64.Vec3
}{
	{[4]int{0, 4, 6, 2}, mgl64.Vec3{-1, 0, 0}},
	{[4]int{1, 3, 7, 5}, mgl64.Vec3{1, 0, 0}},
	{[4]int{0, 1, 5, 4}, mgl64.Vec3{0, -1, 0}},
	{[4]int{2, 6, 7, 3}, mgl64.Vec3{0, 1, 0}},
	{[4]int{0, 2, 3, 1}, mgl64.Vec3{0, 0, -1}},
	{[4]int{4, 5, 7, 6}, mgl64.Vec3{0, 0, 1}},
}

// cubePolygons builds a unit-windable cube with min corner at origin+offset
// and the given edge length. Every vertex carries position and normal.
func cubePolygons(offset mgl64.Vec3, size float64) []*Polygon {
	polys := make([]*Polygon, 0, 6)
	for _, face := range cubeFaces {
		verts := make([]Vertex, 4)
		for i, ci := range face.idx {
			pos := mgl64.Vec3{
				float64(ci & 1),
				float64(ci >> 1 & 1),
				float64(ci >> 2 & 1),
			}.Mul(size).Add(offset)
			v := NewVertex(pos)
			v.SetNormal(face.normal)
			verts[i] = v
		}
		polys = append(polys, NewPolygon(verts, "cube"))
	}
	return polys
}

func cubeSolid(offset mgl64.Vec3, size float64) *Solid {
	return NewSolid(cubePolygons(offset, size))
}

// snapshotPositions deep-copies every vertex position for later
// comparison, polygon by polygon.
func snapshotPositions(polys []*Polygon) [][]mgl64.Vec3 {
	out := make([][]mgl64.Vec3, len(polys))
	for i, p := range polys {
		out[i] = make([]mgl64.Vec3, len(p.Vertices))
		for j, v := range p.Vertices {
			out[i][j] = v.Position()
		}
	}
	return out
}

func positionsEqual(a, b [][]mgl64.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if !a[i][j].ApproxEqualThreshold(b[i][j], floatTol) {
				return false
			}
		}
	}
	return true
}
