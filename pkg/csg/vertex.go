// Package csg performs constructive solid geometry boolean operations
// (union, subtraction, intersection) on closed polygonal solids using a
// binary space partitioning tree. Inputs are never mutated; each boolean
// operation works on cloned trees and returns a new solid.
package csg

import "github.com/go-gl/mathgl/mgl64"

// VertexFlags records which vertex attributes were explicitly set.
// A flag is set by the corresponding attribute write and never cleared;
// unset attributes read as zero values.
type VertexFlags uint16

const (
	HasPosition VertexFlags = 1 << iota
	HasNormal
	HasTangent
	HasColor
	HasUV0
	HasUV1
	HasUV2
	HasUV3
)

// Vertex is one corner of a polygon. Every attribute besides position is
// optional. Vertices are value types: each is owned by exactly the polygon
// that lists it, created at mesh ingestion or at split-time interpolation,
// and never mutated except by Flip.
type Vertex struct {
	flags    VertexFlags
	position mgl64.Vec3
	normal   mgl64.Vec3
	tangent  mgl64.Vec4 // w carries handedness, typically ±1
	color    mgl64.Vec4
	uv0, uv1 mgl64.Vec2
	uv2, uv3 mgl64.Vec4
}

// NewVertex returns a vertex with only its position set.
func NewVertex(position mgl64.Vec3) Vertex {
	return Vertex{flags: HasPosition, position: position}
}

// Has reports whether all of the given attribute flags are set.
func (v Vertex) Has(f VertexFlags) bool { return v.flags&f == f }

// Flags returns the attribute presence bitmask.
func (v Vertex) Flags() VertexFlags { return v.flags }

func (v Vertex) Position() mgl64.Vec3 { return v.position }
func (v Vertex) Normal() mgl64.Vec3   { return v.normal }
func (v Vertex) Tangent() mgl64.Vec4  { return v.tangent }
func (v Vertex) Color() mgl64.Vec4    { return v.color }
func (v Vertex) UV0() mgl64.Vec2      { return v.uv0 }
func (v Vertex) UV1() mgl64.Vec2      { return v.uv1 }
func (v Vertex) UV2() mgl64.Vec4      { return v.uv2 }
func (v Vertex) UV3() mgl64.Vec4      { return v.uv3 }

func (v *Vertex) SetPosition(p mgl64.Vec3) { v.position = p; v.flags |= HasPosition }
func (v *Vertex) SetNormal(n mgl64.Vec3)   { v.normal = n; v.flags |= HasNormal }
func (v *Vertex) SetTangent(t mgl64.Vec4)  { v.tangent = t; v.flags |= HasTangent }
func (v *Vertex) SetColor(c mgl64.Vec4)    { v.color = c; v.flags |= HasColor }
func (v *Vertex) SetUV0(uv mgl64.Vec2)     { v.uv0 = uv; v.flags |= HasUV0 }
func (v *Vertex) SetUV1(uv mgl64.Vec2)     { v.uv1 = uv; v.flags |= HasUV1 }
func (v *Vertex) SetUV2(uv mgl64.Vec4)     { v.uv2 = uv; v.flags |= HasUV2 }
func (v *Vertex) SetUV3(uv mgl64.Vec4)     { v.uv3 = uv; v.flags |= HasUV3 }

// Flip negates the directional attributes (normal and tangent) when
// present. Positions, colors and UVs are untouched.
func (v *Vertex) Flip() {
	if v.Has(HasNormal) {
		v.normal = v.normal.Mul(-1)
	}
	if v.Has(HasTangent) {
		v.tangent = v.tangent.Mul(-1)
	}
}

// Interpolated returns the vertex at parameter t on the segment between
// v and o. Attributes present in either endpoint are linearly
// interpolated; the absent side contributes its zero value.
func (v Vertex) Interpolated(o Vertex, t float64) Vertex {
	flags := v.flags | o.flags
	out := Vertex{flags: flags}
	if flags&HasPosition != 0 {
		out.position = lerp3(v.position, o.position, t)
	}
	if flags&HasNormal != 0 {
		out.normal = lerp3(v.normal, o.normal, t)
	}
	if flags&HasTangent != 0 {
		out.tangent = lerp4(v.tangent, o.tangent, t)
	}
	if flags&HasColor != 0 {
		out.color = lerp4(v.color, o.color, t)
	}
	if flags&HasUV0 != 0 {
		out.uv0 = lerp2(v.uv0, o.uv0, t)
	}
	if flags&HasUV1 != 0 {
		out.uv1 = lerp2(v.uv1, o.uv1, t)
	}
	if flags&HasUV2 != 0 {
		out.uv2 = lerp4(v.uv2, o.uv2, t)
	}
	if flags&HasUV3 != 0 {
		out.uv3 = lerp4(v.uv3, o.uv3, t)
	}
	return out
}

func lerp2(a, b mgl64.Vec2, t float64) mgl64.Vec2 { return a.Add(b.Sub(a).Mul(t)) }
func lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 { return a.Add(b.Sub(a).Mul(t)) }
func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 { return a.Add(b.Sub(a).Mul(t)) }
