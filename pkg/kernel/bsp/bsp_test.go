package bsp

import (
	"math"
	"testing"

	"github.com/chazu/burl/pkg/kernel"
)

const volumeTol = 1e-6

func volume(t *testing.T, k kernel.Kernel, s kernel.Solid) float64 {
	t.Helper()
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	return m.Volume()
}

func TestBoxBoundingBoxAndVolume(t *testing.T) {
	k := New()
	s := k.Box(2, 3, 4)

	min, max := s.BoundingBox()
	if min != [3]float64{0, 0, 0} {
		t.Errorf("Box min = %v, want the origin", min)
	}
	if max != [3]float64{2, 3, 4} {
		t.Errorf("Box max = %v, want [2 3 4]", max)
	}
	if v := volume(t, k, s); math.Abs(v-24) > volumeTol {
		t.Errorf("Box volume = %v, want 24", v)
	}
}

func TestCylinderApproximatesPiR2H(t *testing.T) {
	k := New()
	s := k.Cylinder(2, 1, 64)

	min, max := s.BoundingBox()
	if math.Abs(min[2]) > volumeTol || math.Abs(max[2]-2) > volumeTol {
		t.Errorf("Cylinder z extent = %v..%v, want 0..2", min[2], max[2])
	}

	// Inscribed polygon volume: n/2 * sin(2*pi/n) * r^2 * h.
	want := 64.0 / 2 * math.Sin(2*math.Pi/64) * 2
	if v := volume(t, k, s); math.Abs(v-want) > volumeTol {
		t.Errorf("Cylinder volume = %v, want %v", v, want)
	}
}

func TestSphereVolumeConverges(t *testing.T) {
	k := New()

	v16 := volume(t, k, k.Sphere(1, 16))
	v32 := volume(t, k, k.Sphere(1, 32))
	exact := 4.0 / 3 * math.Pi

	if v16 >= exact || v32 >= exact {
		t.Errorf("inscribed tessellations must stay below 4/3*pi: %v, %v", v16, v32)
	}
	if math.Abs(v32-exact) >= math.Abs(v16-exact) {
		t.Errorf("refining segments did not converge: |%v - exact| >= |%v - exact|", v32, v16)
	}
	if math.Abs(v32-exact) > 0.15 {
		t.Errorf("Sphere(1, 32) volume = %v, too far from %v", v32, exact)
	}
}

func TestBooleanVolumes(t *testing.T) {
	k := New()
	a := k.Box(1, 1, 1)
	b := k.Translate(k.Box(1, 1, 1), 0.5, 0.5, 0.5)

	tests := []struct {
		name string
		got  kernel.Solid
		want float64
	}{
		{"union", k.Union(a, b), 1.875},
		{"difference", k.Difference(a, b), 0.875},
		{"intersection", k.Intersection(a, b), 0.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := volume(t, k, tt.got); math.Abs(v-tt.want) > volumeTol {
				t.Errorf("volume = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestTranslateMovesBounds(t *testing.T) {
	k := New()
	s := k.Translate(k.Box(1, 1, 1), 10, -2, 3)

	min, max := s.BoundingBox()
	if min != [3]float64{10, -2, 3} || max != [3]float64{11, -1, 4} {
		t.Errorf("bounds = %v..%v, want (10,-2,3)..(11,-1,4)", min, max)
	}
}

func TestRotatePreservesVolume(t *testing.T) {
	k := New()
	s := k.Rotate(k.Box(1, 2, 3), 30, 45, 60)

	if v := volume(t, k, s); math.Abs(v-6) > 1e-4 {
		t.Errorf("rotated box volume = %v, want 6", v)
	}
}

func TestRotateQuarterTurnZ(t *testing.T) {
	k := New()
	// A quarter turn around z maps the box's +x extent onto +y.
	s := k.Rotate(k.Box(2, 1, 1), 0, 0, 90)

	min, max := s.BoundingBox()
	if math.Abs(min[0]-(-1)) > 1e-9 || math.Abs(max[1]-2) > 1e-9 {
		t.Errorf("bounds = %v..%v, want x to reach -1 and y to reach 2", min, max)
	}
}

func TestToMeshClosedAndIndexed(t *testing.T) {
	k := New()
	m, err := k.ToMesh(k.Box(1, 1, 1))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("box TriangleCount() = %d, want 12", m.TriangleCount())
	}
	// Per-face normals keep the corners split four ways.
	if m.VertexCount() != 24 {
		t.Errorf("box VertexCount() = %d, want 24", m.VertexCount())
	}
}
