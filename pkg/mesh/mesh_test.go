package mesh

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/chazu/burl/pkg/csg"
	"github.com/go-gl/mathgl/mgl64"
)

const volumeTol = 1e-6

// cubeLoops returns the six quad loops of an axis-aligned cube with min
// corner at offset, wound CCW from outside (corner bit 0 = x, 1 = y, 2 = z).
func cubeLoops(offset mgl64.Vec3, size float64) [][]mgl64.Vec3 {
	faces := [][4]int{
		{0, 4, 6, 2}, {1, 3, 7, 5},
		{0, 1, 5, 4}, {2, 6, 7, 3},
		{0, 2, 3, 1}, {4, 5, 7, 6},
	}
	loops := make([][]mgl64.Vec3, 0, 6)
	for _, face := range faces {
		loop := make([]mgl64.Vec3, 4)
		for i, ci := range face {
			loop[i] = mgl64.Vec3{
				float64(ci & 1),
				float64(ci >> 1 & 1),
				float64(ci >> 2 & 1),
			}.Mul(size).Add(offset)
		}
		loops = append(loops, loop)
	}
	return loops
}

func cubePolys(t *testing.T, material any) []*csg.Polygon {
	t.Helper()
	polys, err := PolygonsFromLoops(cubeLoops(mgl64.Vec3{}, 1), material)
	if err != nil {
		t.Fatalf("PolygonsFromLoops() error = %v", err)
	}
	return polys
}

func TestFromPolygonsCube(t *testing.T) {
	m := FromPolygons("cube", cubePolys(t, "steel"))

	// No normals or uvs were set, so welding collapses the cube to its
	// eight corners.
	if got := m.VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d, want 8", got)
	}
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
	if got := m.Volume(); math.Abs(got-1) > volumeTol {
		t.Errorf("Volume() = %v, want 1", got)
	}
	if len(m.Submeshes) != 1 || m.Submeshes[0].Material != "steel" {
		t.Errorf("Submeshes = %+v, want one steel submesh", m.Submeshes)
	}
	if m.Submeshes[0].Offset != 0 || m.Submeshes[0].Count != len(m.Indices) {
		t.Errorf("submesh range %d+%d does not cover the index buffer",
			m.Submeshes[0].Offset, m.Submeshes[0].Count)
	}
}

func TestFromPolygonsPerFaceNormalsPreventWelding(t *testing.T) {
	loops := cubeLoops(mgl64.Vec3{}, 1)
	polys := make([]*csg.Polygon, 0, 6)
	for _, loop := range loops {
		verts := make([]csg.Vertex, len(loop))
		plane := csg.PlaneFromPoints(loop[0], loop[1], loop[2])
		for i, pos := range loop {
			v := csg.NewVertex(pos)
			v.SetNormal(plane.Normal)
			verts[i] = v
		}
		polys = append(polys, csg.NewPolygon(verts, nil))
	}

	m := FromPolygons("cube", polys)
	// Same corner position with different face normals must stay split.
	if got := m.VertexCount(); got != 24 {
		t.Errorf("VertexCount() = %d, want 24 (4 per face)", got)
	}
}

func TestFromPolygonsSubmeshOrder(t *testing.T) {
	a := cubePolys(t, "oak")
	b, err := PolygonsFromLoops(cubeLoops(mgl64.Vec3{2, 0, 0}, 1), "pine")
	if err != nil {
		t.Fatal(err)
	}

	m := FromPolygons("pair", append(a, b...))
	if len(m.Submeshes) != 2 {
		t.Fatalf("Submeshes = %d, want 2", len(m.Submeshes))
	}
	if m.Submeshes[0].Material != "oak" || m.Submeshes[1].Material != "pine" {
		t.Errorf("submesh order = %v, %v; want oak, pine",
			m.Submeshes[0].Material, m.Submeshes[1].Material)
	}
	if m.Submeshes[1].Offset != m.Submeshes[0].Count {
		t.Errorf("second submesh offset %d, want %d",
			m.Submeshes[1].Offset, m.Submeshes[0].Count)
	}
}

func TestToPolygonsRoundTrip(t *testing.T) {
	m := FromPolygons("cube", cubePolys(t, "steel"))
	polys, err := ToPolygons(m)
	if err != nil {
		t.Fatalf("ToPolygons() error = %v", err)
	}
	if len(polys) != 12 {
		t.Fatalf("ToPolygons() = %d polygons, want 12", len(polys))
	}
	for i, p := range polys {
		if p.Material != "steel" {
			t.Fatalf("polygon %d material = %v, want steel", i, p.Material)
		}
	}
	if v := csg.NewSolid(polys).Volume(); math.Abs(v-1) > volumeTol {
		t.Errorf("round-tripped volume = %v, want 1", v)
	}
}

func TestToPolygonsRejectsBadMeshes(t *testing.T) {
	tests := []struct {
		name string
		m    *Mesh
	}{
		{
			"index out of range",
			&Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Indices:  []uint32{0, 1, 9},
			},
		},
		{
			"collinear triangle",
			&Mesh{
				Vertices: []float32{0, 0, 0, 1, 1, 1, 2, 2, 2},
				Indices:  []uint32{0, 1, 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToPolygons(tt.m); err == nil {
				t.Error("ToPolygons() accepted an invalid mesh")
			}
		})
	}
}

func TestPolygonsFromLoopsRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name  string
		loops [][]mgl64.Vec3
	}{
		{"two vertices", [][]mgl64.Vec3{{{0, 0, 0}, {1, 0, 0}}}},
		{"collinear", [][]mgl64.Vec3{{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PolygonsFromLoops(tt.loops, nil); err == nil {
				t.Error("PolygonsFromLoops() accepted degenerate input")
			}
		})
	}
}

func TestWriteSTL(t *testing.T) {
	m := FromPolygons("cube", cubePolys(t, nil))

	var buf bytes.Buffer
	if err := WriteSTL(&buf, m); err != nil {
		t.Fatalf("WriteSTL() error = %v", err)
	}

	wantLen := 84 + 50*m.TriangleCount()
	if buf.Len() != wantLen {
		t.Errorf("STL length = %d, want %d", buf.Len(), wantLen)
	}
	count := binary.LittleEndian.Uint32(buf.Bytes()[80:84])
	if int(count) != m.TriangleCount() {
		t.Errorf("STL triangle count = %d, want %d", count, m.TriangleCount())
	}
}

func TestWriteOBJ(t *testing.T) {
	m := FromPolygons("cube", cubePolys(t, "steel"))

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "o cube\n") {
		t.Error("OBJ output missing object name header")
	}
	if got := strings.Count(out, "\nv "); got != m.VertexCount() {
		t.Errorf("OBJ vertex lines = %d, want %d", got, m.VertexCount())
	}
	if !strings.Contains(out, "usemtl steel") {
		t.Error("OBJ output missing usemtl for the steel submesh")
	}
	if got := strings.Count(out, "f "); got != m.TriangleCount() {
		t.Errorf("OBJ face lines = %d, want %d", got, m.TriangleCount())
	}
}

func TestWriteOBJWithoutUVs(t *testing.T) {
	// Marching-cubes meshes carry positions and normals but no uv
	// channel; faces must not reference vt data that was never written.
	m := &Mesh{
		Name:     "tri",
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "vt ") {
		t.Error("OBJ output has vt lines for a mesh with no uvs")
	}
	if !strings.Contains(out, "f 1//1 2//2 3//3\n") {
		t.Errorf("OBJ face should use v//vn form, got:\n%s", out)
	}
}

func TestWriteOBJPositionsOnly(t *testing.T) {
	m := &Mesh{
		Name:     "tri",
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "vn ") || strings.Contains(out, "vt ") {
		t.Error("OBJ output has vn/vt lines for a position-only mesh")
	}
	if !strings.Contains(out, "f 1 2 3\n") {
		t.Errorf("OBJ face should use bare vertex indices, got:\n%s", out)
	}
}

func TestMeshBounds(t *testing.T) {
	m := FromPolygons("cube", cubePolys(t, nil))
	min, max := m.Bounds()
	if min != [3]float64{0, 0, 0} || max != [3]float64{1, 1, 1} {
		t.Errorf("Bounds() = %v..%v, want (0,0,0)..(1,1,1)", min, max)
	}
}
