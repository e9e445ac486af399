package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// stlTriangle mirrors the 50-byte binary STL record layout.
type stlTriangle struct {
	Normal [3]float32
	Verts  [3][3]float32
	Attr   uint16
}

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then one 50-byte record per triangle. Normals are
// recomputed per face from winding, as STL consumers expect.
func WriteSTL(w io.Writer, m *Mesh) error {
	var header [80]byte
	copy(header[:], "burl mesh: "+m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("stl: writing triangle count: %w", err)
	}

	for t := 0; t < m.TriangleCount(); t++ {
		a := m.Position(int(m.Indices[t*3]))
		b := m.Position(int(m.Indices[t*3+1]))
		c := m.Position(int(m.Indices[t*3+2]))

		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}

		rec := stlTriangle{
			Normal: [3]float32{float32(n.X()), float32(n.Y()), float32(n.Z())},
			Verts: [3][3]float32{
				{float32(a.X()), float32(a.Y()), float32(a.Z())},
				{float32(b.X()), float32(b.Y()), float32(b.Z())},
				{float32(c.X()), float32(c.Y()), float32(c.Z())},
			},
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("stl: writing triangle %d: %w", t, err)
		}
	}
	return nil
}

// WriteOBJ writes the mesh as Wavefront OBJ with positions, normals and
// uvs. Submeshes become usemtl groups named after their material tag.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for i := 0; i < m.VertexCount(); i++ {
		fmt.Fprintf(bw, "v %g %g %g\n",
			m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2])
	}
	for i := 0; i*2+1 < len(m.UVs); i++ {
		fmt.Fprintf(bw, "vt %g %g\n", m.UVs[i*2], m.UVs[i*2+1])
	}
	for i := 0; i*3+2 < len(m.Normals); i++ {
		fmt.Fprintf(bw, "vn %g %g %g\n",
			m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
	}

	// Face statements only reference the vertex data that was written
	// above; a face indexing an absent vt or vn list is malformed OBJ.
	hasUVs := len(m.UVs) > 0
	hasNormals := len(m.Normals) > 0

	writeFaces := func(offset, count int) {
		for t := offset; t+2 < offset+count; t += 3 {
			// OBJ indices are 1-based.
			i0, i1, i2 := m.Indices[t]+1, m.Indices[t+1]+1, m.Indices[t+2]+1
			switch {
			case hasUVs && hasNormals:
				fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
					i0, i0, i0, i1, i1, i1, i2, i2, i2)
			case hasNormals:
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
					i0, i0, i1, i1, i2, i2)
			case hasUVs:
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
					i0, i0, i1, i1, i2, i2)
			default:
				fmt.Fprintf(bw, "f %d %d %d\n", i0, i1, i2)
			}
		}
	}

	if len(m.Submeshes) == 0 {
		writeFaces(0, len(m.Indices))
	} else {
		for _, sm := range m.Submeshes {
			fmt.Fprintf(bw, "usemtl %v\n", sm.Material)
			writeFaces(sm.Offset, sm.Count)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("obj: %w", err)
	}
	return nil
}
