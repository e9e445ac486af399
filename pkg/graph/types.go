package graph

// Vec3 is a plain 3-component vector used for dimensions, translations
// and rotations in graph payloads. Kernel math happens elsewhere; this
// type exists so the graph serializes cleanly.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
