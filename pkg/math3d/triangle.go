package math3d

// Triangle is three points. Vertex order defines the winding and therefore
// the direction of the normal.
type Triangle struct {
	P1, P2, P3 Vec3
}

// Tri creates a new Triangle.
func Tri(p1, p2, p3 Vec3) Triangle {
	return Triangle{p1, p2, p3}
}

// Vertices returns the three points in order.
func (t Triangle) Vertices() [3]Vec3 {
	return [3]Vec3{t.P1, t.P2, t.P3}
}

// Normal returns the unit normal (P2-P1) × (P3-P1). Counter-clockwise
// vertices, seen from the side the normal points to, face the viewer.
func (t Triangle) Normal() Vec3 {
	return t.P2.Sub(t.P1).Cross(t.P3.Sub(t.P1)).Normalize()
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() Vec3 {
	return t.P1.Add(t.P2).Add(t.P3).Scale(1.0 / 3)
}

// Transform maps every vertex through m.
func (t Triangle) Transform(m Mat4) Triangle {
	return Triangle{
		m.MulVec3(t.P1),
		m.MulVec3(t.P2),
		m.MulVec3(t.P3),
	}
}
