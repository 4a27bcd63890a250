package component

// Table describes the playable rectangle and its rim. Spawn origins are
// clamped to the half-extents minus Margin on both axes, so dice never start
// outside or inside a wall.
type Table struct {
	HalfX         float64
	HalfZ         float64
	Margin        float64
	WallHeight    float64
	WallThickness float64
}

// ClampSpawn pulls a horizontal point into the margin-reduced rectangle.
func (t Table) ClampSpawn(x, z float64) (float64, float64) {
	x = clamp(x, -t.HalfX+t.Margin, t.HalfX-t.Margin)
	z = clamp(z, -t.HalfZ+t.Margin, t.HalfZ-t.Margin)
	return x, z
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var TableComponent = NewComponent[Table]()
