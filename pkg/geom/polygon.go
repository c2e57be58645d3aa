package geom

// SignedArea returns the signed shoelace area of the closed polygon. The sign
// depends on the winding; zero means the polygon is degenerate.
func SignedArea(vertices []Point) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := vertices[i]
		q := vertices[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// PolygonCentroid returns the area-weighted centroid of the closed polygon.
// Either winding gives the same result. Degenerate input (fewer than three
// vertices or zero signed area, including self-intersecting shapes whose
// lobes cancel) falls back to the arithmetic mean of the vertices. An empty
// slice yields the origin.
func PolygonCentroid(vertices []Point) Point {
	area := SignedArea(vertices)
	if area == 0 {
		return Mean(vertices)
	}

	n := len(vertices)
	var cx, cy float64
	for i := 0; i < n; i++ {
		p := vertices[i]
		q := vertices[(i+1)%n]
		f := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * f
		cy += (p.Y + q.Y) * f
	}
	k := 1 / (6 * area)
	return Point{X: cx * k, Y: cy * k}
}

// Mean returns the arithmetic mean of points, or the origin for none.
func Mean(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// Bounds returns the top-left corner and size of the axis-aligned box
// enclosing points.
func Bounds(points []Point) (x, y, w, h float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}
