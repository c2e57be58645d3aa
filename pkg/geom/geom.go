// Package geom is the stateless 2D geometry kernel shared by the stroke
// sampler, the body synthesizer and the line projector.
//
// All coordinates live in one canonical pixel space with Y growing downward.
// The physics world and every renderer operate in the same space, so a point
// produced here can be handed to either without conversion.
package geom

import (
	"fmt"
	"math"
)

// DegToRad and RadToDeg convert between degrees and radians.
const (
	DegToRad = math.Pi / 180
	RadToDeg = 180 / math.Pi
	HalfPi   = math.Pi / 2
)

// Point is an immutable 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// RotateAbout rotates p by angle radians around pivot.
func (p Point) RotateAbout(pivot Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return math.Sqrt(DistanceSquare(p1, p2))
}

// DistanceSquare returns the squared Euclidean distance between p1 and p2.
func DistanceSquare(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return dx*dx + dy*dy
}

// AngleBetween returns the direction from p1 to p2 in radians, in (-π, π].
func AngleBetween(p1, p2 Point) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
}

// Degrees returns AngleBetween(p1, p2) in degrees.
func Degrees(p1, p2 Point) float64 {
	return ToDegrees(AngleBetween(p1, p2))
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * DegToRad
}

// ToDegrees converts radians to degrees.
func ToDegrees(radians float64) float64 {
	return radians * RadToDeg
}

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp interpolates linearly between p1 and p2. progress is the fraction of
// the way from p1 to p2: 0 yields p1 and 1 yields p2.
func Lerp(p1, p2 Point, progress float64) Point {
	rest := 1 - progress
	return Point{
		X: p1.X*rest + p2.X*progress,
		Y: p1.Y*rest + p2.Y*progress,
	}
}

// PointByRadian returns the point at distance from origin in direction radian.
func PointByRadian(origin Point, radian, distance float64) Point {
	sin, cos := math.Sincos(radian)
	return Point{
		X: origin.X + distance*cos,
		Y: origin.Y + distance*sin,
	}
}

// EllipsePoint returns the point on the ellipse centered at center with the
// given radii. The angle is offset by -π/2, so radian 0 is the top of the
// ellipse and increasing radian runs clockwise on a Y-down screen.
func EllipsePoint(center Point, radiusX, radiusY, radian float64) Point {
	sin, cos := math.Sincos(radian - HalfPi)
	return Point{
		X: center.X + cos*radiusX,
		Y: center.Y + sin*radiusY,
	}
}

// SegmentIntersection returns the intersection of the infinite lines through
// (a, b) and (c, d). ok is false when the lines are parallel or degenerate
// (the determinant is exactly zero). The coordinates of the result are
// truncated toward zero.
//
// The result is not bounded to the segments; use SegmentsIntersect for that.
func SegmentIntersection(a, b, c, d Point) (p Point, ok bool) {
	denominator := (b.Y-a.Y)*(d.X-c.X) - (a.X-b.X)*(c.Y-d.Y)
	if denominator == 0 {
		return Point{}, false
	}

	x := ((b.X-a.X)*(d.X-c.X)*(c.Y-a.Y) +
		(b.Y-a.Y)*(d.X-c.X)*a.X -
		(d.Y-c.Y)*(b.X-a.X)*c.X) / denominator
	y := -((b.Y-a.Y)*(d.Y-c.Y)*(c.X-a.X) +
		(b.X-a.X)*(d.Y-c.Y)*a.Y -
		(d.X-c.X)*(b.Y-a.Y)*c.Y) / denominator

	return Point{X: math.Trunc(x), Y: math.Trunc(y)}, true
}

// SegmentsIntersect reports whether the closed segments ab and cd cross and
// returns the exact crossing point. Collinear overlapping segments report
// false.
func SegmentsIntersect(a, b, c, d Point) (Point, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := cross(r, s)
	if denom == 0 {
		return Point{}, false
	}
	ac := c.Sub(a)
	t := cross(ac, s) / denom
	u := cross(ac, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a.Add(r.Scale(t)), true
}

func cross(p, q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// RectOverlap reports whether two axis-aligned rectangles, each given as a
// top-left corner plus width and height in Y-down space, overlap. Rectangles
// that only share an edge count as overlapping.
func RectOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	left1, top1, right1, bottom1 := x1, y1, x1+w1, y1+h1
	left2, top2, right2, bottom2 := x2, y2, x2+w2, y2+h2

	separatedX := right1 < left2 || right2 < left1
	separatedY := bottom1 < top2 || bottom2 < top1
	return !(separatedX || separatedY)
}
