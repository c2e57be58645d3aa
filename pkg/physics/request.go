package physics

import "github.com/cary-lichi/drawline/pkg/geom"

// DefaultFriction is applied to shapes when a request leaves Friction at zero.
const DefaultFriction = 0.7

// PartSpec is one rectangular part of a compound body, in world space.
// Width runs along the part's local x-axis before rotation.
type PartSpec struct {
	Center geom.Point `json:"center"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Angle  float64    `json:"angle"`
}

// Corners returns the four corners of the rotated rectangle, starting at the
// local top-left and winding through the local top-right.
func (p PartSpec) Corners() [4]geom.Point {
	hw, hh := p.Width/2, p.Height/2
	local := [4]geom.Point{
		{X: p.Center.X - hw, Y: p.Center.Y - hh},
		{X: p.Center.X + hw, Y: p.Center.Y - hh},
		{X: p.Center.X + hw, Y: p.Center.Y + hh},
		{X: p.Center.X - hw, Y: p.Center.Y + hh},
	}
	var out [4]geom.Point
	for i, c := range local {
		out[i] = c.RotateAbout(p.Center, p.Angle)
	}
	return out
}

// CompoundRequest asks for one rigid body made of several rigidly joined
// rectangular parts.
type CompoundRequest struct {
	Parts    []PartSpec `json:"parts"`
	Density  float64    `json:"density"`
	Static   bool       `json:"isStatic"`
	Friction float64    `json:"friction,omitempty"`
}

// PolygonRequest asks for one polygon body. Vertices are in world space;
// the body origin is placed at Anchor. Backends may use the convex hull of
// the vertices.
type PolygonRequest struct {
	Vertices []geom.Point `json:"vertices"`
	Anchor   geom.Point   `json:"anchor"`
	Density  float64      `json:"density"`
	Static   bool         `json:"isStatic"`
}

// OutlineKind enumerates the shapes reported by Stage.Outlines.
type OutlineKind int

const (
	OutlinePolygon OutlineKind = iota
	OutlineCircle
)

func (k OutlineKind) String() string {
	switch k {
	case OutlinePolygon:
		return "polygon"
	case OutlineCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Outline is a world-space snapshot of one shape. Polygons fill Points;
// circles fill Center, Radius and Angle.
type Outline struct {
	Kind   OutlineKind  `json:"kind"`
	Static bool         `json:"static"`
	Points []geom.Point `json:"points,omitempty"`
	Center geom.Point   `json:"center"`
	Radius float64      `json:"radius,omitempty"`
	Angle  float64      `json:"angle"`
}
