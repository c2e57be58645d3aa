// Package render defines the stateless line-drawing surface the pipeline
// emits to, plus a Recorder that turns draw calls into a serializable Frame.
package render

import (
	"fmt"
	"math"

	"github.com/cary-lichi/drawline/pkg/geom"
)

// Style is the stroke applied to a polyline.
type Style struct {
	Color uint32  `json:"color"` // 0xRRGGBB
	Width float64 `json:"width"`
}

// Hex returns the color as #rrggbb.
func (s Style) Hex() string {
	return fmt.Sprintf("#%06x", s.Color&0xffffff)
}

// RGB splits the color into its channels.
func (s Style) RGB() (r, g, b int) {
	return int(s.Color>>16) & 0xff, int(s.Color>>8) & 0xff, int(s.Color) & 0xff
}

var (
	// FeedbackStyle draws the stroke being captured.
	FeedbackStyle = Style{Color: 0x00ff00, Width: 5}
	// BodyStyle draws synthesized bodies.
	BodyStyle = Style{Color: 0xc00000, Width: 5}
	// StaticStyle draws walls and other immovable scenery.
	StaticStyle = Style{Color: 0x555555, Width: 2}
	// PropStyle draws dynamic props such as balls and crates.
	PropStyle = Style{Color: 0x4a90d9, Width: 2}
)

// Renderer draws polylines. Every call receives a fresh point list and
// nothing is retained between calls.
type Renderer interface {
	DrawPolyline(points []geom.Point, style Style)
}

// Polyline is one recorded draw call.
type Polyline struct {
	Points []geom.Point `json:"points"`
	Color  string       `json:"color"`
	Width  float64      `json:"width"`
	Closed bool         `json:"closed,omitempty"`
}

// Frame is everything drawn for one tick.
type Frame struct {
	Tick      uint64     `json:"tick"`
	Polylines []Polyline `json:"polylines"`
}

// Recorder implements Renderer by collecting polylines into a Frame.
type Recorder struct {
	frame Frame
}

var _ Renderer = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{frame: Frame{Polylines: []Polyline{}}}
}

// DrawPolyline records a copy of points.
func (r *Recorder) DrawPolyline(points []geom.Point, style Style) {
	r.frame.Polylines = append(r.frame.Polylines, Polyline{
		Points: append([]geom.Point(nil), points...),
		Color:  style.Hex(),
		Width:  style.Width,
	})
}

// DrawPolygon records a closed outline.
func (r *Recorder) DrawPolygon(points []geom.Point, style Style) {
	r.DrawPolyline(points, style)
	r.frame.Polylines[len(r.frame.Polylines)-1].Closed = true
}

// Frame returns the recorded frame stamped with tick and starts a new one.
func (r *Recorder) Frame(tick uint64) Frame {
	f := r.frame
	f.Tick = tick
	r.frame = Frame{Polylines: []Polyline{}}
	return f
}

// Len returns the number of polylines recorded since the last Frame call.
func (r *Recorder) Len() int {
	return len(r.frame.Polylines)
}

// CircleSegments is the number of points used to approximate a circle.
const CircleSegments = 24

// Circle approximates a circle as a closed list of points starting at the
// top and running clockwise, offset by angle so the outline turns with its
// body.
func Circle(center geom.Point, radius, angle float64) []geom.Point {
	pts := make([]geom.Point, 0, CircleSegments+1)
	for i := 0; i <= CircleSegments; i++ {
		r := angle + 2*math.Pi*float64(i)/CircleSegments
		pts = append(pts, geom.EllipsePoint(center, radius, radius, r))
	}
	return pts
}
