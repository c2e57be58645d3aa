// Package synth turns a finished stroke into a compound rigid body: one thin
// rectangle per pair of consecutive anchors, all rigidly joined.
package synth

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/stroke"
)

// Defaults for Config.
const (
	DefaultThickness = 5
	DefaultDensity   = 10000
)

// Mode selects how a stroke becomes a body.
type Mode string

const (
	// ModeSegments builds a compound body of segment rectangles.
	ModeSegments Mode = "segments"
	// ModePolygon builds one polygon body from the stroke's hull. Experimental.
	ModePolygon Mode = "polygon"
)

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSegments, "":
		return ModeSegments, nil
	case ModePolygon:
		return ModePolygon, nil
	}
	return "", fmt.Errorf("synth: unknown mode %q, expected segments or polygon", s)
}

// Config holds the body options.
type Config struct {
	Thickness float64 // segment rectangle height
	Density   float64 // high so strokes act as heavy obstacles
	Static    bool
	Mode      Mode
}

// DefaultConfig returns the standard synthesis configuration.
func DefaultConfig() Config {
	return Config{
		Thickness: DefaultThickness,
		Density:   DefaultDensity,
		Mode:      ModeSegments,
	}
}

// SegmentSpec describes one segment between two anchors. The rectangle is
// built horizontally starting at Start and then rotated about Start by
// Angle, so Center is the rotated center.
type SegmentSpec struct {
	Start     geom.Point `json:"start"`
	Center    geom.Point `json:"center"`
	Length    float64    `json:"length"`
	Thickness float64    `json:"thickness"`
	Angle     float64    `json:"angle"`
}

// UnrotatedCenter is the rectangle center before rotation about Start.
func (s SegmentSpec) UnrotatedCenter() geom.Point {
	return geom.Pt(s.Start.X+s.Length/2, s.Start.Y)
}

// End is the far end of the segment's center line.
func (s SegmentSpec) End() geom.Point {
	return geom.PointByRadian(s.Start, s.Angle, s.Length)
}

// Part returns the physics part for this segment.
func (s SegmentSpec) Part() physics.PartSpec {
	return physics.PartSpec{
		Center: s.Center,
		Width:  s.Length,
		Height: s.Thickness,
		Angle:  s.Angle,
	}
}

// Segment builds the spec for the pair (start, stop).
func Segment(start, stop geom.Point, thickness float64) SegmentSpec {
	angle := geom.AngleBetween(start, stop)
	length := geom.Distance(start, stop)
	unrotated := geom.Pt(start.X+length/2, start.Y)
	return SegmentSpec{
		Start:     start,
		Center:    unrotated.RotateAbout(start, angle),
		Length:    length,
		Thickness: thickness,
		Angle:     angle,
	}
}

// Segments returns one spec per consecutive anchor pair. Pairs of identical
// anchors have no length and are skipped, so a scripted stroke with repeated
// anchors yields fewer than len(anchors)-1 specs. Sampled strokes never
// repeat an anchor.
func Segments(anchors []geom.Point, thickness float64) []SegmentSpec {
	if len(anchors) < 2 {
		return nil
	}
	specs := make([]SegmentSpec, 0, len(anchors)-1)
	for i := 0; i < len(anchors)-1; i++ {
		start, stop := anchors[i], anchors[i+1]
		if start == stop {
			continue
		}
		specs = append(specs, Segment(start, stop, thickness))
	}
	return specs
}

// Synthesizer builds body requests with a fixed configuration and commits
// them to a world.
type Synthesizer struct {
	cfg Config
}

// New returns a Synthesizer. Zero thickness or density fall back to the
// defaults.
func New(cfg Config) *Synthesizer {
	if cfg.Thickness <= 0 {
		cfg.Thickness = DefaultThickness
	}
	if cfg.Density <= 0 {
		cfg.Density = DefaultDensity
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSegments
	}
	return &Synthesizer{cfg: cfg}
}

// Config returns the effective configuration.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Synthesize converts st into a compound body request using the default
// configuration. ok is false when st has fewer than two anchors.
func Synthesize(st stroke.Stroke) (req physics.CompoundRequest, ok bool) {
	return New(DefaultConfig()).Synthesize(st)
}

// Synthesize converts st into a compound body request. ok is false when the
// stroke yields no segment.
func (s *Synthesizer) Synthesize(st stroke.Stroke) (physics.CompoundRequest, bool) {
	specs := Segments(st.Anchors, s.cfg.Thickness)
	if len(specs) == 0 {
		return physics.CompoundRequest{}, false
	}
	parts := make([]physics.PartSpec, len(specs))
	for i, spec := range specs {
		parts[i] = spec.Part()
	}
	return physics.CompoundRequest{
		Parts:   parts,
		Density: s.cfg.Density,
		Static:  s.cfg.Static,
	}, true
}

// Committed is a body created from a stroke together with its part handles
// in creation order.
type Committed struct {
	Body  physics.Body
	Parts []physics.Part
}

// Commit synthesizes st, creates the body and adds it to w. A skipped stroke
// returns nil, nil. World errors are returned as-is, wrapped; nothing is
// rolled back.
func (s *Synthesizer) Commit(w physics.World, st stroke.Stroke) (*Committed, error) {
	req, ok := s.Synthesize(st)
	if !ok {
		return nil, nil
	}
	body, parts, err := w.CreateCompound(req)
	if err != nil {
		return nil, fmt.Errorf("synth: create compound body: %w", err)
	}
	if err := w.Add(body); err != nil {
		return nil, fmt.Errorf("synth: add compound body: %w", err)
	}
	return &Committed{Body: body, Parts: parts}, nil
}
