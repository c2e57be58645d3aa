// Package stroke captures a pointer gesture as a sparse polyline of anchor
// points. A raw sample becomes an anchor only when it lies farther than the
// configured distance from the previous anchor; everything in between is
// dropped.
package stroke

import "github.com/cary-lichi/drawline/pkg/geom"

// DefaultMinDistance is the anchor spacing threshold in pixels.
const DefaultMinDistance = 25

// Config holds the sampler options.
type Config struct {
	// MinDistance is the distance a sample must strictly exceed, measured
	// from the last anchor, to become a new anchor.
	MinDistance float64
}

// DefaultConfig returns the standard sampler configuration.
func DefaultConfig() Config {
	return Config{MinDistance: DefaultMinDistance}
}

// State is the sampler's gesture state.
type State int

const (
	Idle State = iota
	Capturing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// Stroke is the ordered list of anchors captured during one gesture.
type Stroke struct {
	Anchors []geom.Point `json:"anchors"`
}

// Len returns the number of anchors.
func (s Stroke) Len() int {
	return len(s.Anchors)
}

// Feedback receives incremental drawing instructions while a gesture is in
// progress.
type Feedback interface {
	// DrawSegment draws the newly accepted segment from -> to.
	DrawSegment(from, to geom.Point)
	// Clear removes all in-progress drawing.
	Clear()
}

type noFeedback struct{}

func (noFeedback) DrawSegment(geom.Point, geom.Point) {}
func (noFeedback) Clear()                            {}

// Sampler is the Idle/Capturing state machine. It is not safe for
// concurrent use.
type Sampler struct {
	cfg      Config
	feedback Feedback
	state    State
	anchors  []geom.Point
}

// NewSampler returns an idle sampler. fb may be nil.
func NewSampler(cfg Config, fb Feedback) *Sampler {
	if fb == nil {
		fb = noFeedback{}
	}
	return &Sampler{cfg: cfg, feedback: fb}
}

// State returns the current state.
func (s *Sampler) State() State {
	return s.state
}

// Anchors returns a copy of the anchors captured so far.
func (s *Sampler) Anchors() []geom.Point {
	return append([]geom.Point(nil), s.anchors...)
}

// Begin starts a new stroke at p, discarding any stroke in progress.
func (s *Sampler) Begin(p geom.Point) {
	if s.state == Capturing {
		s.feedback.Clear()
	}
	s.state = Capturing
	s.anchors = []geom.Point{p}
}

// Move offers a raw sample. It reports whether p became an anchor.
func (s *Sampler) Move(p geom.Point) bool {
	if s.state != Capturing {
		return false
	}
	last := s.anchors[len(s.anchors)-1]
	if geom.Distance(p, last) <= s.cfg.MinDistance {
		return false
	}
	s.anchors = append(s.anchors, p)
	s.feedback.DrawSegment(last, p)
	return true
}

// End finishes the gesture and returns its anchors. Calling End while idle
// returns an empty stroke.
func (s *Sampler) End() Stroke {
	if s.state != Capturing {
		return Stroke{}
	}
	st := Stroke{Anchors: s.anchors}
	s.reset()
	return st
}

// Cancel abandons the gesture without producing a stroke.
func (s *Sampler) Cancel() {
	if s.state != Capturing {
		return
	}
	s.reset()
}

func (s *Sampler) reset() {
	s.state = Idle
	s.anchors = nil
	s.feedback.Clear()
}
