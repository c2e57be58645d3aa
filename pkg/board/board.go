// Package board wires the drawing pipeline together: pointer input flows
// through the stroke sampler into the synthesizer, committed bodies are
// registered with the projector, and every tick produces a frame of
// polylines.
//
// A Board is not safe for concurrent use. The session package owns one per
// goroutine.
package board

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/project"
	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/cary-lichi/drawline/pkg/scene"
	"github.com/cary-lichi/drawline/pkg/stroke"
	"github.com/cary-lichi/drawline/pkg/synth"
)

// Config bundles the pipeline options.
type Config struct {
	Stroke stroke.Config
	Synth  synth.Config
}

// DefaultConfig returns the standard pipeline options.
func DefaultConfig() Config {
	return Config{
		Stroke: stroke.DefaultConfig(),
		Synth:  synth.DefaultConfig(),
	}
}

// feedback records the segments drawn while a stroke is captured.
type feedback struct {
	segments [][2]geom.Point
}

func (f *feedback) DrawSegment(from, to geom.Point) {
	f.segments = append(f.segments, [2]geom.Point{from, to})
}

func (f *feedback) Clear() {
	f.segments = nil
}

// Board is one drawing surface over a physics simulation.
type Board struct {
	world     physics.Simulation
	synth     *synth.Synthesizer
	sampler   *stroke.Sampler
	feedback  *feedback
	registry  *project.Registry
	projector *project.Projector
	tick      uint64
}

// New returns an empty board over world.
func New(world physics.Simulation, cfg Config) *Board {
	fb := &feedback{}
	reg := project.NewRegistry()
	return &Board{
		world:     world,
		synth:     synth.New(cfg.Synth),
		sampler:   stroke.NewSampler(cfg.Stroke, fb),
		feedback:  fb,
		registry:  reg,
		projector: project.NewProjector(reg),
	}
}

// Mode returns the active synthesis mode.
func (b *Board) Mode() synth.Mode {
	return b.synth.Config().Mode
}

// Capturing reports whether a stroke is in progress.
func (b *Board) Capturing() bool {
	return b.sampler.State() == stroke.Capturing
}

// Bodies returns the number of stroke bodies tracked by the projector.
func (b *Board) Bodies() int {
	return b.registry.Len()
}

// Ticks returns the number of completed ticks.
func (b *Board) Ticks() uint64 {
	return b.tick
}

// PointerDown starts a stroke at p.
func (b *Board) PointerDown(p geom.Point) {
	b.sampler.Begin(p)
}

// PointerMove feeds a pointer sample to the stroke in progress.
func (b *Board) PointerMove(p geom.Point) {
	b.sampler.Move(p)
}

// PointerUp finishes the stroke and commits it to the world. The release
// point itself is not sampled. Strokes too short to form a body are
// dropped without error.
func (b *Board) PointerUp(p geom.Point) error {
	st := b.sampler.End()
	if st.Len() == 0 {
		return nil
	}
	return b.commit(b.synth, st)
}

// PointerCancel abandons the stroke in progress.
func (b *Board) PointerCancel() {
	b.sampler.Cancel()
}

// SpawnBall drops a default ball at p.
func (b *Board) SpawnBall(p geom.Point) error {
	return b.world.AddBall(p, scene.DefaultBallRadius, scene.DefaultBallDensity, scene.DefaultElasticity)
}

// commit builds st with s. Compound bodies are registered with the
// projector; polygon bodies are drawn from the world's outlines.
func (b *Board) commit(s *synth.Synthesizer, st stroke.Stroke) error {
	if s.Config().Mode == synth.ModePolygon {
		_, err := s.CommitPolygon(b.world, st)
		return err
	}
	c, err := s.Commit(b.world, st)
	if err != nil || c == nil {
		return err
	}
	b.registry.Register(c.Body, c.Parts)
	return nil
}

// LoadScene adds every item of s to the world and applies its gravity.
// Loading stops at the first failing item.
func (b *Board) LoadScene(s *scene.Scene) error {
	b.world.SetGravity(s.Gravity)
	for i, it := range s.Items {
		if err := b.loadItem(it); err != nil {
			return fmt.Errorf("board: item %d (%s): %w", i, it, err)
		}
	}
	return nil
}

func (b *Board) loadItem(it scene.Item) error {
	switch it.Kind {
	case scene.KindWall:
		return b.world.AddStaticBox(it.Center, it.Width, it.Height)
	case scene.KindCrate:
		if it.Static {
			return b.world.AddStaticBox(it.Center, it.Width, it.Height)
		}
		return b.world.AddBox(it.Center, it.Width, it.Height, it.Density)
	case scene.KindBall:
		return b.world.AddBall(it.Center, it.Radius, it.Density, it.Elasticity)
	case scene.KindStroke, scene.KindPolygon:
		cfg := b.synth.Config()
		cfg.Static = it.Static
		if it.Density > 0 {
			cfg.Density = it.Density
		}
		cfg.Mode = synth.ModeSegments
		if it.Kind == scene.KindPolygon {
			cfg.Mode = synth.ModePolygon
		}
		return b.commit(synth.New(cfg), stroke.Stroke{Anchors: it.Points})
	}
	return fmt.Errorf("unknown item kind %d", int(it.Kind))
}

// Tick advances the world by dt seconds and draws the resulting frame:
// scenery and props first, then stroke bodies, then the stroke being
// captured.
func (b *Board) Tick(dt float64) (render.Frame, error) {
	b.world.Step(dt)
	if _, err := b.projector.Project(b.world); err != nil {
		return render.Frame{}, fmt.Errorf("board: tick %d: %w", b.tick+1, err)
	}
	b.tick++

	rec := render.NewRecorder()
	for _, o := range b.world.Outlines() {
		style := render.PropStyle
		if o.Static {
			style = render.StaticStyle
		}
		switch o.Kind {
		case physics.OutlineCircle:
			rec.DrawPolyline(render.Circle(o.Center, o.Radius, o.Angle), style)
		default:
			rec.DrawPolygon(o.Points, style)
		}
	}
	b.projector.Draw(rec, render.BodyStyle)
	for _, seg := range b.feedback.segments {
		rec.DrawPolyline(seg[:], render.FeedbackStyle)
	}
	return rec.Frame(b.tick), nil
}

// Lines returns the drawable lines from the latest Tick.
func (b *Board) Lines() []project.DrawableLine {
	return b.projector.Lines()
}
