package board

import (
	"errors"
	"testing"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/physics/chipmunk"
	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/cary-lichi/drawline/pkg/scene"
	"github.com/cary-lichi/drawline/pkg/synth"
)

const dt = 1.0 / 60

func newBoard(t *testing.T) (*Board, *chipmunk.World) {
	t.Helper()
	w := chipmunk.New()
	return New(w, DefaultConfig()), w
}

// draw replays a gesture: down at the first point, moves through the rest,
// up at the last.
func draw(t *testing.T, b *Board, pts ...geom.Point) {
	t.Helper()
	b.PointerDown(pts[0])
	for _, p := range pts[1:] {
		b.PointerMove(p)
	}
	if err := b.PointerUp(pts[len(pts)-1]); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}
}

func countColor(f render.Frame, style render.Style) int {
	n := 0
	for _, pl := range f.Polylines {
		if pl.Color == style.Hex() {
			n++
		}
	}
	return n
}

func TestStrokeBecomesBody(t *testing.T) {
	b, w := newBoard(t)

	draw(t, b,
		geom.Pt(100, 100), geom.Pt(150, 100), geom.Pt(200, 100),
		geom.Pt(250, 100), geom.Pt(300, 100))

	if b.Bodies() != 1 {
		t.Fatalf("Bodies() = %d, want 1", b.Bodies())
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, want 1", w.BodyCount())
	}

	f, err := b.Tick(dt)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if f.Tick != 1 {
		t.Errorf("frame tick = %d, want 1", f.Tick)
	}
	if got := countColor(f, render.BodyStyle); got != 1 {
		t.Fatalf("body polylines = %d, want 1", got)
	}
	// 5 anchors give 4 parts; trimming the first and last leaves two.
	lines := b.Lines()
	if len(lines) != 1 || len(lines[0].Points) != 2 {
		t.Errorf("Lines() = %+v, want one line with 2 points", lines)
	}
}

func TestBodyLineFollowsSimulation(t *testing.T) {
	b, _ := newBoard(t)
	draw(t, b,
		geom.Pt(100, 100), geom.Pt(150, 100), geom.Pt(200, 100),
		geom.Pt(250, 100), geom.Pt(300, 100))

	if _, err := b.Tick(dt); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	first := b.Lines()[0].Points[0]
	for i := 0; i < 30; i++ {
		if _, err := b.Tick(dt); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}
	later := b.Lines()[0].Points[0]
	if later.Y <= first.Y {
		t.Errorf("line y after 30 ticks = %v, want below %v", later.Y, first.Y)
	}
	if b.Ticks() != 31 {
		t.Errorf("Ticks() = %d, want 31", b.Ticks())
	}
}

func TestThreePartBodyIsNotDrawn(t *testing.T) {
	b, _ := newBoard(t)
	draw(t, b, geom.Pt(100, 100), geom.Pt(150, 100), geom.Pt(200, 100), geom.Pt(250, 100))

	f, err := b.Tick(dt)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if got := countColor(f, render.BodyStyle); got != 0 {
		t.Errorf("body polylines = %d, want 0 for a single projected point", got)
	}
	if lines := b.Lines(); len(lines) != 1 || len(lines[0].Points) != 1 {
		t.Errorf("Lines() = %+v, want one line with 1 point", lines)
	}
}

func TestShortStrokeIsDropped(t *testing.T) {
	b, w := newBoard(t)

	draw(t, b, geom.Pt(100, 100), geom.Pt(110, 100), geom.Pt(120, 100))

	if b.Bodies() != 0 || w.BodyCount() != 0 {
		t.Errorf("Bodies() = %d BodyCount() = %d, want 0 for a single-anchor stroke", b.Bodies(), w.BodyCount())
	}
}

func TestPointerUpWhileIdle(t *testing.T) {
	b, _ := newBoard(t)
	if err := b.PointerUp(geom.Pt(1, 1)); err != nil {
		t.Errorf("PointerUp() while idle error = %v, want nil", err)
	}
}

func TestFeedbackWhileCapturing(t *testing.T) {
	b, _ := newBoard(t)

	b.PointerDown(geom.Pt(0, 0))
	b.PointerMove(geom.Pt(30, 0))
	b.PointerMove(geom.Pt(60, 0))
	if !b.Capturing() {
		t.Fatal("Capturing() = false after PointerDown")
	}

	f, err := b.Tick(dt)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if got := countColor(f, render.FeedbackStyle); got != 2 {
		t.Errorf("feedback polylines = %d, want 2", got)
	}

	b.PointerCancel()
	if b.Capturing() {
		t.Error("Capturing() = true after PointerCancel")
	}
	f, _ = b.Tick(dt)
	if got := countColor(f, render.FeedbackStyle); got != 0 {
		t.Errorf("feedback polylines after cancel = %d, want 0", got)
	}
	if b.Bodies() != 0 {
		t.Errorf("Bodies() = %d after cancel, want 0", b.Bodies())
	}
}

func TestFeedbackClearedOnCommit(t *testing.T) {
	b, _ := newBoard(t)
	draw(t, b, geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(60, 0), geom.Pt(90, 0))

	f, _ := b.Tick(dt)
	if got := countColor(f, render.FeedbackStyle); got != 0 {
		t.Errorf("feedback polylines = %d, want 0 after PointerUp", got)
	}
}

func TestLoadDefaultScene(t *testing.T) {
	b, w := newBoard(t)
	if err := b.LoadScene(scene.Default()); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if w.BodyCount() != 5 {
		t.Errorf("BodyCount() = %d, want 5", w.BodyCount())
	}

	f, err := b.Tick(dt)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if got := countColor(f, render.StaticStyle); got != 5 {
		t.Errorf("static outlines = %d, want 5", got)
	}
	for _, pl := range f.Polylines {
		if !pl.Closed || len(pl.Points) != 4 {
			t.Errorf("wall outline = %+v, want a closed quad", pl)
		}
	}
}

func TestLoadSceneItems(t *testing.T) {
	s := scene.New()
	s.Add(scene.Item{Kind: scene.KindCrate, Center: geom.Pt(200, 200), Width: 52, Height: 52, Density: 1})
	s.Add(scene.Item{Kind: scene.KindBall, Center: geom.Pt(400, 200), Radius: 40, Density: 1, Elasticity: 0.6})
	s.Add(scene.Item{Kind: scene.KindStroke, Static: true, Points: []geom.Point{
		{X: 100, Y: 500}, {X: 150, Y: 500}, {X: 200, Y: 500}, {X: 250, Y: 500},
	}})
	s.Add(scene.Item{Kind: scene.KindPolygon, Points: []geom.Point{
		{X: 300, Y: 300}, {X: 396, Y: 300}, {X: 396, Y: 332},
	}})

	b, w := newBoard(t)
	if err := b.LoadScene(s); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	if w.BodyCount() != 4 {
		t.Errorf("BodyCount() = %d, want 4", w.BodyCount())
	}
	if b.Bodies() != 1 {
		t.Errorf("Bodies() = %d, want 1 (only the stroke is projected)", b.Bodies())
	}

	f, err := b.Tick(dt)
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	// crate, ball, polygon
	if got := countColor(f, render.PropStyle); got != 3 {
		t.Errorf("prop outlines = %d, want 3", got)
	}
	before := b.Lines()[0].Points[0]
	for i := 0; i < 30; i++ {
		b.Tick(dt)
	}
	after := b.Lines()[0].Points[0]
	if before != after {
		t.Errorf("static stroke moved from %v to %v", before, after)
	}
}

func TestLoadSceneGravity(t *testing.T) {
	s := scene.New()
	s.Gravity = geom.Pt(0, -500)
	s.Add(scene.Item{Kind: scene.KindStroke, Points: []geom.Point{
		{X: 100, Y: 500}, {X: 150, Y: 500}, {X: 200, Y: 500}, {X: 250, Y: 500},
	}})

	b, _ := newBoard(t)
	if err := b.LoadScene(s); err != nil {
		t.Fatalf("LoadScene() error = %v", err)
	}
	b.Tick(dt)
	before := b.Lines()[0].Points[0]
	for i := 0; i < 30; i++ {
		b.Tick(dt)
	}
	if after := b.Lines()[0].Points[0]; after.Y >= before.Y {
		t.Errorf("y = %v after upward gravity, want < %v", after.Y, before.Y)
	}
}

func TestLoadSceneError(t *testing.T) {
	s := scene.New()
	s.Add(scene.Item{Kind: scene.KindWall, Center: geom.Pt(10, 10), Width: 0, Height: 10})

	b, _ := newBoard(t)
	err := b.LoadScene(s)
	if err == nil {
		t.Fatal("LoadScene() error = nil, want error for a zero-width wall")
	}
	if !errors.Is(err, physics.ErrEmptyRequest) {
		t.Errorf("LoadScene() error = %v, want ErrEmptyRequest", err)
	}
}

func TestPolygonMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Synth.Mode = synth.ModePolygon
	w := chipmunk.New()
	b := New(w, cfg)

	draw(t, b, geom.Pt(100, 100), geom.Pt(200, 100), geom.Pt(200, 200), geom.Pt(100, 200))

	if b.Mode() != synth.ModePolygon {
		t.Errorf("Mode() = %q, want polygon", b.Mode())
	}
	if b.Bodies() != 0 {
		t.Errorf("Bodies() = %d, want 0 (polygon bodies are not projected)", b.Bodies())
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, want 1", w.BodyCount())
	}
	f, _ := b.Tick(dt)
	if got := countColor(f, render.PropStyle); got != 1 {
		t.Errorf("polygon outlines = %d, want 1", got)
	}
}

func TestSpawnBall(t *testing.T) {
	b, w := newBoard(t)
	if err := b.SpawnBall(geom.Pt(320, 200)); err != nil {
		t.Fatalf("SpawnBall() error = %v", err)
	}
	f, _ := b.Tick(dt)
	if w.BodyCount() != 1 || len(f.Polylines) != 1 {
		t.Fatalf("BodyCount() = %d polylines = %d, want 1 and 1", w.BodyCount(), len(f.Polylines))
	}
	if n := len(f.Polylines[0].Points); n != render.CircleSegments+1 {
		t.Errorf("ball outline points = %d, want %d", n, render.CircleSegments+1)
	}
}
