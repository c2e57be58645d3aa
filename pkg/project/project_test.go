package project

import (
	"errors"
	"testing"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/render"
)

type stubPart struct{ index int }

func (p *stubPart) Index() int { return p.index }

type stubBody struct{}

func (stubBody) Position() geom.Point { return geom.Point{} }
func (stubBody) Angle() float64       { return 0 }

// stubWorld reports a position per part and counts queries.
type stubWorld struct {
	positions map[physics.Part]geom.Point
	queried   []int
	err       error
}

func (w *stubWorld) PartPosition(p physics.Part) (geom.Point, error) {
	if w.err != nil {
		return geom.Point{}, w.err
	}
	w.queried = append(w.queried, p.Index())
	pos, ok := w.positions[p]
	if !ok {
		return geom.Point{}, physics.ErrUnknownPart
	}
	return pos, nil
}

var _ PositionReader = (*stubWorld)(nil)

func makeParts(n int, w *stubWorld) []physics.Part {
	parts := make([]physics.Part, n)
	for i := range parts {
		parts[i] = &stubPart{index: i}
		w.positions[parts[i]] = geom.Pt(float64(i*10), float64(i))
	}
	return parts
}

func TestProjectFourParts(t *testing.T) {
	w := &stubWorld{positions: map[physics.Part]geom.Point{}}
	reg := NewRegistry()
	id := reg.Register(stubBody{}, makeParts(4, w))
	p := NewProjector(reg)

	lines, err := p.Project(w)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Project() lines = %d, want 1", len(lines))
	}
	if lines[0].BodyID != id {
		t.Errorf("BodyID = %v, want %v", lines[0].BodyID, id)
	}
	want := []geom.Point{{X: 10, Y: 1}, {X: 20, Y: 2}}
	if len(lines[0].Points) != 2 {
		t.Fatalf("Points = %v, want %v", lines[0].Points, want)
	}
	for i := range want {
		if lines[0].Points[i] != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, lines[0].Points[i], want[i])
		}
	}
	if len(w.queried) != 2 || w.queried[0] != 1 || w.queried[1] != 2 {
		t.Errorf("queried parts = %v, want [1 2]", w.queried)
	}
}

func TestProjectReplacesPreviousTick(t *testing.T) {
	w := &stubWorld{positions: map[physics.Part]geom.Point{}}
	reg := NewRegistry()
	reg.Register(stubBody{}, makeParts(4, w))
	p := NewProjector(reg)

	first, _ := p.Project(w)
	second, err := p.Project(w)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(second) != 1 || len(second[0].Points) != 2 {
		t.Fatalf("second Project() = %+v, want one 2-point line", second)
	}
	if &first[0].Points[0] == &second[0].Points[0] {
		t.Error("second tick reused the first tick's point slice")
	}
	if got := p.Lines(); len(got) != 1 || len(got[0].Points) != 2 {
		t.Errorf("Lines() = %+v, want the latest tick only", got)
	}
}

func TestProjectTrimRange(t *testing.T) {
	tests := []struct {
		parts int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{4, 2},
		{10, 8},
	}
	for _, tt := range tests {
		w := &stubWorld{positions: map[physics.Part]geom.Point{}}
		reg := NewRegistry()
		reg.Register(stubBody{}, makeParts(tt.parts, w))
		lines, err := NewProjector(reg).Project(w)
		if err != nil {
			t.Fatalf("%d parts: Project() error = %v", tt.parts, err)
		}
		if got := len(lines[0].Points); got != tt.want {
			t.Errorf("%d parts: points = %d, want %d", tt.parts, got, tt.want)
		}
	}
}

func TestProjectError(t *testing.T) {
	boom := errors.New("boom")
	w := &stubWorld{positions: map[physics.Part]geom.Point{}}
	reg := NewRegistry()
	reg.Register(stubBody{}, makeParts(4, w))
	p := NewProjector(reg)
	if _, err := p.Project(w); err != nil {
		t.Fatal(err)
	}

	w.err = boom
	if _, err := p.Project(w); !errors.Is(err, boom) {
		t.Errorf("Project() error = %v, want wrapping boom", err)
	}
	if len(p.Lines()) != 0 {
		t.Errorf("Lines() after error = %d, want 0", len(p.Lines()))
	}
}

func TestDrawSkipsShortLines(t *testing.T) {
	w := &stubWorld{positions: map[physics.Part]geom.Point{}}
	reg := NewRegistry()
	reg.Register(stubBody{}, makeParts(3, w)) // one point
	reg.Register(stubBody{}, makeParts(5, w)) // three points
	p := NewProjector(reg)
	if _, err := p.Project(w); err != nil {
		t.Fatal(err)
	}

	rec := render.NewRecorder()
	p.Draw(rec, render.BodyStyle)
	f := rec.Frame(1)
	if len(f.Polylines) != 1 {
		t.Fatalf("drawn polylines = %d, want 1", len(f.Polylines))
	}
	if len(f.Polylines[0].Points) != 3 || f.Polylines[0].Color != "#c00000" {
		t.Errorf("polyline = %+v", f.Polylines[0])
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a := reg.Register(stubBody{}, []physics.Part{&stubPart{0}})
	b := reg.Register(stubBody{}, nil)
	c := reg.Register(stubBody{}, nil)

	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	if a == b || b == c {
		t.Error("Register() returned duplicate IDs")
	}
	if e, ok := reg.Get(a); !ok || len(e.Parts) != 1 {
		t.Errorf("Get(a) = %+v, %v", e, ok)
	}

	if !reg.Remove(b) {
		t.Fatal("Remove(b) = false")
	}
	if reg.Remove(b) {
		t.Error("second Remove(b) = true")
	}
	if e, ok := reg.Get(c); !ok || e.ID != c {
		t.Errorf("Get(c) after removing b = %+v, %v", e, ok)
	}
	entries := reg.Entries()
	if len(entries) != 2 || entries[0].ID != a || entries[1].ID != c {
		t.Errorf("Entries() order = %v", entries)
	}
}
