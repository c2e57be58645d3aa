package physics

import (
	"math"
	"testing"

	"github.com/cary-lichi/drawline/pkg/geom"
)

func TestPartSpecCorners(t *testing.T) {
	tests := []struct {
		name string
		spec PartSpec
		want [4]geom.Point
	}{
		{
			name: "axis aligned",
			spec: PartSpec{Center: geom.Pt(50, 0), Width: 100, Height: 10},
			want: [4]geom.Point{{X: 0, Y: -5}, {X: 100, Y: -5}, {X: 100, Y: 5}, {X: 0, Y: 5}},
		},
		{
			name: "quarter turn",
			spec: PartSpec{Center: geom.Pt(0, 0), Width: 10, Height: 2, Angle: math.Pi / 2},
			want: [4]geom.Point{{X: 1, Y: -5}, {X: 1, Y: 5}, {X: -1, Y: 5}, {X: -1, Y: -5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Corners()
			for i := range got {
				if math.Abs(got[i].X-tt.want[i].X) > 1e-9 || math.Abs(got[i].Y-tt.want[i].Y) > 1e-9 {
					t.Errorf("Corners()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutlineKindString(t *testing.T) {
	tests := []struct {
		kind OutlineKind
		want string
	}{
		{OutlinePolygon, "polygon"},
		{OutlineCircle, "circle"},
		{OutlineKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OutlineKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

// --- Compile-time interface check with a stub world ---

type stubBody struct{ pos geom.Point }

func (b *stubBody) Position() geom.Point { return b.pos }
func (b *stubBody) Angle() float64       { return 0 }

type stubPart struct {
	index  int
	center geom.Point
}

func (p *stubPart) Index() int { return p.index }

// stubWorld is a minimal World that proves the interface is satisfiable.
type stubWorld struct{}

func (stubWorld) CreateCompound(req CompoundRequest) (Body, []Part, error) {
	if len(req.Parts) == 0 {
		return nil, nil, ErrEmptyRequest
	}
	parts := make([]Part, len(req.Parts))
	for i, p := range req.Parts {
		parts[i] = &stubPart{index: i, center: p.Center}
	}
	return &stubBody{}, parts, nil
}

func (stubWorld) CreatePolygon(req PolygonRequest) (Body, error) {
	return &stubBody{pos: req.Anchor}, nil
}

func (stubWorld) Add(Body) error { return nil }

func (stubWorld) PartPosition(p Part) (geom.Point, error) {
	sp, ok := p.(*stubPart)
	if !ok {
		return geom.Point{}, ErrUnknownPart
	}
	return sp.center, nil
}

func (stubWorld) Step(float64) {}

var _ Body = (*stubBody)(nil)
var _ Part = (*stubPart)(nil)
var _ World = stubWorld{}

func TestStubWorldCompound(t *testing.T) {
	var w World = stubWorld{}
	_, parts, err := w.CreateCompound(CompoundRequest{
		Parts: []PartSpec{{Center: geom.Pt(1, 2), Width: 1, Height: 1}},
	})
	if err != nil {
		t.Fatalf("CreateCompound() error = %v", err)
	}
	got, err := w.PartPosition(parts[0])
	if err != nil {
		t.Fatalf("PartPosition() error = %v", err)
	}
	if got != geom.Pt(1, 2) {
		t.Errorf("PartPosition() = %v, want (1, 2)", got)
	}
}
