// Package chipmunk implements physics.Simulation on top of the
// github.com/jakecoffman/cp/v2 port of the Chipmunk2D engine.
package chipmunk

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/jakecoffman/cp/v2"
	"github.com/samber/lo"
)

// Compile-time interface check.
var _ physics.Simulation = (*World)(nil)

// DefaultGravity pulls toward the bottom of a Y-down screen, in px/s².
var DefaultGravity = geom.Pt(0, 980)

// body wraps a *cp.Body to implement physics.Body.
type body struct {
	b     *cp.Body
	owner *World
	added bool

	shapes []*cp.Shape

	// outline geometry in body-local coordinates; nil for compound bodies
	kind    physics.OutlineKind
	outline []cp.Vector
	radius  float64
	drawn   bool
}

func (b *body) Position() geom.Point {
	return fromVec(b.b.Position())
}

func (b *body) Angle() float64 {
	return b.b.Angle()
}

// part is one shape of a compound body. local is the shape's center in
// body-local coordinates.
type part struct {
	owner *body
	index int
	local cp.Vector
}

func (p *part) Index() int {
	return p.index
}

// World implements physics.Simulation using a cp.Space.
type World struct {
	space  *cp.Space
	bodies []*body
}

// New returns an empty world with DefaultGravity.
func New() *World {
	w := &World{space: cp.NewSpace()}
	w.SetGravity(DefaultGravity)
	return w
}

func toVec(p geom.Point) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func fromVec(v cp.Vector) geom.Point {
	return geom.Point{X: v.X, Y: v.Y}
}

func newBody(static bool) *cp.Body {
	if static {
		return cp.NewStaticBody()
	}
	// Mass and moment accumulate from shape densities once the shapes are
	// attached through Space.AddShape.
	return cp.NewBody(0, 0)
}

// unwrapBody extracts the wrapper for a handle created by this world.
func (w *World) unwrapBody(h physics.Body) (*body, error) {
	b, ok := h.(*body)
	if !ok || b == nil || b.owner != w {
		return nil, physics.ErrUnknownBody
	}
	return b, nil
}

// SetGravity sets the global gravity vector.
func (w *World) SetGravity(g geom.Point) {
	w.space.SetGravity(toVec(g))
}

// CreateCompound builds one body with a poly shape per part. Part corners
// are given in world space, so the body origin stays at the world origin
// and each part's local center equals its world center at creation time.
func (w *World) CreateCompound(req physics.CompoundRequest) (physics.Body, []physics.Part, error) {
	if len(req.Parts) == 0 {
		return nil, nil, physics.ErrEmptyRequest
	}
	friction := req.Friction
	if friction == 0 {
		friction = physics.DefaultFriction
	}

	cb := newBody(req.Static)
	b := &body{b: cb, owner: w}
	parts := make([]physics.Part, 0, len(req.Parts))

	for i, spec := range req.Parts {
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, nil, fmt.Errorf("chipmunk: part %d has size %gx%g: %w",
				i, spec.Width, spec.Height, physics.ErrEmptyRequest)
		}
		corners := spec.Corners()
		verts := lo.Map(corners[:], func(p geom.Point, _ int) cp.Vector { return toVec(p) })

		shape := cp.NewPolyShape(cb, len(verts), verts, cp.NewTransformIdentity(), 0)
		shape.SetFriction(friction)
		if !req.Static {
			shape.SetDensity(req.Density)
		}
		b.shapes = append(b.shapes, shape)
		parts = append(parts, &part{owner: b, index: i, local: toVec(spec.Center)})
	}

	w.bodies = append(w.bodies, b)
	return b, parts, nil
}

// CreatePolygon builds a single convex body from the hull of the vertices,
// with its origin at req.Anchor.
func (w *World) CreatePolygon(req physics.PolygonRequest) (physics.Body, error) {
	if len(req.Vertices) < 3 {
		return nil, fmt.Errorf("chipmunk: polygon needs 3 vertices, got %d: %w",
			len(req.Vertices), physics.ErrEmptyRequest)
	}

	cb := newBody(req.Static)
	cb.SetPosition(toVec(req.Anchor))

	local := lo.Map(req.Vertices, func(p geom.Point, _ int) cp.Vector {
		return toVec(p.Sub(req.Anchor))
	})
	shape := cp.NewPolyShape(cb, len(local), local, cp.NewTransformIdentity(), 0)
	shape.SetFriction(physics.DefaultFriction)
	if !req.Static {
		shape.SetDensity(req.Density)
	}

	b := &body{
		b:       cb,
		owner:   w,
		shapes:  []*cp.Shape{shape},
		kind:    physics.OutlinePolygon,
		outline: local,
		drawn:   true,
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

// Add inserts the body and its shapes into the space.
func (w *World) Add(h physics.Body) error {
	b, err := w.unwrapBody(h)
	if err != nil {
		return err
	}
	if b.added {
		return physics.ErrAlreadyAdded
	}
	w.space.AddBody(b.b)
	for _, s := range b.shapes {
		w.space.AddShape(s)
	}
	b.added = true
	return nil
}

// PartPosition returns the part's center transformed by its body's current
// position and rotation.
func (w *World) PartPosition(h physics.Part) (geom.Point, error) {
	p, ok := h.(*part)
	if !ok || p == nil || p.owner.owner != w {
		return geom.Point{}, physics.ErrUnknownPart
	}
	return fromVec(p.owner.b.LocalToWorld(p.local)), nil
}

// Step advances the space by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

func (w *World) addBox(center geom.Point, width, height, density float64, static bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("chipmunk: box size %gx%g: %w", width, height, physics.ErrEmptyRequest)
	}
	cb := newBody(static)
	cb.SetPosition(toVec(center))
	shape := cp.NewBox(cb, width, height, 0)
	shape.SetFriction(physics.DefaultFriction)
	if !static {
		shape.SetDensity(density)
	}

	hw, hh := width/2, height/2
	b := &body{
		b:      cb,
		owner:  w,
		shapes: []*cp.Shape{shape},
		kind:   physics.OutlinePolygon,
		outline: []cp.Vector{
			{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
		},
		drawn: true,
	}
	w.bodies = append(w.bodies, b)
	return w.Add(b)
}

// AddStaticBox adds an immovable box centered at center.
func (w *World) AddStaticBox(center geom.Point, width, height float64) error {
	return w.addBox(center, width, height, 0, true)
}

// AddBox adds a dynamic box centered at center.
func (w *World) AddBox(center geom.Point, width, height, density float64) error {
	return w.addBox(center, width, height, density, false)
}

// AddBall adds a dynamic circle.
func (w *World) AddBall(center geom.Point, radius, density, elasticity float64) error {
	if radius <= 0 {
		return fmt.Errorf("chipmunk: ball radius %g: %w", radius, physics.ErrEmptyRequest)
	}
	cb := newBody(false)
	cb.SetPosition(toVec(center))
	shape := cp.NewCircle(cb, radius, cp.Vector{})
	shape.SetFriction(physics.DefaultFriction)
	shape.SetElasticity(elasticity)
	shape.SetDensity(density)

	b := &body{
		b:      cb,
		owner:  w,
		shapes: []*cp.Shape{shape},
		kind:   physics.OutlineCircle,
		radius: radius,
		drawn:  true,
	}
	w.bodies = append(w.bodies, b)
	return w.Add(b)
}

// Outlines snapshots every drawable body that has been added to the space.
func (w *World) Outlines() []physics.Outline {
	out := make([]physics.Outline, 0, len(w.bodies))
	for _, b := range w.bodies {
		if !b.drawn || !b.added {
			continue
		}
		o := physics.Outline{
			Kind:   b.kind,
			Static: b.b.GetType() == cp.BODY_STATIC,
			Center: fromVec(b.b.Position()),
			Radius: b.radius,
			Angle:  b.b.Angle(),
		}
		if b.kind == physics.OutlinePolygon {
			o.Points = lo.Map(b.outline, func(v cp.Vector, _ int) geom.Point {
				return fromVec(b.b.LocalToWorld(v))
			})
		}
		out = append(out, o)
	}
	return out
}

// BodyCount returns the number of bodies added to the space.
func (w *World) BodyCount() int {
	return len(lo.Filter(w.bodies, func(b *body, _ int) bool { return b.added }))
}
