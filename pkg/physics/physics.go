// Package physics defines the rigid-body world the drawing pipeline talks to.
// Implementations (chipmunk) own all simulation state behind these
// interfaces; callers only hold opaque handles.
//
// Every implementation works in the canonical Y-down pixel space used by
// package geom, so positive gravity pulls toward the bottom of the screen.
package physics

import (
	"errors"

	"github.com/cary-lichi/drawline/pkg/geom"
)

var (
	// ErrUnknownBody is returned when a body handle did not come from the world.
	ErrUnknownBody = errors.New("physics: unknown body")
	// ErrUnknownPart is returned when a part handle did not come from the world.
	ErrUnknownPart = errors.New("physics: unknown part")
	// ErrEmptyRequest is returned for a request with no geometry.
	ErrEmptyRequest = errors.New("physics: empty request")
	// ErrAlreadyAdded is returned when a body is added to the world twice.
	ErrAlreadyAdded = errors.New("physics: body already added")
)

// Body is an opaque handle to a rigid body owned by a World.
type Body interface {
	// Position returns the body origin in world space.
	Position() geom.Point
	// Angle returns the body rotation in radians.
	Angle() float64
}

// Part is an opaque handle to one shape of a compound body.
type Part interface {
	// Index is the part's position in the request that created it.
	Index() int
}

// World is the narrow contract the synthesizer and projector rely on.
type World interface {
	// CreateCompound allocates a body made of the requested parts. The body
	// is not simulated until it is passed to Add.
	CreateCompound(req CompoundRequest) (Body, []Part, error)
	// CreatePolygon allocates a single polygon body anchored at req.Anchor.
	CreatePolygon(req PolygonRequest) (Body, error)
	// Add inserts a body previously created by this world into the simulation.
	Add(b Body) error
	// PartPosition returns the live world-space center of a part.
	PartPosition(p Part) (geom.Point, error)
	// Step advances the simulation by dt seconds.
	Step(dt float64)
}

// Stage is the scene-building surface of a world: walls, props and gravity.
type Stage interface {
	SetGravity(g geom.Point)
	// AddStaticBox adds an immovable box centered at center.
	AddStaticBox(center geom.Point, width, height float64) error
	// AddBox adds a dynamic box centered at center.
	AddBox(center geom.Point, width, height, density float64) error
	// AddBall adds a dynamic circle with the given restitution.
	AddBall(center geom.Point, radius, density, elasticity float64) error
	// Outlines returns the current world-space outlines of everything added
	// through the Stage and of polygon bodies. Compound bodies are drawn by
	// their owners and are not included.
	Outlines() []Outline
}

// Simulation is a World that can also build scenes.
type Simulation interface {
	World
	Stage
}
