// Package project rebuilds drawable lines from the live part positions of
// synthesized bodies. Lines are recomputed from scratch every tick.
package project

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/google/uuid"
)

// PositionReader is the part of a physics world the projector needs.
type PositionReader interface {
	PartPosition(p physics.Part) (geom.Point, error)
}

// Entry is one synthesized body and its part handles in creation order.
type Entry struct {
	ID    uuid.UUID
	Body  physics.Body
	Parts []physics.Part
}

// Registry maps body IDs to their cached part handles. Iteration follows
// registration order.
type Registry struct {
	entries []Entry
	index   map[uuid.UUID]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[uuid.UUID]int)}
}

// Register records a body and returns its new ID. The parts slice is copied.
func (r *Registry) Register(body physics.Body, parts []physics.Part) uuid.UUID {
	id := uuid.New()
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, Entry{
		ID:    id,
		Body:  body,
		Parts: append([]physics.Part(nil), parts...),
	})
	return id
}

// Get returns the entry for id.
func (r *Registry) Get(id uuid.UUID) (Entry, bool) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Remove forgets a body. The body itself stays in the world.
func (r *Registry) Remove(id uuid.UUID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].ID] = j
	}
	return true
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the registered bodies in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// DrawableLine is the polyline for one body at one tick.
type DrawableLine struct {
	BodyID uuid.UUID    `json:"bodyId"`
	Points []geom.Point `json:"points"`
}

// Trim returns the parts that are projected: indices 1 through n-2
// inclusive. The end caps are left out, so fewer than three parts yield
// nothing.
func Trim(parts []physics.Part) []physics.Part {
	if len(parts) < 3 {
		return nil
	}
	return parts[1 : len(parts)-1]
}

// Projector turns a registry into drawable lines.
type Projector struct {
	reg   *Registry
	lines []DrawableLine
}

// NewProjector returns a projector over reg.
func NewProjector(reg *Registry) *Projector {
	return &Projector{reg: reg}
}

// Project queries the trimmed parts of every registered body and replaces
// the previous tick's lines with the result. On error the previous lines
// are discarded as well.
func (p *Projector) Project(w PositionReader) ([]DrawableLine, error) {
	p.lines = nil
	lines := make([]DrawableLine, 0, p.reg.Len())
	for _, e := range p.reg.entries {
		trimmed := Trim(e.Parts)
		pts := make([]geom.Point, 0, len(trimmed))
		for _, part := range trimmed {
			pos, err := w.PartPosition(part)
			if err != nil {
				return nil, fmt.Errorf("project: body %s part %d: %w", e.ID, part.Index(), err)
			}
			pts = append(pts, pos)
		}
		lines = append(lines, DrawableLine{BodyID: e.ID, Points: pts})
	}
	p.lines = lines
	return lines, nil
}

// Lines returns the lines from the most recent Project call.
func (p *Projector) Lines() []DrawableLine {
	return p.lines
}

// Draw emits every current line with at least two points.
func (p *Projector) Draw(r render.Renderer, style render.Style) {
	for _, l := range p.lines {
		if len(l.Points) < 2 {
			continue
		}
		r.DrawPolyline(l.Points, style)
	}
}
