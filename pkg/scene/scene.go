// Package scene describes the starting contents of a drawing board: stage
// size, gravity, static walls, props, and pre-drawn strokes. A Scene is
// plain data produced by the script engine or by Default and consumed by
// the board.
package scene

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
)

// Default stage dimensions in pixels.
const (
	StageWidth  = 640
	StageHeight = 1136
)

// Defaults used by script forms that omit values.
const (
	DefaultWallThickness = 50
	DefaultBallRadius    = 40
	DefaultBallDensity   = 1
	DefaultElasticity    = 0.6
	DefaultCrateDensity  = 1
)

// Kind enumerates scene item kinds.
type Kind int

const (
	KindWall    Kind = iota // static box
	KindCrate               // dynamic box
	KindBall                // dynamic circle
	KindStroke              // pre-drawn stroke, synthesized like user input
	KindPolygon             // pre-drawn polygon body
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindCrate:
		return "crate"
	case KindBall:
		return "ball"
	case KindStroke:
		return "stroke"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Item is one element of a scene. Boxes use Center, Width and Height; balls
// use Center, Radius and Elasticity; strokes and polygons use Points.
type Item struct {
	Kind       Kind         `json:"kind"`
	Name       string       `json:"name,omitempty"`
	Center     geom.Point   `json:"center"`
	Width      float64      `json:"width,omitempty"`
	Height     float64      `json:"height,omitempty"`
	Radius     float64      `json:"radius,omitempty"`
	Density    float64      `json:"density,omitempty"`
	Elasticity float64      `json:"elasticity,omitempty"`
	Static     bool         `json:"static,omitempty"`
	Points     []geom.Point `json:"points,omitempty"`
}

func (it Item) String() string {
	if it.Name != "" {
		return fmt.Sprintf("%s %q", it.Kind, it.Name)
	}
	return it.Kind.String()
}

// Scene is the full description of a board's starting state.
type Scene struct {
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Gravity   geom.Point     `json:"gravity"`
	Items     []Item         `json:"items"`
	NameIndex map[string]int `json:"nameIndex"`
}

// New creates an empty scene on the default stage with downward gravity.
func New() *Scene {
	return &Scene{
		Width:     StageWidth,
		Height:    StageHeight,
		Gravity:   geom.Pt(0, 980),
		NameIndex: make(map[string]int),
	}
}

// Add appends an item. Named items are indexed; a repeated name points at
// the latest item and is reported by Validate.
func (s *Scene) Add(it Item) int {
	s.Items = append(s.Items, it)
	idx := len(s.Items) - 1
	if it.Name != "" {
		s.NameIndex[it.Name] = idx
	}
	return idx
}

// Lookup returns the item with the given name.
func (s *Scene) Lookup(name string) (Item, bool) {
	i, ok := s.NameIndex[name]
	if !ok {
		return Item{}, false
	}
	return s.Items[i], true
}

// Count returns the number of items of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, it := range s.Items {
		if it.Kind == k {
			n++
		}
	}
	return n
}

// Default is the classic stage: four walls and a static block in the middle.
func Default() *Scene {
	s := New()
	s.Add(Item{Kind: KindWall, Name: "top", Center: geom.Pt(320, 0), Width: 640, Height: 50, Static: true})
	s.Add(Item{Kind: KindWall, Name: "left", Center: geom.Pt(0, 568), Width: 50, Height: 1136, Static: true})
	s.Add(Item{Kind: KindWall, Name: "right", Center: geom.Pt(640, 568), Width: 50, Height: 1136, Static: true})
	s.Add(Item{Kind: KindWall, Name: "bottom", Center: geom.Pt(320, 1100), Width: 640, Height: 50, Static: true})
	s.Add(Item{Kind: KindWall, Name: "block", Center: geom.Pt(320, 568), Width: 50, Height: 50, Static: true})
	return s
}
