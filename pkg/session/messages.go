package session

import (
	"github.com/cary-lichi/drawline/pkg/board"
	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/render"
)

// PointerDown starts a stroke.
type PointerDown struct {
	P geom.Point
}

// PointerMove feeds a sample to the stroke in progress.
type PointerMove struct {
	P geom.Point
}

// PointerUp finishes the stroke. Reply, if set, receives the commit result.
type PointerUp struct {
	P     geom.Point
	Reply chan<- error
}

// PointerCancel abandons the stroke.
type PointerCancel struct{}

// SpawnBall drops a ball at P.
type SpawnBall struct {
	P     geom.Point
	Reply chan<- error
}

// Pause stops ticking; input is still accepted.
type Pause struct{}

// Resume restarts ticking.
type Resume struct{}

// Replace swaps in a new board, e.g. after loading a scene.
type Replace struct {
	Board *board.Board
}

// Subscribe registers a frame callback. Reply receives its ID.
type Subscribe struct {
	Fn    FrameFunc
	Reply chan<- int
}

// Unsubscribe removes a frame callback.
type Unsubscribe struct {
	ID int
}

// Snapshot asks for the current State.
type Snapshot struct {
	Reply chan<- State
}

// State is a point-in-time view of the session.
type State struct {
	Frame     render.Frame `json:"frame"`
	Ticks     uint64       `json:"ticks"`
	Bodies    int          `json:"bodies"`
	Paused    bool         `json:"paused"`
	Capturing bool         `json:"capturing"`
}
