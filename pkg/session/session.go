// Package session runs a board on its own goroutine. Pointer input and
// control commands arrive through Inbox; a ticker advances the simulation
// at a fixed step and every frame is handed to the subscribers.
package session

import (
	"log"
	"time"

	"github.com/cary-lichi/drawline/pkg/board"
	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/google/uuid"
)

// Options control the run loop.
type Options struct {
	Interval time.Duration // wall-clock tick period
	Step     float64       // simulated seconds per tick
	// Ticks overrides the internal ticker when set.
	Ticks <-chan time.Time
}

// FrameFunc receives every frame produced by the loop. It runs on the
// session goroutine and must not block.
type FrameFunc func(render.Frame)

// Session owns a board and serializes all access to it.
type Session struct {
	ID    uuid.UUID
	Inbox chan any

	opts        Options
	board       *board.Board
	paused      bool
	subscribers map[int]FrameFunc
	nextSub     int
	last        render.Frame
	quit        chan struct{}
	done        chan struct{}
}

// New returns a session over b. Call Run to start it.
func New(b *board.Board, opts Options) *Session {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if opts.Step <= 0 {
		opts.Step = opts.Interval.Seconds()
	}
	return &Session{
		ID:          uuid.New(),
		Inbox:       make(chan any, 256),
		opts:        opts,
		board:       b,
		subscribers: make(map[int]FrameFunc),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Stop ends Run and waits for it to return.
func (s *Session) Stop() {
	close(s.quit)
	<-s.done
}

// Run processes commands and ticks until Stop is called.
func (s *Session) Run() {
	defer close(s.done)

	ticks := s.opts.Ticks
	if ticks == nil {
		ticker := time.NewTicker(s.opts.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}
	log.Printf("Session %s: running at %v per tick", s.ID, s.opts.Interval)

	for {
		select {
		case <-s.quit:
			log.Printf("Session %s: stopped after %d ticks", s.ID, s.board.Ticks())
			return
		case cmd := <-s.Inbox:
			s.handleCommand(cmd)
		case <-ticks:
			if s.paused {
				continue
			}
			s.tick()
		}
	}
}

func (s *Session) tick() {
	f, err := s.board.Tick(s.opts.Step)
	if err != nil {
		log.Printf("Session %s: %v", s.ID, err)
		return
	}
	s.last = f
	for _, fn := range s.subscribers {
		fn(f)
	}
}

func (s *Session) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case PointerDown:
		s.board.PointerDown(c.P)
	case PointerMove:
		s.board.PointerMove(c.P)
	case PointerUp:
		err := s.board.PointerUp(c.P)
		if err != nil {
			log.Printf("Session %s: pointer up: %v", s.ID, err)
		}
		reply(c.Reply, err)
	case PointerCancel:
		s.board.PointerCancel()
	case SpawnBall:
		err := s.board.SpawnBall(c.P)
		if err != nil {
			log.Printf("Session %s: spawn ball: %v", s.ID, err)
		}
		reply(c.Reply, err)
	case Pause:
		s.paused = true
	case Resume:
		s.paused = false
	case Replace:
		s.board = c.Board
		s.last = render.Frame{}
		log.Printf("Session %s: board replaced", s.ID)
	case Subscribe:
		id := s.nextSub
		s.nextSub++
		s.subscribers[id] = c.Fn
		if c.Reply != nil {
			c.Reply <- id
		}
	case Unsubscribe:
		delete(s.subscribers, c.ID)
	case Snapshot:
		c.Reply <- State{
			Frame:     s.last,
			Ticks:     s.board.Ticks(),
			Bodies:    s.board.Bodies(),
			Paused:    s.paused,
			Capturing: s.board.Capturing(),
		}
	default:
		log.Printf("Session %s: unknown command %T", s.ID, cmd)
	}
}

func reply(ch chan<- error, err error) {
	if ch != nil {
		ch <- err
	}
}

// Send queues a command.
func (s *Session) Send(cmd any) {
	s.Inbox <- cmd
}

// State asks the loop for a snapshot and waits for it.
func (s *Session) State() State {
	ch := make(chan State, 1)
	s.Inbox <- Snapshot{Reply: ch}
	return <-ch
}

// PointerUpSync finishes the stroke and waits for the commit result.
func (s *Session) PointerUpSync(p geom.Point) error {
	ch := make(chan error, 1)
	s.Inbox <- PointerUp{P: p, Reply: ch}
	return <-ch
}

// Subscribe registers fn for every future frame and returns its ID.
func (s *Session) Subscribe(fn FrameFunc) int {
	ch := make(chan int, 1)
	s.Inbox <- Subscribe{Fn: fn, Reply: ch}
	return <-ch
}
