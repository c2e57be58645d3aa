package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cary-lichi/drawline/pkg/board"
	"github.com/cary-lichi/drawline/pkg/config"
	"github.com/cary-lichi/drawline/pkg/engine"
	"github.com/cary-lichi/drawline/pkg/export"
	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics/chipmunk"
	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/cary-lichi/drawline/pkg/scene"
	"github.com/cary-lichi/drawline/pkg/session"
	"github.com/cary-lichi/drawline/pkg/spectate"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// FrameEvent is the event name carrying each rendered frame to the frontend.
const FrameEvent = "frame"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx      context.Context
	cfg      config.Config
	engine   *engine.Engine
	session  *session.Session
	spectate *spectate.Server
	emit     func(event string, data ...interface{})
}

// ItemData is a JSON-serializable summary of one scene item.
type ItemData struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Items    []ItemData      `json:"items"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App from cfg.
func NewApp(cfg config.Config) *App {
	eng := engine.NewEngine()
	eng.Gravity = cfg.GravityVector()
	return &App{
		cfg:    cfg,
		engine: eng,
		emit:   func(string, ...interface{}) {},
	}
}

// startup is called by Wails on app startup. Frames are forwarded to the
// frontend through the Wails event bus.
func (a *App) startup(ctx context.Context) {
	a.emit = func(event string, data ...interface{}) {
		runtime.EventsEmit(ctx, event, data...)
	}
	if err := a.start(ctx); err != nil {
		log.Printf("Startup error: %v", err)
	}
}

// shutdown is called by Wails when the window closes.
func (a *App) shutdown(ctx context.Context) {
	if a.spectate != nil {
		if err := a.spectate.Close(ctx); err != nil {
			log.Printf("Spectate shutdown error: %v", err)
		}
	}
	if a.session != nil {
		a.session.Stop()
	}
}

// start builds the first board and launches the session and the optional
// spectator server.
func (a *App) start(ctx context.Context) error {
	a.ctx = ctx

	s, err := a.initialScene()
	if err != nil {
		log.Printf("Scene error, falling back to the default stage: %v", err)
		s = a.defaultScene()
	}
	b, err := a.boardOrDefault(s)
	if err != nil {
		return err
	}

	a.session = session.New(b, session.Options{
		Interval: a.cfg.TickInterval(),
		Step:     a.cfg.Step(),
	})
	go a.session.Run()
	a.session.Subscribe(func(f render.Frame) { a.emit(FrameEvent, f) })

	if a.cfg.SpectateAddr != "" {
		srv, err := spectate.Listen(a.cfg.SpectateAddr, a.cfg.MDNS)
		if err != nil {
			return err
		}
		a.spectate = srv
		a.session.Subscribe(srv.Hub.Publish)
	}
	return nil
}

func (a *App) defaultScene() *scene.Scene {
	s := scene.Default()
	s.Gravity = a.cfg.GravityVector()
	return s
}

// initialScene loads the configured scene script, or the default stage.
func (a *App) initialScene() (*scene.Scene, error) {
	if a.cfg.ScenePath == "" {
		return a.defaultScene(), nil
	}
	src, err := os.ReadFile(a.cfg.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	res, err := a.engine.EvaluateAll(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", a.cfg.ScenePath, err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("evaluate %s: %w", a.cfg.ScenePath, res.Errors[0])
	}
	return res.Scene, nil
}

// boardOrDefault builds a board from s, or from the default stage when s
// cannot be loaded.
func (a *App) boardOrDefault(s *scene.Scene) (*board.Board, error) {
	b, err := a.newBoard(s)
	if err == nil {
		return b, nil
	}
	log.Printf("Load scene error, falling back to the default stage: %v", err)
	return a.newBoard(a.defaultScene())
}

func (a *App) newBoard(s *scene.Scene) (*board.Board, error) {
	b := board.New(chipmunk.New(), a.cfg.Board())
	if err := b.LoadScene(s); err != nil {
		return nil, err
	}
	return b, nil
}

// Evaluate takes Lisp scene source and, when it is valid, replaces the
// running board with a fresh one built from it.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Items:    []ItemData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a scene.
	res, err := a.engine.EvaluateAll(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors and warnings to the frontend format.
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Build a board from the scene.
	b, err := a.newBoard(res.Scene)
	if err != nil {
		log.Printf("Load scene error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "load failed: " + err.Error()})
		return result
	}

	// Step 4: Hand it to the session and summarize the items.
	if a.session != nil {
		a.session.Send(session.Replace{Board: b})
	}
	for _, it := range res.Scene.Items {
		result.Items = append(result.Items, ItemData{Kind: it.Kind.String(), Name: it.Name})
	}
	return result
}

// PointerDown starts a stroke.
func (a *App) PointerDown(x, y float64) {
	a.session.Send(session.PointerDown{P: geom.Pt(x, y)})
}

// PointerMove feeds a pointer sample.
func (a *App) PointerMove(x, y float64) {
	a.session.Send(session.PointerMove{P: geom.Pt(x, y)})
}

// PointerUp finishes the stroke and reports whether it could be committed.
func (a *App) PointerUp(x, y float64) error {
	return a.session.PointerUpSync(geom.Pt(x, y))
}

// PointerCancel abandons the stroke.
func (a *App) PointerCancel() {
	a.session.Send(session.PointerCancel{})
}

// SpawnBall drops a ball at the tapped point.
func (a *App) SpawnBall(x, y float64) error {
	ch := make(chan error, 1)
	a.session.Send(session.SpawnBall{P: geom.Pt(x, y), Reply: ch})
	return <-ch
}

// Pause stops the simulation clock.
func (a *App) Pause() {
	a.session.Send(session.Pause{})
}

// Resume restarts the simulation clock.
func (a *App) Resume() {
	a.session.Send(session.Resume{})
}

// Status returns the current session state.
func (a *App) Status() session.State {
	return a.session.State()
}

// Export writes the latest frame to the export directory and returns the
// file path.
func (a *App) Export(format string) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", err
	}
	st := a.session.State()
	path := export.Filename(a.cfg.ExportDir, f, st.Frame.Tick)
	if err := export.Write(f, path, st.Frame); err != nil {
		log.Printf("Export error: %v", err)
		return "", err
	}
	log.Printf("Exported tick %d to %s", st.Frame.Tick, path)
	return path, nil
}
