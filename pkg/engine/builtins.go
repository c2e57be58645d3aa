package engine

import (
	"fmt"
	"math"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// builtin is the signature zygomys expects for user functions.
type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the scene builtins into a zygomys environment.
// The builtins append to the provided Scene during evaluation. Random
// builtins draw from a generator seeded with seed.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene, seed uint64) {
	rng := geom.NewRand(seed)

	add := func(it scene.Item) zygo.Sexp {
		idx := s.Add(it)
		return &sexpItemRef{index: idx, desc: it.String()}
	}

	// -----------------------------------------------------------------------
	// (pt 320 568)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{p: geom.Pt(x, y)}, nil
	})

	// -----------------------------------------------------------------------
	// (stage :width 640 :height 1136)
	// -----------------------------------------------------------------------
	env.AddFunction("stage", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.kwFloat("width", &s.Width); err != nil {
			return zygo.SexpNull, fmt.Errorf("stage: %w", err)
		}
		if err := pa.kwFloat("height", &s.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("stage: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (gravity 0 980)
	// -----------------------------------------------------------------------
	env.AddFunction("gravity", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("gravity requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gravity: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gravity: y: %w", err)
		}
		s.Gravity = geom.Pt(x, y)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wall :at (pt 320 0) :width 640 :height 50 :name "top")
	// (crate :at (pt 200 300) :width 52 :height 52 :density 1)
	// -----------------------------------------------------------------------
	box := func(kind scene.Kind) builtin {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			it := scene.Item{Kind: kind, Static: kind == scene.KindWall || pa.kwBool("static")}
			if kind == scene.KindCrate {
				it.Density = scene.DefaultCrateDensity
			}
			if _, ok := pa.kw["at"]; !ok {
				return zygo.SexpNull, fmt.Errorf("%s requires :at", name)
			}
			for _, err := range []error{
				pa.kwPoint("at", &it.Center),
				pa.kwFloat("width", &it.Width),
				pa.kwFloat("height", &it.Height),
				pa.kwFloat("density", &it.Density),
				pa.kwString("name", &it.Name),
			} {
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
				}
			}
			return add(it), nil
		}
	}
	env.AddFunction("wall", box(scene.KindWall))
	env.AddFunction("crate", box(scene.KindCrate))

	// -----------------------------------------------------------------------
	// (ball :at (pt 320 200) :radius 40 :elasticity 0.6)
	// -----------------------------------------------------------------------
	env.AddFunction("ball", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		it := scene.Item{
			Kind:       scene.KindBall,
			Radius:     scene.DefaultBallRadius,
			Density:    scene.DefaultBallDensity,
			Elasticity: scene.DefaultElasticity,
		}
		if _, ok := pa.kw["at"]; !ok {
			return zygo.SexpNull, fmt.Errorf("ball requires :at")
		}
		for _, err := range []error{
			pa.kwPoint("at", &it.Center),
			pa.kwFloat("radius", &it.Radius),
			pa.kwFloat("density", &it.Density),
			pa.kwFloat("elasticity", &it.Elasticity),
			pa.kwString("name", &it.Name),
		} {
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ball: %w", err)
			}
		}
		return add(it), nil
	})

	// -----------------------------------------------------------------------
	// (stroke (pt 100 300) (pt 200 320) (pt 300 360) :static)
	// (polygon (pt 0 0) (pt 96 0) (pt 96 32) :name "ledge")
	// -----------------------------------------------------------------------
	path := func(kind scene.Kind) builtin {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			pts, err := toPoints(pa.positional)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			it := scene.Item{Kind: kind, Points: pts, Static: pa.kwBool("static")}
			if err := pa.kwFloat("density", &it.Density); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			if err := pa.kwString("name", &it.Name); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return add(it), nil
		}
	}
	env.AddFunction("stroke", path(scene.KindStroke))
	env.AddFunction("polygon", path(scene.KindPolygon))

	// -----------------------------------------------------------------------
	// (default-stage) adds the classic four walls and centre block.
	// -----------------------------------------------------------------------
	env.AddFunction("default_stage", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, it := range scene.Default().Items {
			s.Add(it)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (ellipse-points :center (pt 320 400) :rx 100 :ry 50 :count 12)
	// Returns an array of points starting at the top, running clockwise.
	// -----------------------------------------------------------------------
	env.AddFunction("ellipse_points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var center geom.Point
		rx, ry, count := 0.0, 0.0, 12.0
		for _, err := range []error{
			pa.kwPoint("center", &center),
			pa.kwFloat("rx", &rx),
			pa.kwFloat("ry", &ry),
			pa.kwFloat("count", &count),
		} {
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse-points: %w", err)
			}
		}
		if ry == 0 {
			ry = rx
		}
		n := int(count)
		if n < 1 {
			return zygo.SexpNull, fmt.Errorf("ellipse-points: count %d must be positive", n)
		}
		out := make([]zygo.Sexp, n)
		for i := 0; i < n; i++ {
			r := 2 * math.Pi * float64(i) / float64(n)
			out[i] = &sexpPoint{p: geom.EllipsePoint(center, rx, ry, r)}
		}
		return &zygo.SexpArray{Val: out}, nil
	})

	// -----------------------------------------------------------------------
	// (random-int 0 10) (random-float 0.5 1.5) (coin-flip 0.3)
	// -----------------------------------------------------------------------
	env.AddFunction("random_int", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		lo, hi, err := twoNumbers("random-int", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(rng.Int(int(lo), int(hi)))}, nil
	})
	env.AddFunction("random_float", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		lo, hi, err := twoNumbers("random-float", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: rng.Float(lo, hi)}, nil
	})
	env.AddFunction("coin_flip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("coin-flip requires exactly 1 argument, got %d", len(args))
		}
		p, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coin-flip: %w", err)
		}
		return &zygo.SexpBool{Val: rng.CoinFlip(p)}, nil
	})
}

func twoNumbers(fn string, args []zygo.Sexp) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s requires exactly 2 arguments, got %d", fn, len(args))
	}
	a, err := toFloat64(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: min: %w", fn, err)
	}
	b, err := toFloat64(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: max: %w", fn, err)
	}
	return a, b, nil
}
