// Package config loads runtime settings from the environment, after an
// optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cary-lichi/drawline/pkg/board"
	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/stroke"
	"github.com/cary-lichi/drawline/pkg/synth"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	KeyMinDistance  = "DRAWLINE_MIN_DISTANCE"
	KeyThickness    = "DRAWLINE_THICKNESS"
	KeyDensity      = "DRAWLINE_DENSITY"
	KeyTickHz       = "DRAWLINE_TICK_HZ"
	KeyGravity      = "DRAWLINE_GRAVITY"
	KeyMode         = "DRAWLINE_MODE"
	KeySpectateAddr = "DRAWLINE_SPECTATE_ADDR"
	KeyMDNS         = "DRAWLINE_MDNS"
	KeyExportDir    = "DRAWLINE_EXPORT_DIR"
	KeyScene        = "DRAWLINE_SCENE"
)

// Config is the full set of runtime settings.
type Config struct {
	MinDistance  float64
	Thickness    float64
	Density      float64
	TickHz       float64
	Gravity      float64
	Mode         synth.Mode
	SpectateAddr string // "" disables the spectator server
	MDNS         bool
	ExportDir    string
	ScenePath    string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MinDistance:  stroke.DefaultMinDistance,
		Thickness:    synth.DefaultThickness,
		Density:      synth.DefaultDensity,
		TickHz:       60,
		Gravity:      980,
		Mode:         synth.ModeSegments,
		SpectateAddr: ":8888",
		ExportDir:    ".",
	}
}

// Load reads .env from the working directory if present, then overlays the
// process environment on the defaults.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit env files. Missing files are skipped.
// Variables already set in the process environment win over file values.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		err := godotenv.Load(f)
		switch {
		case err == nil:
			log.Printf("Config: loaded %s", f)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset
// keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var errs []error

	num := func(key string, dst *float64, positive bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		if positive && f <= 0 {
			errs = append(errs, fmt.Errorf("%s: %g must be positive", key, f))
			return
		}
		*dst = f
	}
	num(KeyMinDistance, &c.MinDistance, false)
	num(KeyThickness, &c.Thickness, true)
	num(KeyDensity, &c.Density, true)
	num(KeyTickHz, &c.TickHz, true)
	num(KeyGravity, &c.Gravity, false)

	if v, ok := lookup(KeyMode); ok {
		m, err := synth.ParseMode(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyMode, err))
		} else {
			c.Mode = m
		}
	}
	if v, ok := lookup(KeyMDNS); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyMDNS, err))
		} else {
			c.MDNS = b
		}
	}
	if v, ok := lookup(KeySpectateAddr); ok {
		c.SpectateAddr = v
	}
	if v, ok := lookup(KeyExportDir); ok && v != "" {
		c.ExportDir = v
	}
	if v, ok := lookup(KeyScene); ok {
		c.ScenePath = v
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return c, nil
}

// Board returns the pipeline options.
func (c Config) Board() board.Config {
	return board.Config{
		Stroke: stroke.Config{MinDistance: c.MinDistance},
		Synth: synth.Config{
			Thickness: c.Thickness,
			Density:   c.Density,
			Mode:      c.Mode,
		},
	}
}

// TickInterval is the wall-clock period between simulation steps.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickHz)
}

// Step is the simulated time advanced per tick, in seconds.
func (c Config) Step() float64 {
	return 1 / c.TickHz
}

// GravityVector is the configured gravity pulling toward +Y.
func (c Config) GravityVector() geom.Point {
	return geom.Pt(0, c.Gravity)
}
