package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cary-lichi/drawline/pkg/synth"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	c, err := FromEnv(lookupFrom(nil))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if c != Default() {
		t.Errorf("FromEnv(empty) = %+v, want %+v", c, Default())
	}
	if c.MinDistance != 25 || c.Thickness != 5 || c.Density != 10000 {
		t.Errorf("pipeline defaults = %+v", c)
	}
	if c.TickHz != 60 || c.Gravity != 980 || c.Mode != synth.ModeSegments {
		t.Errorf("simulation defaults = %+v", c)
	}
	if c.SpectateAddr != ":8888" || c.MDNS || c.ExportDir != "." || c.ScenePath != "" {
		t.Errorf("surface defaults = %+v", c)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(lookupFrom(map[string]string{
		KeyMinDistance:  "10",
		KeyThickness:    "8",
		KeyDensity:      "500",
		KeyTickHz:       "120",
		KeyGravity:      "-100",
		KeyMode:         "polygon",
		KeySpectateAddr: "",
		KeyMDNS:         "true",
		KeyExportDir:    "/tmp/out",
		KeyScene:        "level.zy",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	want := Config{
		MinDistance:  10,
		Thickness:    8,
		Density:      500,
		TickHz:       120,
		Gravity:      -100,
		Mode:         synth.ModePolygon,
		SpectateAddr: "",
		MDNS:         true,
		ExportDir:    "/tmp/out",
		ScenePath:    "level.zy",
	}
	if c != want {
		t.Errorf("FromEnv() = %+v, want %+v", c, want)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad number", map[string]string{KeyDensity: "heavy"}, KeyDensity},
		{"zero tick rate", map[string]string{KeyTickHz: "0"}, "must be positive"},
		{"negative thickness", map[string]string{KeyThickness: "-1"}, "must be positive"},
		{"bad mode", map[string]string{KeyMode: "blob"}, "unknown mode"},
		{"bad bool", map[string]string{KeyMDNS: "maybe"}, KeyMDNS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.env))
			if err == nil {
				t.Fatal("FromEnv() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("FromEnv() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestFromEnvJoinsErrors(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{KeyDensity: "x", KeyTickHz: "y"}))
	if err == nil {
		t.Fatal("FromEnv() error = nil, want error")
	}
	for _, key := range []string{KeyDensity, KeyTickHz} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("FromEnv() error = %v, want mention of %s", err, key)
		}
	}
}

func TestLoadFilesReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DRAWLINE_THICKNESS=7\nDRAWLINE_MODE=polygon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv(KeyMode, "segments")
	os.Unsetenv(KeyThickness)
	t.Cleanup(func() { os.Unsetenv(KeyThickness) })

	c, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if c.Thickness != 7 {
		t.Errorf("Thickness = %v, want 7 from the file", c.Thickness)
	}
	if c.Mode != synth.ModeSegments {
		t.Errorf("Mode = %q, want the process value", c.Mode)
	}
}

func TestLoadFilesMissingFile(t *testing.T) {
	if _, err := LoadFiles(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("LoadFiles() error = %v, want nil for a missing file", err)
	}
}

func TestDerived(t *testing.T) {
	c := Default()
	if got := c.TickInterval(); got != time.Second/60 {
		t.Errorf("TickInterval() = %v, want %v", got, time.Second/60)
	}
	if got := c.Step(); got != 1.0/60 {
		t.Errorf("Step() = %v, want 1/60", got)
	}
	if got := c.GravityVector(); got.X != 0 || got.Y != 980 {
		t.Errorf("GravityVector() = %v, want (0, 980)", got)
	}

	bc := c.Board()
	if bc.Stroke.MinDistance != 25 || bc.Synth.Thickness != 5 || bc.Synth.Density != 10000 {
		t.Errorf("Board() = %+v", bc)
	}
}
