// Package export writes a rendered frame to disk as PDF, SVG or DXF.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/render"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/samber/lo"
)

// Format is an output file format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatDXF Format = "dxf"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatPDF, FormatSVG, FormatDXF:
		return f, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Filename returns the default file name for a frame snapshot in dir.
func Filename(dir string, f Format, tick uint64) string {
	return filepath.Join(dir, fmt.Sprintf("drawline-%06d.%s", tick, f))
}

// Write saves frame to path in the given format.
func Write(f Format, path string, frame render.Frame) error {
	var err error
	switch f {
	case FormatPDF:
		err = PDF(path, frame)
	case FormatSVG:
		err = SVG(path, frame)
	case FormatDXF:
		err = DXF(path, frame)
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	return nil
}

type segment struct {
	a, b geom.Point
}

// segments flattens every polyline into line segments, closing outlines.
func segments(pl render.Polyline) []segment {
	pts := pl.Points
	if pl.Closed && len(pts) > 2 {
		pts = append(append([]geom.Point(nil), pts...), pts[0])
	}
	if len(pts) < 2 {
		return nil
	}
	return lo.Map(pts[1:], func(p geom.Point, i int) segment {
		return segment{a: pts[i], b: p}
	})
}

func frameSegments(frame render.Frame) []segment {
	return lo.FlatMap(frame.Polylines, func(pl render.Polyline, _ int) []segment {
		return segments(pl)
	})
}

// frameBounds returns the box enclosing every point in the frame.
func frameBounds(frame render.Frame) (x, y, w, h float64) {
	all := lo.FlatMap(frame.Polylines, func(pl render.Polyline, _ int) []geom.Point {
		return pl.Points
	})
	return geom.Bounds(all)
}

// toVec converts Y-down pixels to the Y-up plane the sdfx writers expect.
func toVec(p geom.Point) v2.Vec {
	return v2.Vec{X: p.X, Y: -p.Y}
}

// parseColor reads a #rrggbb string, defaulting to black.
func parseColor(s string) (r, g, b int) {
	var c uint32
	if _, err := fmt.Sscanf(s, "#%06x", &c); err != nil {
		return 0, 0, 0
	}
	return render.Style{Color: c}.RGB()
}
