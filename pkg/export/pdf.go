package export

import (
	"errors"
	"math"

	"github.com/cary-lichi/drawline/pkg/render"
	"github.com/jung-kurt/gofpdf"
)

// A4 portrait with a 10mm margin.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 10.0
)

// ErrEmptyFrame is returned when a frame has nothing to draw.
var ErrEmptyFrame = errors.New("export: empty frame")

// PDF draws frame on one A4 page, scaled to fit inside the margins.
func PDF(path string, frame render.Frame) error {
	if len(frame.Polylines) == 0 {
		return ErrEmptyFrame
	}
	x0, y0, w, h := frameBounds(frame)
	scale := math.Min((pageWidth-2*pageMargin)/math.Max(w, 1), (pageHeight-2*pageMargin)/math.Max(h, 1))

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("drawline", true)
	p.AddPage()
	for _, pl := range frame.Polylines {
		p.SetDrawColor(parseColor(pl.Color))
		p.SetLineWidth(math.Max(pl.Width*scale, 0.1))
		for _, s := range segments(pl) {
			p.Line(
				pageMargin+(s.a.X-x0)*scale, pageMargin+(s.a.Y-y0)*scale,
				pageMargin+(s.b.X-x0)*scale, pageMargin+(s.b.Y-y0)*scale,
			)
		}
	}
	return p.OutputFileAndClose(path)
}
