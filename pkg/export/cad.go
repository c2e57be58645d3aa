package export

import (
	"github.com/cary-lichi/drawline/pkg/render"
	sdfrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/samber/lo"
)

// SVGLineStyle is applied to every line of an SVG export.
const SVGLineStyle = "fill:none;stroke:black;stroke-width:1"

// SVG writes every segment of frame as a line.
func SVG(path string, frame render.Frame) error {
	segs := frameSegments(frame)
	if len(segs) == 0 {
		return ErrEmptyFrame
	}
	s := sdfrender.NewSVG(path, SVGLineStyle)
	for _, seg := range segs {
		s.Line(toVec(seg.a), toVec(seg.b))
	}
	return s.Save()
}

// DXF writes every segment of frame as a LINE entity.
func DXF(path string, frame render.Frame) error {
	segs := frameSegments(frame)
	if len(segs) == 0 {
		return ErrEmptyFrame
	}
	d := sdfrender.NewDXF(path)
	d.Lines(dxfLines(segs))
	return d.Save()
}

func dxfLines(segs []segment) []*sdf.Line2 {
	return lo.Map(segs, func(seg segment, _ int) *sdf.Line2 {
		return &sdf.Line2{toVec(seg.a), toVec(seg.b)}
	})
}
