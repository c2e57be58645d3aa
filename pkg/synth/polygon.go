package synth

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
	"github.com/cary-lichi/drawline/pkg/physics"
	"github.com/cary-lichi/drawline/pkg/stroke"
)

// SynthesizePolygon treats the anchors as a closed polygon and requests one
// body anchored at its centroid. Winding is taken as drawn; degenerate and
// self-intersecting shapes still get a centroid (see geom.PolygonCentroid).
// ok is false for fewer than three anchors.
func (s *Synthesizer) SynthesizePolygon(st stroke.Stroke) (physics.PolygonRequest, bool) {
	if len(st.Anchors) < 3 {
		return physics.PolygonRequest{}, false
	}
	vertices := append([]geom.Point(nil), st.Anchors...)
	return physics.PolygonRequest{
		Vertices: vertices,
		Anchor:   geom.PolygonCentroid(vertices),
		Density:  s.cfg.Density,
		Static:   s.cfg.Static,
	}, true
}

// CommitPolygon builds and adds the polygon body for st. A skipped stroke
// returns nil, nil.
func (s *Synthesizer) CommitPolygon(w physics.World, st stroke.Stroke) (physics.Body, error) {
	req, ok := s.SynthesizePolygon(st)
	if !ok {
		return nil, nil
	}
	body, err := w.CreatePolygon(req)
	if err != nil {
		return nil, fmt.Errorf("synth: create polygon body: %w", err)
	}
	if err := w.Add(body); err != nil {
		return nil, fmt.Errorf("synth: add polygon body: %w", err)
	}
	return body, nil
}
