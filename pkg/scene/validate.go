package scene

import (
	"fmt"

	"github.com/cary-lichi/drawline/pkg/geom"
)

// Severity indicates whether a finding blocks loading or is informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks loading
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single finding. Index is -1 for scene-level
// findings.
type ValidationError struct {
	Index    int
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] item %d: %s", e.Severity, e.Index, e.Message)
}

// ValidationResult separates blocking errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the scene and returns all findings. It never mutates s.
func Validate(s *Scene) ValidationResult {
	var all []ValidationError
	all = append(all, validateStage(s)...)
	all = append(all, validateNames(s)...)
	for i, it := range s.Items {
		all = append(all, validateItem(s, i, it)...)
	}

	var res ValidationResult
	for _, e := range all {
		if e.Severity == SeverityWarning {
			res.Warnings = append(res.Warnings, e)
		} else {
			res.Errors = append(res.Errors, e)
		}
	}
	return res
}

func validateStage(s *Scene) []ValidationError {
	if s.Width <= 0 || s.Height <= 0 {
		return []ValidationError{{
			Index:    -1,
			Message:  fmt.Sprintf("stage size %gx%g must be positive", s.Width, s.Height),
			Severity: SeverityError,
		}}
	}
	return nil
}

func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)
	for i, it := range s.Items {
		if it.Name == "" {
			continue
		}
		if first, dup := seen[it.Name]; dup {
			errs = append(errs, ValidationError{
				Index:    i,
				Message:  fmt.Sprintf("name %q already used by item %d", it.Name, first),
				Severity: SeverityError,
			})
			continue
		}
		seen[it.Name] = i
	}
	return errs
}

func validateItem(s *Scene, i int, it Item) []ValidationError {
	var errs []ValidationError
	fail := func(sev Severity, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	if it.Density < 0 {
		fail(SeverityError, "%s: density %g must not be negative", it, it.Density)
	}

	switch it.Kind {
	case KindWall, KindCrate:
		if it.Width <= 0 || it.Height <= 0 {
			fail(SeverityError, "%s: size %gx%g must be positive", it, it.Width, it.Height)
		}
		if !onStage(s, it.Center) {
			fail(SeverityWarning, "%s: center %v is off stage", it, it.Center)
		}
	case KindBall:
		if it.Radius <= 0 {
			fail(SeverityError, "%s: radius %g must be positive", it, it.Radius)
		}
		if it.Elasticity < 0 || it.Elasticity > 1 {
			fail(SeverityWarning, "%s: elasticity %g outside [0, 1]", it, it.Elasticity)
		}
		if !onStage(s, it.Center) {
			fail(SeverityWarning, "%s: center %v is off stage", it, it.Center)
		}
	case KindStroke:
		if len(it.Points) < 2 {
			fail(SeverityWarning, "%s: %d points, needs 2 to become a body", it, len(it.Points))
		}
	case KindPolygon:
		if len(it.Points) < 3 {
			fail(SeverityError, "%s: %d points, needs at least 3", it, len(it.Points))
		} else if geom.SignedArea(it.Points) == 0 {
			fail(SeverityWarning, "%s: zero area, centroid falls back to the vertex mean", it)
		}
	default:
		fail(SeverityError, "unknown item kind %d", int(it.Kind))
	}
	return errs
}

func onStage(s *Scene, p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= s.Width && p.Y <= s.Height
}
