package planner

import (
	"math"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
)

// DefaultCenter returns the pointing used when no nominal center is
// configured: the normalized mean direction of all catalog targets'
// RA/DEC positions, a stand-in for the original's minimal-enclosing-
// circle center that needs no external geometry library.
func DefaultCenter(targets []model.Target) geom.Pointing {
	var sum geom.Pointing
	for _, t := range targets {
		p := geom.RADecToPointing(t.Pos.X, t.Pos.Y)
		sum.X += p.X
		sum.Y += p.Y
		sum.Z += p.Z
	}
	n := math.Sqrt(sum.X*sum.X + sum.Y*sum.Y + sum.Z*sum.Z)
	if n == 0 {
		return geom.Pointing{X: 1}
	}
	return geom.Pointing{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
}
