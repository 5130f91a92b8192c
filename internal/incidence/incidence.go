// Package incidence builds and mutates the bipartite fiber<->target
// relation that the assigners consume: which fibers can currently
// reach which targets, and vice versa, under the patrol-radius,
// dot-blocking, and collision-removal rules.
package incidence

import (
	"fmt"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
	"github.com/fiberplan/fiberplan/internal/raster"
)

// Geometric constants from the fiber positioner design (spec §6).
const (
	RMax     = 4.75  // fiber patrol radius, mm
	DotDist  = 1.375 // blocking-dot exclusion radius, mm
	CollDist = 2.0   // minimum separation between co-assigned targets, mm
)

// Map is the two parallel views of the fiber<->target relation:
// F2T[f] lists the targets currently reachable by fiber f, T2F[t]
// lists the fibers that can currently observe target t. The invariant
// (f,t) in F2T <=> (f,t) in T2F holds after Build and after every
// Cleanup call.
type Map struct {
	F2T [][]int
	T2F [][]int

	targets []model.Target
	raster  *raster.Raster
}

func toRasterVec(p geom.Vec2) raster.Vec2 { return raster.Vec2{X: p.X, Y: p.Y} }

// Build constructs the raster over target positions and the initial
// F2T/T2F mappings for the full fiber array against targets.
func Build(targets []model.Target) *Map {
	locs := make([]raster.Vec2, len(targets))
	for i, t := range targets {
		locs[i] = toRasterVec(t.Pos)
	}
	r := raster.New(locs, 100, 100)

	m := &Map{
		F2T:     make([][]int, geom.NumFibers),
		T2F:     make([][]int, len(targets)),
		targets: targets,
		raster:  r,
	}
	for f := 0; f < geom.NumFibers; f++ {
		fp := toRasterVec(geom.FiberPos(f))
		dp := geom.DotPos(f)
		cand := r.Query(fp, RMax)
		for _, t := range cand {
			if dotSq(dp, targets[t].Pos) >= DotDist*DotDist {
				m.F2T[f] = append(m.F2T[f], t)
			}
		}
	}
	for f, ts := range m.F2T {
		for _, t := range ts {
			m.T2F[t] = append(m.T2F[t], f)
		}
	}
	return m
}

func dotSq(a geom.Vec2, b geom.Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Raster exposes the underlying target-position raster, so a caller
// (e.g. the density-aware assigner) can run its own neighbor queries
// against the same spatial index used to build the incidence.
func (m *Map) Raster() *raster.Raster { return m.raster }

// stripout removes exactly one occurrence of val from *s. It panics if
// val is not present — an incidence invariant violation.
func stripout(s *[]int, val int) {
	v := *s
	for i, x := range v {
		if x == val {
			*s = append(v[:i], v[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("incidence: value %d not present for removal", val))
}

// Cleanup applies the post-assignment mutation for fiber f assigned to
// target t: every other target reachable by f is detached from f
// (f2t[f] is cleared, and f is removed from each of those targets'
// t2f), then every target within CollDist of targets[t].Pos (including
// t itself) is fully removed from the relation.
func (m *Map) Cleanup(fiber, tgt int) {
	for _, u := range m.F2T[fiber] {
		stripout(&m.T2F[u], fiber)
	}
	m.F2T[fiber] = nil

	collided := m.raster.Query(toRasterVec(m.targets[tgt].Pos), CollDist)
	for _, v := range collided {
		for _, fib := range m.T2F[v] {
			stripout(&m.F2T[fib], v)
		}
		m.T2F[v] = nil
	}
}
