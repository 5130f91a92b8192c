// Package assign implements the three fiber-to-target assignment
// strategies (naive, draining, density-aware) that consume a built
// incidence.Map and produce one exposure's worth of assignments.
package assign

import (
	"fmt"

	"github.com/fiberplan/fiberplan/internal/incidence"
	"github.com/fiberplan/fiberplan/internal/model"
	"github.com/fiberplan/fiberplan/internal/pqueue"
	"github.com/fiberplan/fiberplan/internal/raster"
)

// Sentinel marks a density-aware heap entry as retired from
// consideration — larger than any real priority value can reach.
const Sentinel = 1 << 30

// Kind selects one of the three assignment strategies at
// configuration time. It is a tagged variant rather than an
// interface-with-implementations hierarchy: the strategies share no
// state and differ only in selection order.
type Kind int

const (
	Naive Kind = iota
	Draining
	DensityAware
)

// Parse maps a configuration string to a Kind. "new" is the
// density-aware strategy's name in the original configuration
// surface, kept here for compatibility with that vocabulary.
func Parse(s string) (Kind, error) {
	switch s {
	case "naive":
		return Naive, nil
	case "draining":
		return Draining, nil
	case "new":
		return DensityAware, nil
	default:
		return 0, fmt.Errorf("assign: unknown assigner %q", s)
	}
}

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case Draining:
		return "draining"
	case DensityAware:
		return "new"
	default:
		return "unknown"
	}
}

// Run builds the incidence for targets and applies the strategy k,
// returning the chosen (target, fiber) assignments. targets is not
// mutated; positions are read through m. An empty targets slice
// yields an empty result.
func Run(k Kind, targets []model.Target) model.ExposureResult {
	if len(targets) == 0 {
		return model.ExposureResult{}
	}
	m := incidence.Build(targets)
	switch k {
	case Draining:
		return runDraining(m, targets)
	case DensityAware:
		return runDensityAware(m, targets)
	default:
		return runNaive(m, targets)
	}
}

// mostUrgent returns the position within cand of the most urgent
// target: smallest priority value, ties broken by earliest position.
func mostUrgent(cand []int, targets []model.Target) int {
	best := 0
	for j := 1; j < len(cand); j++ {
		if targets[cand[j]].Priority < targets[cand[best]].Priority {
			best = j
		}
	}
	return best
}

func runNaive(m *incidence.Map, targets []model.Target) model.ExposureResult {
	var res model.ExposureResult
	for f := 0; f < len(m.F2T); f++ {
		cand := m.F2T[f]
		if len(cand) == 0 {
			continue
		}
		t := cand[mostUrgent(cand, targets)]
		res.TargetIdx = append(res.TargetIdx, t)
		res.FiberIdx = append(res.FiberIdx, f)
		m.Cleanup(f, t)
	}
	return res
}

func runDraining(m *incidence.Map, targets []model.Target) model.ExposureResult {
	var res model.ExposureResult
	for {
		fiber := -1
		best := -1
		for f, cand := range m.F2T {
			n := len(cand)
			if n == 0 {
				continue
			}
			if best == -1 || n < best {
				best = n
				fiber = f
			}
		}
		if fiber == -1 {
			break
		}
		cand := m.F2T[fiber]
		t := cand[mostUrgent(cand, targets)]
		res.TargetIdx = append(res.TargetIdx, t)
		res.FiberIdx = append(res.FiberIdx, fiber)
		m.Cleanup(fiber, t)
	}
	return res
}

// rKernel is the proximity-kernel radius, matching the fiber patrol
// radius (spec constant r_kernel = 4.75).
const rKernel = incidence.RMax

// kernel is the parabolic proximity kernel K(r^2) = max(0, rKernel^2 - r^2).
func kernel(distSq float64) float64 {
	v := rKernel*rKernel - distSq
	if v < 0 {
		return 0
	}
	return v
}

// pqEntry is the density-aware heap's priority: ordered first by
// smaller Pri (more urgent), then by larger Prox.
type pqEntry struct {
	Prox float64
	Pri  int
}

func (e pqEntry) Less(other pqueue.Priority) bool {
	o := other.(pqEntry)
	if e.Pri != o.Pri {
		return e.Pri > o.Pri
	}
	return e.Prox < o.Prox
}

func distSq(a, b model.Target) float64 {
	dx := a.Pos.X - b.Pos.X
	dy := a.Pos.Y - b.Pos.Y
	return dx*dx + dy*dy
}

func runDensityAware(m *incidence.Map, targets []model.Target) model.ExposureResult {
	n := len(targets)
	prox := make([]float64, n)
	r := m.Raster()

	for i := 0; i < n; i++ {
		if len(m.T2F[i]) == 0 {
			continue
		}
		neighbors := r.Query(toRasterVec(targets[i]), rKernel)
		for _, j := range neighbors {
			if j < i {
				continue
			}
			w := targets[i].Time * targets[j].Time * kernel(distSq(targets[i], targets[j]))
			prox[i] += w
			if j != i {
				prox[j] += w
			}
		}
	}

	pri := make([]pqueue.Priority, n)
	for i := 0; i < n; i++ {
		pri[i] = pqEntry{Prox: prox[i], Pri: targets[i].Priority}
	}
	q := pqueue.NewFromPriorities(pri)

	var res model.ExposureResult
	for {
		top := q.TopPriority().(pqEntry)
		if top.Pri == Sentinel {
			break
		}
		i := q.Top() - 1

		if len(m.T2F[i]) == 0 {
			q.SetPriority(i+1, pqEntry{Prox: 0, Pri: Sentinel})
			continue
		}

		fiber := m.T2F[i][0]
		for _, f := range m.T2F[i][1:] {
			if len(m.F2T[f]) < len(m.F2T[fiber]) {
				fiber = f
			}
		}
		res.TargetIdx = append(res.TargetIdx, i)
		res.FiberIdx = append(res.FiberIdx, fiber)
		m.Cleanup(fiber, i)

		neighbors := r.Query(toRasterVec(targets[i]), rKernel)
		for _, j := range neighbors {
			if j == i {
				continue
			}
			if len(m.T2F[j]) == 0 && q.Priority(j+1).(pqEntry).Prox == 0 {
				continue
			}
			w := targets[j].Time * targets[i].Time * kernel(distSq(targets[i], targets[j]))
			cur := q.Priority(j + 1).(pqEntry)
			q.SetPriority(j+1, pqEntry{Prox: cur.Prox - w, Pri: cur.Pri})
		}
	}
	return res
}

func toRasterVec(t model.Target) raster.Vec2 { return raster.Vec2{X: t.Pos.X, Y: t.Pos.Y} }
