package assign

import (
	"testing"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
)

// targetsAt places n targets 2mm below the patrol center of fiber id,
// clear of the blocking dot 1.19mm above the center and out of reach
// of every neighboring fiber.
func targetsAt(id int, n int, priority int) []model.Target {
	center := geom.FiberPos(id)
	targets := make([]model.Target, n)
	for i := 0; i < n; i++ {
		targets[i] = model.Target{
			ID:       i,
			Pos:      geom.Vec2{X: center.X, Y: center.Y - 2 + float64(i)*0.01},
			Time:     10,
			Priority: priority,
		}
	}
	return targets
}

func TestParseKnownNames(t *testing.T) {
	cases := map[string]Kind{"naive": Naive, "draining": Draining, "new": DensityAware}
	for name, want := range cases {
		got, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", name, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseUnknownNameIsError(t *testing.T) {
	if _, err := Parse("bogus"); err == nil {
		t.Fatal("Parse(\"bogus\") expected error, got nil")
	}
}

func assertDistinct(t *testing.T, res model.ExposureResult) {
	t.Helper()
	seenF := make(map[int]bool)
	seenT := make(map[int]bool)
	for i := range res.TargetIdx {
		f, tg := res.FiberIdx[i], res.TargetIdx[i]
		if seenF[f] {
			t.Errorf("fiber %d assigned more than once", f)
		}
		seenF[f] = true
		if seenT[tg] {
			t.Errorf("target %d assigned more than once", tg)
		}
		seenT[tg] = true
	}
}

func TestNaiveSelectsMostUrgentPerFiber(t *testing.T) {
	targets := targetsAt(1000, 3, 0)
	targets[0].Priority = 3
	targets[1].Priority = 1
	targets[2].Priority = 2

	res := Run(Naive, targets)
	assertDistinct(t, res)
	if res.Len() == 0 {
		t.Fatal("expected at least one assignment")
	}
	if res.TargetIdx[0] != 1 {
		t.Errorf("TargetIdx[0] = %d, want 1 (the priority-1 target)", res.TargetIdx[0])
	}
}

func TestAllStrategiesProduceDistinctAssignments(t *testing.T) {
	targets := targetsAt(1000, 30, 1)
	for _, k := range []Kind{Naive, Draining, DensityAware} {
		res := Run(k, targets)
		assertDistinct(t, res)
	}
}

func TestDensityAwarePrefersDenseClusterOnTie(t *testing.T) {
	// A tight cluster of targets (all reachable by the same fibers) next
	// to an isolated target at equal priority: the cluster members carry
	// a strictly larger proximity score and must be assigned first.
	clusterCenter := geom.FiberPos(1000)
	isolatedCenter := geom.FiberPos(2000)

	var targets []model.Target
	for i := 0; i < 5; i++ {
		targets = append(targets, model.Target{
			ID:       i,
			Pos:      geom.Vec2{X: clusterCenter.X, Y: clusterCenter.Y - 2 + float64(i)*0.1},
			Time:     10,
			Priority: 1,
		})
	}
	targets = append(targets, model.Target{
		ID:       100,
		Pos:      geom.Vec2{X: isolatedCenter.X, Y: isolatedCenter.Y - 2},
		Time:     10,
		Priority: 1,
	})

	res := Run(DensityAware, targets)
	assertDistinct(t, res)
	if res.Len() == 0 {
		t.Fatal("expected at least one assignment")
	}

	if res.TargetIdx[0] >= 5 {
		t.Errorf("first assigned target = %d, want a cluster target (index < 5)", res.TargetIdx[0])
	}
}

func TestKernelIsZeroBeyondRadius(t *testing.T) {
	if got := kernel(rKernel * rKernel); got != 0 {
		t.Errorf("kernel(rKernel^2) = %v, want 0", got)
	}
	if got := kernel(rKernel*rKernel + 1); got != 0 {
		t.Errorf("kernel beyond radius = %v, want 0", got)
	}
	if got := kernel(0); got != rKernel*rKernel {
		t.Errorf("kernel(0) = %v, want %v", got, rKernel*rKernel)
	}
}
