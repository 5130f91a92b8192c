// Package model holds the data types shared across the fiber
// assignment core: targets, exposure results, and the small value
// types the catalog, incidence, assigner, and planner packages all
// operate on.
package model

import "github.com/fiberplan/fiberplan/internal/geom"

// Target is one catalog entry. ID and Priority are immutable for the
// lifetime of a Target. The outer planning loop decrements Time, on its
// own copy of the catalog, as observation time accrues; Pos is rewritten
// to focal-plane millimeters only in the Clone that each exposure
// candidate evaluates, never in the catalog itself.
type Target struct {
	// ID is the catalog identifier (the integer following the "ID"
	// prefix in the ASCII catalog format).
	ID int
	// Pos is the target's sky position in degrees (RA, DEC) until a
	// focal-plane transform is applied, after which it holds
	// millimeters on the focal plane.
	Pos geom.Vec2
	// Time is the remaining required integration time, in seconds.
	Time float64
	// Priority is the urgency class; smaller values are more urgent.
	Priority int
}

// Clone returns a copy of targets, safe to mutate (e.g. via a
// focal-plane transform) without affecting the original catalog.
func Clone(targets []Target) []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// ExposureResult holds one exposure's chosen assignments as two
// parallel, equal-length sequences of target and fiber indices.
type ExposureResult struct {
	TargetIdx []int
	FiberIdx  []int
}

// Len returns the number of assignments in the result.
func (r ExposureResult) Len() int { return len(r.TargetIdx) }
