package raster

import (
	"math"
	"sort"
	"testing"
)

func TestQueryContainsSelf(t *testing.T) {
	pts := []Vec2{{0, 0}, {1, 1}, {5, 5}, {-3, 2}}
	r := New(pts, 10, 10)

	for i, p := range pts {
		res := r.Query(p, 0)
		found := false
		for _, k := range res {
			if k == i {
				found = true
			}
		}
		if !found {
			t.Errorf("point %d not found in its own zero-radius query", i)
		}
	}
}

func TestQueryMatchesBruteForce(t *testing.T) {
	pts := []Vec2{
		{0, 0}, {1, 0}, {0, 1}, {2, 2}, {-1, -1}, {3.5, -2}, {0.1, 0.1},
	}
	r := New(pts, 4, 4)
	center := Vec2{0.5, 0.5}
	rad := 2.0

	got := r.Query(center, rad)
	sort.Ints(got)

	var want []int
	for i, p := range pts {
		if center.DistSq(p) <= rad*rad {
			want = append(want, i)
		}
	}
	sort.Ints(want)

	if !equalInts(got, want) {
		t.Errorf("Query(%v, %v) = %v, want %v", center, rad, got, want)
	}
}

func TestAnyInMatchesQueryNonEmpty(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 10}, {20, -5}}
	r := New(pts, 5, 5)

	cases := []struct {
		c   Vec2
		rad float64
	}{
		{Vec2{0, 0}, 0.5},
		{Vec2{100, 100}, 1},
		{Vec2{10, 10}, 0.01},
	}
	for _, c := range cases {
		gotAny := r.AnyIn(c.c, c.rad)
		gotQuery := len(r.Query(c.c, c.rad)) > 0
		if gotAny != gotQuery {
			t.Errorf("AnyIn(%v,%v)=%v, but Query non-empty=%v", c.c, c.rad, gotAny, gotQuery)
		}
	}
}

func TestSinglePointDegenerateBoundingBox(t *testing.T) {
	pts := []Vec2{{3, 3}}
	r := New(pts, 10, 10)
	if !r.AnyIn(Vec2{3, 3}, 0) {
		t.Fatal("expected the single point to be found at zero radius")
	}
	if r.AnyIn(Vec2{3, 3}, -1) {
		t.Fatal("negative radius should never match")
	}
}

func TestQueryOutsideBoundingBoxByMoreThanRadius(t *testing.T) {
	pts := []Vec2{{0, 0}, {1, 1}}
	r := New(pts, 5, 5)
	far := Vec2{1000, 1000}
	if res := r.Query(far, 1); len(res) != 0 {
		t.Errorf("expected no results far outside bounding box, got %v", res)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDistSq(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{3, 4}
	if got := a.DistSq(b); math.Abs(got-25) > 1e-12 {
		t.Errorf("DistSq = %v, want 25", got)
	}
}
