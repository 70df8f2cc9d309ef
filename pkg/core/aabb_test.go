package core

import (
	"math"
	"testing"
)

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, -1, -1), NewVec3(0.5, 0.5, 0.5))

	got := a.Union(b)
	want := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	if got != want {
		t.Errorf("Union: got %v, want %v", got, want)
	}
}

func TestAABB_Union_Empty(t *testing.T) {
	box := NewAABB(NewVec3(1, 2, 3), NewVec3(4, 5, 6))
	got := EmptyAABB().Union(box)
	if got != box {
		t.Errorf("Union(empty, x): got %v, want %v", got, box)
	}
}

func TestAABB_SurfaceArea(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	want := 2.0 * (1*2 + 2*3 + 3*1)
	if got := box.SurfaceArea(); math.Abs(got-want) > 1e-12 {
		t.Errorf("SurfaceArea: got %v, want %v", got, want)
	}
}

func TestAABB_SurfaceArea_Empty(t *testing.T) {
	if got := EmptyAABB().SurfaceArea(); got != 0 {
		t.Errorf("SurfaceArea of empty AABB: got %v, want 0", got)
	}
}

func TestAABB_LargestAxis(t *testing.T) {
	cases := []struct {
		box  AABB
		want int
	}{
		{NewAABB(NewVec3(0, 0, 0), NewVec3(5, 1, 1)), 0},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 1)), 1},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 5)), 2},
	}
	for _, c := range cases {
		if got := c.box.LargestAxis(); got != c.want {
			t.Errorf("LargestAxis(%v): got %d, want %d", c.box, got, c.want)
		}
	}
}

func TestAABB_Contains(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if !box.Contains(NewVec3(0.5, 0.5, 0.5)) {
		t.Error("expected center to be contained")
	}
	if !box.Contains(NewVec3(0, 0, 0)) {
		t.Error("expected min corner to be contained (inclusive)")
	}
	if box.Contains(NewVec3(1.1, 0, 0)) {
		t.Error("expected point outside box not to be contained")
	}
}

func TestAABB_IsEmpty(t *testing.T) {
	if !EmptyAABB().IsEmpty() {
		t.Error("EmptyAABB should report IsEmpty")
	}
	if NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsEmpty() {
		t.Error("a normal box should not report IsEmpty")
	}
}

func TestAABB_IsFinite(t *testing.T) {
	if EmptyAABB().IsFinite() {
		t.Error("the empty AABB should not be finite")
	}
	if !NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).IsFinite() {
		t.Error("a normal box should be finite")
	}
	nanBox := NewAABB(NewVec3(math.NaN(), 0, 0), NewVec3(1, 1, 1))
	if nanBox.IsFinite() {
		t.Error("a box containing NaN should not be finite")
	}
}

func TestAABB_Center(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 4, 6))
	want := NewVec3(1, 2, 3)
	if got := box.Center(); got != want {
		t.Errorf("Center: got %v, want %v", got, want)
	}
}
