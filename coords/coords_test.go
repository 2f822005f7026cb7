package coords

import (
	"math"
	"testing"
)

func TestToPoints(t *testing.T) {
	cases := []struct {
		v    float64
		u    Unit
		want float64
	}{
		{10, UnitPoints, 10},
		{10, "", 10},
		{1, UnitInches, 72},
		{7.1, UnitInches, 511.2},
		{2.54, UnitCm, 72},
		{1, UnitCm, 72 / 2.54},
	}
	for _, c := range cases {
		got := ToPoints(c.v, c.u)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ToPoints(%v, %q) = %v, want %v", c.v, c.u, got, c.want)
		}
	}
}

func TestUnitValid(t *testing.T) {
	for _, u := range []Unit{UnitPoints, UnitInches, UnitCm, ""} {
		if !u.Valid() {
			t.Errorf("%q should be valid", u)
		}
	}
	for _, u := range []Unit{"px", "mm", "inches"} {
		if Unit(u).Valid() {
			t.Errorf("%q should be invalid", u)
		}
	}
}

func TestFromTopLeft(t *testing.T) {
	p := FromTopLeft(72, 72, LetterHeight)
	if p.X != 72 || p.Y != 720 {
		t.Fatalf("FromTopLeft = %+v, want {72 720}", p)
	}
}
