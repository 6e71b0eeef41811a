package holofoil

import "testing"

func TestVectorArithmetic(t *testing.T) {
	v := Vector{X: 1, Y: 2, Z: 3}
	w := Vector{X: 4, Y: -5, Z: 6}

	if got := v.Add(w); got != (Vector{X: 5, Y: -3, Z: 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Mul(2); got != (Vector{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Mul = %v", got)
	}
	if got := v.Div(2); got != (Vector{X: 0.5, Y: 1, Z: 1.5}) {
		t.Errorf("Div = %v", got)
	}
	if got := v.Dot(w); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
}

func TestVectorCross(t *testing.T) {
	if got := UnitX.Cross(UnitY); got != UnitZ {
		t.Errorf("X cross Y = %v, want %v", got, UnitZ)
	}
	if got := UnitY.Cross(UnitZ); got != UnitX {
		t.Errorf("Y cross Z = %v, want %v", got, UnitX)
	}
	if got := UnitZ.Cross(UnitX); got != UnitY {
		t.Errorf("Z cross X = %v, want %v", got, UnitY)
	}

	// Anti-commutative.
	v := Vector{X: 1, Y: 2, Z: 3}
	w := Vector{X: -2, Y: 0.5, Z: 4}
	a := v.Cross(w)
	b := w.Cross(v).Mul(-1)
	if a != b {
		t.Errorf("cross not anti-commutative: %v vs %v", a, b)
	}
}

func TestVectorCrossOrthogonal(t *testing.T) {
	v := Vector{X: 0.3, Y: -1.2, Z: 2.5}
	w := Vector{X: 1.7, Y: 0.4, Z: -0.9}
	c := v.Cross(w)

	if dot := c.Dot(v); dot > 1e-5 || dot < -1e-5 {
		t.Errorf("cross not orthogonal to v: dot = %v", dot)
	}
	if dot := c.Dot(w); dot > 1e-5 || dot < -1e-5 {
		t.Errorf("cross not orthogonal to w: dot = %v", dot)
	}
}
