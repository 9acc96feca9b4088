package recording

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	x, y := m.Apply(3, 4)
	if !almostEqual(x, 3) || !almostEqual(y, 4) {
		t.Errorf("identity Apply(3,4) = (%v, %v)", x, y)
	}
}

func TestMatrixTranslateScale(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	x, y := m.Apply(1, 1)
	if !almostEqual(x, 12) || !almostEqual(y, 23) {
		t.Errorf("Apply(1,1) = (%v, %v), want (12, 23)", x, y)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	x, y := m.Apply(1, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 1) {
		t.Errorf("rotate 90: Apply(1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"uniform", Scale(2, 2), 2},
		{"non-uniform", Scale(2, 5), 5},
		{"rotation", Rotate(1.2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ScaleFactor(); !almostEqual(got, tt.want) {
				t.Errorf("ScaleFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 30x40", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("non-empty rect reported empty")
	}
	if !NewRect(0, 0, 0, 10).IsEmpty() {
		t.Error("zero-width rect should be empty")
	}

	p := r.Path()
	if len(p.Elements()) != 5 {
		t.Errorf("rect path has %d elements, want 5", len(p.Elements()))
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	p.LineTo(2, 2)
	p.QuadraticTo(3, 3, 4, 4)
	p.ClosePath()

	q := p.Transform(Scale(10, 10))
	mv := q.Elements()[0].(MoveTo)
	if !almostEqual(mv.Point.X, 10) || !almostEqual(mv.Point.Y, 10) {
		t.Errorf("transformed MoveTo = %v", mv.Point)
	}
	// Original untouched.
	mv0 := p.Elements()[0].(MoveTo)
	if !almostEqual(mv0.Point.X, 1) {
		t.Error("Transform mutated the original path")
	}
}
