package recording

import (
	"image"
	"testing"
)

func TestPoolAddPathClones(t *testing.T) {
	pool := NewResourcePool()
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 10)

	ref := pool.AddPath(p)

	// Mutating the caller's path must not affect the pooled copy.
	p.LineTo(99, 99)

	pooled := pool.Path(ref)
	if got := len(pooled.Elements()); got != 2 {
		t.Errorf("pooled path has %d elements, want 2", got)
	}
}

func TestPoolOutOfRangeRefs(t *testing.T) {
	pool := NewResourcePool()
	if pool.Path(5) != nil {
		t.Error("Path(5) on empty pool should be nil")
	}
	if pool.Brush(5) != nil {
		t.Error("Brush(5) on empty pool should be nil")
	}
	if pool.Image(5) != nil {
		t.Error("Image(5) on empty pool should be nil")
	}
}

func TestPoolClone(t *testing.T) {
	pool := NewResourcePool()
	p := NewPath()
	p.MoveTo(1, 1)
	pool.AddPath(p)
	pool.AddBrush(NewSolidBrush(Black))
	pool.AddImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))

	c := pool.Clone()
	if c.PathCount() != 1 || c.BrushCount() != 1 || c.ImageCount() != 1 {
		t.Fatalf("clone counts = %d/%d/%d", c.PathCount(), c.BrushCount(), c.ImageCount())
	}

	// Adding to the original must not grow the clone.
	pool.AddBrush(NewSolidBrush(White))
	if c.BrushCount() != 1 {
		t.Error("clone shares brush slice with original")
	}

	// Pooled paths are independent copies.
	pool.Path(0).LineTo(50, 50)
	if got := len(c.Path(0).Elements()); got != 1 {
		t.Errorf("clone path has %d elements, want 1", got)
	}
}

func TestBrushColor(t *testing.T) {
	if got := BrushColor(NewSolidBrush(RGB(1, 0, 0))); got != RGB(1, 0, 0) {
		t.Errorf("BrushColor(solid) = %v", got)
	}
	g := NewLinearGradientBrush(0, 0, 1, 1).AddStop(0, White).AddStop(1, Black)
	if got := BrushColor(g); got != White {
		t.Errorf("BrushColor(gradient) = %v, want first stop", got)
	}
	if got := BrushColor(NewLinearGradientBrush(0, 0, 1, 1)); got != Black {
		t.Errorf("BrushColor(empty gradient) = %v, want Black", got)
	}
}
