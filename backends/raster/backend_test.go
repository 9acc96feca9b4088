package raster

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/gogpu/plotrec/recording"
)

func beginBackend(t *testing.T, canvasW, canvasH float64, pxW, pxH int) *Backend {
	t.Helper()
	b := New()
	err := b.Begin(recording.Surface{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		PixelWidth:   pxW,
		PixelHeight:  pxH,
	})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return b
}

func pixelAt(t *testing.T, img image.Image, x, y int) (r, g, b, a uint32) {
	t.Helper()
	return img.At(x, y).RGBA()
}

func TestRegisteredAsRaster(t *testing.T) {
	b, err := recording.NewBackend("raster")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Errorf("registry returned %T", b)
	}
}

func TestBeginValidation(t *testing.T) {
	b := New()
	if err := b.Begin(recording.Surface{CanvasWidth: 10, CanvasHeight: 10}); err == nil {
		t.Error("Begin should reject zero pixel size")
	}
	if err := b.Begin(recording.Surface{PixelWidth: 10, PixelHeight: 10}); err == nil {
		t.Error("Begin should reject zero canvas size")
	}
}

func TestBeginWhiteBackground(t *testing.T) {
	b := beginBackend(t, 10, 10, 10, 10)
	r, g, bl, _ := pixelAt(t, b.Image(), 5, 5)
	if r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Errorf("background pixel = %v,%v,%v, want white", r, g, bl)
	}
}

func TestFillRectPixels(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	err := b.FillRect(recording.NewRect(10, 10, 30, 30), recording.NewSolidBrush(recording.RGB(1, 0, 0)))
	if err != nil {
		t.Fatalf("FillRect: %v", err)
	}

	r, g, _, _ := pixelAt(t, b.Image(), 25, 25)
	if r < 0xf000 || g > 0x0fff {
		t.Errorf("inside pixel = r%v g%v, want red", r, g)
	}
	r, g, bl, _ := pixelAt(t, b.Image(), 60, 60)
	if r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Error("outside pixel should stay white")
	}
}

func TestFillScalesCanvasToPixels(t *testing.T) {
	// Canvas 100x100 rendered to 200x200: canvas coordinates double.
	b := beginBackend(t, 100, 100, 200, 200)
	if err := b.FillRect(recording.NewRect(0, 0, 50, 50), recording.NewSolidBrush(recording.Black)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}

	if r, _, _, _ := pixelAt(t, b.Image(), 99, 99); r != 0 {
		t.Error("pixel (99,99) should be filled after 2x scale")
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 150, 150); r != 0xffff {
		t.Error("pixel (150,150) should be empty after 2x scale")
	}
}

func TestStrokeLine(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	p := recording.NewPath()
	p.MoveTo(10, 50)
	p.LineTo(90, 50)
	err := b.StrokePath(p, recording.NewSolidBrush(recording.Black), recording.Stroke{Width: 4})
	if err != nil {
		t.Fatalf("StrokePath: %v", err)
	}

	if r, _, _, _ := pixelAt(t, b.Image(), 50, 50); r != 0 {
		t.Error("line center should be black")
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 50, 20); r != 0xffff {
		t.Error("pixel far from the line should stay white")
	}
}

func TestStrokeDashedLineHasGaps(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	p := recording.NewPath()
	p.MoveTo(0, 50)
	p.LineTo(100, 50)
	err := b.StrokePath(p, recording.NewSolidBrush(recording.Black), recording.Stroke{
		Width:       2,
		DashPattern: []float64{10, 10},
	})
	if err != nil {
		t.Fatalf("StrokePath: %v", err)
	}

	// First dash covers x in [0,10), first gap [10,20).
	if r, _, _, _ := pixelAt(t, b.Image(), 5, 50); r != 0 {
		t.Error("dash segment should be drawn")
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 15, 50); r != 0xffff {
		t.Error("dash gap should stay white")
	}
}

func TestEmptyPathWarns(t *testing.T) {
	b := beginBackend(t, 10, 10, 10, 10)
	err := b.FillPath(recording.NewPath(), recording.NewSolidBrush(recording.Black), recording.FillRuleNonZero)
	var w *recording.Warning
	if !errors.As(err, &w) {
		t.Errorf("FillPath(empty) = %v, want *Warning", err)
	}
}

func TestGradientFallsBackWithWarning(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	g := recording.NewLinearGradientBrush(0, 0, 100, 0).
		AddStop(0, recording.RGB(0, 0, 1)).
		AddStop(1, recording.RGB(1, 0, 0))
	p := recording.NewRect(0, 0, 100, 100).Path()

	err := b.FillPath(p, g, recording.FillRuleNonZero)
	var w *recording.Warning
	if !errors.As(err, &w) {
		t.Fatalf("gradient fill = %v, want *Warning", err)
	}
	// Fallback color is the first stop (blue).
	_, _, bl, _ := pixelAt(t, b.Image(), 50, 50)
	if bl < 0xf000 {
		t.Error("gradient fallback should fill with first stop color")
	}
}

func TestClipRestrictsFill(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	clip := recording.NewRect(0, 0, 50, 100).Path()
	b.SetClip(clip, recording.FillRuleNonZero)

	if err := b.FillRect(recording.NewRect(0, 0, 100, 100), recording.NewSolidBrush(recording.Black)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 25, 50); r != 0 {
		t.Error("pixel inside clip should be filled")
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 75, 50); r != 0xffff {
		t.Error("pixel outside clip should stay white")
	}

	b.ResetClip()
	if err := b.FillRect(recording.NewRect(60, 0, 10, 100), recording.NewSolidBrush(recording.Black)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 65, 50); r != 0 {
		t.Error("fill after ResetClip should not be clipped")
	}
}

func TestSaveRestoreClipAndTransform(t *testing.T) {
	b := beginBackend(t, 100, 100, 100, 100)
	b.Save()
	b.SetClip(recording.NewRect(0, 0, 10, 10).Path(), recording.FillRuleNonZero)
	b.SetTransform(recording.Translate(50, 50))
	b.Restore()

	// Clip and transform are back to their defaults.
	if err := b.FillRect(recording.NewRect(80, 80, 10, 10), recording.NewSolidBrush(recording.Black)); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if r, _, _, _ := pixelAt(t, b.Image(), 85, 85); r != 0 {
		t.Error("restore should drop the clip and transform")
	}
}

func TestSaveToFormats(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".png", ".jpeg", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			b := beginBackend(t, 40, 30, 40, 30)
			if err := b.End(); err != nil {
				t.Fatalf("End: %v", err)
			}
			path := filepath.Join(dir, "out"+ext)
			if err := b.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()

			var cfg image.Config
			switch ext {
			case ".png":
				cfg, err = png.DecodeConfig(f)
			case ".jpeg":
				_, format, derr := image.Decode(f)
				if derr != nil {
					t.Fatalf("decode: %v", derr)
				}
				if format != "jpeg" {
					t.Fatalf("format = %q, want jpeg", format)
				}
				return
			case ".tiff":
				var img image.Image
				img, err = tiff.Decode(f)
				if err == nil {
					cfg.Width = img.Bounds().Dx()
					cfg.Height = img.Bounds().Dy()
				}
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if cfg.Width != 40 || cfg.Height != 30 {
				t.Errorf("decoded size = %dx%d, want 40x30", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestSaveToUnsupportedExtension(t *testing.T) {
	b := beginBackend(t, 10, 10, 10, 10)
	if err := b.SaveTo(filepath.Join(t.TempDir(), "out.bmp")); err == nil {
		t.Error("SaveTo should reject unsupported extensions")
	}
}

func TestReplayRecordingEndToEnd(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Clear(recording.White)
	rec.SetRGB(0, 0, 1)
	rec.DrawRectangle(20, 20, 60, 60)
	rec.Fill()

	b := beginBackend(t, 100, 100, 100, 100)
	if err := rec.Snapshot().Replay(b); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	_, _, bl, _ := pixelAt(t, b.Image(), 50, 50)
	if bl < 0xf000 {
		t.Error("replayed fill missing")
	}
}
