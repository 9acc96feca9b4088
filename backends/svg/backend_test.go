package svg

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/plotrec/recording"
)

func beginBackend(t *testing.T, surf recording.Surface) *Backend {
	t.Helper()
	b := New()
	if err := b.Begin(surf); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return b
}

func document(t *testing.T, b *Backend) string {
	t.Helper()
	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.String()
}

func testSurface() recording.Surface {
	return recording.Surface{
		CanvasWidth: 400, CanvasHeight: 300,
		PixelWidth: 400, PixelHeight: 300,
		PhysWidth: 4, PhysHeight: 3,
		DPI: 100,
	}
}

func TestRegistered(t *testing.T) {
	b, err := recording.NewBackend("svg")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Fatalf("NewBackend returned %T, want *Backend", b)
	}
}

func TestBeginValidatesSurface(t *testing.T) {
	b := New()
	if err := b.Begin(recording.Surface{CanvasWidth: 0, CanvasHeight: 10, PhysWidth: 1, PhysHeight: 1}); err == nil {
		t.Error("expected error for zero canvas width")
	}
	if err := b.Begin(recording.Surface{CanvasWidth: 10, CanvasHeight: 10, PhysWidth: 0, PhysHeight: 1}); err == nil {
		t.Error("expected error for zero physical width")
	}
}

func TestDrawBeforeBegin(t *testing.T) {
	b := New()
	p := &recording.Path{}
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	if err := b.FillPath(p, recording.SolidBrush{Color: recording.Black}, recording.FillRuleNonZero); !errors.Is(err, recording.ErrNotBegun) {
		t.Errorf("FillPath before Begin = %v, want ErrNotBegun", err)
	}
}

func TestDocumentDimensions(t *testing.T) {
	b := beginBackend(t, testSurface())
	out := document(t, b)
	if !strings.Contains(out, `width="4in"`) {
		t.Errorf("missing inch width attribute in %q", out)
	}
	if !strings.Contains(out, `height="3in"`) {
		t.Errorf("missing inch height attribute in %q", out)
	}
	if !strings.Contains(out, `viewBox="0 0 400 300"`) {
		t.Errorf("missing viewBox in %q", out)
	}
}

func TestFillPathEmitsPathElement(t *testing.T) {
	b := beginBackend(t, testSurface())
	p := &recording.Path{}
	p.MoveTo(10, 20)
	p.LineTo(110, 20)
	p.LineTo(110, 120)
	p.ClosePath()
	if err := b.FillPath(p, recording.SolidBrush{Color: recording.RGB(1, 0, 0)}, recording.FillRuleNonZero); err != nil {
		t.Fatalf("FillPath: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, "M10 20L110 20L110 120Z") {
		t.Errorf("missing path data in %q", out)
	}
	if !strings.Contains(out, `fill="#ff0000"`) {
		t.Errorf("missing fill color in %q", out)
	}
}

func TestTransformBakedIntoCoordinates(t *testing.T) {
	b := beginBackend(t, testSurface())
	b.SetTransform(recording.Translate(100, 50))
	p := &recording.Path{}
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.ClosePath()
	if err := b.FillPath(p, recording.SolidBrush{Color: recording.Black}, recording.FillRuleNonZero); err != nil {
		t.Fatalf("FillPath: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, "M100 50L110 50L110 60Z") {
		t.Errorf("transform not applied to coordinates in %q", out)
	}
	if strings.Contains(out, "transform=") {
		t.Errorf("unexpected transform attribute in %q", out)
	}
}

func TestStrokeStyle(t *testing.T) {
	b := beginBackend(t, testSurface())
	p := &recording.Path{}
	p.MoveTo(0, 100)
	p.LineTo(200, 100)
	st := recording.DefaultStroke()
	st.Width = 3
	st.Cap = recording.LineCapRound
	st.DashPattern = []float64{4, 2}
	if err := b.StrokePath(p, recording.SolidBrush{Color: recording.RGB(0, 0, 1)}, st); err != nil {
		t.Fatalf("StrokePath: %v", err)
	}
	out := document(t, b)
	for _, want := range []string{
		`stroke="#0000ff"`,
		`stroke-width="3"`,
		`stroke-linecap="round"`,
		`stroke-dasharray="4,2"`,
		`fill="none"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

func TestScaledStrokeWidth(t *testing.T) {
	b := beginBackend(t, testSurface())
	b.SetTransform(recording.Scale(2, 2))
	p := &recording.Path{}
	p.MoveTo(0, 0)
	p.LineTo(50, 0)
	st := recording.DefaultStroke()
	st.Width = 3
	if err := b.StrokePath(p, recording.SolidBrush{Color: recording.Black}, st); err != nil {
		t.Fatalf("StrokePath: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, `stroke-width="6"`) {
		t.Errorf("stroke width not scaled by transform in %q", out)
	}
}

func TestGradientFallsBackToSolid(t *testing.T) {
	b := beginBackend(t, testSurface())
	grad := &recording.LinearGradientBrush{Start: recording.Pt(0, 0), End: recording.Pt(100, 0)}
	grad.AddStop(0, recording.RGB(0, 1, 0))
	grad.AddStop(1, recording.RGB(0, 0, 1))
	p := &recording.Path{}
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(100, 100)
	p.ClosePath()
	err := b.FillPath(p, grad, recording.FillRuleNonZero)
	var warn *recording.Warning
	if !errors.As(err, &warn) {
		t.Fatalf("FillPath with gradient = %v, want Warning", err)
	}
	out := document(t, b)
	if !strings.Contains(out, `fill="#00ff00"`) {
		t.Errorf("gradient fallback should use first stop color, got %q", out)
	}
}

func TestClipEmitsClipPathGroup(t *testing.T) {
	b := beginBackend(t, testSurface())
	clip := &recording.Path{}
	clip.MoveTo(0, 0)
	clip.LineTo(200, 0)
	clip.LineTo(200, 150)
	clip.LineTo(0, 150)
	clip.ClosePath()
	b.SetClip(clip, recording.FillRuleNonZero)
	if err := b.FillRect(recording.NewRect(0, 0, 400, 300), recording.SolidBrush{Color: recording.Black}); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	b.ResetClip()
	out := document(t, b)
	if !strings.Contains(out, `<clipPath id="clip1"`) {
		t.Errorf("missing clipPath definition in %q", out)
	}
	if !strings.Contains(out, `clip-path="url(#clip1)"`) {
		t.Errorf("missing clip-path group reference in %q", out)
	}
}

func TestRestoreClosesClipGroups(t *testing.T) {
	b := beginBackend(t, testSurface())
	b.Save()
	clip := &recording.Path{}
	clip.MoveTo(0, 0)
	clip.LineTo(10, 0)
	clip.LineTo(10, 10)
	clip.ClosePath()
	b.SetClip(clip, recording.FillRuleNonZero)
	b.Restore()
	if b.groups != 0 {
		t.Errorf("open groups after Restore = %d, want 0", b.groups)
	}
	out := document(t, b)
	if strings.Count(out, "<g ") != strings.Count(out, "</g>") {
		t.Errorf("unbalanced groups in %q", out)
	}
}

func TestDrawImageEmbedsDataURI(t *testing.T) {
	b := beginBackend(t, testSurface())
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	b.SetTransform(recording.Scale(2, 2))
	if err := b.DrawImage(img, recording.NewRect(10, 20, 30, 15)); err != nil {
		t.Fatalf("DrawImage: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Errorf("missing embedded PNG data URI in %q", out)
	}
	// Placement is transformed; extents come out as whole units.
	if !strings.Contains(out, `width="60"`) || !strings.Contains(out, `height="30"`) {
		t.Errorf("image extents not scaled by transform in %q", out)
	}
}

func TestDrawNilImage(t *testing.T) {
	b := beginBackend(t, testSurface())
	var warn *recording.Warning
	if err := b.DrawImage(nil, recording.NewRect(0, 0, 10, 10)); !errors.As(err, &warn) {
		t.Errorf("DrawImage(nil) = %v, want Warning", err)
	}
}

func TestDrawText(t *testing.T) {
	b := beginBackend(t, testSurface())
	if err := b.DrawText("hello", 50, 60, "sans-serif", 12, recording.SolidBrush{Color: recording.Black}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, ">hello</text>") {
		t.Errorf("missing text element in %q", out)
	}
	if !strings.Contains(out, `font-family="sans-serif"`) || !strings.Contains(out, `font-size="12"`) {
		t.Errorf("missing font attributes in %q", out)
	}
}

func TestSaveTo(t *testing.T) {
	b := beginBackend(t, testSurface())
	if err := b.FillRect(recording.NewRect(10, 10, 50, 50), recording.SolidBrush{Color: recording.Black}); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if err := b.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := b.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Errorf("saved file is not a complete document")
	}
}

func TestSaveToBeforeEnd(t *testing.T) {
	b := beginBackend(t, testSurface())
	if err := b.SaveTo(filepath.Join(t.TempDir(), "out.svg")); !errors.Is(err, recording.ErrNotBegun) {
		t.Errorf("SaveTo before End = %v, want ErrNotBegun", err)
	}
}

func TestReplayRecording(t *testing.T) {
	rec := recording.NewRecorder(400, 300)
	rec.SetRGB(0.8, 0.2, 0.2)
	rec.DrawRectangle(20, 20, 100, 80)
	rec.Fill()
	rec.SetRGB(0, 0, 0)
	rec.SetLineWidth(2)
	rec.DrawLine(0, 150, 400, 150)
	rec.Stroke()
	snap := rec.Snapshot()

	b := beginBackend(t, testSurface())
	if err := snap.Replay(b); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	out := document(t, b)
	if !strings.Contains(out, `fill="#cc3333"`) {
		t.Errorf("missing fill from replayed rectangle in %q", out)
	}
	if !strings.Contains(out, `stroke-width="2"`) {
		t.Errorf("missing replayed stroke in %q", out)
	}
}
