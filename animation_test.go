package canopy

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestAnimateFrameReachesTarget(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	n.Frame = Rect{0, 0, 10, 10}

	a := ui.Animate(AnimateFrame(n, Rect{100, 200, 50, 60}, 1.0, ease.Linear))
	// Exact halves avoid float32 accumulation drift.
	ui.Tick(0.5)
	if a.Finished() {
		t.Fatal("finished after half the duration")
	}
	if !near(n.Frame.X, 50) || !near(n.Frame.Width, 30) {
		t.Errorf("midway frame = %v, want X ~50, Width ~30", n.Frame)
	}
	ui.Tick(0.5)
	if !a.Finished() {
		t.Fatal("expected Finished after full duration")
	}
	want := Rect{100, 200, 50, 60}
	if !near(n.Frame.X, want.X) || !near(n.Frame.Y, want.Y) ||
		!near(n.Frame.Width, want.Width) || !near(n.Frame.Height, want.Height) {
		t.Errorf("frame = %v, want %v", n.Frame, want)
	}
	if ui.Animations() != 0 {
		t.Errorf("Animations = %d, want 0", ui.Animations())
	}
}

func TestAnimationHoldsExactEndValue(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	// None of these survive a round trip through float32.
	want := Rect{0.1, 333.3, 12345.678, 1}
	a := ui.Animate(AnimateFrame(n, want, 0.5, nil))
	for i := 0; i < 4 && !a.Finished(); i++ {
		ui.Tick(0.2)
	}
	if !a.Finished() {
		t.Fatal("animation did not finish")
	}
	if n.Frame != want {
		t.Errorf("frame = %v, want exactly %v", n.Frame, want)
	}
	if corner := (Point{want.MaxX(), want.MaxY()}); !n.AbsoluteFrame().Contains(corner) {
		t.Errorf("absolute frame %v should contain %v", n.AbsoluteFrame(), corner)
	}

	v := 0.0
	b := AnimateValue(nil, &v, 0.7, 1, ease.OutQuad)
	b.Advance(2)
	if !b.Finished() || v != 0.7 {
		t.Errorf("Finished = %v, v = %v; want true, 0.7", b.Finished(), v)
	}
}

func TestAnimateFrameOverridesPlacer(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	n.Place().Size(10, 10).TL(0)
	ui.Tick(0)

	ui.Animate(AnimateOrigin(n, Point{100, 100}, 1.0, ease.Linear))
	ui.Tick(1.0)
	if !near(n.Frame.X, 100) || !near(n.AbsoluteFrame().X, 100) {
		t.Errorf("frame = %v, absolute = %v; want X ~100", n.Frame, n.AbsoluteFrame())
	}
}

func TestAnimateColor(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	n.Color = ColorBlack
	ui.Animate(AnimateColor(n, ColorWhite, 1.0, nil))
	ui.Tick(0.5)
	if !near(n.Color.R, 0.5) || !near(n.Color.A, 1) {
		t.Errorf("midway color = %+v", n.Color)
	}
}

func TestAnimateValueUnbound(t *testing.T) {
	v := 0.0
	a := AnimateValue(nil, &v, 10, 2.0, ease.Linear)
	a.Advance(1)
	if !near(v, 5) {
		t.Errorf("v = %v, want ~5", v)
	}
	a.Advance(1)
	if !a.Finished() || !near(v, 10) {
		t.Errorf("Finished = %v, v = %v; want true, ~10", a.Finished(), v)
	}
}

func TestAnimationStopsWhenNodeDestroyed(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	owned := 0.0
	a := ui.Animate(AnimateValue(n, &owned, 10, 1.0, ease.Linear))
	n.RemoveFromParent()
	ui.Tick(0.5)
	if !a.Finished() {
		t.Error("animation should finish when its node is destroyed")
	}
	if owned != 0 {
		t.Errorf("value written after destruction: %v", owned)
	}
	if ui.Animations() != 0 {
		t.Errorf("Animations = %d, want 0", ui.Animations())
	}
}

func TestAnimationHoldsWhileHidden(t *testing.T) {
	ui := newTestUI()
	p := addNode(ui.Root(), "p")
	n := addNode(p, "n")
	a := ui.Animate(AnimateFrame(n, Rect{100, 0, 0, 0}, 1.0, ease.Linear))
	p.SetHidden(true)
	ui.Tick(0.5)
	if n.Frame.X != 0 || a.Finished() {
		t.Errorf("hidden animation advanced: X = %v, Finished = %v", n.Frame.X, a.Finished())
	}
	if ui.Animations() != 1 {
		t.Errorf("Animations = %d, want 1", ui.Animations())
	}
	p.SetHidden(false)
	ui.Tick(1.0)
	if !a.Finished() || !near(n.Frame.X, 100) {
		t.Errorf("Finished = %v, X = %v", a.Finished(), n.Frame.X)
	}
}

func TestAnimationStop(t *testing.T) {
	ui := newTestUI()
	n := addNode(ui.Root(), "n")
	a := ui.Animate(AnimateOrigin(n, Point{100, 100}, 1.0, ease.Linear))
	ui.Tick(0.5)
	x := n.Frame.X
	a.Stop()
	ui.Tick(0.5)
	if n.Frame.X != x {
		t.Errorf("X moved from %v to %v after Stop", x, n.Frame.X)
	}
	if ui.Animations() != 0 {
		t.Errorf("Animations = %d, want 0", ui.Animations())
	}

	// Stop on a hidden node's animation also drops it.
	n.SetHidden(true)
	b := ui.Animate(AnimateOrigin(n, Point{0, 0}, 1.0, ease.Linear))
	b.Stop()
	ui.Tick(0)
	if ui.Animations() != 0 {
		t.Errorf("Animations = %d, want 0", ui.Animations())
	}
}
