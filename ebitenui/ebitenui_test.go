package ebitenui

import (
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/canopy"
)

func newUI() *canopy.UI {
	return canopy.NewUI(canopy.Size{Width: 100, Height: 100},
		canopy.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in   canopy.Color
		want color.RGBA
	}{
		{canopy.ColorWhite, color.RGBA{255, 255, 255, 255}},
		{canopy.ColorClear, color.RGBA{}},
		{canopy.Color{R: 1, A: 0.5}, color.RGBA{127, 0, 0, 127}},
		{canopy.Color{R: 2, G: -1, B: 0, A: 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := toRGBA(tt.in); got != tt.want {
			t.Errorf("toRGBA(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPremultiplied(t *testing.T) {
	r, g, b, a := premultiplied(canopy.Color{R: 1, G: 0.5, B: 0, A: 0.5})
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("premultiplied = %v %v %v %v", r, g, b, a)
	}
}

func TestRenderCopiesDrawList(t *testing.T) {
	ui := newUI()
	r := NewRenderer()
	ui.SetRenderer(r)
	n := ui.NewNode("box", nil)
	n.Frame = canopy.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	ui.Root().AddChild(n)
	ui.Tick(0)

	cmds := r.Commands()
	if len(cmds) != 2 || cmds[1].Name != "box" {
		t.Fatalf("Commands = %v", cmds)
	}
	if &cmds[0] == &ui.DrawList()[0] {
		t.Error("renderer must copy the draw list, not alias it")
	}
	n.RemoveFromParent()
	ui.Tick(0)
	if got := len(r.Commands()); got != 1 {
		t.Errorf("len(Commands) = %d, want 1", got)
	}
}

func TestTouchIDOffset(t *testing.T) {
	if touchID(0) == canopy.MouseTouchID {
		t.Error("touch id 0 must not collide with the mouse id")
	}
	if touchID(3)-touchID(0) != 3 {
		t.Error("touch ids should keep their spacing")
	}
}

func TestGameLayoutResizesRoot(t *testing.T) {
	ui := newUI()
	g := NewGame(ui, RunConfig{})
	w, h := g.Layout(320, 240)
	if w != 320 || h != 240 {
		t.Errorf("Layout = %d, %d", w, h)
	}
	if want := (canopy.Rect{Width: 320, Height: 240}); ui.Root().Frame != want {
		t.Errorf("root frame = %v, want %v", ui.Root().Frame, want)
	}
}

func TestApply(t *testing.T) {
	ui := newUI()
	if err := Apply(ui, RunConfig{Debug: true, LayoutOrder: "dependency"}); err != nil {
		t.Fatal(err)
	}
	if !ui.DebugMode() {
		t.Error("debug mode not applied")
	}
	if err := Apply(ui, RunConfig{LayoutOrder: "random"}); err == nil {
		t.Error("expected error for unknown layout order")
	}
	if err := Apply(ui, RunConfig{Script: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestApplyScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - action: wait\n    frames: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ui := newUI()
	if err := Apply(ui, RunConfig{Script: path}); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("steps:\n  - action: fly\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Apply(ui, RunConfig{Script: bad})
	if err == nil || !strings.Contains(err.Error(), "fly") {
		t.Errorf("err = %v, want unknown action", err)
	}
}

func TestFPSWidget(t *testing.T) {
	calls := 0
	orig := actualRates
	actualRates = func() (float64, float64) {
		calls++
		return 60, float64(calls)
	}
	defer func() { actualRates = orig }()

	ui := newUI()
	NewGame(ui, RunConfig{ShowFPS: true})
	w := ui.Root().FindByName("fps_widget")
	if w == nil {
		t.Fatal("ShowFPS should add the widget")
	}
	ui.Tick(0.25)
	if got := w.Paths[0]; got != "FPS: 60.0\nTPS: 1.0" {
		t.Errorf("text = %q", got)
	}
	ui.Tick(0.25)
	if got := w.Paths[0]; got != "FPS: 60.0\nTPS: 2.0" {
		t.Errorf("text after refresh = %q", got)
	}
	if want := (canopy.Rect{X: 4, Y: 4, Width: 100, Height: 32}); w.Frame != want {
		t.Errorf("frame = %v, want %v", w.Frame, want)
	}
	list := ui.DrawList()
	if list[len(list)-1].Name != "fps_widget" {
		t.Error("widget should draw last")
	}
}
