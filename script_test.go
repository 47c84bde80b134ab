package canopy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		substr string
	}{
		{"empty", "", "no steps"},
		{"no steps", "steps: []", "no steps"},
		{"unknown action", "steps:\n  - action: fly", `unknown action "fly"`},
		{"bad touches", "steps:\n  - action: touches\n    touches: \"1 2 q\"", "step 0"},
		{"invalid yaml", "steps: [", "parse script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q should contain %q", err, tt.substr)
			}
		})
	}
}

func TestLoadScriptJSON(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 1 || r.steps[0].X != 1 || r.steps[0].Y != 2 {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestScriptRunnerSteps(t *testing.T) {
	ui := newTestUI()
	var log []string
	touchNode(ui.Root(), "a", Rect{0, 0, 100, 100}, &log)

	r, err := LoadScript([]byte(`
steps:
  - action: tap
    x: 50
    y: 50
  - action: wait
    frames: 2
  - action: resize
    width: 320
    height: 240
`))
	if err != nil {
		t.Fatal(err)
	}
	ui.Tick(0)
	ui.SetScriptRunner(r)

	ui.Tick(0)
	if diff := cmp.Diff([]string{"a began"}, log); diff != "" {
		t.Errorf("frame 1 (-want +got):\n%s", diff)
	}
	ui.Tick(0)
	if diff := cmp.Diff([]string{"a began", "a ended"}, log); diff != "" {
		t.Errorf("frame 2 (-want +got):\n%s", diff)
	}
	ui.Tick(0)
	ui.Tick(0)
	if r.Done() {
		t.Fatal("runner finished before the resize step")
	}
	ui.Tick(0)
	if !r.Done() {
		t.Fatal("runner should be done after the resize step")
	}
	if want := (Rect{0, 0, 320, 240}); ui.Root().Frame != want {
		t.Errorf("root frame = %v, want %v", ui.Root().Frame, want)
	}
	ui.Tick(0) // no-op once done
}

func TestScriptRunnerTouchesAndDrag(t *testing.T) {
	ui := newTestUI()
	var log []string
	touchNode(ui.Root(), "a", Rect{0, 0, 100, 100}, &log)
	ui.Tick(0)

	r, err := LoadScript([]byte(`
steps:
  - action: touches
    touches: |
      10 10 b
      20 20 e
  - action: drag
    fromX: 10
    fromY: 10
    toX: 90
    toY: 90
    frames: 3
`))
	if err != nil {
		t.Fatal(err)
	}
	ui.SetScriptRunner(r)
	frames := 0
	for !r.Done() && frames < 20 {
		ui.Tick(0)
		frames++
	}
	// Two frames for the touch script, three for the drag.
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	want := []string{"a began", "a ended", "a began", "a moved", "a ended"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}
