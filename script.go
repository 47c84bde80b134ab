package canopy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a UI script.
type scriptStep struct {
	Action  string  `yaml:"action"`
	Touches string  `yaml:"touches,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	FromX   float64 `yaml:"fromX,omitempty"`
	FromY   float64 `yaml:"fromY,omitempty"`
	ToX     float64 `yaml:"toX,omitempty"`
	ToY     float64 `yaml:"toY,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
	Width   float64 `yaml:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner replays scripted input across frames. Queued touches are
// dispatched one per frame, so a tap spans two frames and a drag spans
// frames frames. Attach to a UI via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pending   []Touch
	done      bool
}

// LoadScript parses a YAML script (JSON is accepted too) of the form
//
//	steps:
//	  - action: tap
//	    x: 100
//	    y: 200
//	  - action: wait
//	    frames: 3
//
// Actions are touches (a touch script, see InjectTouches), tap, drag
// (fromX, fromY, toX, toY, frames), wait (frames) and resize (width, height).
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "touches":
			if _, err := ParseTouches(st.Touches); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		case "tap", "drag", "wait", "resize":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner, replacing any previous one. The runner
// is stepped at the start of every Tick. Pass nil to detach.
func (ui *UI) SetScriptRunner(r *ScriptRunner) {
	ui.runner = r
}

// Done reports whether every step ran and every queued touch was dispatched.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(ui *UI) {
	if r.done {
		return
	}
	// Drain queued touches before advancing.
	if len(r.pending) > 0 {
		t := r.pending[0]
		r.pending = r.pending[1:]
		ui.Inject(t)
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "touches":
		// Validated by LoadScript.
		touches, _ := ParseTouches(st.Touches)
		r.pending = append(r.pending, touches...)
	case "tap":
		r.pending = append(r.pending, tapTouches(Point{X: st.X, Y: st.Y})...)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		r.pending = append(r.pending, dragTouches(
			Point{X: st.FromX, Y: st.FromY}, Point{X: st.ToX, Y: st.ToY}, frames-2)...)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "resize":
		ui.Resize(Size{Width: st.Width, Height: st.Height})
	}

	// The first queued touch goes out on the frame that queued it.
	if len(r.pending) > 0 {
		t := r.pending[0]
		r.pending = r.pending[1:]
		ui.Inject(t)
	}
	r.checkDone()
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pending) == 0 {
		r.done = true
	}
}
