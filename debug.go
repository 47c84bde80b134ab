package canopy

import (
	"fmt"
	"time"
)

// AssertionError is the panic value raised for structural errors in debug
// mode.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "canopy: " + e.Msg
}

// structural reports a misuse of the tree (destroyed nodes, cycles, dead
// placer references). Debug mode panics; otherwise the operation degrades to a
// no-op and the problem is logged.
func (ui *UI) structural(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if ui.debug {
		panic(&AssertionError{Msg: msg})
	}
	ui.logger.Warn("structural error ignored", "error", msg)
}

// guard runs fn and isolates a panic to node n so one faulty view cannot
// stop the frame. Assertion panics in debug mode are re-raised.
func (ui *UI) guard(n *Node, phase string, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*AssertionError); ok && ui.debug {
			panic(r)
		}
		name := ""
		if n != nil {
			name = n.Name
		}
		ui.logger.Error("callback panicked", "node", name, "phase", phase, "panic", r)
	}()
	fn()
}

// debugStats holds per-frame timings. Only populated in debug mode.
type debugStats struct {
	layoutTime   time.Duration
	animateTime  time.Duration
	updateTime   time.Duration
	drawTime     time.Duration
	nodeCount    int
	commandCount int
	animations   int
}

func (ui *UI) debugLog(stats debugStats) {
	ui.logger.Debug("frame",
		"frame", ui.frame,
		"layout", stats.layoutTime,
		"animate", stats.animateTime,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"nodes", stats.nodeCount,
		"commands", stats.commandCount,
		"animations", stats.animations,
	)
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckTree warns when a node sits unusually deep or its parent has an
// unusually large child list.
func (ui *UI) debugCheckTree(n *Node) {
	if depth := n.Depth(); depth > debugMaxTreeDepth {
		ui.logger.Warn("tree depth exceeds threshold", "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
	if p := n.Parent(); p != nil && len(p.children) > debugMaxChildCount {
		ui.logger.Warn("child count exceeds threshold", "node", p.Name, "children", len(p.children), "threshold", debugMaxChildCount)
	}
}
