package ebitenui

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canopy"
)

// fpsRefresh is the interval, in seconds, between FPS widget refreshes.
const fpsRefresh = 0.5

// actualRates is swapped out in tests.
var actualRates = func() (fps, tps float64) {
	return ebiten.ActualFPS(), ebiten.ActualTPS()
}

// NewFPSWidget adds a node to parent that displays the current FPS and TPS
// in its top-left corner. The text is refreshed every half second.
func NewFPSWidget(parent *canopy.Node) *canopy.Node {
	n := parent.UI().NewNode("fps_widget", nil)
	n.Priority = math.MaxInt64 // draw on top
	// Semi-transparent background for readability
	n.Color = canopy.Color{A: 0.5}
	n.Paths = []any{fpsText()}
	n.Place().Size(100, 32).TL(4)

	var elapsed float64
	n.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < fpsRefresh {
			return
		}
		elapsed = 0
		n.Paths[0] = fpsText()
	}
	parent.AddChild(n)
	return n
}

func fpsText() string {
	fps, tps := actualRates()
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}
