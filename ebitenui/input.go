package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/canopy"
)

// touchIDBase offsets ebiten touch ids so they never collide with the mouse.
const touchIDBase = canopy.MouseTouchID + 1

var controlKeys = []struct {
	key  ebiten.Key
	code canopy.KeyCode
}{
	{ebiten.KeyBackspace, canopy.KeyBackspace},
	{ebiten.KeyEnter, canopy.KeyEnter},
	{ebiten.KeyEscape, canopy.KeyEscape},
	{ebiten.KeyTab, canopy.KeyTab},
	{ebiten.KeyArrowLeft, canopy.KeyLeft},
	{ebiten.KeyArrowRight, canopy.KeyRight},
	{ebiten.KeyArrowUp, canopy.KeyUp},
	{ebiten.KeyArrowDown, canopy.KeyDown},
}

// Input is the canopy input collaborator for Ebitengine. Poll converts this
// tick's mouse, touch and keyboard state into canopy touches and key events.
// The left mouse button is reported as touch canopy.MouseTouchID.
type Input struct {
	mouseDown bool
	mousePos  canopy.Point

	touchPos map[ebiten.TouchID]canopy.Point
	idBuf    []ebiten.TouchID
	chars    []rune
}

// NewInput creates an input poller.
func NewInput() *Input {
	return &Input{touchPos: make(map[ebiten.TouchID]canopy.Point)}
}

// Poll reads input state and injects it into ui. Call once per tick before
// UI.Tick.
func (in *Input) Poll(ui *canopy.UI) {
	in.pollMouse(ui)
	in.pollTouches(ui)
	in.pollKeys(ui)
}

// pollMouse handles the left mouse button.
func (in *Input) pollMouse(ui *canopy.UI) {
	mx, my := ebiten.CursorPosition()
	pos := canopy.Point{X: float64(mx), Y: float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !in.mouseDown:
		in.mouseDown = true
		ui.Inject(canopy.Touch{ID: canopy.MouseTouchID, Position: pos, Phase: canopy.Began})
	case pressed && pos != in.mousePos:
		ui.Inject(canopy.Touch{ID: canopy.MouseTouchID, Position: pos, Phase: canopy.Moved})
	case !pressed && in.mouseDown:
		in.mouseDown = false
		ui.Inject(canopy.Touch{ID: canopy.MouseTouchID, Position: pos, Phase: canopy.Ended})
	}
	in.mousePos = pos
}

// pollTouches handles touch screens.
func (in *Input) pollTouches(ui *canopy.UI) {
	in.idBuf = inpututil.AppendJustReleasedTouchIDs(in.idBuf[:0])
	for _, tid := range in.idBuf {
		x, y := inpututil.TouchPositionInPreviousTick(tid)
		delete(in.touchPos, tid)
		ui.Inject(canopy.Touch{ID: touchID(tid), Position: canopy.Point{X: float64(x), Y: float64(y)}, Phase: canopy.Ended})
	}

	in.idBuf = inpututil.AppendJustPressedTouchIDs(in.idBuf[:0])
	for _, tid := range in.idBuf {
		x, y := ebiten.TouchPosition(tid)
		pos := canopy.Point{X: float64(x), Y: float64(y)}
		in.touchPos[tid] = pos
		ui.Inject(canopy.Touch{ID: touchID(tid), Position: pos, Phase: canopy.Began})
	}

	in.idBuf = ebiten.AppendTouchIDs(in.idBuf[:0])
	for _, tid := range in.idBuf {
		prev, ok := in.touchPos[tid]
		if !ok {
			continue
		}
		x, y := ebiten.TouchPosition(tid)
		pos := canopy.Point{X: float64(x), Y: float64(y)}
		if pos != prev {
			in.touchPos[tid] = pos
			ui.Inject(canopy.Touch{ID: touchID(tid), Position: pos, Phase: canopy.Moved})
		}
	}
}

func (in *Input) pollKeys(ui *canopy.UI) {
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		ui.KeyPress(canopy.KeyEvent{Char: r})
	}
	for _, k := range controlKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			ui.KeyPress(canopy.KeyEvent{Code: k.code})
		}
	}
}

func touchID(tid ebiten.TouchID) uint64 {
	return touchIDBase + uint64(tid)
}
