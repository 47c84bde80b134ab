package ebitenui

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canopy"
)

// RunConfig configures the window and frame loop started by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS adds an FPS widget to the root; see NewFPSWidget.
	ShowFPS bool
	// Debug turns on canopy debug mode.
	Debug bool
	// LayoutOrder is "registration" (default) or "dependency".
	LayoutOrder string
	// Script, if set, is a YAML script file replayed through the UI.
	Script string
	// Background fills the screen before the draw list.
	Background canopy.Color
}

// Game adapts a canopy UI to ebiten.Game. Use it directly to embed a UI in
// an existing game loop, or call Run.
type Game struct {
	UI       *canopy.UI
	Input    *Input
	Renderer *Renderer
	Config   RunConfig

	width, height int
}

// NewGame wires ui to a fresh Input and Renderer.
func NewGame(ui *canopy.UI, cfg RunConfig) *Game {
	r := NewRenderer()
	ui.SetRenderer(r)
	if cfg.ShowFPS {
		NewFPSWidget(ui.Root())
	}
	return &Game{UI: ui, Input: NewInput(), Renderer: r, Config: cfg}
}

// Update polls input and runs one canopy frame.
func (g *Game) Update() error {
	g.Input.Poll(g.UI)
	g.UI.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw paints the last frame's draw list.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.Config.Background.IsVisible() {
		screen.Fill(toRGBA(g.Config.Background))
	}
	g.Renderer.Draw(screen)
}

// Layout keeps the root frame equal to the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.UI.Resize(canopy.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives ui until the window closes.
func Run(ui *canopy.UI, cfg RunConfig) error {
	if err := Apply(ui, cfg); err != nil {
		return err
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(NewGame(ui, cfg)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Apply sets the debug mode, layout order and script named by cfg on ui.
func Apply(ui *canopy.UI, cfg RunConfig) error {
	if cfg.Debug {
		ui.SetDebugMode(true)
	}
	switch cfg.LayoutOrder {
	case "", "registration":
		ui.SetLayoutOrder(canopy.LayoutRegistrationOrder)
	case "dependency":
		ui.SetLayoutOrder(canopy.LayoutDependencyOrder)
	default:
		return fmt.Errorf("unknown layout order %q", cfg.LayoutOrder)
	}
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := canopy.LoadScript(data)
		if err != nil {
			return err
		}
		ui.SetScriptRunner(runner)
	}
	return nil
}
