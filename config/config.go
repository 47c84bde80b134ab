// Package config loads canopy run settings from an optional file and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/ebitenui"
)

// Config holds run configuration.
type Config struct {
	Window WindowConfig
	UI     UIConfig
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool `mapstructure:"show_fps"`
}

// UIConfig holds view tree settings.
type UIConfig struct {
	Debug       bool
	LayoutOrder string `mapstructure:"layout_order"`
	Script      string
	Background  string
}

// Load reads configuration from path (TOML, YAML or JSON, picked by
// extension) and the environment. path may be empty. Env var overrides use
// prefix CANOPY_, e.g. CANOPY_WINDOW_WIDTH.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("window.title", "canopy")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.show_fps", false)
	v.SetDefault("ui.debug", false)
	v.SetDefault("ui.layout_order", "registration")
	v.SetDefault("ui.script", "")
	v.SetDefault("ui.background", "white")

	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("CANOPY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.UI.LayoutOrder {
	case "registration", "dependency":
	default:
		return fmt.Errorf("ui.layout_order: unknown value %q", c.UI.LayoutOrder)
	}
	if _, ok := colors[strings.ToLower(c.UI.Background)]; !ok {
		return fmt.Errorf("ui.background: unknown color %q", c.UI.Background)
	}
	return nil
}

var colors = map[string]canopy.Color{
	"":          canopy.ColorClear,
	"clear":     canopy.ColorClear,
	"white":     canopy.ColorWhite,
	"black":     canopy.ColorBlack,
	"gray":      canopy.ColorGray,
	"lightgray": canopy.ColorLightGray,
	"red":       canopy.ColorRed,
	"green":     canopy.ColorGreen,
	"blue":      canopy.ColorBlue,
	"orange":    canopy.ColorOrange,
	"turquoise": canopy.ColorTurquoise,
}

// RunConfig converts c to the settings taken by ebitenui.Run.
func (c Config) RunConfig() ebitenui.RunConfig {
	return ebitenui.RunConfig{
		Title:       c.Window.Title,
		Width:       c.Window.Width,
		Height:      c.Window.Height,
		Resizable:   c.Window.Resizable,
		ShowFPS:     c.Window.ShowFPS,
		Debug:       c.UI.Debug,
		LayoutOrder: c.UI.LayoutOrder,
		Script:      c.UI.Script,
		Background:  colors[strings.ToLower(c.UI.Background)],
	}
}
