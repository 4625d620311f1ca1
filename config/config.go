// Package config holds the command line settings shared by every subcommand.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/lixenwraith/evergreen/constants"
	"github.com/lixenwraith/evergreen/logging"
	"github.com/lixenwraith/evergreen/scene"
	"github.com/lixenwraith/evergreen/terminal"
	"github.com/mattn/go-isatty"
)

// EnvPrefix maps flags to environment variables, -bell-every reads EVERGREEN_BELL_EVERY
const EnvPrefix = "EVERGREEN"

// Output backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// ColorAuto resolves the color mode from the output and environment
const ColorAuto = "auto"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the parsed flag set
type Config struct {
	Mode      string
	Backend   string
	Color     string
	Interval  time.Duration
	Spacing   int
	Snow      bool
	Frames    int
	Seed      uint64
	Bells     bool
	BellEvery int
	Debug     bool
	LogDir    string
}

// Default returns the settings used when no flag is given
func Default() Config {
	return Config{
		Mode:      scene.Forest.String(),
		Backend:   BackendANSI,
		Color:     ColorAuto,
		Spacing:   constants.TreeSpacing,
		Snow:      true,
		BellEvery: constants.DefaultBellEvery,
		LogDir:    logging.DefaultDir,
	}
}

// RegisterFlags binds the fields to fs, current values become flag defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "scene: forest, single or fancy")
	fs.StringVar(&c.Backend, "backend", c.Backend, "output backend: ansi or tcell")
	fs.StringVar(&c.Color, "color", c.Color, "color mode: auto, none, 16, 256 or truecolor")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "frame interval, 0 uses the mode default")
	fs.IntVar(&c.Spacing, "spacing", c.Spacing, "columns between forest trees")
	fs.BoolVar(&c.Snow, "snow", c.Snow, "draw falling snow")
	fs.IntVar(&c.Frames, "frames", c.Frames, "stop after N frames, 0 runs until interrupted")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	fs.BoolVar(&c.Bells, "bells", c.Bells, "ring a bell chime with the star")
	fs.IntVar(&c.BellEvery, "bell-every", c.BellEvery, "frames between bell chimes")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log")
	fs.StringVar(&c.LogDir, "log-dir", c.LogDir, "directory for the debug log")
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if _, ok := scene.ParseMode(c.Mode); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Backend != BackendANSI && c.Backend != BackendTcell {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Color != ColorAuto {
		if _, ok := terminal.ParseColorMode(c.Color); !ok {
			return fmt.Errorf("%w: unknown color mode %q", ErrInvalidConfig, c.Color)
		}
	}
	if c.Interval != 0 && (c.Interval < constants.MinInterval || c.Interval > constants.MaxInterval) {
		return fmt.Errorf("%w: interval %v outside [%v, %v]", ErrInvalidConfig, c.Interval, constants.MinInterval, constants.MaxInterval)
	}
	if c.Spacing < 0 || c.Spacing > constants.MaxSpacing {
		return fmt.Errorf("%w: spacing %d outside [0, %d]", ErrInvalidConfig, c.Spacing, constants.MaxSpacing)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: negative frame count %d", ErrInvalidConfig, c.Frames)
	}
	if c.BellEvery < 1 {
		return fmt.Errorf("%w: bell-every must be at least 1, got %d", ErrInvalidConfig, c.BellEvery)
	}
	return nil
}

// SceneMode returns the parsed mode, Forest when invalid
func (c Config) SceneMode() scene.Mode {
	m, _ := scene.ParseMode(c.Mode)
	return m
}

// SceneOptions returns the scene tuning
func (c Config) SceneOptions() scene.Options {
	return scene.Options{Spacing: c.Spacing, Snow: c.Snow}
}

// ColorMode resolves -color for output. Auto disables color when out is not a
// terminal and otherwise inspects the environment.
func (c Config) ColorMode(out *os.File) terminal.ColorMode {
	if m, ok := terminal.ParseColorMode(c.Color); ok {
		return m
	}
	if out == nil || !IsTerminal(out) {
		return terminal.ColorModeNone
	}
	return terminal.DetectColorMode()
}

// IsTerminal reports whether f is a terminal, including cygwin ptys
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RNG returns the random source for a run
func (c Config) RNG() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
