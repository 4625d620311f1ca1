package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/evergreen/audio"
	"github.com/lixenwraith/evergreen/config"
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/logging"
	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/scene"
	"github.com/lixenwraith/evergreen/terminal"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"
)

func main() {
	// Top-level panic recovery to ensure terminal cleanup
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	core.Install()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "evergreen: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command
func run(ctx context.Context, args []string, stdout *os.File, stderr io.Writer) error {
	return buildCLI(stdout, stderr).ParseAndRun(ctx, args)
}

// newFlagSet registers the shared settings on a fresh flag set
func newFlagSet(name string, cfg *config.Config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	return fs
}

func buildCLI(stdout *os.File, stderr io.Writer) *ffcli.Command {
	options := []ff.Option{ff.WithEnvVarPrefix(config.EnvPrefix)}

	// Run command
	runCfg := config.Default()
	runCmd := &ffcli.Command{
		Name:       "run",
		ShortUsage: "evergreen run [flags]",
		ShortHelp:  "Animate the forest until interrupted",
		FlagSet:    newFlagSet("evergreen run", &runCfg, stderr),
		Options:    options,
		Exec: func(ctx context.Context, _ []string) error {
			return execRun(ctx, runCfg, stdout)
		},
	}

	// Frame command
	frameCfg := config.Default()
	frameFlags := newFlagSet("evergreen frame", &frameCfg, stderr)
	frameWidth := frameFlags.Int("width", 0, "frame width, 0 uses the terminal width")
	frameHeight := frameFlags.Int("height", 0, "frame height, 0 uses the terminal height")
	frameCmd := &ffcli.Command{
		Name:       "frame",
		ShortUsage: "evergreen frame [flags]",
		ShortHelp:  "Print a single frame and exit",
		FlagSet:    frameFlags,
		Options:    options,
		Exec: func(_ context.Context, _ []string) error {
			return execFrame(frameCfg, *frameWidth, *frameHeight, stdout)
		},
	}

	rootCfg := config.Default()
	return &ffcli.Command{
		ShortUsage:  "evergreen [flags] <subcommand>",
		ShortHelp:   "An animated forest of twinkling evergreens under falling snow",
		LongHelp:    "Modes:\n  forest  trees across the whole terminal (default)\n  single  one tree drawn inline\n  fancy   one tree under a strip of sky\n\nStop with Ctrl-C. The tcell backend also stops on Esc or q.",
		FlagSet:     newFlagSet("evergreen", &rootCfg, stderr),
		Options:     options,
		Subcommands: []*ffcli.Command{runCmd, frameCmd},
		Exec: func(ctx context.Context, _ []string) error {
			return execRun(ctx, rootCfg, stdout)
		},
	}
}

// ---- Command Execution

func execRun(ctx context.Context, cfg config.Config, stdout *os.File) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		return err
	}
	defer closeLog()

	color := cfg.ColorMode(stdout)
	rng := cfg.RNG()
	mode := cfg.SceneMode()

	var (
		term terminal.Terminal
		sc   *scene.Scene
	)
	switch cfg.Backend {
	case config.BackendTcell:
		term, err = terminal.NewScreen(color)
		if err != nil {
			return err
		}
		// The screen reports its size only once initialized
		if err := term.Init(); err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		w, h := term.Size()
		sc, err = scene.New(mode, w, h, cfg.SceneOptions(), rng)
		if err != nil {
			term.Fini()
			return err
		}
	default:
		w, h := terminal.NewStream(stdout, terminal.StreamOptions{}).Size()
		sc, err = scene.New(mode, w, h, cfg.SceneOptions(), rng)
		if err != nil {
			return err
		}
		term = terminal.NewStream(stdout, sc.StreamOptions(color))
	}

	core.SetCrashTerminal(term)
	defer core.SetCrashTerminal(nil)

	opts := engine.Options{
		Interval:  cfg.Interval,
		MaxFrames: cfg.Frames,
		BellEvery: cfg.BellEvery,
		Logger:    logger,
	}
	if cfg.Bells {
		chimes := audio.NewChimes()
		if err := chimes.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without bells", zap.Error(err))
		} else {
			defer chimes.Cleanup()
			opts.Chimes = chimes
		}
	}

	logger.Info("starting",
		zap.String("mode", cfg.Mode),
		zap.String("backend", cfg.Backend),
		zap.Stringer("color", color),
		zap.Uint64("seed", cfg.Seed),
	)

	return engine.NewLoop(term, sc, opts).Run(ctx)
}

func execFrame(cfg config.Config, width, height int, stdout *os.File) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tw, th := terminal.NewStream(stdout, terminal.StreamOptions{}).Size()
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}

	sc, err := scene.New(cfg.SceneMode(), width, height, cfg.SceneOptions(), cfg.RNG())
	if err != nil {
		return err
	}

	f := render.NewFrame(0, 0)
	sc.Compose(f, render.Bright)

	// Every row is terminated so the shell prompt lands below the frame
	opts := sc.StreamOptions(cfg.ColorMode(stdout))
	opts.Redraw = terminal.RedrawInline
	opts.Clear = false
	return terminal.NewStream(stdout, opts).Flush(f.Cells, f.Width, f.Height)
}
