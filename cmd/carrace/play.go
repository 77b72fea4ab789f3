package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/carrace/internal/games/carrace"
	"github.com/vovakirdan/carrace/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the terminal.

Controls (defaults, see the config file to rebind):
  Left/Right  - Steer
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Speed increases half as much, 1.5x less often
  normal - Values from the configuration file
  hard   - Faster start, speed increases twice as much, twice as often
  fixed  - Speed never increases

Examples:
  carrace play
  carrace play --difficulty easy
  carrace play --config ./config.json --seed 42
  carrace play --log-file carrace.log --verbose`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := sessionLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(logger)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the initial layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	out, runErr := tui.Run(ctx, cfg, tui.Options{
		Seed:   flagSeed,
		Logger: logger,
		Width:  width,
		Height: height,
	})
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	switch out.State {
	case carrace.StateCollided:
		fmt.Printf("Crashed after %s at speed %.2f.\n", out.Elapsed.Round(time.Second), out.StepSize)
	case carrace.StateQuit:
		fmt.Printf("Quit after %s.\n", out.Elapsed.Round(time.Second))
	}
}
