package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/engine"
	"github.com/vovakirdan/blastpong/internal/registry"
	"github.com/vovakirdan/blastpong/internal/storage"
)

var (
	flagSimTicks  uint64
	flagSimScript string
	flagSimRecord bool
	flagSimPlayer string
	flagSimFrame  bool
	flagSimCols   int
	flagSimRows   int
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless and print the run summary",
	Long: `Run a game without a terminal UI. Time advances one tick period per
frame, so a run with the same seed and script is reproducible.

The optional script is YAML:

  steps:
    - tick: 10
      press: [bomb]
    - tick: 11
      hold: [left]
      until: 40
    - tick: 500
      quit: true

Examples:
  arcade sim bomber --seed 42 --ticks 600
  arcade sim bomber --seed 42 --script ./run.yaml --frame
  arcade sim pong --ticks 3600 --record --player bot`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 3600, "Stop after this many ticks (0 = until game over)")
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Path to a YAML input script")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store the run in the scores database")
	simCmd.Flags().StringVar(&flagSimPlayer, "player", "sim", "Player name for recorded runs")
	simCmd.Flags().BoolVar(&flagSimFrame, "frame", false, "Print the last frame as text after the summary")
	simCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Frame width in columns")
	simCmd.Flags().IntVar(&flagSimRows, "rows", 24, "Frame height in rows")
	addGameFlags(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list')", gameID)
	}
	if flagSimTicks == 0 && flagSimScript == "" {
		// Pong never ends on its own with the default win score.
		fmt.Fprintln(os.Stderr, "Warning: no tick limit and no script, the run may not end")
	}
	configureGame(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "arcade-sim")

	var input engine.InputSource = engine.NoInput{}
	if flagSimScript != "" {
		script, err := engine.LoadScript(flagSimScript)
		if err != nil {
			return err
		}
		input = script
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	rate := max(flagFPS, 1)

	opts := engine.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  flagSimCols,
			ScreenH:  flagSimRows,
			TickRate: rate,
			Seed:     seed,
		},
		Clock:    core.NewStepClock(rate),
		Pacer:    core.NoopPacer{},
		Input:    input,
		Logger:   logger,
		MaxTicks: flagSimTicks,
	}
	var screen *core.ScreenRenderer
	if flagSimFrame {
		vw, vh := game.Viewport()
		screen = core.NewScreenRenderer(flagSimCols, flagSimRows, vw, vh)
		opts.Renderer = screen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum := engine.NewSession(game, opts).Run(ctx)

	out, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	os.Stdout.Write(out)

	if screen != nil {
		// Viewport is only known after Reset; redraw the final state at scale.
		screen.SetView(game.Viewport())
		game.Render(screen)
		screen.Present()
		fmt.Println(screen.Front().String())
	}

	if flagSimRecord {
		return record(sum)
	}
	return nil
}

// record stores a simulated run.
func record(sum engine.Summary) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveSummary(sum, flagSimPlayer)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Recorded run %d\n", id)
	return nil
}
