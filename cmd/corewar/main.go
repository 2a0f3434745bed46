// Command corewar runs a Core War battle between the warriors found in a
// directory and renders it on the chosen display.
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/costdin/core-war/internal/assembler"
	"github.com/costdin/core-war/internal/display"
	"github.com/costdin/core-war/internal/game"
	"github.com/costdin/core-war/internal/vm"
)

var (
	displayKind   string
	coreSize      int
	queueSize     int
	ticksPerFrame int
	frameDelayMs  int
)

var rootCmd = &cobra.Command{
	Use:   "corewar <warrior-dir>",
	Short: "Run a Core War battle between the warriors in a directory",
	Long: `corewar loads every *.war file in the given directory, assembles the
warriors into a shared core and plays them against each other until a
single warrior survives.

Examples:
  corewar warriors/
  corewar --display=sdl warriors/
  corewar --core-size=8000 --queue-size=32 warriors/`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	// .env overrides the built-in defaults; flags override both.
	godotenv.Load()
	defaults := game.DefaultConfig()

	rootCmd.Flags().StringVar(&displayKind, "display",
		envString("COREWAR_DISPLAY", "console"), "battle display: console, sdl or none")
	rootCmd.Flags().IntVar(&coreSize, "core-size",
		envInt("COREWAR_CORE_SIZE", defaults.CoreSize), "number of core cells")
	rootCmd.Flags().IntVar(&queueSize, "queue-size",
		envInt("COREWAR_QUEUE_SIZE", defaults.QueueSize), "per-warrior thread queue capacity")
	rootCmd.Flags().IntVar(&ticksPerFrame, "ticks-per-frame",
		envInt("COREWAR_TICKS_PER_FRAME", defaults.TicksPerFrame), "scheduler ticks played per frame")
	rootCmd.Flags().IntVar(&frameDelayMs, "frame-delay",
		envInt("COREWAR_FRAME_DELAY_MS", int(defaults.FrameDelay/time.Millisecond)), "milliseconds between frames")

	// glog registers its flags (-v, -logtostderr, ...) on the standard
	// flag set; graft them onto the cobra surface.
	rootCmd.Flags().AddGoFlagSet(goflag.CommandLine)
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func run(warriorDir string) error {
	defer glog.Flush()

	warriors, err := assembler.ScanWarriorDirectory(warriorDir, coreSize)
	if err != nil {
		return err
	}
	for _, warrior := range warriors {
		glog.Infof("loaded warrior %s (%d instructions)", warrior.Name, len(warrior.Code))
	}

	battle, err := game.New(warriors, game.Config{
		CoreSize:      coreSize,
		QueueSize:     queueSize,
		TicksPerFrame: ticksPerFrame,
		FrameDelay:    time.Duration(frameDelayMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	observer, closer, err := buildDisplay()
	if err != nil {
		return err
	}
	if observer != nil {
		battle.Register(observer)
	}
	if closer != nil {
		defer closer()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	winner, err := battle.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Game ended! Player %s won after %d rounds!\n", winner.Name, battle.Round())
	return nil
}

// buildDisplay constructs the observer selected by --display.
func buildDisplay() (vm.Observer, func(), error) {
	switch displayKind {
	case "console":
		return display.NewConsoleDisplay(coreSize), nil, nil
	case "sdl":
		d, err := display.NewSdlDisplay()
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	case "none":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown display %q (want console, sdl or none)", displayKind)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
