package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/volt/physics"
	"github.com/lixenwraith/volt/scene"
	"github.com/lixenwraith/volt/vmath"
)

// Output modes
const (
	modeHash    = "hash"
	modeTrace   = "trace"
	modeSummary = "summary"
)

var errUsage = errors.New("usage")

type options struct {
	scenePath  string
	steps      int
	every      int
	mode       string
	rollbackAt int
	iterations int
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("volt-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.scenePath, "scene", "scenes/pile.yaml", "Scene file (YAML)")
	fs.IntVar(&opts.steps, "steps", 600, "Number of steps to simulate")
	fs.IntVar(&opts.every, "every", 1, "Print every N steps")
	fs.StringVar(&opts.mode, "mode", modeHash, "Output: hash, trace, summary")
	fs.IntVar(&opts.rollbackAt, "rollback-at", 0, "Snapshot at this step, finish, rewind and verify the replay (0 = off)")
	fs.IntVar(&opts.iterations, "iterations", 0, "Override solver iterations (0 = scene value)")
	fs.BoolVar(&opts.verbose, "v", false, "Log physics diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.mode {
	case modeHash, modeTrace, modeSummary:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, opts.mode)
	}
	if opts.steps < 0 || opts.every <= 0 {
		return nil, fmt.Errorf("%w: steps must be >= 0 and every > 0", errUsage)
	}
	if opts.rollbackAt < 0 || opts.rollbackAt > opts.steps {
		return nil, fmt.Errorf("%w: rollback-at must be within [0, steps]", errUsage)
	}
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "volt-sim: %v\n", err)
		}
		return 2
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "volt-sim: ", log.Ltime)
	}

	cfg := physics.DefaultConfig()
	cfg.Logger = logger

	s, err := scene.LoadWorld(opts.scenePath, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "volt-sim: %v\n", err)
		return 1
	}
	if opts.iterations > 0 {
		s.World.Config().Iterations = opts.iterations
	}
	logger.Printf("loaded %s: %d bodies, %d shapes", opts.scenePath, len(s.World.Bodies()), len(s.World.Shapes()))

	if err := simulate(s.World, opts, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "volt-sim: %v\n", err)
		return 1
	}
	return 0
}

// simulate steps the world, printing per opts, and optionally verifies a rollback replay
func simulate(w *physics.World, opts *options, out io.Writer, logger *log.Logger) error {
	var snap *physics.Snapshot

	for i := 1; i <= opts.steps; i++ {
		w.Step()

		if i%opts.every == 0 || i == opts.steps {
			report(w, opts.mode, out)
		}

		if opts.rollbackAt > 0 && i == opts.rollbackAt {
			var err error
			if snap, err = w.Snapshot(); err != nil {
				return fmt.Errorf("snapshot at step %d: %w", i, err)
			}
			logger.Printf("snapshot at step %d: %d warm contacts", i, len(snap.Warm))
		}
	}

	if opts.mode == modeSummary {
		summarize(w, out)
	}

	if snap == nil {
		return nil
	}
	return verifyReplay(w, snap, opts.steps, out)
}

// verifyReplay rewinds to snap, replays to the final step and compares state hashes
func verifyReplay(w *physics.World, snap *physics.Snapshot, steps int, out io.Writer) error {
	want := w.StateHash()

	if err := w.Restore(snap); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	for w.StepCount() < uint64(steps) {
		w.Step()
	}

	got := w.StateHash()
	if got != want {
		return fmt.Errorf("replay from step %d diverged: %016x != %016x", snap.StepCount, got, want)
	}
	fmt.Fprintf(out, "rollback from step %d replayed to %d: %016x ok\n", snap.StepCount, steps, got)
	return nil
}

func report(w *physics.World, mode string, out io.Writer) {
	switch mode {
	case modeHash:
		fmt.Fprintf(out, "%d %016x\n", w.StepCount(), w.StateHash())
	case modeTrace:
		fmt.Fprintf(out, "step %d hash %016x manifolds %d\n", w.StepCount(), w.StateHash(), len(w.Manifolds()))
		for _, b := range w.Bodies() {
			if b.IsStatic() {
				continue
			}
			x, y := vmath.V2ToFloat(b.Position)
			vx, vy := vmath.V2ToFloat(b.LinearVelocity)
			fmt.Fprintf(out, "  body %d pos (%.6f, %.6f) angle %.6f vel (%.6f, %.6f) spin %.6f\n",
				b.ID(), x, y, vmath.ToFloat(b.Angle), vx, vy, vmath.ToFloat(b.AngularVelocity))
		}
	}
}

func summarize(w *physics.World, out io.Writer) {
	var energy int64
	dynamic := 0
	for _, b := range w.Bodies() {
		if b.IsStatic() {
			continue
		}
		dynamic++
		energy += physics.KineticEnergy(b)
	}
	fmt.Fprintf(out, "steps %d bodies %d dynamic %d kinetic %.6f hash %016x\n",
		w.StepCount(), len(w.Bodies()), dynamic, vmath.ToFloat(energy), w.StateHash())
}
