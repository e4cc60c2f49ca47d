package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ski-arcade/internal/games/ski"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

var (
	flagSimDuration time.Duration
	flagSimSteer    string
	flagSimPeriod   time.Duration
	flagSimRecord   bool
	flagSimFormat   string
	flagSimEvents   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run one ski session without a terminal UI and print the result.

The skier follows a steering script until it crashes or the duration runs
out. With the same --seed and flags the result is identical every time.

Steering scripts:
  straight - No steering
  left     - Hold left
  right    - Hold right
  weave    - Alternate left and right every --period
  random   - Pick a random direction every --period
  slalom   - Chase the passing side of the next gate

Examples:
  ski sim --seed 42
  ski sim --steer slalom --duration 1m --events
  ski sim --steer weave --period 1s --format yaml
  ski sim --record --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Simulated time limit")
	simCmd.Flags().StringVar(&flagSimSteer, "steer", "straight", "Steering script: straight, left, right, weave, random, slalom")
	simCmd.Flags().DurationVar(&flagSimPeriod, "period", 750*time.Millisecond, "Direction change period for weave and random")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record the run in the history database")
	simCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
	simCmd.Flags().BoolVar(&flagSimEvents, "events", false, "Include the event log")
}

// simEvent is one logged session event.
type simEvent struct {
	Time    float64 `yaml:"time"`
	Kind    string  `yaml:"kind"`
	Section int     `yaml:"section,omitempty"`
	Points  int     `yaml:"points,omitempty"`
	Score   int     `yaml:"score,omitempty"`
}

// simResult is the headless run summary.
type simResult struct {
	Seed     int64      `yaml:"seed"`
	Steer    string     `yaml:"steer"`
	Ticks    int        `yaml:"ticks"`
	Elapsed  float64    `yaml:"elapsed"`
	Phase    string     `yaml:"phase"`
	Crashed  bool       `yaml:"crashed"`
	Score    int        `yaml:"score"`
	Distance float64    `yaml:"distance"`
	Speed    float64    `yaml:"speed"`
	Gates    int        `yaml:"gates"`
	Sections int        `yaml:"sections"`
	Banked   int        `yaml:"banked"`
	BonusPot int        `yaml:"bonus_pot"`
	Events   []simEvent `yaml:"events,omitempty"`
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimFormat != "text" && flagSimFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", flagSimFormat)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive")
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	dt := 1.0 / float64(flagFPS)
	periodTicks := int(flagSimPeriod.Seconds() * float64(flagFPS))
	script, err := newSteerScript(flagSimSteer, periodTicks, seed)
	if err != nil {
		return err
	}

	opts := sim.Options{
		Config: ski.LoadConfig(logger),
		Seed:   seed,
		Logger: logger,
		Store:  progress.NewMemoryStore(),
	}
	if flagSimRecord {
		history := openHistory(logger)
		if history == nil {
			return fmt.Errorf("cannot record: run history unavailable at %s", flagDBPath)
		}
		defer history.Close()
		opts.Recorder = history
	}

	session, err := sim.NewSession(opts)
	if err != nil {
		return err
	}

	res := simulate(session, script, dt, flagSimDuration, flagSimEvents)
	res.Seed = seed
	res.Steer = script.mode
	logger.Debug("Simulation finished", "ticks", res.Ticks, "score", res.Score, "phase", res.Phase)

	out := cmd.OutOrStdout()
	if flagSimFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return enc.Close()
	}
	printSimResult(cmd, res)
	return nil
}

// simulate runs the session until game over or until limit of simulated
// time has passed.
func simulate(session *sim.Session, script *steerScript, dt float64, limit time.Duration, withEvents bool) simResult {
	var res simResult
	session.Start()

	maxTicks := int(limit.Seconds() / dt)
	for res.Ticks < maxTicks && session.Phase() != sim.PhaseGameOver {
		frame := script.Frame(res.Ticks, session.Context())
		events := session.Tick(dt, frame)
		res.Ticks++
		res.Elapsed = float64(res.Ticks) * dt
		if withEvents {
			for _, e := range events {
				res.Events = append(res.Events, simEvent{
					Time:    res.Elapsed,
					Kind:    e.Kind.String(),
					Section: e.Section,
					Points:  e.Points,
					Score:   e.Score,
				})
			}
		}
	}

	ctx := session.Context()
	snap := session.Snapshot()
	res.Phase = snap.Phase.String()
	res.Crashed = snap.Crashed
	res.Score = snap.Score
	res.Distance = snap.Distance
	res.Speed = snap.Speed
	res.Gates = ctx.Run.GatesPassed
	res.Sections = ctx.Run.SectionsCompleted
	res.Banked = ctx.Run.Banked
	res.BonusPot = ctx.Run.BonusPot
	return res
}

func printSimResult(cmd *cobra.Command, res simResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ski Simulation - seed %d, steer %s\n", res.Seed, res.Steer)
	fmt.Fprintln(out)

	if len(res.Events) > 0 {
		for _, e := range res.Events {
			fmt.Fprintf(out, "  %7.2fs  %-18s", e.Time, e.Kind)
			if e.Points != 0 {
				fmt.Fprintf(out, "  +%d", e.Points)
			}
			if e.Score != 0 {
				fmt.Fprintf(out, "  score %d", e.Score)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "  %-10s %s\n", "Phase", res.Phase)
	fmt.Fprintf(out, "  %-10s %.2fs (%d ticks)\n", "Elapsed", res.Elapsed, res.Ticks)
	fmt.Fprintf(out, "  %-10s %.1f m\n", "Distance", res.Distance)
	fmt.Fprintf(out, "  %-10s %.0f km/h\n", "Speed", res.Speed*3.6)
	fmt.Fprintf(out, "  %-10s %d (%d sections)\n", "Gates", res.Gates, res.Sections)
	fmt.Fprintf(out, "  %-10s %d banked, %d in pot\n", "Bonus", res.Banked, res.BonusPot)
	fmt.Fprintf(out, "  %-10s %d\n", "Score", res.Score)
}
