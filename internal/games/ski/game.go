// Package ski adapts the ski simulation to the arcade host: it owns a
// sim.Session, turns its events into HUD messages and renders a top-down view
// of the slope onto a core.Screen.
package ski

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/cosmetics"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

// Options wires the game to its persistence collaborators.
type Options struct {
	Store    progress.Store
	Recorder sim.RunRecorder
	Logger   *log.Logger
}

// Game implements the arcade game contract for the ski simulation.
type Game struct {
	opts     Options
	log      *log.Logger
	runtime  core.RuntimeConfig
	cfg      config.SkiConfig
	session  *sim.Session
	painter  *cosmetics.Painter
	bindings []cosmetics.MaterialBinding

	paused  bool
	debug   bool
	elapsed float64 // wall seconds of simulation, drives skin animation
	ticks   int
	fps     float64 // measured host frame rate, 0 until frames are observed

	message     string
	messageLeft float64
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config defaults.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig resolves the ski config the same way Reset does: CLI path, then
// the search paths, then the embedded defaults. The active preset is applied.
func LoadConfig(logger *log.Logger) config.SkiConfig {
	cfg, err := config.LoadSki(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("Falling back to default ski config", "path", configPath, "err", err)
		}
		cfg = config.DefaultSkiConfig()
	}
	if difficultyPreset != "" {
		config.ApplySkiPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// New creates a new ski game instance. Call Reset before stepping.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		opts:     opts,
		log:      logger,
		bindings: cosmetics.ResolveBindings(cosmetics.AvatarParts),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "ski"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Ski Arcade"
}

// Reset builds a fresh session from the current config. The session starts
// in its menu phase; Start (or a start action) begins the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig(g.log)

	session, err := sim.NewSession(g.sessionOptions(g.cfg))
	if err != nil {
		g.log.Error("Ski config rejected, using defaults", "err", err)
		g.cfg = config.DefaultSkiConfig()
		session, err = sim.NewSession(g.sessionOptions(g.cfg))
		if err != nil {
			// Defaults always validate.
			panic(fmt.Sprintf("ski: default config rejected: %v", err))
		}
	}
	g.session = session
	g.paused = false
	g.elapsed = 0
	g.ticks = 0
	g.message = ""
	g.messageLeft = 0
	g.refreshPainter()
}

func (g *Game) sessionOptions(cfg config.SkiConfig) sim.Options {
	return sim.Options{
		Config:   cfg,
		Seed:     g.runtime.Seed,
		Logger:   g.log,
		Store:    g.opts.Store,
		Recorder: g.opts.Recorder,
	}
}

// refreshPainter rebuilds the skier painter for the equipped skin.
func (g *Game) refreshPainter() {
	skin, err := cosmetics.Get(g.session.Progress().EquippedCosmeticID)
	if err != nil {
		skin, _ = cosmetics.Get(cosmetics.DefaultID)
	}
	if g.painter == nil || g.painter.Skin().ID != skin.ID {
		g.painter = cosmetics.NewPainter(skin, g.bindings)
	}
}

// Start begins a run immediately.
func (g *Game) Start() {
	g.session.Start()
	g.paused = false
}

// ObserveFrame feeds the wall-clock interval between two host frames into
// the measured frame rate shown by the debug overlay.
func (g *Game) ObserveFrame(interval time.Duration) {
	if interval <= 0 {
		return
	}
	inst := 1 / interval.Seconds()
	if g.fps == 0 {
		g.fps = inst
		return
	}
	g.fps += (inst - g.fps) * 0.1
}

// FPS returns the measured host frame rate.
func (g *Game) FPS() float64 {
	return g.fps
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionToggleDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionPause) && g.session.Phase() == sim.PhaseRunning {
		g.paused = !g.paused
	}
	if g.paused && !in.Has(core.ActionReset) && !in.Has(core.ActionBack) {
		return core.StepResult{State: g.State()}
	}
	g.paused = false

	dt := g.runtime.TickDuration()
	g.ticks++
	g.elapsed += dt

	var messages []string
	for _, e := range g.session.Tick(dt, in) {
		if text := eventMessage(e); text != "" {
			messages = append(messages, text)
		}
	}
	if len(messages) > 0 {
		g.message = messages[len(messages)-1]
		g.messageLeft = g.cfg.Session.MessageDuration
	} else if g.messageLeft > 0 {
		g.messageLeft -= dt
		if g.messageLeft <= 0 {
			g.message = ""
		}
	}

	return core.StepResult{State: g.State(), Messages: messages}
}

func eventMessage(e sim.Event) string {
	switch e.Kind {
	case sim.EventSectionStarted:
		return fmt.Sprintf("Slalom %d", e.Section+1)
	case sim.EventGatePassed:
		return fmt.Sprintf("Gate +%d", e.Points)
	case sim.EventSectionCompleted:
		return fmt.Sprintf("Slalom complete! +%d", e.Points)
	case sim.EventCrashed:
		return "Wipeout!"
	}
	return ""
}

// Buy purchases or equips a skin through the session and repaints the skier.
func (g *Game) Buy(id string) error {
	if err := g.session.Buy(id); err != nil {
		return err
	}
	g.refreshPainter()
	return nil
}

// Session exposes the underlying simulation session.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Snapshot returns the per-tick telemetry of the session.
func (g *Game) Snapshot() sim.Snapshot {
	return g.session.Snapshot()
}

// Message returns the HUD message currently on screen, if any.
func (g *Game) Message() string {
	return g.message
}

// Debug reports whether the debug overlay is shown.
func (g *Game) Debug() bool {
	return g.debug
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Best:     snap.Best,
		GameOver: snap.Phase == sim.PhaseGameOver,
		Paused:   g.paused,
		InMenu:   snap.Phase == sim.PhaseMenu,
	}
}
