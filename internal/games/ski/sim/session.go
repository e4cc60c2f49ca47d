package sim

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseRunning
	PhaseCrashing
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseRunning:
		return "running"
	case PhaseCrashing:
		return "crashing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// CameraMode selects how hosts frame the skier.
type CameraMode int

const (
	CameraThirdPerson CameraMode = iota
	CameraFirstPerson
)

// String returns a human-readable name for the camera mode.
func (c CameraMode) String() string {
	if c == CameraFirstPerson {
		return "first-person"
	}
	return "third-person"
}

// RunState is the run-scoped score and liveness.
type RunState struct {
	Alive        bool
	Crashed      bool
	CrashElapsed float64
	// Score is floor(distance) + Banked + BonusPot.
	Score    int
	BonusPot int
	// Banked holds pots flushed by completed sections.
	Banked            int
	GatesPassed       int
	SectionsCompleted int
	Elapsed           float64
}

// RunSummary describes a committed run.
type RunSummary struct {
	Score             int
	Distance          float64
	GatesPassed       int
	SectionsCompleted int
	Duration          float64
	Skin              string
}

// RunRecorder receives every committed run.
type RunRecorder interface {
	RecordRun(RunSummary) error
}

// SimulationContext bundles all state a tick reads and writes.
type SimulationContext struct {
	Geometry   Geometry
	Population *Population
	Course     *Course
	Player     Player
	Run        RunState
}

// Options configures a Session.
type Options struct {
	Config config.SkiConfig
	Seed   int64
	// Logger defaults to a discarding logger.
	Logger *log.Logger
	// Store persists progress at game over. Nil keeps progress in memory.
	Store progress.Store
	// Recorder receives committed runs. Optional.
	Recorder RunRecorder
}

// Session is the Menu -> Running -> Crashing -> GameOver -> Menu state machine.
type Session struct {
	cfg      config.SkiConfig
	log      *log.Logger
	store    progress.Store
	recorder RunRecorder

	ctx       SimulationContext
	kin       *Kinematics
	phase     Phase
	camera    CameraMode
	overTimer float64
	progress  progress.Progress

	playerHalf core.Vec3
	colliders  []core.Box
	outcomes   []GateOutcome
	events     []Event
}

// NewSession validates the config and builds the world. The session starts
// in the menu phase.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := opts.Config
	rng := rand.New(rand.NewSource(opts.Seed))
	geo := NewGeometry(cfg.World)
	course := BuildCourse(geo, cfg.Slalom, rng)
	pop := NewPopulation(geo, cfg.Population, course, rng, logger)
	pop.PopulateInitial(0, cfg.Population.Trees, cfg.Population.Decoratives, cfg.Population.Huts, cfg.Population.SpectatorsPerZone)

	s := &Session{
		cfg:        cfg,
		log:        logger,
		store:      opts.Store,
		recorder:   opts.Recorder,
		kin:        NewKinematics(geo, cfg.Physics, cfg.Steering, config.NewSpeedRamp(cfg.Physics, cfg.Difficulty)),
		playerHalf: halfExtents(cfg.Population.PlayerBounds),
		progress:   progress.LoadOrDefault(opts.Store, logger),
		ctx: SimulationContext{
			Geometry:   geo,
			Population: pop,
			Course:     course,
		},
	}
	s.kin.Reset(&s.ctx.Player, 0)
	return s, nil
}

// Context exposes the simulation state for rendering and tests.
func (s *Session) Context() *SimulationContext {
	return &s.ctx
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Camera returns the current camera mode.
func (s *Session) Camera() CameraMode {
	return s.camera
}

// Progress returns a copy of the persistent progress.
func (s *Session) Progress() progress.Progress {
	p := s.progress
	p.OwnedCosmeticIDs = append([]string(nil), s.progress.OwnedCosmeticIDs...)
	return p
}

// Buy purchases or equips a skin and persists the result.
func (s *Session) Buy(id string) error {
	next := s.Progress()
	if err := next.Buy(id); err != nil {
		return err
	}
	s.progress = next
	return s.persist()
}

// Start begins a new run: every run-scoped value is reset, the course
// re-armed and the pools reseeded ahead of the skier.
func (s *Session) Start() {
	s.kin.Reset(&s.ctx.Player, 0)
	s.ctx.Run = RunState{Alive: true}
	s.ctx.Course.Reset()
	s.ctx.Population.ReseedNear(s.ctx.Player.Position)
	s.overTimer = 0
	s.phase = PhaseRunning
	s.log.Debug("Run started", "skin", s.progress.EquippedCosmeticID)
}

// Abort returns to the menu without committing anything. The pools are left
// where they are; the next Start reseeds them.
func (s *Session) Abort() {
	if s.phase == PhaseMenu {
		return
	}
	s.ctx.Run.Alive = false
	s.phase = PhaseMenu
	s.emit(Event{Kind: EventMenu})
}

// ToggleCamera flips between third and first person.
func (s *Session) ToggleCamera() {
	if s.camera == CameraThirdPerson {
		s.camera = CameraFirstPerson
	} else {
		s.camera = CameraThirdPerson
	}
}

// Tick advances the session by dt seconds. The returned events are only
// valid until the next call.
func (s *Session) Tick(dt float64, in core.InputFrame) []Event {
	s.events = s.events[:0]
	dt = s.kin.ClampDT(dt)

	if in.Has(core.ActionToggleCamera) {
		s.ToggleCamera()
	}
	if in.Has(core.ActionReset) {
		s.Start()
		return s.events
	}
	if in.Has(core.ActionBack) {
		s.Abort()
		return s.events
	}

	switch s.phase {
	case PhaseMenu:
		if in.Has(core.ActionStart) {
			s.Start()
		}
	case PhaseRunning:
		s.tickRunning(dt, in.Steer())
	case PhaseCrashing:
		s.tickCrashing(dt)
	case PhaseGameOver:
		// Start skips the menu and begins the next run.
		if in.Has(core.ActionStart) {
			s.Start()
			return s.events
		}
		s.overTimer += dt
		if s.overTimer >= s.cfg.Session.MenuReturnDelay {
			s.phase = PhaseMenu
			s.emit(Event{Kind: EventMenu})
		}
	}
	return s.events
}

// tickRunning runs kinematics, slalom, score, recycle and collision in order.
func (s *Session) tickRunning(dt, steer float64) {
	ctx := &s.ctx
	run := &ctx.Run
	run.Elapsed += dt

	s.kin.Step(&ctx.Player, steer, dt)

	s.outcomes = ctx.Course.CheckGates(ctx.Player.Position, s.outcomes[:0])
	for _, o := range s.outcomes {
		s.applyGate(o)
	}

	run.Score = s.liveScore()

	ctx.Population.RecycleBehindPlayer(ctx.Player.Position.Z)

	s.colliders = ctx.Population.Colliders(s.colliders[:0])
	if DetectCollision(ctx.Player.Bounds(s.playerHalf), s.colliders) {
		s.crash()
	}
}

func (s *Session) applyGate(o GateOutcome) {
	run := &s.ctx.Run
	g := o.Gate
	switch g.Type {
	case GateStart:
		s.emit(Event{Kind: EventSectionStarted, Section: g.Section, Gate: g.Type})
	case GateLeft, GateRight:
		run.BonusPot += o.Points
		run.GatesPassed++
		s.emit(Event{Kind: EventGatePassed, Section: g.Section, Gate: g.Type, Points: o.Points})
	case GateEnd:
		run.BonusPot += o.Points
		bonus := run.BonusPot
		if o.Flush {
			run.Banked += run.BonusPot
			run.BonusPot = 0
		}
		run.SectionsCompleted++
		s.log.Debug("Section completed", "section", g.Section, "bonus", bonus)
		s.emit(Event{Kind: EventSectionCompleted, Section: g.Section, Gate: g.Type, Points: bonus})
	}
}

func (s *Session) liveScore() int {
	run := &s.ctx.Run
	return int(math.Floor(math.Max(s.ctx.Player.Distance(), 0))) + run.Banked + run.BonusPot
}

// crash ends the live part of the run. The score is frozen with any
// unflushed pot still counted; the slide does not add distance.
func (s *Session) crash() {
	run := &s.ctx.Run
	run.Alive = false
	run.Crashed = true
	run.CrashElapsed = 0
	run.Score = s.liveScore()
	s.phase = PhaseCrashing
	s.emit(Event{Kind: EventCrashed, Score: run.Score})
}

// tickCrashing plays the fixed-length crash sequence: a roll ramp with the
// skier sliding on at a fraction of its speed.
func (s *Session) tickCrashing(dt float64) {
	sc := s.cfg.Session
	p := &s.ctx.Player
	run := &s.ctx.Run
	geo := s.ctx.Geometry

	run.CrashElapsed += dt
	t := math.Min(1, run.CrashElapsed/sc.CrashDuration)
	p.Roll = t * math.Pi * sc.CrashSpin
	p.Position.X = geo.ClampLateral(p.Position.X + p.SteerVelocity*sc.CrashDrift*dt)
	p.Position = p.Position.Add(geo.Forward().Scale(p.Speed * sc.CrashSlide * dt))
	p.Position.Y = geo.HeightAt(p.Position.Z)

	if run.CrashElapsed >= sc.CrashDuration {
		s.gameOver()
	}
}

// gameOver commits the run score, persists progress and records the run.
// Persistence failures are logged; the session carries on.
func (s *Session) gameOver() {
	run := &s.ctx.Run
	s.phase = PhaseGameOver
	s.overTimer = 0

	s.progress.Commit(run.Score)
	s.log.Info("Run committed", "score", run.Score, "best", s.progress.BestScore, "total", s.progress.TotalScore)
	if err := s.persist(); err != nil {
		s.log.Error("Failed to save progress", "err", err)
	}

	if s.recorder != nil {
		summary := RunSummary{
			Score:             run.Score,
			Distance:          s.ctx.Player.Distance(),
			GatesPassed:       run.GatesPassed,
			SectionsCompleted: run.SectionsCompleted,
			Duration:          run.Elapsed,
			Skin:              s.progress.EquippedCosmeticID,
		}
		if err := s.recorder.RecordRun(summary); err != nil {
			s.log.Error("Failed to record run", "err", err)
		}
	}
	s.emit(Event{Kind: EventGameOver, Score: run.Score})
}

func (s *Session) persist() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.Progress()); err != nil {
		return fmt.Errorf("sim: persist progress: %w", err)
	}
	return nil
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
