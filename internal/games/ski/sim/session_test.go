package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

type recorderFunc func(RunSummary) error

func (f recorderFunc) RecordRun(r RunSummary) error { return f(r) }

type failingStore struct{}

func (failingStore) Load() (progress.Progress, error) { return progress.Progress{}, errors.New("disk gone") }
func (failingStore) Save(progress.Progress) error     { return errors.New("disk gone") }

const dt = 1.0 / 60.0

// blockPlayer drops the first tree directly in front of the skier.
func blockPlayer(s *Session) {
	ctx := s.Context()
	tree := &ctx.Population.Trees[0]
	tree.Position = ctx.Geometry.Surface(ctx.Player.Position.X, ctx.Player.Position.Z+1)
	tree.Parked = false
}

// oneTree leaves a single tree on the slope for crash tests.
func oneTree() config.SkiConfig {
	cfg := emptySlope()
	cfg.Population.Trees = 1
	return cfg
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	cfg.Physics.BaseMaxSpeed = 0
	if _, err := NewSession(Options{Config: cfg}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewSession() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestSessionStartsInMenu(t *testing.T) {
	s := newTestSession(t, emptySlope())
	if s.Phase() != PhaseMenu {
		t.Fatalf("Phase() = %v, expected menu", s.Phase())
	}

	s.Tick(dt, input())
	if s.Phase() != PhaseMenu {
		t.Error("menu should wait for a start action")
	}
	s.Tick(dt, input(core.ActionStart))
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v after start, expected running", s.Phase())
	}
	snap := s.Snapshot()
	if !snap.Alive || snap.Crashed || snap.Speed != 45 {
		t.Errorf("fresh run snapshot %+v", snap)
	}
}

func TestScoreTracksDistance(t *testing.T) {
	s := newTestSession(t, emptySlope())
	s.Start()
	for i := 0; i < 600; i++ {
		s.Tick(dt, input())
	}

	snap := s.Snapshot()
	if want := int(math.Floor(snap.Distance)); snap.Score != want {
		t.Errorf("Score = %d, expected floor(distance) = %d", snap.Score, want)
	}
	if want := referenceDistance(10, dt); math.Abs(snap.Distance-want) > 1e-6 {
		t.Errorf("Distance = %.9f, expected %.9f", snap.Distance, want)
	}
	if snap.Speed > snap.MaxSpeed {
		t.Errorf("Speed %v above ceiling %v", snap.Speed, snap.MaxSpeed)
	}
}

func TestSessionSlalomFlushesIntoScore(t *testing.T) {
	s := newTestSession(t, emptySlope())
	s.Start()
	ctx := s.Context()

	var completed *Event
	for _, g := range zoneGates(ctx.Course, 0) {
		p := passPoint(ctx.Geometry, g)
		ctx.Player.Position = ctx.Geometry.Surface(p.X, g.Position.Z+0.5)
		ctx.Player.SteerVelocity = 0
		for _, e := range s.Tick(dt, input()) {
			if e.Kind == EventSectionCompleted {
				ev := e
				completed = &ev
			}
		}
	}

	run := ctx.Run
	if run.Banked != 500 || run.BonusPot != 0 {
		t.Errorf("banked %d pot %d, expected 500 and 0", run.Banked, run.BonusPot)
	}
	if want := int(math.Floor(ctx.Player.Distance())) + 500; run.Score != want {
		t.Errorf("Score = %d, expected %d", run.Score, want)
	}
	if run.GatesPassed != 12 || run.SectionsCompleted != 1 {
		t.Errorf("gates %d sections %d, expected 12 and 1", run.GatesPassed, run.SectionsCompleted)
	}
	if completed == nil || completed.Points != 500 {
		t.Errorf("section completion event = %+v, expected 500 points", completed)
	}
	if ctx.Course.Zones[0].StartGatePassed {
		t.Error("zone should be re-armed after completion")
	}
}

func TestCollisionEntersCrashingSameTick(t *testing.T) {
	s := newTestSession(t, oneTree())
	s.Start()
	s.Context().Run.BonusPot = 75
	blockPlayer(s)

	events := s.Tick(dt, input())
	if s.Phase() != PhaseCrashing {
		t.Fatalf("Phase() = %v, expected crashing in the collision tick", s.Phase())
	}
	if !hasEvent(events, EventCrashed) {
		t.Error("expected a crashed event")
	}
	snap := s.Snapshot()
	if snap.Alive || !snap.Crashed {
		t.Errorf("alive=%v crashed=%v after collision", snap.Alive, snap.Crashed)
	}
	if snap.BonusPot != 75 {
		t.Errorf("unflushed pot should survive the crash, got %d", snap.BonusPot)
	}
	if want := int(math.Floor(snap.Distance)) + 75; snap.Score != want {
		t.Errorf("Score = %d, expected distance plus pot %d", snap.Score, want)
	}
}

func TestCrashMidSectionCommitsPot(t *testing.T) {
	store := progress.NewMemoryStore()
	s := newTestSession(t, oneTree(), func(o *Options) { o.Store = store })
	s.Start()
	ctx := s.Context()

	// Start gate plus three slalom gates, then crash before the end gate.
	for _, g := range zoneGates(ctx.Course, 0)[:4] {
		p := passPoint(ctx.Geometry, g)
		ctx.Player.Position = ctx.Geometry.Surface(p.X, g.Position.Z+0.5)
		ctx.Player.SteerVelocity = 0
		s.Tick(dt, input())
	}
	running := s.Snapshot()
	if running.BonusPot != 75 {
		t.Fatalf("pot = %d after three gates, expected 75", running.BonusPot)
	}

	blockPlayer(s)
	s.Tick(dt, input())
	if s.Phase() != PhaseCrashing {
		t.Fatalf("Phase() = %v, expected crashing", s.Phase())
	}
	crashScore := s.Snapshot().Score
	if crashScore < running.Score {
		t.Errorf("score dropped at the crash: %d -> %d", running.Score, crashScore)
	}

	for i := 0; i < 200 && s.Phase() == PhaseCrashing; i++ {
		s.Tick(dt, input())
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", s.Phase())
	}
	saved, _ := store.Load()
	if saved.TotalScore != crashScore {
		t.Errorf("committed total %d, expected the crash score %d", saved.TotalScore, crashScore)
	}
	if s.Snapshot().Score != crashScore {
		t.Errorf("score changed during the crash slide: %d -> %d", crashScore, s.Snapshot().Score)
	}
}

func TestCrashSequenceCommitsAndReturnsToMenu(t *testing.T) {
	cfg := oneTree()

	store := progress.NewMemoryStore()
	var runs []RunSummary
	s := newTestSession(t, cfg, func(o *Options) {
		o.Store = store
		o.Recorder = recorderFunc(func(r RunSummary) error {
			runs = append(runs, r)
			return nil
		})
	})

	s.Start()
	for i := 0; i < 120; i++ {
		s.Tick(dt, input())
	}
	blockPlayer(s)
	s.Tick(dt, input())
	score := s.Snapshot().Score
	if score <= 0 {
		t.Fatalf("expected a positive score at crash, got %d", score)
	}

	// The crash lasts 1.4s; the roll ramps and the skier keeps sliding.
	z := s.Context().Player.Position.Z
	ticks := 0
	for s.Phase() == PhaseCrashing {
		s.Tick(dt, input())
		ticks++
		if ticks > 200 {
			t.Fatal("crash sequence never ended")
		}
	}
	if ticks < 83 || ticks > 85 {
		t.Errorf("crash took %d ticks, expected about 84", ticks)
	}
	if s.Context().Player.Position.Z <= z {
		t.Error("skier should slide during the crash")
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", s.Phase())
	}

	p := s.Progress()
	if p.TotalScore != score || p.BestScore != score {
		t.Errorf("progress %+v, expected total and best %d", p, score)
	}
	if store.Saves != 1 {
		t.Errorf("store saved %d times, expected 1", store.Saves)
	}
	if len(runs) != 1 || runs[0].Score != score {
		t.Errorf("recorded runs %+v", runs)
	}

	for i := 0; i < 12 && s.Phase() != PhaseMenu; i++ {
		s.Tick(dt, input())
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("Phase() = %v, expected menu after the return delay", s.Phase())
	}
}

func TestAbortDoesNotCommit(t *testing.T) {
	store := progress.NewMemoryStore()
	s := newTestSession(t, emptySlope(), func(o *Options) { o.Store = store })

	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick(dt, input())
	}
	events := s.Tick(dt, input(core.ActionBack))

	if s.Phase() != PhaseMenu || !hasEvent(events, EventMenu) {
		t.Fatalf("Phase() = %v, expected menu after back", s.Phase())
	}
	if store.Saves != 0 || s.Progress().TotalScore != 0 {
		t.Errorf("aborting must not commit: saves %d total %d", store.Saves, s.Progress().TotalScore)
	}
}

func TestResetInvariant(t *testing.T) {
	s := newTestSession(t, emptySlope())
	s.Start()
	ctx := s.Context()
	for _, g := range zoneGates(ctx.Course, 0)[:5] {
		p := passPoint(ctx.Geometry, g)
		ctx.Player.Position = ctx.Geometry.Surface(p.X, g.Position.Z+0.5)
		s.Tick(dt, input())
	}
	if ctx.Run.BonusPot == 0 {
		t.Fatal("setup should have filled the bonus pot")
	}

	s.Tick(dt, input(core.ActionBack))
	s.Tick(dt, input(core.ActionStart))

	if s.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v, expected running", s.Phase())
	}
	run := ctx.Run
	if run.Score != 0 || run.BonusPot != 0 || !run.Alive || run.Crashed {
		t.Errorf("run state after reset %+v", run)
	}
	for i, g := range ctx.Course.Gates {
		if g.Visited {
			t.Fatalf("gate %d still visited after reset", i)
		}
	}
	if ctx.Player.Position != ctx.Geometry.Surface(0, 0) || ctx.Player.Speed != 45 {
		t.Errorf("player not reset: %+v", ctx.Player)
	}
}

func TestResetActionRestartsFromCrash(t *testing.T) {
	cfg := oneTree()
	s := newTestSession(t, cfg)

	s.Start()
	blockPlayer(s)
	s.Tick(dt, input())
	if s.Phase() != PhaseCrashing {
		t.Fatal("setup should crash")
	}

	s.Tick(dt, input(core.ActionReset))
	snap := s.Snapshot()
	if s.Phase() != PhaseRunning || !snap.Alive || snap.Crashed {
		t.Errorf("reset should start a fresh run, got phase %v snapshot %+v", s.Phase(), snap)
	}
}

func TestToggleCamera(t *testing.T) {
	s := newTestSession(t, emptySlope())
	if s.Camera() != CameraThirdPerson {
		t.Fatal("default camera should be third person")
	}
	s.Tick(dt, input(core.ActionToggleCamera))
	if s.Snapshot().Camera != CameraFirstPerson {
		t.Error("toggle should switch to first person")
	}
	s.Tick(dt, input(core.ActionToggleCamera))
	if s.Camera() != CameraThirdPerson {
		t.Error("second toggle should switch back")
	}
}

func TestSessionDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := newTestSession(t, config.DefaultSkiConfig())
		s.Start()
		for i := 0; i < 900; i++ {
			in := input()
			switch (i / 40) % 3 {
			case 0:
				in.Set(core.ActionSteerLeft)
			case 2:
				in.Set(core.ActionSteerRight)
			}
			s.Tick(dt, in)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	cfg := oneTree()
	s := newTestSession(t, cfg, func(o *Options) { o.Store = failingStore{} })

	if s.Progress().EquippedCosmeticID != "default" {
		t.Fatal("failed load should fall back to defaults")
	}
	s.Start()
	blockPlayer(s)
	for i := 0; i < 120; i++ {
		s.Tick(dt, input())
	}
	if s.Phase() == PhaseRunning || s.Phase() == PhaseCrashing {
		t.Errorf("Phase() = %v, expected the run to finish", s.Phase())
	}
}

func TestSessionBuy(t *testing.T) {
	store := progress.NewMemoryStore()
	seed := progress.Default()
	seed.TotalScore = 800
	if err := store.Save(seed); err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, emptySlope(), func(o *Options) { o.Store = store })

	if err := s.Buy("gold"); !errors.Is(err, progress.ErrInsufficientScore) {
		t.Errorf("Buy(gold) error = %v, expected ErrInsufficientScore", err)
	}
	if err := s.Buy("blue"); err != nil {
		t.Fatalf("Buy(blue) failed: %v", err)
	}
	saved, _ := store.Load()
	if saved.TotalScore != 300 || saved.EquippedCosmeticID != "blue" {
		t.Errorf("saved progress %+v", saved)
	}
}

func TestStartFromGameOverBeginsRun(t *testing.T) {
	saves := 0
	s := newTestSession(t, oneTree(), func(o *Options) {
		o.Recorder = recorderFunc(func(RunSummary) error {
			saves++
			return nil
		})
	})
	s.Start()
	s.Tick(dt, input())
	blockPlayer(s)
	for i := 0; i < 200 && s.Phase() != PhaseGameOver; i++ {
		s.Tick(dt, input())
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", s.Phase())
	}

	s.Tick(dt, input(core.ActionStart))
	if s.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v, expected a new run from one Start press", s.Phase())
	}
	run := s.Context().Run
	if !run.Alive || run.Crashed || run.Score != 0 {
		t.Errorf("new run state = %+v", run)
	}
	if saves != 1 {
		t.Errorf("recorded %d runs, expected 1", saves)
	}
}
