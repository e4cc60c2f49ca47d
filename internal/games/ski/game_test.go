package ski

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	g := New(opts)
	g.Reset(testRuntime(42))
	return g
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(t, Options{})

	if g.ID() != "ski" || g.Title() != "Ski Arcade" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
	state := g.State()
	if !state.InMenu || state.GameOver || state.Score != 0 {
		t.Errorf("initial state = %+v, expected idle menu", state)
	}

	res := g.Step(press(core.ActionStart))
	if res.State.InMenu {
		t.Error("start action should begin the run")
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionStart)
		case (i/30)%4 == 1:
			inputs[i].Set(core.ActionSteerLeft)
		case (i/30)%4 == 3:
			inputs[i].Set(core.ActionSteerRight)
		}
	}

	play := func() sim.Snapshot {
		g := newTestGame(t, Options{})
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}

func TestGamePauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Step(press(core.ActionStart))
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	z := g.Snapshot().Position[2]
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Snapshot().Position[2] != z {
		t.Error("skier moved while paused")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
	if g.Snapshot().Position[2] <= z {
		t.Error("skier should move after resuming")
	}
}

func TestGameCrashCommitsThroughStore(t *testing.T) {
	store := progress.NewMemoryStore()
	g := newTestGame(t, Options{Store: store})
	g.Start()

	ctx := g.Session().Context()
	tree := &ctx.Population.Trees[0]
	tree.Position = ctx.Geometry.Surface(ctx.Player.Position.X, ctx.Player.Position.Z+1)
	tree.Parked = false

	res := g.Step(core.NewInputFrame())
	if len(res.Messages) == 0 || res.Messages[0] != "Wipeout!" {
		t.Errorf("crash tick messages = %v", res.Messages)
	}
	if g.Message() != "Wipeout!" {
		t.Errorf("HUD message = %q", g.Message())
	}

	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("expected game over after the crash sequence")
	}
	if store.Saves != 1 {
		t.Errorf("store saved %d times, expected 1", store.Saves)
	}
	// The message expires after its display time.
	for i := 0; i < 150; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Message() != "" {
		t.Errorf("message %q should have expired", g.Message())
	}
}

func TestGameBuyRepaints(t *testing.T) {
	store := progress.NewMemoryStore()
	seed := progress.Default()
	seed.TotalScore = 600
	store.Save(seed)

	g := newTestGame(t, Options{Store: store})
	if err := g.Buy("blue"); err != nil {
		t.Fatalf("Buy(blue) failed: %v", err)
	}
	if got := g.painter.Skin().ID; got != "blue" {
		t.Errorf("painter skin = %q, expected blue", got)
	}
	if colors := g.painter.Paint(0); colors["body"] != core.ColorBrightBlue {
		t.Errorf("body color = %v, expected bright blue", colors["body"])
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, Options{})
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "SKI ARCADE") {
		t.Error("menu render should show the title box")
	}

	g.Step(press(core.ActionStart))
	g.Step(press(core.ActionToggleDebug))
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Score:", "km/h", "speed", "camera"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.ContainsRune(out, SkierHead) {
		t.Error("render should draw the skier")
	}

	g.Step(press(core.ActionToggleCamera))
	g.Render(screen)
	if !strings.Contains(screen.String(), "first-person") {
		t.Error("debug overlay should show the first-person camera")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("")

	SetDifficultyPreset("fixed")
	if cfg := LoadConfig(nil); cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable the speed ramp")
	}
	SetDifficultyPreset("bogus")
	if cfg := LoadConfig(nil); !cfg.Difficulty.Enabled {
		t.Error("unknown preset should keep the config defaults")
	}
}

func TestGameMeasuresFrameRate(t *testing.T) {
	g := newTestGame(t, Options{})
	if g.FPS() != 0 {
		t.Fatalf("FPS() = %v before any frame", g.FPS())
	}

	g.ObserveFrame(0)
	g.ObserveFrame(-time.Millisecond)
	if g.FPS() != 0 {
		t.Errorf("non-positive intervals should be ignored, got %v", g.FPS())
	}

	// Host running at half the configured tick rate.
	for i := 0; i < 100; i++ {
		g.ObserveFrame(time.Second / 30)
	}
	if math.Abs(g.FPS()-30) > 0.01 {
		t.Errorf("FPS() = %v, expected 30", g.FPS())
	}

	g.Step(press(core.ActionStart))
	g.Step(press(core.ActionToggleDebug))
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "fps     30 (tick 60)") {
		t.Errorf("debug overlay should show measured fps and tick rate:\n%s", screen.String())
	}
}
