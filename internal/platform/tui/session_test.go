package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

func testDeps(t *testing.T, wallet int) (Deps, *progress.MemoryStore) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	store := progress.NewMemoryStore()
	p := progress.Default()
	p.TotalScore = wallet
	store.Save(p)
	return Deps{Progress: store}, store
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestSessionShopFlow(t *testing.T) {
	deps, store := testDeps(t, 800)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	var m tea.Model = NewSessionModel(deps, cfg, "")

	if !strings.Contains(m.View(), "Wallet 800") {
		t.Errorf("menu should show the wallet:\n%s", m.View())
	}

	// Down to Shop, open it, move to the second skin (blue, 500) and buy.
	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	sm := m.(SessionModel)
	if sm.screen != screenShop {
		t.Fatalf("screen = %v, expected shop", sm.screen)
	}
	if !strings.Contains(sm.View(), "Bought Ocean Blue") {
		t.Errorf("shop should confirm the purchase:\n%s", sm.View())
	}

	saved, _ := store.Load()
	if saved.TotalScore != 300 || saved.EquippedCosmeticID != "blue" {
		t.Errorf("saved progress = %+v", saved)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	sm = m.(SessionModel)
	if sm.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after back", sm.screen)
	}
	if !strings.Contains(sm.View(), "Ocean Blue") {
		t.Error("menu should show the newly equipped skin")
	}
}

func TestSessionGameFlow(t *testing.T) {
	deps, _ := testDeps(t, 0)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	var m tea.Model = NewSessionModel(deps, cfg, "")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.screen != screenGame {
		t.Fatalf("screen = %v, expected game", sm.screen)
	}
	sm.game.Init()
	gen := sm.game.gen

	m = send(t, m, TickMsg{Gen: gen}, TickMsg{Gen: gen})
	if z := m.(SessionModel).game.game.Snapshot().Position[2]; z <= 0 {
		t.Errorf("skier should move with ticks, z = %v", z)
	}

	// Ticks from another loop are ignored.
	before := m.(SessionModel).game.game.Snapshot().Position[2]
	m = send(t, m, TickMsg{Gen: gen + 1000})
	if after := m.(SessionModel).game.game.Snapshot().Position[2]; after != before {
		t.Error("stale tick advanced the simulation")
	}

	// Esc aborts the run, a second Esc leaves the game.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, TickMsg{Gen: gen})
	if !m.(SessionModel).game.gameState.InMenu {
		t.Fatal("first back should abort the run")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("second back should return to the main menu")
	}
}

func TestGameModelMeasuresTickInterval(t *testing.T) {
	deps, _ := testDeps(t, 0)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	gm := NewGameModel(deps, cfg)
	gm.Init()

	start := time.Unix(1000, 0)
	var m tea.Model = gm
	for i := 0; i < 5; i++ {
		m = send(t, m, TickMsg{Time: start.Add(time.Duration(i) * 50 * time.Millisecond), Gen: gm.gen})
	}

	if fps := m.(GameModel).game.FPS(); math.Abs(fps-20) > 0.01 {
		t.Errorf("measured fps = %v, expected 20 from 50ms ticks", fps)
	}
}
