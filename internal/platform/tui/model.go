package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/games/ski"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
	"github.com/vovakirdan/ski-arcade/internal/progress"
	"github.com/vovakirdan/ski-arcade/internal/storage"
)

// Deps are the collaborators shared by every screen of one player session.
type Deps struct {
	Progress progress.Store
	History  *storage.Store // nil runs without a history
	Logger   *log.Logger
}

// recorder avoids handing a typed nil *storage.Store to the session.
func (d Deps) recorder() sim.RunRecorder {
	if d.History == nil {
		return nil
	}
	return d.History
}

// GameModel is the Bubble Tea model for a ski session.
type GameModel struct {
	game       *ski.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	steer      *steerLatch
	hold       int
	gen        uint64
	lastTick   time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. The game starts a run right away.
func NewGameModel(deps Deps, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game := ski.New(ski.Options{
		Store:    deps.Progress,
		Recorder: deps.recorder(),
		Logger:   deps.Logger,
	})
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		steer:      &steerLatch{},
		hold:       holdTicks(cfg.TickRate),
		gen:        nextTickGen(),
	}
}

// Init initializes the model and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.game.Start()
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The view adapts to any size; the run keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionSteerLeft, core.ActionSteerRight:
		m.steer.press(action, m.hold)
	case core.ActionBack:
		// Back from the idle slope leaves the game; during a run it aborts.
		if m.gameState.InMenu || m.gameState.GameOver {
			m.backToMenu = true
			return m, nil
		}
		m.inputFrame.Set(action)
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	if !m.lastTick.IsZero() {
		m.game.ObserveFrame(msg.Time.Sub(m.lastTick))
	}
	m.lastTick = msg.Time

	m.steer.apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ski-arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the full menu/game/shop flow.
func Run(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg, ""),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
