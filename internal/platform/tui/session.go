package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ski-arcade/internal/core"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenShop
	screenScores
)

// SessionModel manages the full arcade session flow: menu -> game/shop/scores
// -> menu. Local play and every SSH connection run one.
type SessionModel struct {
	deps     Deps
	config   core.RuntimeConfig
	username string
	screen   screen
	menu     MenuModel
	game     *GameModel
	shop     *ShopModel
	scores   *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, username string) SessionModel {
	if deps.Logger != nil && username != "" {
		deps.Logger = deps.Logger.With("user", username)
	}
	return SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(deps, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// toMenu rebuilds the menu so it shows fresh progress and history.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game, m.shop, m.scores = nil, nil, nil
	m.menu = NewMenuModel(m.deps, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Choice {
	case ChoicePlay:
		game := NewGameModel(m.deps, m.config)
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	case ChoiceShop:
		shop := NewShopModel(m.deps, m.config.ScreenW, m.config.ScreenH)
		m.shop = &shop
		m.screen = screenShop
		return m, m.shop.Init()
	case ChoiceScores:
		scores := NewScoreboardModel(m.deps.History, m.config.ScreenW, m.config.ScreenH)
		m.scores = &scores
		m.screen = screenScores
		return m, m.scores.Init()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if shopModel, ok := newModel.(ShopModel); ok {
		m.shop = &shopModel
	}

	if m.shop.IsGoingBack() {
		return m.toMenu()
	}
	if m.shop.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = &scoresModel
	}

	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenShop:
		return m.shop.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
