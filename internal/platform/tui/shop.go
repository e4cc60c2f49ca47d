package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ski-arcade/internal/cosmetics"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

// ShopKeyMap defines the key bindings for the shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Buy}, {k.Back, k.Quit}}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next")),
		Buy:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "buy/equip")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShopModel lists the cosmetic catalog and spends the score wallet.
type ShopModel struct {
	deps      Deps
	progress  progress.Progress
	skins     []cosmetics.Skin
	table     table.Model
	help      help.Model
	keys      ShopKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewShopModel creates a shop over the player's progress store.
func NewShopModel(deps Deps, width, height int) ShopModel {
	m := ShopModel{
		deps:     deps,
		progress: progress.LoadOrDefault(deps.Progress, deps.Logger),
		skins:    cosmetics.List(),
		help:     help.New(),
		keys:     DefaultShopKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *ShopModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Skin", Width: 16},
		{Title: "Price", Width: 8},
		{Title: "Status", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(4, min(len(m.skins)+1, m.height-10))),
	)

	t.SetStyles(tableStyles())
	return t
}

func (m *ShopModel) updateRows() {
	rows := make([]table.Row, len(m.skins))
	for i, skin := range m.skins {
		status := ""
		switch {
		case skin.ID == m.progress.EquippedCosmeticID:
			status = "equipped"
		case m.progress.Owns(skin.ID):
			status = "owned"
		case m.progress.TotalScore >= skin.Price:
			status = "buy"
		default:
			status = "locked"
		}
		rows[i] = table.Row{skin.Name, fmt.Sprintf("%d", skin.Price), status}
	}
	m.table.SetRows(rows)
}

// buy purchases or equips the skin under the cursor and saves progress.
func (m *ShopModel) buy() {
	if len(m.skins) == 0 {
		return
	}
	skin := m.skins[m.table.Cursor()]
	next := m.progress
	next.OwnedCosmeticIDs = append([]string(nil), m.progress.OwnedCosmeticIDs...)

	owned := next.Owns(skin.ID)
	if err := next.Buy(skin.ID); err != nil {
		if errors.Is(err, progress.ErrInsufficientScore) {
			m.status = fmt.Sprintf("Need %d more points for %s", skin.Price-next.TotalScore, skin.Name)
		} else {
			m.status = err.Error()
		}
		return
	}
	if m.deps.Progress != nil {
		if err := m.deps.Progress.Save(next); err != nil {
			m.status = "Could not save: " + err.Error()
			return
		}
	}
	m.progress = next
	if owned {
		m.status = fmt.Sprintf("Equipped %s", skin.Name)
	} else {
		m.status = fmt.Sprintf("Bought %s for %d", skin.Name, skin.Price)
		if m.deps.Logger != nil {
			m.deps.Logger.Info("Skin bought", "skin", skin.ID, "price", skin.Price, "wallet", next.TotalScore)
		}
	}
	m.updateRows()
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Buy):
			m.buy()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SKI SHOP"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Wallet: %d points", m.progress.TotalScore), m.width))
	b.WriteString("\n\n")

	for _, line := range strings.Split(panelStyle.Render(m.table.View()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}
