package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

// hudRows is how many screen rows the HUD occupies above the world.
const hudRows = 1

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
)

// Model is the Bubble Tea model driving a game session.
type Model struct {
	orch      *session.Orchestrator
	cfg       config.GameConfig
	runtime   core.RuntimeConfig
	screen    *core.Screen
	keys      *KeyMapper
	nameInput textinput.Model
	dt        float64
	quitting  bool
}

// NewModel creates the model for a session.
func NewModel(orch *session.Orchestrator, cfg config.GameConfig, rt core.RuntimeConfig, defaultName string) Model {
	ti := textinput.New()
	ti.Placeholder = "player"
	ti.CharLimit = 16
	ti.Width = 20
	ti.SetValue(defaultName)
	ti.Focus()

	return Model{
		orch:      orch,
		cfg:       cfg,
		runtime:   rt,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:      NewKeyMapper(),
		nameInput: ti,
		dt:        1.0 / float64(rt.TickRate),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.runtime.TickRate))
}

// Update handles messages and advances the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey routes input by session state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.orch.State() == session.StateStartMenu {
		return m.handleMenuKey(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		m.orch.TogglePause()
		m.keys.Reset()
		return m, nil
	case core.ActionConfirm:
		if m.orch.State() == session.StateLevelComplete {
			m.orch.AdvanceLevel()
			m.keys.Reset()
		}
		return m, nil
	case core.ActionRestart:
		switch m.orch.State() {
		case session.StateGameOver, session.StateGameComplete:
			m.orch.ReturnToMenu()
			m.keys.Reset()
			m.nameInput.Focus()
		}
		return m, nil
	}

	m.keys.Press(msg)
	return m, nil
}

// handleMenuKey runs the name prompt on the start menu.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = "player"
		}
		m.orch.StartGame(name)
		m.keys.Reset()
		return m, nil
	case "esc":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.orch.State() == session.StatePlaying {
		m.orch.Tick(m.dt, m.keys.Frame())
		m.keys.Decay()
	}
	return m, tickCmd(m.runtime.TickRate)
}

// View renders the current session state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.orch.State() {
	case session.StateStartMenu:
		return m.viewStartMenu()
	case session.StatePlaying:
		return m.viewWorld("")
	case session.StatePaused:
		return m.viewWorld("PAUSED")
	case session.StateLevelComplete:
		return m.viewOverlay(fmt.Sprintf("LEVEL %d COMPLETE", m.orch.LevelIndex()+1), m.completionLines(), "enter: next level")
	case session.StateGameOver:
		return m.viewOverlay("GAME OVER", m.finalLines(), "r: menu  q: quit")
	case session.StateGameComplete:
		return m.viewOverlay("YOU WIN", m.finalLines(), "r: menu  q: quit")
	}
	return ""
}

// viewStartMenu renders the title screen with the name prompt.
func (m Model) viewStartMenu() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("T U I   P L A T F O R M E R"), m.screen.Width()))
	b.WriteString("\n\n")
	b.WriteString(centerText("enter your name:", m.screen.Width()))
	b.WriteString("\n")
	b.WriteString(centerText(m.nameInput.View(), m.screen.Width()))
	b.WriteString("\n\n")
	if high := m.orch.HighScore(); high > 0 {
		b.WriteString(centerText(fmt.Sprintf("high score: %d", high), m.screen.Width()))
		b.WriteString("\n")
	}
	b.WriteString(centerText(fmt.Sprintf("samples collected: %d", m.orch.SampleCount()), m.screen.Width()))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("a/d move  space jump  p pause  enter start  q quit"), m.screen.Width()))
	return b.String()
}

// viewWorld renders the HUD and world, with an optional centered banner.
func (m Model) viewWorld(banner string) string {
	m.screen.Clear()
	RenderWorld(m.screen, m.orch.World(), m.cfg.World, hudRows)
	if banner != "" {
		m.screen.DrawTextCentered(m.screen.Height()/2, banner)
	}

	var b strings.Builder
	b.WriteString(hudStyle.Width(m.screen.Width()).Render(m.hudLine()))
	b.WriteString("\n")
	for y := hudRows; y < m.screen.Height(); y++ {
		if y > hudRows {
			b.WriteString("\n")
		}
		b.WriteString(m.screen.Row(y))
	}
	return b.String()
}

// hudLine formats the status row shown above the world.
func (m Model) hudLine() string {
	label, _ := m.orch.Prediction()
	return fmt.Sprintf(" LV %d/%d  LIVES %d  SCORE %d  HI %d  COINS %d  TIER %s",
		m.orch.LevelIndex()+1,
		m.cfg.Session.MaxLevels,
		m.orch.Lives(),
		m.orch.Score(),
		m.orch.HighScore(),
		m.orch.World().CoinsCollected,
		label,
	)
}

// completionLines summarizes the just-finished level.
func (m Model) completionLines() []string {
	label, probs := m.orch.Prediction()
	lines := []string{
		fmt.Sprintf("score: %d", m.orch.Score()),
		fmt.Sprintf("skill tier: %s", tierStyle.Render(string(label))),
	}
	if p, ok := probs[label]; ok {
		lines = append(lines, fmt.Sprintf("confidence: %.0f%%", p*100))
	}
	return lines
}

// finalLines summarizes a finished run.
func (m Model) finalLines() []string {
	lines := []string{
		fmt.Sprintf("final score: %d", m.orch.Score()),
		fmt.Sprintf("reached level %d of %d", m.orch.LevelIndex()+1, m.cfg.Session.MaxLevels),
	}
	if m.orch.Score() >= m.orch.HighScore() && m.orch.Score() > 0 {
		lines = append(lines, "new high score!")
	}
	return lines
}

// viewOverlay renders a bordered box centered on a blank screen.
func (m Model) viewOverlay(title string, lines []string, help string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n\n")
	for _, l := range lines {
		content.WriteString(l)
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(dimStyle.Render(help))

	box := overlayStyle.Render(content.String())
	return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box)
}

// centerText pads text to be horizontally centered.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}

// Run starts the Bubble Tea program for a local session.
func Run(orch *session.Orchestrator, cfg config.GameConfig, rt core.RuntimeConfig) error {
	model := NewModel(orch, cfg, rt, "")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
