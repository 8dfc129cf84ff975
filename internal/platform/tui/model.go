package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/engine"
	"github.com/vovakirdan/blastpong/internal/multiplayer"
	"github.com/vovakirdan/blastpong/internal/registry"
	"github.com/vovakirdan/blastpong/internal/storage"
)

// statusRows is the space below the playfield for the status and help lines.
const statusRows = 2

// GameOptions configures a GameModel.
type GameOptions struct {
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Player  string      // recorded with scores; empty for local play
	Logger  *log.Logger // nil discards session logs
	Match   *multiplayer.Match

	// OnGameOver is called once per finished run, after it is stored.
	OnGameOver func(engine.Summary)

	// Embedded is set when the model runs inside a menu flow, so Back
	// returns to the menu instead of quitting the program.
	Embedded bool
}

// GameModel is the Bubble Tea model for one running game. It owns an
// engine.Session and drives it from tick messages.
type GameModel struct {
	session  *engine.Session
	renderer *core.ScreenRenderer
	keys     *engine.KeyState
	keyMap   GameKeyMap
	help     help.Model

	store    *storage.Store
	player   string
	match    *multiplayer.Match
	onOver   func(engine.Summary)
	embedded bool
	tickRate int

	highScore  int
	notice     string
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel wires game to a session rendering into a ScreenRenderer.
func NewGameModel(game registry.Game, opts GameOptions) GameModel {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	vw, vh := game.Viewport()
	renderer := core.NewScreenRenderer(cfg.ScreenW, max(cfg.ScreenH-statusRows, 1), vw, vh)
	keys := engine.NewKeyState(engine.DefaultHoldWindow, nil)

	session := engine.NewSession(game, engine.Options{
		Runtime:        cfg,
		Renderer:       renderer,
		Pacer:          core.NoopPacer{}, // tea.Tick paces the loop
		Input:          keys,
		Logger:         opts.Logger,
		StayOnGameOver: true,
		Reseed:         func() int64 { return time.Now().UnixNano() },
	})

	m := GameModel{
		session:  session,
		renderer: renderer,
		keys:     keys,
		keyMap:   DefaultGameKeyMap(),
		help:     help.New(),
		store:    opts.Store,
		player:   opts.Player,
		match:    opts.Match,
		onOver:   opts.OnGameOver,
		embedded: opts.Embedded,
		tickRate: cfg.TickRate,
	}
	if m.store != nil {
		if hs, err := m.store.HighScore(game.ID()); err == nil {
			m.highScore = hs
		}
	}
	return m
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.session.Start()
	m.renderer.SetView(m.session.Game().Viewport())
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.renderer.Resize(msg.Width, max(msg.Height-statusRows, 1))
		m.session.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case sessionEventMsg:
		return m.handleEvent(msg.evt)
	}

	return m, nil
}

// handleKey feeds key presses to the session's key state.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keyMap.MapKey(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.finish()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.keys.Press(action)
	}
	return m, nil
}

// handleTick runs one session frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	wasOver := m.session.State().GameOver
	exit := m.session.Frame()
	m.renderer.SetView(m.session.Game().Viewport())
	state := m.session.State()

	switch {
	case wasOver && !state.GameOver: // restarted
		m.saved = false
		m.notice = ""
	case state.GameOver && !m.saved:
		m.record()
	}

	if exit != engine.ExitNone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// handleEvent reacts to server-pushed events.
func (m GameModel) handleEvent(evt multiplayer.SessionEvent) (tea.Model, tea.Cmd) {
	switch e := evt.(type) {
	case multiplayer.NoticeEvent:
		m.notice = e.Message
	case multiplayer.ShutdownEvent:
		m.notice = e.Reason
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// record stores the current run once.
func (m *GameModel) record() {
	m.saved = true
	sum := m.session.Summary()
	if sum.Score > m.highScore {
		m.highScore = sum.Score
	}
	if m.store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveSummary(sum, m.player)
	}
	if m.onOver != nil {
		m.onOver(sum)
	}
}

// finish closes the session and records an unfinished run that got past
// its first tick.
func (m *GameModel) finish() {
	if m.session.Closed() {
		return
	}
	sum := m.session.Close()
	if m.saved || sum.Ticks == 0 || m.store == nil {
		return
	}
	m.saved = true
	//nolint:errcheck // Best-effort save
	m.store.SaveSummary(sum, m.player)
}

// saveScreenshot saves the current frame to a text file.
func (m *GameModel) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.Game().ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.renderer.Front().String()), 0o600)
	m.notice = "saved " + path
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the last presented frame plus a status and help line.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.renderer.Front()))
	b.WriteString("\n")

	game := m.session.Game()
	state := m.session.State()
	status := fmt.Sprintf("%s  score %d  best %d", game.Title(), state.Score, max(m.highScore, state.Score))
	if m.match != nil {
		status += "  " + m.match.Mode().String()
	}
	b.WriteString(statusStyle.Render(status))
	if m.notice != "" {
		b.WriteString("  ")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMap)))
	return b.String()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, opts GameOptions) error {
	model := NewGameModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
