package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/engine"
	"github.com/vovakirdan/blastpong/internal/multiplayer"
	"github.com/vovakirdan/blastpong/internal/registry"
	"github.com/vovakirdan/blastpong/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every hosted session.
	TickRate int

	// Logger receives server and session logs. Nil uses a stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

type channelKey struct{}

// SSHServer wraps a Wish SSH server. Every connection runs its own
// menu and game loop; the server only shares the score store and the
// session registry used for notices.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	sessions *multiplayer.SessionRegistry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		sessions: multiplayer.NewSessionRegistry(),
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: the registry middleware wraps the
	// Bubble Tea handler so the channel session exists before it starts.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.registryMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cs, _ := sshSession.Context().Value(channelKey{}).(*multiplayer.ChannelSession)
	if cs == nil {
		s.logger.Error("session has no event channel", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionOptions{
		Store:    s.store,
		Runtime:  cfg,
		Username: sshSession.User(),
		Channel:  cs,
		Logger:   s.logger.With("user", sshSession.User()),
		Announce: s.announce,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// registryMiddleware gives each connection a channel session in the
// registry for the lifetime of the SSH session.
func (s *SSHServer) registryMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := multiplayer.SessionID(fmt.Sprintf("%s-%d", sshSession.User(), time.Now().UnixNano()))
		cs := multiplayer.NewChannelSession(id, 16)
		sshSession.Context().SetValue(channelKey{}, cs)

		s.sessions.Register(cs)
		defer func() {
			s.sessions.Unregister(id)
			cs.Close()
		}()

		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"active", s.sessions.Count(),
		)
	}
}

// announce tells every connected session about a finished winning run.
func (s *SSHServer) announce(user string, sum engine.Summary) {
	if !sum.Won {
		return
	}
	s.sessions.Broadcast(multiplayer.NoticeEvent{
		Message: fmt.Sprintf("%s won %s with %d", user, sum.GameID, sum.Score),
	})
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "sessions", s.sessions.Count())
	return s.Shutdown()
}

// Shutdown tells live sessions to finish, then stops the server.
func (s *SSHServer) Shutdown() error {
	s.sessions.Broadcast(multiplayer.ShutdownEvent{Reason: "server shutting down"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionEventMsg wraps a server event for the Bubble Tea loop.
type sessionEventMsg struct {
	evt multiplayer.SessionEvent
}

// waitForEvent blocks on the next event pushed to the session.
func waitForEvent(cs *multiplayer.ChannelSession) tea.Cmd {
	if cs == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case evt, ok := <-cs.Events():
			if !ok {
				return nil
			}
			return sessionEventMsg{evt: evt}
		case <-cs.Done():
			return nil
		}
	}
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store    *storage.Store
	Runtime  core.RuntimeConfig
	Username string
	Channel  *multiplayer.ChannelSession
	Logger   *log.Logger
	Announce func(user string, sum engine.Summary)
}

// SessionModel manages the full arcade session flow:
// menu -> game or scoreboard -> menu. It is the top-level model for SSH
// sessions.
type SessionModel struct {
	opts       SessionOptions
	config     core.RuntimeConfig
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
	notice     string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:   opts,
		config: opts.Runtime,
		menu:   NewMenuModel(opts.Store, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForEvent(m.opts.Channel))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case sessionEventMsg:
		return m.handleEvent(msg)
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// handleEvent routes a pushed event to the game or the menu and keeps
// listening for the next one.
func (m SessionModel) handleEvent(msg sessionEventMsg) (tea.Model, tea.Cmd) {
	if _, ok := msg.evt.(multiplayer.ShutdownEvent); ok && m.gameModel == nil {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	if n, ok := msg.evt.(multiplayer.NoticeEvent); ok {
		m.notice = n.Message
	}
	return m, waitForEvent(m.opts.Channel)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// The menu quits its own program on every choice; here the choice
	// switches screens instead.
	switch res := resultOf(m.menu); {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case res.WantsScoreboard:
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()

	case res.GameID != "":
		return m.startGame(res.GameID)
	}

	return m, cmd
}

// startGame creates the selected game and its model.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.opts.Logger.Error("cannot create game", "game", gameID, "error", err)
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, nil
	}

	var sid multiplayer.SessionID
	if m.opts.Channel != nil {
		sid = m.opts.Channel.ID()
	}
	match := multiplayer.NewMatch(
		multiplayer.MatchID(fmt.Sprintf("match-%d", time.Now().UnixNano())),
		gameID,
		sid,
	)

	opts := GameOptions{
		Store:    m.opts.Store,
		Runtime:  m.config,
		Player:   m.opts.Username,
		Logger:   m.opts.Logger,
		Match:    match,
		Embedded: true,
	}
	if m.opts.Announce != nil {
		user, announce := m.opts.Username, m.opts.Announce
		opts.OnGameOver = func(sum engine.Summary) { announce(user, sum) }
	}

	gameModel := NewGameModel(game, opts)
	m.gameModel = &gameModel
	m.notice = ""
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}
	if _, ok := msg.(sessionEventMsg); ok && !m.gameModel.IsQuitting() {
		cmd = tea.Batch(cmd, waitForEvent(m.opts.Channel))
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates while the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, m.menu.Init()
	case m.scoreboard.IsQuitting():
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

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + noticeStyle.Render(centerText(m.notice, m.config.ScreenW))
	}
	return view
}
