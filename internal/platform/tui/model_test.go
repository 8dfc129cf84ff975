package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blastpong/internal/core"
	_ "github.com/vovakirdan/blastpong/internal/games/bomber"
	_ "github.com/vovakirdan/blastpong/internal/games/pong"
	"github.com/vovakirdan/blastpong/internal/multiplayer"
	"github.com/vovakirdan/blastpong/internal/registry"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionBomb},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "yo", core.ColorGreen)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(out, "hi") || !strings.Contains(out, "yo") {
		t.Errorf("RenderScreen output lost text: %q", out)
	}
}

func newGameModel(t *testing.T, id string, embedded bool) GameModel {
	t.Helper()
	game, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	m := NewGameModel(game, GameOptions{Runtime: testRuntime, Embedded: embedded})
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func TestGameModelTicks(t *testing.T) {
	m := newGameModel(t, "pong", false)

	for range 3 {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg{})
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}

	if m.session.Ticks() != 3 {
		t.Errorf("Ticks = %d, expected 3", m.session.Ticks())
	}
	view := m.View()
	if !strings.Contains(view, "Pong") {
		t.Errorf("View missing status line: %q", view)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newGameModel(t, "bomber", false)
	m, _ = update(t, m, TickMsg{})

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Errorf("IsQuitting = %v, cmd = %v, expected quit", m.IsQuitting(), cmd)
	}
	if !m.session.Closed() {
		t.Error("session should be closed after quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestGameModelBackWhenEmbedded(t *testing.T) {
	m := newGameModel(t, "bomber", true)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu = %v, IsQuitting = %v, expected back only", m.BackToMenu(), m.IsQuitting())
	}
	if cmd != nil {
		t.Error("embedded back should not quit the program")
	}
}

func TestGameModelNotice(t *testing.T) {
	m := newGameModel(t, "pong", true)

	m, _ = update(t, m, sessionEventMsg{evt: multiplayer.NoticeEvent{Message: "hello"}})
	if m.notice != "hello" {
		t.Errorf("notice = %q, expected hello", m.notice)
	}

	m, cmd := update(t, m, sessionEventMsg{evt: multiplayer.ShutdownEvent{Reason: "bye"}})
	if !m.IsQuitting() || cmd == nil {
		t.Error("shutdown should quit the game")
	}
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return sm
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(SessionOptions{Runtime: testRuntime, Username: "alice"})

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start the selected game")
	}
	if got := m.gameModel.session.Game().ID(); got != registry.List()[0].ID {
		t.Errorf("started %q, expected first listed game", got)
	}
	if m.gameModel.player != "alice" {
		t.Errorf("player = %q, expected alice", m.gameModel.player)
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.gameModel != nil {
		t.Fatal("esc should return to the menu")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil {
		t.Error("esc should close the scoreboard")
	}

	m = sessionUpdate(t, m, sessionEventMsg{evt: multiplayer.NoticeEvent{Message: "bob won"}})
	if !strings.Contains(m.View(), "bob won") {
		t.Error("menu view should show the notice")
	}

	m = sessionUpdate(t, m, sessionEventMsg{evt: multiplayer.ShutdownEvent{}})
	if !m.quitting {
		t.Error("shutdown in the menu should end the session")
	}
}
