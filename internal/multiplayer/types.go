// Package multiplayer provides session and match bookkeeping for hosted play.
// Every SSH connection runs its own single-threaded game loop; this package
// only tracks who is connected and what they are playing.
package multiplayer

import "github.com/vovakirdan/blastpong/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the local human player, Player2 is the CPU.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a game match.
type MatchID string

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game (bomber).
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU is player vs computer (Pong vs AI).
	MatchModeVsCPU
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	default:
		return "Unknown"
	}
}

// ModeFor returns the match mode a game is played in.
func ModeFor(gameID string) MatchMode {
	if gameID == "pong" {
		return MatchModeVsCPU
	}
	return MatchModeSolo
}

// MatchHandle provides access to match metadata.
type MatchHandle interface {
	ID() MatchID
	Mode() MatchMode
}

// Match is a concrete implementation of MatchHandle.
type Match struct {
	id     MatchID
	mode   MatchMode
	GameID string

	// SessionIDs tracks which sessions are part of this match.
	SessionIDs []SessionID
}

// NewMatch creates a new match with the given parameters.
func NewMatch(id MatchID, gameID string, sessions ...SessionID) *Match {
	return &Match{
		id:         id,
		mode:       ModeFor(gameID),
		GameID:     gameID,
		SessionIDs: sessions,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Sessions returns the session IDs participating in this match.
func (m *Match) Sessions() []SessionID {
	return m.SessionIDs
}
