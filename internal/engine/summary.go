package engine

import (
	"time"

	"github.com/vovakirdan/blastpong/internal/core"
	"github.com/vovakirdan/blastpong/internal/multiplayer"
)

// Summary describes a finished (or running) session.
type Summary struct {
	GameID   string                   `yaml:"game"`
	Seed     int64                    `yaml:"seed"`
	Ticks    uint64                   `yaml:"ticks"`
	Score    int                      `yaml:"score"`
	Won      bool                     `yaml:"won"`
	GameOver bool                     `yaml:"game_over"`
	Exit     string                   `yaml:"exit"`
	Duration time.Duration            `yaml:"duration"` // simulated, paused spans excluded
	Restarts int                      `yaml:"restarts,omitempty"`
	Events   map[string]int           `yaml:"events,omitempty"`
	Final    multiplayer.GameSnapshot `yaml:"final,omitempty"`
}

// Outcome is the one-word result stored with a run.
func (s Summary) Outcome() string {
	switch {
	case s.Won:
		return "won"
	case s.GameOver:
		return "lost"
	default:
		return s.Exit
	}
}

// Summary reports the session so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		GameID:   s.game.ID(),
		Seed:     s.runtime.Seed,
		Ticks:    s.tick,
		Score:    s.state.Score,
		Won:      s.state.Won,
		GameOver: s.state.GameOver,
		Exit:     s.exit.String(),
		Duration: s.clock.Now() - s.startedAt,
		Restarts: s.restarts,
	}
	if len(s.events) > 0 {
		sum.Events = make(map[string]int, len(s.events))
		for k, n := range s.events {
			sum.Events[k.String()] = n
		}
	}
	if snap, ok := s.game.(multiplayer.Snapshotter); ok {
		sum.Final = snap.Snapshot()
	}
	return sum
}

// Count returns how many events of kind were reported.
func (s Summary) Count(kind core.EventKind) int {
	return s.Events[kind.String()]
}
