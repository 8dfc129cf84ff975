package multiplayer

// SessionEvent represents an event pushed from the server to a session.
type SessionEvent interface {
	sessionEvent()
}

// NoticeEvent is a one-line message shown in the session's status bar.
type NoticeEvent struct {
	Message string
}

func (NoticeEvent) sessionEvent() {}

// ShutdownEvent tells a session the server is going away.
type ShutdownEvent struct {
	Reason string
}

func (ShutdownEvent) sessionEvent() {}

// MatchEndedEvent is sent when a session's match ends.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // 0 if no winner
	Score1  int
	Score2  int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota // Normal game completion
	MatchEndReasonCancelled                       // Player quit or disconnected
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonCancelled:
		return "Match cancelled"
	default:
		return "Unknown"
	}
}

// GameSnapshot is the interface for game-specific snapshot data.
type GameSnapshot interface {
	IsGameSnapshot() // Marker method for type safety
}

// Snapshotter is implemented by games that can describe their state as a
// GameSnapshot.
type Snapshotter interface {
	Snapshot() GameSnapshot
}
