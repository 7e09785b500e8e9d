package events

import "github.com/krishngohel/AIDebateTool/pkg/session"

// Topic names for the in-process event bus.
const (
	TopicTurnRecorded = "DEBATE_TURN_RECORDED"
	TopicSessionEnded = "DEBATE_SESSION_ENDED"
)

// TurnRecorded is published after every turn, clean or blocked. The
// recorder consumes it and writes the session store.
type TurnRecorded struct {
	Turn session.TurnRecord `json:"turn"`
}

// SessionEnded is published when a debate finishes (round limit reached,
// terminal violation, or explicit end call).
type SessionEnded struct {
	Summary session.Summary `json:"summary"`
}
