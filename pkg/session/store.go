package session

import (
	"context"
	"time"
)

// TurnRecord is what the pipeline exposes for the session log after each
// turn (clean or blocked).
type TurnRecord struct {
	ID          string    `json:"id"`
	SessionKey  string    `json:"session_key"`
	Round       int       `json:"round"`
	StudentText string    `json:"student_text"`
	AIReply     string    `json:"ai_reply"`
	WordCount   int       `json:"word_count"`
	Readability float64   `json:"readability"`
	Meter       int       `json:"meter"`
	Leader      string    `json:"leader"`
	LatencyMs   int64     `json:"latency_ms"`
	Status      string    `json:"status"`   // "ok" | "violation" | "fallback"
	Category    string    `json:"category"` // violation category, empty when clean
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is recorded once when a debate ends.
type Summary struct {
	SessionKey     string    `json:"session_key"`
	RoundsPlayed   int       `json:"rounds_played"`
	Winner         string    `json:"winner"` // "ai" | "student" | "tied"
	Violations     int       `json:"violations"`
	AvgReadability float64   `json:"avg_readability"`
	EndedAt        time.Time `json:"ended_at"`
}

// Store persists turn records and session summaries. The debate pipeline
// itself never blocks on it; writes arrive via the event bus.
type Store interface {
	SaveTurn(ctx context.Context, rec *TurnRecord) error
	SaveSummary(ctx context.Context, sum *Summary) error
	Close() error
}
