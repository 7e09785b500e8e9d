package dto

import (
	"github.com/krishngohel/AIDebateTool/pkg/debate/score"
)

// TurnRequest is one debate turn from the client.
type TurnRequest struct {
	StudentKey  string `json:"student_key" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Difficulty  string `json:"difficulty,omitempty"`
	Round       int    `json:"round,omitempty" validate:"omitempty,min=1"`
	Topic       string `json:"topic,omitempty"`
	StudentSide string `json:"student_side,omitempty" validate:"omitempty,oneof=pro con"`
}

// TurnResponse covers both variants the endpoint returns: a scored turn, or
// a moderation violation (violation=true, scoring fields empty). Violations
// are normal outcomes and ship with a 200.
type TurnResponse struct {
	// Violation variant.
	Violation    bool   `json:"violation,omitempty"`
	Category     string `json:"category,omitempty"` // "sensitive"
	AllowRetry   bool   `json:"allow_retry,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// Scored variant.
	Reply     string     `json:"reply,omitempty"`
	Stance    string     `json:"stance,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
	Score     float64    `json:"score"`
	Round     int        `json:"round"`
	NextRound int        `json:"next_round"`
	HUD       *score.HUD `json:"hud,omitempty"`
	Hint      string     `json:"hint,omitempty"`

	// Shared.
	EndDebate bool `json:"end_debate"`
}

// EndDebateRequest closes a session explicitly (student quit, UI timeout).
type EndDebateRequest struct {
	StudentKey string `json:"student_key" validate:"required"`
}

// EndDebateResponse is the session summary shown in the closing popup.
type EndDebateResponse struct {
	RoundsPlayed   int     `json:"rounds_played"`
	Winner         string  `json:"winner"`
	Violations     int     `json:"violations"`
	AvgReadability float64 `json:"avg_readability"`
}

// TopicsResponse lists the configured debate topics.
type TopicsResponse struct {
	Topics []string `json:"topics"`
}
