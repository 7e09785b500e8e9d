package debate

import (
	"encoding/json"
	"strings"
)

// Stance is the AI's self-reported rhetorical posture for one turn.
type Stance string

const (
	StanceAgree    Stance = "agree"
	StanceDisagree Stance = "disagree"
	StanceMixed    Stance = "mixed"
)

// FallbackReply is used when the model output contains no parseable JSON.
const FallbackReply = "That's an interesting point. Tell me more about why you think that, and I'll give you my counterargument."

// TurnResult is the normalized model output for one turn. RawScore is the
// model's untrusted self-assessment; the score shaper owns the final value.
type TurnResult struct {
	Reply           string
	Stance          Stance
	RawScore        float64
	Concession      float64
	StudentStrength float64
}

// ParsedReply tags whether the result came from real model JSON or from the
// neutral fallback. Downstream code never re-inspects the raw text.
type ParsedReply struct {
	Result   TurnResult
	Fallback bool
}

// modelReplyJSON mirrors the JSON object the prompt instructs the model to
// emit. Pointers distinguish "absent" from zero values. The model also emits
// an "outcome" field; it is intentionally ignored and recomputed from the
// shaped score.
type modelReplyJSON struct {
	Reply           *string  `json:"reply"`
	Stance          *string  `json:"stance"`
	Score           *float64 `json:"score"`
	Concession      *float64 `json:"concession"`
	StudentStrength *float64 `json:"student_strength"`
}

// ParseModelReply extracts the first {...} block from raw model output and
// normalizes it into a TurnResult. Malformed output degrades to a neutral
// fallback turn; this function never fails. defaultScore is the active
// difficulty's bias score, used whenever the model reports no usable score.
func ParseModelReply(raw string, defaultScore float64) ParsedReply {
	fallback := ParsedReply{
		Result: TurnResult{
			Reply:           FallbackReply,
			Stance:          StanceMixed,
			RawScore:        defaultScore,
			Concession:      0,
			StudentStrength: 0.5,
		},
		Fallback: true,
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return fallback
	}

	var parsed modelReplyJSON
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return fallback
	}

	result := TurnResult{
		Reply:           FallbackReply,
		Stance:          StanceMixed,
		RawScore:        defaultScore,
		Concession:      0,
		StudentStrength: 0.5,
	}
	if parsed.Reply != nil && strings.TrimSpace(*parsed.Reply) != "" {
		result.Reply = strings.TrimSpace(*parsed.Reply)
	}
	if parsed.Stance != nil {
		result.Stance = normalizeStance(*parsed.Stance)
	}
	if parsed.Score != nil {
		result.RawScore = clamp01(*parsed.Score)
	}
	if parsed.Concession != nil {
		result.Concession = clamp01(*parsed.Concession)
	}
	if parsed.StudentStrength != nil {
		result.StudentStrength = clamp01(*parsed.StudentStrength)
	}

	return ParsedReply{Result: result}
}

func normalizeStance(s string) Stance {
	switch Stance(strings.ToLower(strings.TrimSpace(s))) {
	case StanceAgree:
		return StanceAgree
	case StanceDisagree:
		return StanceDisagree
	default:
		return StanceMixed
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
