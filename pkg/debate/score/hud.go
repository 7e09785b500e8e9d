package score

import "math"

// Outcome is who won the turn, derived deterministically from the shaped score.
type Outcome string

const (
	OutcomeAI      Outcome = "ai"
	OutcomeStudent Outcome = "student"
	OutcomeMixed   Outcome = "mixed"
)

// Leader mirrors Outcome for the HUD, with "tied" instead of "mixed".
type Leader string

const (
	LeaderAI      Leader = "ai"
	LeaderStudent Leader = "student"
	LeaderTied    Leader = "tied"
)

// Turn thresholds. Strictly above/below; exactly on a threshold is mixed.
const (
	aiThreshold      = 0.52
	studentThreshold = 0.48
)

// HUD meter label bands.
const (
	clearlyAheadMeter = 65
	farAheadMeter     = 80
)

// HUD is what the client renders as the win meter.
type HUD struct {
	Meter  int    `json:"meter"`
	Leader Leader `json:"leader"`
	Label  string `json:"label"`
}

// DeriveOutcome maps a shaped score to a turn outcome.
func DeriveOutcome(score float64) Outcome {
	switch {
	case score > aiThreshold:
		return OutcomeAI
	case score < studentThreshold:
		return OutcomeStudent
	default:
		return OutcomeMixed
	}
}

// DeriveHUD converts a shaped score into the meter, leader, and label shown
// in the client's win bar.
func DeriveHUD(score float64) HUD {
	meter := int(math.Round(score * 100))

	var leader Leader
	switch {
	case float64(meter) > aiThreshold*100:
		leader = LeaderAI
	case float64(meter) < studentThreshold*100:
		leader = LeaderStudent
	default:
		leader = LeaderTied
	}

	return HUD{
		Meter:  meter,
		Leader: leader,
		Label:  hudLabel(meter, leader),
	}
}

func hudLabel(meter int, leader Leader) string {
	switch leader {
	case LeaderAI:
		switch {
		case meter >= farAheadMeter:
			return "AI far ahead"
		case meter >= clearlyAheadMeter:
			return "AI clearly ahead"
		default:
			return "AI slightly ahead"
		}
	case LeaderStudent:
		// Mirror the AI bands around 50.
		switch {
		case meter <= 100-farAheadMeter:
			return "You're far ahead"
		case meter <= 100-clearlyAheadMeter:
			return "You're clearly ahead"
		default:
			return "You're slightly ahead"
		}
	default:
		return "Neck and neck"
	}
}
