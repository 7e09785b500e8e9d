package debate

import "fmt"

// Difficulty selects which Profile governs prompting and scoring for a session.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyNormal       Difficulty = "Normal"
	DifficultyHard         Difficulty = "Hard"
	DifficultyExtreme      Difficulty = "Extreme"
)

// Tuning holds the stance adjustment constants for one difficulty tier.
// Agree and Mixed are negative (shift toward the student), CounterPush is
// positive (shift toward the AI).
type Tuning struct {
	Agree       float64
	Mixed       float64
	CounterPush float64
}

// Profile is the per-difficulty configuration bundle: the persona text
// embedded into the prompt plus the numeric constants the score shaper uses.
type Profile struct {
	PromptStyle   string
	BiasScore     float64 // fair default score when the model gives none
	DampingFactor float64 // pull strength toward BiasScore
	TiltTarget    float64 // low-effort anchor the score is pulled toward
	TiltStrength  float64 // pull strength for very short answers
	Tune          Tuning
}

// profiles is the closed difficulty table. Adding a tier is a one-entry edit;
// ValidateProfiles catches out-of-range constants at startup.
var profiles = map[Difficulty]Profile{
	DifficultyBeginner: {
		PromptStyle:   "Be gentle and encouraging. Concede ground generously and praise any reasonable point the student makes. Keep your counterarguments simple.",
		BiasScore:     0.35,
		DampingFactor: 0.25,
		TiltTarget:    0.50,
		TiltStrength:  0.0, // no low-effort pull at the easiest tier
		Tune:          Tuning{Agree: -0.06, Mixed: -0.03, CounterPush: 0.02},
	},
	DifficultyIntermediate: {
		PromptStyle:   "Be supportive but push back on weak reasoning. Concede good points, then offer one clear counterargument per turn.",
		BiasScore:     0.45,
		DampingFactor: 0.35,
		TiltTarget:    0.62,
		TiltStrength:  0.45,
		Tune:          Tuning{Agree: -0.08, Mixed: -0.04, CounterPush: 0.03},
	},
	DifficultyNormal: {
		PromptStyle:   "Debate at an even level. Concede only well-argued points and answer each of the student's claims with a counterpoint.",
		BiasScore:     0.50,
		DampingFactor: 0.50,
		TiltTarget:    0.68,
		TiltStrength:  0.55,
		Tune:          Tuning{Agree: -0.10, Mixed: -0.05, CounterPush: 0.04},
	},
	DifficultyHard: {
		PromptStyle:   "Argue forcefully. Concede rarely, attack weak premises directly, and cite concrete counterexamples.",
		BiasScore:     0.65,
		DampingFactor: 0.65,
		TiltTarget:    0.70,
		TiltStrength:  0.55,
		Tune:          Tuning{Agree: -0.13, Mixed: -0.07, CounterPush: 0.06},
	},
	DifficultyExtreme: {
		PromptStyle:   "Argue like a championship debater. Concede almost nothing, dismantle every claim, and keep relentless pressure on the student.",
		BiasScore:     0.75,
		DampingFactor: 0.75,
		TiltTarget:    0.72,
		TiltStrength:  0.55,
		Tune:          Tuning{Agree: -0.17, Mixed: -0.09, CounterPush: 0.08},
	},
}

// ParseDifficulty maps a request string to a known tier. Unknown values fall
// back to Normal rather than failing the turn.
func ParseDifficulty(s string) Difficulty {
	d := Difficulty(s)
	if _, ok := profiles[d]; ok {
		return d
	}
	return DifficultyNormal
}

// ProfileFor returns the profile for a tier, falling back to Normal for
// anything unknown.
func ProfileFor(d Difficulty) Profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[DifficultyNormal]
}

// ValidateProfiles checks the static table at startup so a bad edit fails
// fast instead of producing out-of-range scores at runtime.
func ValidateProfiles() error {
	required := []Difficulty{
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyNormal,
		DifficultyHard,
		DifficultyExtreme,
	}
	for _, d := range required {
		p, ok := profiles[d]
		if !ok {
			return fmt.Errorf("difficulty profile missing: %s", d)
		}
		if p.PromptStyle == "" {
			return fmt.Errorf("difficulty %s: empty prompt style", d)
		}
		if p.BiasScore < 0 || p.BiasScore > 1 {
			return fmt.Errorf("difficulty %s: bias score %.2f out of [0,1]", d, p.BiasScore)
		}
		if p.DampingFactor < 0 || p.DampingFactor > 1 {
			return fmt.Errorf("difficulty %s: damping factor %.2f out of [0,1]", d, p.DampingFactor)
		}
		if p.TiltTarget < 0 || p.TiltTarget > 1 {
			return fmt.Errorf("difficulty %s: tilt target %.2f out of [0,1]", d, p.TiltTarget)
		}
		if p.TiltStrength < 0 || p.TiltStrength > 1 {
			return fmt.Errorf("difficulty %s: tilt strength %.2f out of [0,1]", d, p.TiltStrength)
		}
	}
	return nil
}
