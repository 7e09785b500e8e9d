package score

import (
	"math/rand"

	"github.com/krishngohel/AIDebateTool/pkg/debate"
)

// RandSource isolates the nondeterministic steps (jitter, heroic upset) so
// tests can pin them. Float64 must return a value in [0,1).
type RandSource interface {
	Float64() float64
}

// mathRand adapts math/rand to RandSource.
type mathRand struct{ r *rand.Rand }

func (m mathRand) Float64() float64 { return m.r.Float64() }

// NewRand returns a seeded RandSource for production use.
func NewRand(seed int64) RandSource {
	return mathRand{r: rand.New(rand.NewSource(seed))}
}

const (
	jitterSpan = 0.02 // final score wobbles by at most ±this

	// Strong student arguments earn a small credit regardless of stance.
	strengthCreditThreshold = 0.6
	strengthCredit          = 0.03

	// Word-count cutoffs for the low-effort penalty.
	veryShortWords = 4
	shortWords     = 8
	weakTiltScale  = 0.4 // short (but not very short) answers get a weaker pull

	// Beginner is never allowed above this once the student said anything.
	beginnerCeiling = 0.40

	// Extreme occasionally lets an overwhelming student argument through.
	heroicUpsetChance   = 0.10
	heroicUpsetStrength = 0.85
	heroicUpsetCap      = 0.45
)

// Input carries everything the shaper needs for one turn. RawScore is the
// model's self-assessment after parsing; Words is the student message's
// word count.
type Input struct {
	RawScore        float64
	Stance          debate.Stance
	Concession      float64
	StudentStrength float64
	Words           int
	Difficulty      debate.Difficulty
}

// Shaper turns the model's untrusted raw score into a stable [0,1] value
// where 0 means the student is fully ahead and 1 means the AI is.
type Shaper struct {
	rng RandSource
}

func NewShaper(rng RandSource) *Shaper {
	return &Shaper{rng: rng}
}

// Shape applies the shaping stages in a fixed order: damp toward the
// difficulty bias, adjust for stance and concession, penalize low effort,
// jitter, then apply tier guardrails. Reordering the stages changes the
// output distribution, so don't.
func (s *Shaper) Shape(in Input) float64 {
	profile := debate.ProfileFor(in.Difficulty)
	beginner := in.Difficulty == debate.DifficultyBeginner

	// 1. Clamp the untrusted input.
	score := clamp01(in.RawScore)

	// 2. Damp toward the tier's fair default.
	d := profile.DampingFactor
	score = score*(1-d) + profile.BiasScore*d

	// 3. Stance/concession adjustment. Beginner skips this stage entirely
	// to stay maximally encouraging.
	if !beginner {
		switch in.Stance {
		case debate.StanceAgree:
			score += profile.Tune.Agree * (0.6 + 0.4*in.Concession)
		case debate.StanceMixed:
			score += profile.Tune.Mixed * (0.5 + 0.5*in.Concession)
		default: // disagree
			score += profile.Tune.CounterPush * (0.3 + 0.7*(1-in.Concession))
		}
		if in.StudentStrength >= strengthCreditThreshold {
			score -= strengthCredit
		}
	}

	// 4. Low-effort penalty: one-word non-arguments shouldn't win by
	// default. Pulls toward the tier's tilt target; skipped for Beginner
	// (TiltStrength is 0 there anyway).
	if !beginner && profile.TiltStrength > 0 {
		switch {
		case in.Words <= veryShortWords:
			score = blend(score, profile.TiltTarget, profile.TiltStrength)
		case in.Words <= shortWords:
			score = blend(score, profile.TiltTarget, profile.TiltStrength*weakTiltScale)
		}
	}

	// 5. Clamp before jitter so the wobble is centered on a valid value.
	score = clamp01(score)

	// 6. Jitter keeps repeated similar turns from scoring identically.
	score = clamp01(score + (s.rng.Float64()*2-1)*jitterSpan)

	// 7. Guardrails.
	if beginner && in.Words > 0 && score > beginnerCeiling {
		score = beginnerCeiling
	}
	if in.Difficulty == debate.DifficultyExtreme &&
		in.StudentStrength >= heroicUpsetStrength &&
		s.rng.Float64() < heroicUpsetChance &&
		score > heroicUpsetCap {
		score = heroicUpsetCap
	}

	return clamp01(score)
}

func blend(from, to, weight float64) float64 {
	return from*(1-weight) + to*weight
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
