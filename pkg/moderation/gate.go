package moderation

import (
	"context"

	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/pkg/moderation/strikes"
)

const (
	CategorySensitive = "sensitive"

	// DefaultStrikeThreshold ends the debate on the second consecutive
	// violation. Configurable via MODERATION_STRIKE_THRESHOLD.
	DefaultStrikeThreshold = 2

	warningInstructions = "Let's keep this debate school-safe. That message isn't appropriate for this space - please rephrase your argument and try again."
	stopInstructions    = "This debate has to stop here. Repeated inappropriate messages aren't okay. If something is bothering you, please talk to a teacher or a trusted adult."
)

// Verdict is the gate's decision for one message. A violation is a normal
// structured outcome, not an error; the caller returns it to the client
// with a success status.
type Verdict struct {
	Violation    bool
	Category     string
	AllowRetry   bool
	EndDebate    bool
	Instructions string
}

// Gate classifies messages against the pattern lists (plus the optional
// external classifier) and applies the escalating-strikes policy. Its only
// side effect is the strike store.
type Gate struct {
	store      strikes.Store
	classifier Classifier // nil disables the secondary signal
	threshold  int
	log        logger.ILogger
}

func NewGate(store strikes.Store, classifier Classifier, threshold int, log logger.ILogger) *Gate {
	if threshold <= 0 {
		threshold = DefaultStrikeThreshold
	}
	return &Gate{
		store:      store,
		classifier: classifier,
		threshold:  threshold,
		log:        log,
	}
}

// Check runs the message through the pattern lists and, when configured,
// the external classifier. Clean messages reset the student's strikes;
// violations increment them and escalate at the threshold.
func (g *Gate) Check(ctx context.Context, studentKey, message string) *Verdict {
	banned := matchesAny(hardBanPatterns, message) || matchesAny(languagePatterns, message)

	// The classifier is advisory: ORed in when it answers, ignored when it
	// doesn't. Its failures must never block a turn.
	if !banned && g.classifier != nil {
		flagged, err := g.classifier.Flagged(ctx, message)
		if err != nil {
			g.log.Warn("moderation", "classifier unavailable, failing open", map[string]interface{}{
				"error": err.Error(),
			})
		} else if flagged {
			banned = true
		}
	}

	if !banned {
		if err := g.store.Reset(ctx, studentKey); err != nil {
			g.log.Warn("moderation", "failed to reset strikes", map[string]interface{}{
				"student_key": studentKey,
				"error":       err.Error(),
			})
		}
		return &Verdict{}
	}

	count, err := g.store.Increment(ctx, studentKey)
	if err != nil {
		// Treat a broken store as a first strike: the student still gets
		// the warning, but a storage outage can't end the session.
		g.log.Error("moderation", "failed to increment strikes", map[string]interface{}{
			"student_key": studentKey,
			"error":       err.Error(),
		})
		count = 1
	}

	g.log.Info("moderation", "message blocked", map[string]interface{}{
		"student_key": studentKey,
		"strikes":     count,
	})

	if count >= g.threshold {
		return &Verdict{
			Violation:    true,
			Category:     CategorySensitive,
			AllowRetry:   false,
			EndDebate:    true,
			Instructions: stopInstructions,
		}
	}
	return &Verdict{
		Violation:    true,
		Category:     CategorySensitive,
		AllowRetry:   true,
		Instructions: warningInstructions,
	}
}
