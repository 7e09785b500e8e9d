package topic

import (
	"fmt"
	"sort"
	"strings"
)

// keywords maps a known debate topic to the words that suggest the student
// is actually talking about it. Static configuration; matching is
// case-insensitive substring.
var keywords = map[string][]string{
	"school uniforms": {"uniform", "dress", "clothes", "wear", "outfit", "identity"},
	"homework":        {"homework", "assignment", "practice", "study", "learn", "free time"},
	"social media":    {"social", "media", "instagram", "tiktok", "online", "screen", "phone"},
	"video games":     {"game", "gaming", "play", "console", "violent", "esports"},
	"school lunches":  {"lunch", "food", "cafeteria", "meal", "healthy", "nutrition"},
	"exams":           {"exam", "test", "grade", "score", "stress", "assessment"},
}

// Hint returns an advisory nudge when none of the topic's keywords appear in
// the message. It never blocks a turn and never alters scoring. Unknown or
// empty topics disable the check.
func Hint(topic, message string) (string, bool) {
	words, ok := keywords[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		return "", false
	}

	lower := strings.ToLower(message)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return "", false
		}
	}

	return fmt.Sprintf("Tip: try to mention %s directly so your argument stays on topic.", topic), true
}

// Known reports whether a topic has a keyword list.
func Known(topic string) bool {
	_, ok := keywords[strings.ToLower(strings.TrimSpace(topic))]
	return ok
}

// Topics lists the configured topics for the client's topic picker.
func Topics() []string {
	out := make([]string, 0, len(keywords))
	for t := range keywords {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
