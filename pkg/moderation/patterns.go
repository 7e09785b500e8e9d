package moderation

import "regexp"

// Pattern lists are static configuration. hardBanPatterns cover explicit,
// self-harm, and graphic content; languagePatterns cover profanity and
// slurs. Both lists block the turn; the split exists so the lists can be
// audited and extended independently.

var hardBanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(kill(ing)?|hurt(ing)?|harm(ing)?)\s+(myself|yourself|himself|herself|themselves)\b`),
	regexp.MustCompile(`(?i)\b(suicide|self[\s-]?harm|cutting\s+myself)\b`),
	regexp.MustCompile(`(?i)\b(porn|pornograph\w*|sexual(ly)?\s+explicit|nude\s+(photo|pic)\w*)\b`),
	regexp.MustCompile(`(?i)\b(gore|beheading|mutilat\w+|dismember\w+)\b`),
	regexp.MustCompile(`(?i)\b(shoot(ing)?\s+up\s+(a|the|my)\s+school|school\s+shooting)\b`),
	regexp.MustCompile(`(?i)\b(how\s+to\s+(make|build)\s+(a\s+)?(bomb|explosive|weapon))\b`),
}

var languagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(fuck\w*|shit\w*|bitch\w*|asshole\w*|bastard\w*)\b`),
	regexp.MustCompile(`(?i)\b(dick\w*|cunt\w*|whore\w*|slut\w*)\b`),
	regexp.MustCompile(`(?i)\b(retard\w*|faggot\w*|nigg\w+)\b`),
}

func matchesAny(patterns []*regexp.Regexp, message string) bool {
	for _, p := range patterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}
