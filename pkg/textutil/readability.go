package textutil

import (
	"strings"
	"unicode"
)

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// FleschReadingEase estimates readability of a student message on the
// standard 0-100ish Flesch scale (higher = easier). It is an estimate for
// session reporting only; the syllable counter is a vowel-group heuristic.
func FleschReadingEase(s string) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(s)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 - 1.015*(float64(len(words))/float64(sentences)) - 84.6*(float64(syllables)/float64(len(words)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func countSentences(s string) int {
	n := 0
	for _, r := range s {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	return n
}

func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	// Trailing silent e.
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 && hasLetter(word) {
		count = 1
	}
	return count
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
