package debate

// DefaultRoundLimit is the number of rounds in a full debate.
// Configurable via DEBATE_ROUND_LIMIT.
const DefaultRoundLimit = 5

// Advance computes the next round number and whether the debate is over.
func Advance(round, roundLimit int) (nextRound int, endDebate bool) {
	if roundLimit <= 0 {
		roundLimit = DefaultRoundLimit
	}
	nextRound = round + 1
	return nextRound, nextRound > roundLimit
}
