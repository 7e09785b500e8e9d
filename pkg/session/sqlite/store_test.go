package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishngohel/AIDebateTool/pkg/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "debate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveTurn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &session.TurnRecord{
		ID:          "turn-1",
		SessionKey:  "riya:r",
		Round:       1,
		StudentText: "Homework teaches discipline.",
		AIReply:     "Discipline can be taught without busywork.",
		WordCount:   4,
		Readability: 71.5,
		Meter:       58,
		Leader:      "ai",
		LatencyMs:   820,
		Status:      "ok",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.SaveTurn(ctx, rec))

	var count int
	err := store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM debate_turns WHERE session_key = ?", "riya:r").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveTurnViolationRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &session.TurnRecord{
		ID:          "turn-2",
		SessionKey:  "sam:k",
		Round:       1,
		StudentText: "blocked message",
		Status:      "violation",
		Category:    "sensitive",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.SaveTurn(ctx, rec))

	var status, category string
	err := store.db.QueryRowContext(ctx,
		"SELECT status, category FROM debate_turns WHERE id = ?", "turn-2").Scan(&status, &category)
	require.NoError(t, err)
	assert.Equal(t, "violation", status)
	assert.Equal(t, "sensitive", category)
}

func TestSaveSummaryUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sum := &session.Summary{
		SessionKey:     "riya:r",
		RoundsPlayed:   3,
		Winner:         "ai",
		Violations:     0,
		AvgReadability: 68.2,
		EndedAt:        time.Now().UTC(),
	}
	require.NoError(t, store.SaveSummary(ctx, sum))

	// The explicit end endpoint can fire after the round-limit end already
	// wrote a summary; the second write wins.
	sum.RoundsPlayed = 5
	sum.Winner = "student"
	require.NoError(t, store.SaveSummary(ctx, sum))

	var rounds int
	var winner string
	err := store.db.QueryRowContext(ctx,
		"SELECT rounds_played, winner FROM debate_summaries WHERE session_key = ?", "riya:r").
		Scan(&rounds, &winner)
	require.NoError(t, err)
	assert.Equal(t, 5, rounds)
	assert.Equal(t, "student", winner)

	var count int
	err = store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM debate_summaries").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSchemaIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debate.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
