package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/pkg/moderation/strikes"
)

const (
	cleanMessage    = "School uniforms limit self-expression and don't improve grades."
	profaneMessage  = "that argument is shit and you know it"
	selfHarmMessage = "sometimes I think about hurting myself"
)

func newTestGate(threshold int) *Gate {
	return NewGate(strikes.NewMemoryStore(0), nil, threshold, logger.NoopLogger{})
}

func TestGatePassesCleanMessage(t *testing.T) {
	verdict := newTestGate(2).Check(context.Background(), "riya:r", cleanMessage)

	assert.False(t, verdict.Violation)
	assert.False(t, verdict.EndDebate)
}

func TestGateFirstOffenseAllowsRetry(t *testing.T) {
	verdict := newTestGate(2).Check(context.Background(), "riya:r", profaneMessage)

	require.True(t, verdict.Violation)
	assert.Equal(t, CategorySensitive, verdict.Category)
	assert.True(t, verdict.AllowRetry)
	assert.False(t, verdict.EndDebate)
	assert.NotEmpty(t, verdict.Instructions)
}

func TestGateSelfHarmContentIsBlocked(t *testing.T) {
	verdict := newTestGate(2).Check(context.Background(), "riya:r", selfHarmMessage)

	require.True(t, verdict.Violation)
	assert.True(t, verdict.AllowRetry)
}

func TestGateEscalatesAtThreshold(t *testing.T) {
	gate := newTestGate(2)
	ctx := context.Background()

	first := gate.Check(ctx, "sam:k", profaneMessage)
	require.True(t, first.Violation)
	assert.True(t, first.AllowRetry)
	assert.False(t, first.EndDebate)

	second := gate.Check(ctx, "sam:k", profaneMessage)
	require.True(t, second.Violation)
	assert.False(t, second.AllowRetry)
	assert.True(t, second.EndDebate)
}

func TestGateCleanMessageResetsStrikes(t *testing.T) {
	gate := newTestGate(2)
	ctx := context.Background()

	// violation, clean, violation, violation: the clean turn resets the
	// counter, so only the fourth message reaches the threshold.
	v1 := gate.Check(ctx, "lee:m", profaneMessage)
	require.True(t, v1.Violation)

	clean := gate.Check(ctx, "lee:m", cleanMessage)
	require.False(t, clean.Violation)

	v2 := gate.Check(ctx, "lee:m", profaneMessage)
	require.True(t, v2.Violation)
	assert.True(t, v2.AllowRetry, "strike count should have reset on the clean turn")
	assert.False(t, v2.EndDebate)

	v3 := gate.Check(ctx, "lee:m", profaneMessage)
	assert.False(t, v3.AllowRetry)
	assert.True(t, v3.EndDebate)
}

func TestGateStrikesAreKeyedPerStudent(t *testing.T) {
	gate := newTestGate(2)
	ctx := context.Background()

	gate.Check(ctx, "a:a", profaneMessage)
	other := gate.Check(ctx, "b:b", profaneMessage)

	assert.True(t, other.AllowRetry, "strikes must not leak across student keys")
}

// stubClassifier scripts the external moderation signal.
type stubClassifier struct {
	flagged bool
	err     error
}

func (s stubClassifier) Flagged(context.Context, string) (bool, error) {
	return s.flagged, s.err
}

func TestGateClassifierVerdictIsORed(t *testing.T) {
	gate := NewGate(strikes.NewMemoryStore(0), stubClassifier{flagged: true}, 2, logger.NoopLogger{})

	verdict := gate.Check(context.Background(), "riya:r", cleanMessage)

	assert.True(t, verdict.Violation, "classifier flag alone should block")
}

func TestGateClassifierFailsOpen(t *testing.T) {
	gate := NewGate(strikes.NewMemoryStore(0), stubClassifier{err: errors.New("timeout")}, 2, logger.NoopLogger{})

	verdict := gate.Check(context.Background(), "riya:r", cleanMessage)

	assert.False(t, verdict.Violation, "classifier failure must not block a clean message")
}

func TestGateClassifierNotCalledWhenPatternsMatch(t *testing.T) {
	// A pattern match blocks regardless of what the classifier would say.
	gate := NewGate(strikes.NewMemoryStore(0), stubClassifier{flagged: false}, 2, logger.NoopLogger{})

	verdict := gate.Check(context.Background(), "riya:r", profaneMessage)

	assert.True(t, verdict.Violation)
}
