package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishngohel/AIDebateTool/internal/dto"
	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/internal/repository/memory"
	"github.com/krishngohel/AIDebateTool/pkg/debate"
	"github.com/krishngohel/AIDebateTool/pkg/debate/score"
	"github.com/krishngohel/AIDebateTool/pkg/llm"
	"github.com/krishngohel/AIDebateTool/pkg/moderation"
	"github.com/krishngohel/AIDebateTool/pkg/moderation/strikes"
	"github.com/krishngohel/AIDebateTool/pkg/session"
)

// fakeProvider returns a fixed reply or error.
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, _ string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, opts...)
}

// capturingPublisher records events instead of publishing them.
type capturingPublisher struct {
	turns     []*session.TurnRecord
	summaries []*session.Summary
}

func (p *capturingPublisher) PublishTurnRecorded(rec *session.TurnRecord) error {
	p.turns = append(p.turns, rec)
	return nil
}

func (p *capturingPublisher) PublishSessionEnded(sum *session.Summary) error {
	p.summaries = append(p.summaries, sum)
	return nil
}

// pinnedRand removes jitter and upset randomness from service-level tests.
type pinnedRand struct{}

func (pinnedRand) Float64() float64 { return 0.5 }

const modelReply = `{"reply": "Discipline can be taught without busywork.", "stance": "disagree", "outcome": "ai", "score": 0.7, "concession": 0.2, "student_strength": 0.5}`

func newTestService(provider llm.LLMProvider, publisher IPublisherService, roundLimit int) IDebateService {
	gate := moderation.NewGate(strikes.NewMemoryStore(0), nil, 2, logger.NoopLogger{})
	return NewDebateService(
		gate,
		provider,
		score.NewShaper(pinnedRand{}),
		memory.NewSessionRepository(),
		publisher,
		roundLimit,
		logger.NoopLogger{},
	)
}

func TestTurnScoredResponse(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{reply: modelReply}, publisher, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "Homework helps students practice what they learned in class every day.",
		Difficulty: "Normal",
		Round:      1,
		Topic:      "homework",
	})
	require.NoError(t, err)

	assert.False(t, res.Violation)
	assert.Equal(t, "Discipline can be taught without busywork.", res.Reply)
	assert.Equal(t, "disagree", res.Stance)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 1.0)
	assert.Equal(t, 1, res.Round)
	assert.Equal(t, 2, res.NextRound)
	assert.False(t, res.EndDebate)
	require.NotNil(t, res.HUD)
	assert.Equal(t, res.HUD.Meter, int(res.Score*100+0.5))
	assert.Empty(t, res.Hint, "on-topic message should carry no hint")

	require.Len(t, publisher.turns, 1)
	assert.Equal(t, "ok", publisher.turns[0].Status)
	assert.Equal(t, 1, publisher.turns[0].Round)
	assert.NotZero(t, publisher.turns[0].WordCount)
}

func TestTurnOffTopicHint(t *testing.T) {
	svc := newTestService(&fakeProvider{reply: modelReply}, &capturingPublisher{}, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "My favorite color is blue and I like trains.",
		Difficulty: "Normal",
		Round:      1,
		Topic:      "homework",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Hint)
	assert.False(t, res.Violation, "hint is advisory, never blocking")
}

func TestTurnFinalRoundEndsDebate(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{reply: modelReply}, publisher, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "Final argument about homework and study habits for the win.",
		Difficulty: "Normal",
		Round:      5,
		Topic:      "homework",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, res.NextRound)
	assert.True(t, res.EndDebate)
	require.Len(t, publisher.summaries, 1)
	assert.Equal(t, 5, publisher.summaries[0].RoundsPlayed)
}

func TestTurnRoundLimitThree(t *testing.T) {
	svc := newTestService(&fakeProvider{reply: modelReply}, &capturingPublisher{}, 3)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "Homework argument for a shorter debate format here.",
		Round:      3,
	})
	require.NoError(t, err)

	assert.True(t, res.EndDebate)
}

func TestTurnViolationSkipsModelCall(t *testing.T) {
	provider := &fakeProvider{reply: modelReply}
	publisher := &capturingPublisher{}
	svc := newTestService(provider, publisher, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "sam:k",
		Message:    "this whole topic is shit",
		Difficulty: "Normal",
		Round:      1,
	})
	require.NoError(t, err)

	assert.True(t, res.Violation)
	assert.Equal(t, "sensitive", res.Category)
	assert.True(t, res.AllowRetry)
	assert.False(t, res.EndDebate)
	assert.Empty(t, res.Reply)
	assert.Zero(t, provider.calls, "blocked turns must not reach the model")

	require.Len(t, publisher.turns, 1)
	assert.Equal(t, "violation", publisher.turns[0].Status)
	assert.Equal(t, "sensitive", publisher.turns[0].Category)
}

func TestTurnSecondViolationEndsDebate(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{reply: modelReply}, publisher, 5)
	req := &dto.TurnRequest{
		StudentKey: "sam:k",
		Message:    "this whole topic is shit",
		Round:      1,
	}

	first, err := svc.Turn(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.AllowRetry)

	second, err := svc.Turn(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.AllowRetry)
	assert.True(t, second.EndDebate)
	require.Len(t, publisher.summaries, 1)
	assert.Equal(t, 2, publisher.summaries[0].Violations)
}

func TestTurnModelFailureFailsWholeTurn(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{err: errors.New("connection refused")}, publisher, 5)

	_, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "A perfectly fine argument about homework quality.",
		Round:      1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Empty(t, publisher.turns, "failed turns are not recorded")
}

func TestTurnMalformedModelOutputDegradesGracefully(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{reply: "I will not answer in JSON."}, publisher, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "Homework builds strong study habits over many years of school.",
		Difficulty: "Normal",
		Round:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, debate.FallbackReply, res.Reply)
	assert.Equal(t, "mixed", res.Stance)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 1.0)

	require.Len(t, publisher.turns, 1)
	assert.Equal(t, "fallback", publisher.turns[0].Status)
}

func TestTurnUnknownDifficultyFallsBackToNormal(t *testing.T) {
	svc := newTestService(&fakeProvider{reply: modelReply}, &capturingPublisher{}, 5)

	res, err := svc.Turn(context.Background(), &dto.TurnRequest{
		StudentKey: "riya:r",
		Message:    "An argument with a made-up difficulty level attached to it.",
		Difficulty: "Nightmare",
		Round:      1,
	})

	require.NoError(t, err)
	assert.False(t, res.Violation)
}

func TestEndProducesSummary(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(&fakeProvider{reply: modelReply}, publisher, 5)
	ctx := context.Background()

	for round := 1; round <= 2; round++ {
		_, err := svc.Turn(ctx, &dto.TurnRequest{
			StudentKey: "riya:r",
			Message:    "Homework argument with enough words to avoid the low-effort pull.",
			Round:      round,
		})
		require.NoError(t, err)
	}

	res, err := svc.End(ctx, &dto.EndDebateRequest{StudentKey: "riya:r"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.RoundsPlayed)
	assert.NotEmpty(t, res.Winner)
	assert.Zero(t, res.Violations)
	assert.Greater(t, res.AvgReadability, 0.0)
	require.Len(t, publisher.summaries, 1)
}

func TestEndUnknownSessionReturnsEmptySummary(t *testing.T) {
	svc := newTestService(&fakeProvider{reply: modelReply}, &capturingPublisher{}, 5)

	res, err := svc.End(context.Background(), &dto.EndDebateRequest{StudentKey: "ghost:g"})
	require.NoError(t, err)

	assert.Zero(t, res.RoundsPlayed)
	assert.Equal(t, "tied", res.Winner)
}

func TestTopics(t *testing.T) {
	svc := newTestService(&fakeProvider{reply: modelReply}, &capturingPublisher{}, 5)

	res, err := svc.Topics(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.Topics)
}
