package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/krishngohel/AIDebateTool/internal/dto"
	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/internal/repository/memory"
	"github.com/krishngohel/AIDebateTool/pkg/debate"
	"github.com/krishngohel/AIDebateTool/pkg/debate/prompt"
	"github.com/krishngohel/AIDebateTool/pkg/debate/score"
	"github.com/krishngohel/AIDebateTool/pkg/debate/topic"
	"github.com/krishngohel/AIDebateTool/pkg/llm"
	"github.com/krishngohel/AIDebateTool/pkg/moderation"
	"github.com/krishngohel/AIDebateTool/pkg/session"
	"github.com/krishngohel/AIDebateTool/pkg/textutil"
)

// ErrModelUnavailable marks a failed language model call. The controller
// maps it to a 502; nothing about the turn is persisted as scored state.
var ErrModelUnavailable = errors.New("language model unavailable")

// IDebateService runs the turn pipeline: moderation gate, topic hint,
// prompt, model call, score shaping, HUD, session bookkeeping.
type IDebateService interface {
	Turn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error)
	End(ctx context.Context, req *dto.EndDebateRequest) (*dto.EndDebateResponse, error)
	Topics(ctx context.Context) (*dto.TopicsResponse, error)
}

type debateService struct {
	gate        *moderation.Gate
	llmProvider llm.LLMProvider
	shaper      *score.Shaper
	sessionRepo *memory.SessionRepository
	publisher   IPublisherService
	roundLimit  int
	log         logger.ILogger
}

func NewDebateService(
	gate *moderation.Gate,
	llmProvider llm.LLMProvider,
	shaper *score.Shaper,
	sessionRepo *memory.SessionRepository,
	publisher IPublisherService,
	roundLimit int,
	log logger.ILogger,
) IDebateService {
	if roundLimit <= 0 {
		roundLimit = debate.DefaultRoundLimit
	}
	return &debateService{
		gate:        gate,
		llmProvider: llmProvider,
		shaper:      shaper,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		roundLimit:  roundLimit,
		log:         log,
	}
}

func (ds *debateService) Turn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error) {
	round := req.Round
	if round < 1 {
		round = 1
	}
	difficulty := debate.ParseDifficulty(req.Difficulty)
	profile := debate.ProfileFor(difficulty)

	words := textutil.WordCount(req.Message)
	readability := textutil.FleschReadingEase(req.Message)

	// 1. Moderation gate. Runs before the model call so a failed call can
	// never leave half-mutated strike state behind.
	verdict := ds.gate.Check(ctx, req.StudentKey, req.Message)
	if verdict.Violation {
		return ds.violationResponse(req, verdict, round, words, readability), nil
	}

	// 2. Advisory topic hint; never blocks, never changes the score.
	hint, _ := topic.Hint(req.Topic, req.Message)

	// 3. Model call. Any failure fails the whole turn.
	turnPrompt := prompt.NewTurnBuilder(req.Topic, req.Message, round, ds.roundLimit, req.StudentSide, profile).Build()

	start := time.Now()
	raw, err := ds.llmProvider.Generate(ctx, turnPrompt, llm.WithTemperature(0.8))
	latency := time.Since(start)
	if err != nil {
		ds.log.Error("debate", "model call failed", map[string]interface{}{
			"student_key": req.StudentKey,
			"round":       round,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	// 4. Parse (never fails) and shape.
	parsed := debate.ParseModelReply(raw, profile.BiasScore)
	finalScore := ds.shaper.Shape(score.Input{
		RawScore:        parsed.Result.RawScore,
		Stance:          parsed.Result.Stance,
		Concession:      parsed.Result.Concession,
		StudentStrength: parsed.Result.StudentStrength,
		Words:           words,
		Difficulty:      difficulty,
	})

	outcome := score.DeriveOutcome(finalScore)
	hud := score.DeriveHUD(finalScore)
	nextRound, endDebate := debate.Advance(round, ds.roundLimit)

	// 5. Session bookkeeping + async session log.
	state := ds.sessionRepo.GetOrCreate(req.StudentKey)
	if round > state.RoundsPlayed {
		state.RoundsPlayed = round
	}
	state.TurnsSeen++
	state.ReadabilitySum += readability
	state.LastLeader = string(hud.Leader)
	ds.sessionRepo.Save(state)

	status := "ok"
	if parsed.Fallback {
		status = "fallback"
	}
	ds.recordTurn(&session.TurnRecord{
		ID:          uuid.NewString(),
		SessionKey:  req.StudentKey,
		Round:       round,
		StudentText: req.Message,
		AIReply:     parsed.Result.Reply,
		WordCount:   words,
		Readability: readability,
		Meter:       hud.Meter,
		Leader:      string(hud.Leader),
		LatencyMs:   latency.Milliseconds(),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	})
	if endDebate {
		ds.endSession(state)
	}

	return &dto.TurnResponse{
		Reply:     parsed.Result.Reply,
		Stance:    string(parsed.Result.Stance),
		Outcome:   string(outcome),
		Score:     finalScore,
		Round:     round,
		NextRound: nextRound,
		EndDebate: endDebate,
		HUD:       &hud,
		Hint:      hint,
	}, nil
}

func (ds *debateService) violationResponse(req *dto.TurnRequest, verdict *moderation.Verdict, round, words int, readability float64) *dto.TurnResponse {
	state := ds.sessionRepo.GetOrCreate(req.StudentKey)
	state.Violations++
	ds.sessionRepo.Save(state)

	ds.recordTurn(&session.TurnRecord{
		ID:          uuid.NewString(),
		SessionKey:  req.StudentKey,
		Round:       round,
		StudentText: req.Message,
		WordCount:   words,
		Readability: readability,
		Status:      "violation",
		Category:    verdict.Category,
		CreatedAt:   time.Now().UTC(),
	})
	if verdict.EndDebate {
		ds.endSession(state)
	}

	return &dto.TurnResponse{
		Violation:    true,
		Category:     verdict.Category,
		AllowRetry:   verdict.AllowRetry,
		Instructions: verdict.Instructions,
		Round:        round,
		EndDebate:    verdict.EndDebate,
	}
}

func (ds *debateService) End(ctx context.Context, req *dto.EndDebateRequest) (*dto.EndDebateResponse, error) {
	state, found := ds.sessionRepo.Get(req.StudentKey)
	if !found {
		state = &memory.SessionState{Key: req.StudentKey}
	}
	summary := ds.endSession(state)

	return &dto.EndDebateResponse{
		RoundsPlayed:   summary.RoundsPlayed,
		Winner:         summary.Winner,
		Violations:     summary.Violations,
		AvgReadability: summary.AvgReadability,
	}, nil
}

func (ds *debateService) Topics(_ context.Context) (*dto.TopicsResponse, error) {
	return &dto.TopicsResponse{Topics: topic.Topics()}, nil
}

// endSession emits the summary event and drops the in-memory state.
func (ds *debateService) endSession(state *memory.SessionState) *session.Summary {
	winner := state.LastLeader
	if winner == "" {
		winner = string(score.LeaderTied)
	}
	avgReadability := 0.0
	if state.TurnsSeen > 0 {
		avgReadability = state.ReadabilitySum / float64(state.TurnsSeen)
	}

	summary := &session.Summary{
		SessionKey:     state.Key,
		RoundsPlayed:   state.RoundsPlayed,
		Winner:         winner,
		Violations:     state.Violations,
		AvgReadability: avgReadability,
		EndedAt:        time.Now().UTC(),
	}
	if err := ds.publisher.PublishSessionEnded(summary); err != nil {
		ds.log.Warn("debate", "failed to publish session summary", map[string]interface{}{
			"session_key": state.Key,
			"error":       err.Error(),
		})
	}
	ds.sessionRepo.Delete(state.Key)
	return summary
}

func (ds *debateService) recordTurn(rec *session.TurnRecord) {
	if err := ds.publisher.PublishTurnRecorded(rec); err != nil {
		ds.log.Warn("debate", "failed to publish turn record", map[string]interface{}{
			"session_key": rec.SessionKey,
			"error":       err.Error(),
		})
	}
}
