package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/pkg/events"
	"github.com/krishngohel/AIDebateTool/pkg/session"
)

// IRecorderService drains session-log events into the session store.
type IRecorderService interface {
	Consume(ctx context.Context) error
}

type recorderService struct {
	pubSub *gochannel.GoChannel
	store  session.Store
	log    logger.ILogger
}

func NewRecorderService(pubSub *gochannel.GoChannel, store session.Store, log logger.ILogger) IRecorderService {
	return &recorderService{
		pubSub: pubSub,
		store:  store,
		log:    log,
	}
}

func (rs *recorderService) Consume(ctx context.Context) error {
	turns, err := rs.pubSub.Subscribe(ctx, events.TopicTurnRecorded)
	if err != nil {
		return err
	}
	summaries, err := rs.pubSub.Subscribe(ctx, events.TopicSessionEnded)
	if err != nil {
		return err
	}

	go func() {
		for msg := range turns {
			rs.processTurn(ctx, msg)
		}
	}()
	go func() {
		for msg := range summaries {
			rs.processSummary(ctx, msg)
		}
	}()

	return nil
}

func (rs *recorderService) processTurn(ctx context.Context, msg *message.Message) {
	var payload events.TurnRecorded
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		rs.log.Error("recorder", "failed to unmarshal turn event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads never become valid, don't retry
		return
	}

	if err := rs.store.SaveTurn(ctx, &payload.Turn); err != nil {
		rs.log.Error("recorder", "failed to save turn record", map[string]interface{}{
			"session_key": payload.Turn.SessionKey,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}

func (rs *recorderService) processSummary(ctx context.Context, msg *message.Message) {
	var payload events.SessionEnded
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		rs.log.Error("recorder", "failed to unmarshal summary event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if err := rs.store.SaveSummary(ctx, &payload.Summary); err != nil {
		rs.log.Error("recorder", "failed to save session summary", map[string]interface{}{
			"session_key": payload.Summary.SessionKey,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}
