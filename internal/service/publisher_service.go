package service

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/krishngohel/AIDebateTool/pkg/events"
	"github.com/krishngohel/AIDebateTool/pkg/session"
)

// IPublisherService pushes session-log events onto the in-process bus so
// the turn pipeline never waits on disk.
type IPublisherService interface {
	PublishTurnRecorded(rec *session.TurnRecord) error
	PublishSessionEnded(sum *session.Summary) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{pubSub: pubSub}
}

func (ps *publisherService) PublishTurnRecorded(rec *session.TurnRecord) error {
	payload, err := json.Marshal(events.TurnRecorded{Turn: *rec})
	if err != nil {
		return fmt.Errorf("marshal turn event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(events.TopicTurnRecorded, msg)
}

func (ps *publisherService) PublishSessionEnded(sum *session.Summary) error {
	payload, err := json.Marshal(events.SessionEnded{Summary: *sum})
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(events.TopicSessionEnded, msg)
}
