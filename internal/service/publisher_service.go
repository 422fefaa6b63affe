package service

import (
	"context"
	"encoding/json"

	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/pkg/contextmgr"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) Publish(_ context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}

// profileFactsPublisher bridges the context manager to the event bus: facts
// learned during a turn are published and upserted off the request path.
type profileFactsPublisher struct {
	publisher IPublisherService
}

func NewProfileFactsPublisher(publisher IPublisherService) contextmgr.ProfileSink {
	return &profileFactsPublisher{publisher: publisher}
}

func (p *profileFactsPublisher) PublishProfileFacts(ctx context.Context, facts *contextmgr.ProfileFacts) error {
	payload, err := json.Marshal(dto.PublishProfileFactsMessage{
		ConversationId:    facts.ConversationId,
		Name:              facts.Name,
		Title:             facts.Title,
		Contact:           facts.Contact,
		PreferredTemplate: facts.PreferredTemplate,
		TargetRole:        facts.TargetRole,
	})
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, payload)
}
