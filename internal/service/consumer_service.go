package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/internal/entity"
	"ai-resumebuilder-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the profile facts topic and merge-upserts
// user_profiles. Running it off the request path keeps chat turns fast and
// makes profile persistence retryable.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProfileFactsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal profile facts message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Upserting profile facts for conversation %s", payload.ConversationId)

	now := time.Now()
	profile := &entity.UserProfile{
		ConversationId:    payload.ConversationId,
		Name:              payload.Name,
		Title:             payload.Title,
		Contact:           payload.Contact,
		PreferredTemplate: payload.PreferredTemplate,
		TargetRole:        payload.TargetRole,
		UpdatedAt:         &now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserProfileRepository().Upsert(ctx, profile); err != nil {
		log.Printf("[ERROR] Failed to upsert profile for conversation %s: %v", payload.ConversationId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
