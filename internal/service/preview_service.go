package service

import (
	"context"

	"ai-resumebuilder-be/internal/pkg/logger"
	internalWS "ai-resumebuilder-be/internal/websocket"
	"ai-resumebuilder-be/pkg/events"
	pktNats "ai-resumebuilder-be/pkg/nats"

	"github.com/google/uuid"
)

type IPreviewService interface {
	Start()
}

// previewService turns outward artifact events back into websocket pushes:
// any instance that holds the user's connection refreshes their preview.
type previewService struct {
	subscriber *pktNats.Subscriber
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewPreviewService(subscriber *pktNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) IPreviewService {
	return &previewService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (ps *previewService) Start() {
	if ps.subscriber == nil {
		ps.logger.Warn("PreviewService", "NATS subscriber unavailable, preview push disabled", nil)
		return
	}

	if err := ps.subscriber.Subscribe("artifacts.>", "preview-push", ps.handleEvent); err != nil {
		ps.logger.Error("PreviewService", "Failed to subscribe to artifact events", map[string]interface{}{"error": err.Error()})
	}
}

func (ps *previewService) handleEvent(_ context.Context, event events.Event) error {
	payload := event.Payload()

	userIdStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		// Malformed events are dropped, not retried.
		ps.logger.Warn("PreviewService", "Artifact event missing user_id", map[string]interface{}{"event": event.EventType()})
		return nil
	}

	update := internalWS.PreviewUpdate{
		ArtifactId:     stringField(payload, "artifact_id"),
		ConversationId: stringField(payload, "conversation_id"),
		Type:           stringField(payload, "type"),
		Title:          stringField(payload, "title"),
	}
	if v, ok := payload["version"].(float64); ok {
		update.Version = int(v)
	}

	ps.hub.Send(userId, update)
	return nil
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}
