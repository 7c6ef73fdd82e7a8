// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"survey-dashboard-be/internal/constant"
	"survey-dashboard-be/internal/dto"
	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LiveDelivery pushes a message to every live viewer of a session.
// Implemented by the websocket hub.
type LiveDelivery interface {
	SendToSession(sessionId string, payload []byte)
}

// EventPublisher forwards activity to an external bus (NATS).
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   LiveDelivery
	external   EventPublisher
	logger     logger.ILogger
}

// NewConsumerService wires the activity topic to live delivery and, when
// external is non-nil, to the external bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery LiveDelivery,
	external EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		external:   external,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	var activity dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &activity); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal activity", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// 1. Live viewers of the same session
	if cs.delivery != nil {
		live, _ := json.Marshal(dto.LiveMessage{
			Type:      constant.LiveMessageDatasetChanged,
			SessionId: activity.SessionId,
			Event:     activity.Event,
			Source:    activity.Source,
			Rows:      activity.Rows,
		})
		cs.delivery.SendToSession(activity.SessionId, live)
	}

	// 2. External bus, best effort
	if cs.external != nil {
		data := map[string]interface{}{
			"session_id": activity.SessionId,
			"source":     activity.Source,
			"label":      activity.Label,
			"rows":       activity.Rows,
		}
		for k, v := range activity.Details {
			data[k] = v
		}

		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := cs.external.Publish(pubCtx, events.New(activity.Event, data))
		cancel()
		if err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward activity", map[string]interface{}{
				"event": activity.Event,
				"error": err.Error(),
			})
		}
	}

	cs.logger.Debug("ConsumerService", "Activity processed", map[string]interface{}{
		"event":      activity.Event,
		"session_id": activity.SessionId,
	})
	msg.Ack()
}
