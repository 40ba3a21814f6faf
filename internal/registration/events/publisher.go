// Package events publishes registration lifecycle notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/kafka"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/models"
)

// DefaultTopic carries every registration event, keyed by deal id so one
// deal's events stay ordered.
const DefaultTopic = "deal.registrations"

// Sender is satisfied by *kafka.Producer.
type Sender interface {
	Send(ctx context.Context, msg kafka.Message) error
}

type Publisher struct {
	sender Sender
	topic  string
}

func NewPublisher(sender Sender, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{sender: sender, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, event models.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode registration event: %w", err)
	}
	return p.sender.Send(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.DealID.String()),
		Value: value,
		Headers: map[string]string{
			"event_type": string(event.Type),
		},
	})
}
