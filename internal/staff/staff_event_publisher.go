package staff

import (
	"context"
	"encoding/json"

	"go-roster/internal/events"

	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=staff_event_publisher.go -destination=mock/staff_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishStaffLifecycle(ctx context.Context, event events.StaffLifecycleEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher { return noopEventPublisher{} }

func (noopEventPublisher) PublishStaffLifecycle(context.Context, events.StaffLifecycleEvent) error {
	return nil
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaEventPublisher struct {
	writer MessageWriter
}

func NewKafkaEventPublisher(writer MessageWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishStaffLifecycle(
	ctx context.Context,
	event events.StaffLifecycleEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.StaffLifecycleTopic,
		Key:   []byte(event.Key()),
		Value: payload,
	})
}
