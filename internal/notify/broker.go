package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// OwnerRoutingKey is the RabbitMQ routing key owner alerts are published on.
const OwnerRoutingKey = "notify.owner"

type publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// RabbitNotifier publishes alerts to the campsite exchange.
type RabbitNotifier struct {
	pub publisher
}

func NewRabbitNotifier(pub publisher) *RabbitNotifier {
	return &RabbitNotifier{pub: pub}
}

func (n *RabbitNotifier) Notify(ctx context.Context, msg Message) error {
	return n.pub.Publish(ctx, OwnerRoutingKey, msg)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier writes alerts to a topic, keyed by kind so one kind stays
// ordered within a partition.
type KafkaNotifier struct {
	w messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (n *KafkaNotifier) Notify(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.w.WriteMessages(ctx, kafka.Message{Key: []byte(msg.Kind), Value: body}); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.w.Close()
}
