package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

type PaymentConfirmer interface {
	ConfirmGatewayPayment(ctx context.Context, c service.GatewayConfirmation) error
}

// PaymentConsumer applies provider payment callbacks relayed over RabbitMQ.
type PaymentConsumer struct {
	svc     PaymentConfirmer
	log     *slog.Logger
	timeout time.Duration
}

func NewPaymentConsumer(svc PaymentConfirmer, log *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{svc: svc, log: log, timeout: 10 * time.Second}
}

// Start drains msgs until the channel closes. done is closed afterwards.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) (done <-chan struct{}) {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		pc.log.Info("payment consumer stopped: delivery channel closed")
	}()
	return ch
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var c service.GatewayConfirmation
	if err := json.Unmarshal(msg.Body, &c); err != nil {
		pc.log.Error("dropping malformed payment message", "routing_key", msg.RoutingKey, "error", err)
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pc.timeout)
	defer cancel()

	err := pc.svc.ConfirmGatewayPayment(ctx, c)
	switch {
	case err == nil:
		pc.log.Info("payment confirmed", "reservation_id", c.ReservationID, "method", c.Method, "type", c.Type)
		_ = msg.Ack(false)
	case permanent(err):
		pc.log.Warn("dropping payment message", "reservation_id", c.ReservationID, "method", c.Method, "error", err)
		_ = msg.Nack(false, false)
	default:
		pc.log.Error("payment confirmation failed, requeueing", "reservation_id", c.ReservationID, "error", err)
		_ = msg.Nack(false, true)
	}
}

// permanent reports errors a redelivery cannot fix.
func permanent(err error) bool {
	for _, class := range []error{
		apperr.ErrInvalidInput,
		apperr.ErrNotFound,
		apperr.ErrInvalidTransition,
		apperr.ErrConflict,
		apperr.ErrForbidden,
	} {
		if errors.Is(err, class) {
			return true
		}
	}
	return false
}
