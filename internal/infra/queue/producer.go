package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FulfillmentPayload describes a confirmed checkout for the worker:
// enough to grant access and notify the buyer without reading the store.
type FulfillmentPayload struct {
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id"`
	UserID      string `json:"user_id"`
	PackageName string `json:"package_name"`
	Amount      int64  `json:"amount"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishFulfillment(ctx context.Context, payload FulfillmentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish fulfillment: %w", err)
	}
	return nil
}
