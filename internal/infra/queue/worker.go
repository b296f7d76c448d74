package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConfirmationSender is the slice of the mail service the worker needs.
type ConfirmationSender interface {
	SendOrderConfirmation(to, name, packageName string, amount int64) error
}

type Worker struct {
	Channel *amqp.Channel
	Mail    ConfirmationSender
}

func NewWorker(ch *amqp.Channel, mail ConfirmationSender) *Worker {
	return &Worker{Channel: ch, Mail: mail}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload FulfillmentPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] malformed message, dropping: %s", err)
				// Reject without requeue so a bad message cannot jam the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] fulfilling order %s for %s", payload.OrderID, payload.Email)

			if err := w.process(payload); err != nil {
				log.Printf("[WORKER] fulfillment failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Fulfillment worker waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) process(payload FulfillmentPayload) error {
	if payload.Email == "" {
		// Nothing to notify; the order itself is already completed.
		log.Printf("[WORKER] order %s has no buyer email, skipping notification", payload.OrderID)
		return nil
	}
	return w.Mail.SendOrderConfirmation(payload.Email, payload.Name, payload.PackageName, payload.Amount)
}
