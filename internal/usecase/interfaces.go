package usecase

import (
	"context"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/queue"
)

// EmailService is the outbound mail contract. Sends happen off the
// request path; failures are logged, never surfaced to the buyer.
type EmailService interface {
	SendMagicLink(to, name string) error
	SendOrderConfirmation(to, name, packageName string, amount int64) error
}

// QueueProducerInterface publishes fulfillment events after a confirmed
// checkout.
type QueueProducerInterface interface {
	PublishFulfillment(ctx context.Context, payload queue.FulfillmentPayload) error
}
