package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/queue"
)

const (
	OutcomeSuccess  = "success"
	OutcomeCanceled = "canceled"
)

type ConfirmCheckoutUseCase struct {
	Sessions entity.CheckoutSessionRepositoryInterface
	Payments entity.PaymentRepositoryInterface
	Orders   entity.OrderRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Queue    QueueProducerInterface
}

func NewConfirmCheckoutUseCase(
	sessions entity.CheckoutSessionRepositoryInterface,
	payments entity.PaymentRepositoryInterface,
	orders entity.OrderRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	producer QueueProducerInterface,
) *ConfirmCheckoutUseCase {
	return &ConfirmCheckoutUseCase{
		Sessions: sessions,
		Payments: payments,
		Orders:   orders,
		Profiles: profiles,
		Queue:    producer,
	}
}

// Execute applies the out-of-band payment outcome to the session's
// payment/order pair. The redirect that triggers this may be retried, so
// a session already in a terminal state is acknowledged without applying
// anything again.
func (uc *ConfirmCheckoutUseCase) Execute(ctx context.Context, sessionID, outcome string) error {
	if outcome != OutcomeSuccess && outcome != OutcomeCanceled {
		return &DomainError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("outcome must be %q or %q", OutcomeSuccess, OutcomeCanceled),
		}
	}

	session, err := uc.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entity.ErrCheckoutSessionNotFound) {
			return &DomainError{Code: CodeSessionNotFound, Message: "unknown checkout session"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if session.IsTerminal() {
		log.Printf("checkout session %s already %s, ignoring repeated confirm (%s)",
			session.ID, session.Status, outcome)
		return nil
	}

	if outcome == OutcomeSuccess {
		return uc.applySuccess(ctx, session)
	}
	return uc.applyCanceled(ctx, session)
}

func (uc *ConfirmCheckoutUseCase) applySuccess(ctx context.Context, session *entity.CheckoutSession) error {
	if err := uc.transitionPayment(ctx, session.PaymentID, entity.PaymentStatusPaid); err != nil {
		return err
	}
	if err := uc.transitionOrder(ctx, session.OrderID, entity.OrderStatusCompleted); err != nil {
		return err
	}
	if err := uc.Sessions.UpdateStatus(ctx, session.ID, entity.CheckoutSessionSuccess); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to close session: " + err.Error()}
	}

	uc.publishFulfillment(ctx, session)
	return nil
}

func (uc *ConfirmCheckoutUseCase) applyCanceled(ctx context.Context, session *entity.CheckoutSession) error {
	if err := uc.transitionPayment(ctx, session.PaymentID, entity.PaymentStatusFailed); err != nil {
		return err
	}
	if err := uc.transitionOrder(ctx, session.OrderID, entity.OrderStatusCanceled); err != nil {
		return err
	}
	if err := uc.Sessions.UpdateStatus(ctx, session.ID, entity.CheckoutSessionCanceled); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to close session: " + err.Error()}
	}
	return nil
}

// transitionPayment applies the outcome to the payment, respecting its own
// state machine: an admin may have resolved the payment before the redirect
// lands. Already being in the target state is a no-op; any other terminal
// state refuses the move.
func (uc *ConfirmCheckoutUseCase) transitionPayment(ctx context.Context, id, to string) error {
	payment, err := uc.Payments.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load payment: " + err.Error()}
	}
	if payment.Status == to {
		return nil
	}
	if !entity.CanTransitionPayment(payment.Status, to) {
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("payment %s is %s and cannot become %s", id, payment.Status, to),
		}
	}
	if err := uc.Payments.UpdateStatus(ctx, id, to); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update payment: " + err.Error()}
	}
	return nil
}

func (uc *ConfirmCheckoutUseCase) transitionOrder(ctx context.Context, id, to string) error {
	order, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load order: " + err.Error()}
	}
	if order.Status == to {
		return nil
	}
	if !entity.CanTransitionOrder(order.Status, to) {
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("order %s is %s and cannot become %s", id, order.Status, to),
		}
	}
	if err := uc.Orders.UpdateStatus(ctx, id, to); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update order: " + err.Error()}
	}
	return nil
}

// publishFulfillment hands the paid order to the fulfillment worker. The
// money has already moved at this point, so a broker failure is logged
// and the confirm still succeeds.
func (uc *ConfirmCheckoutUseCase) publishFulfillment(ctx context.Context, session *entity.CheckoutSession) {
	if uc.Queue == nil {
		return
	}

	order, err := uc.Orders.FindByID(ctx, session.OrderID)
	if err != nil {
		log.Printf("fulfillment skipped, order %s not readable: %v", session.OrderID, err)
		return
	}

	payload := queue.FulfillmentPayload{
		OrderID:     order.ID,
		PaymentID:   session.PaymentID,
		UserID:      order.UserID,
		PackageName: order.PackageName,
		Amount:      order.Amount,
	}

	if buyer, err := uc.Profiles.FindByID(ctx, order.UserID); err == nil {
		payload.Email = buyer.Email
		payload.Name = buyer.FullName
	}

	if err := uc.Queue.PublishFulfillment(ctx, payload); err != nil {
		log.Printf("CRITICAL: order %s confirmed but fulfillment event not published: %v", order.ID, err)
	}
}
