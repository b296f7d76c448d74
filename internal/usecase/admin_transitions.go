package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// AdminTransitionsUseCase holds the four admin-only status mutations.
// The role is asserted against the store immediately before every
// mutation; a client-supplied role flag is never trusted.
type AdminTransitionsUseCase struct {
	Profiles entity.ProfileRepositoryInterface
	Payments entity.PaymentRepositoryInterface
	Orders   entity.OrderRepositoryInterface
}

func NewAdminTransitionsUseCase(
	profiles entity.ProfileRepositoryInterface,
	payments entity.PaymentRepositoryInterface,
	orders entity.OrderRepositoryInterface,
) *AdminTransitionsUseCase {
	return &AdminTransitionsUseCase{
		Profiles: profiles,
		Payments: payments,
		Orders:   orders,
	}
}

func (uc *AdminTransitionsUseCase) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return &AuthorizationError{Message: "authentication required"}
	}
	actor, err := uc.Profiles.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			return &AuthorizationError{Message: "unknown actor"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if !actor.IsAdmin() {
		return &AuthorizationError{Message: "administrator role required"}
	}
	return nil
}

func (uc *AdminTransitionsUseCase) MarkPaid(ctx context.Context, actorID, paymentID string) error {
	return uc.transitionPayment(ctx, actorID, paymentID, entity.PaymentStatusPaid)
}

func (uc *AdminTransitionsUseCase) RejectPayment(ctx context.Context, actorID, paymentID string) error {
	return uc.transitionPayment(ctx, actorID, paymentID, entity.PaymentStatusFailed)
}

func (uc *AdminTransitionsUseCase) CompleteOrder(ctx context.Context, actorID, orderID string) error {
	return uc.transitionOrder(ctx, actorID, orderID, entity.OrderStatusCompleted)
}

func (uc *AdminTransitionsUseCase) CancelOrder(ctx context.Context, actorID, orderID string) error {
	return uc.transitionOrder(ctx, actorID, orderID, entity.OrderStatusCanceled)
}

func (uc *AdminTransitionsUseCase) transitionPayment(ctx context.Context, actorID, paymentID, to string) error {
	if err := uc.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	payment, err := uc.Payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, entity.ErrPaymentNotFound) {
			return &DomainError{Code: "PAYMENT_NOT_FOUND", Message: "unknown payment"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if !entity.CanTransitionPayment(payment.Status, to) {
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("payment is %s, cannot move to %s", payment.Status, to),
		}
	}

	if err := uc.Payments.UpdateStatus(ctx, paymentID, to); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}

func (uc *AdminTransitionsUseCase) transitionOrder(ctx context.Context, actorID, orderID, to string) error {
	if err := uc.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	order, err := uc.Orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			return &DomainError{Code: "ORDER_NOT_FOUND", Message: "unknown order"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if !entity.CanTransitionOrder(order.Status, to) {
		return &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("order is %s, cannot move to %s", order.Status, to),
		}
	}

	if err := uc.Orders.UpdateStatus(ctx, orderID, to); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}
