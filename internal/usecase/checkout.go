package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

type InitiateCheckoutUseCase struct {
	Profiles        entity.ProfileRepositoryInterface
	Payments        entity.PaymentRepositoryInterface
	Orders          entity.OrderRepositoryInterface
	Services        entity.ServiceRepositoryInterface
	Sessions        entity.CheckoutSessionRepositoryInterface
	EmailService    EmailService
	CheckoutBaseURL string
}

func NewInitiateCheckoutUseCase(
	profiles entity.ProfileRepositoryInterface,
	payments entity.PaymentRepositoryInterface,
	orders entity.OrderRepositoryInterface,
	services entity.ServiceRepositoryInterface,
	sessions entity.CheckoutSessionRepositoryInterface,
	emailService EmailService,
	checkoutBaseURL string,
) *InitiateCheckoutUseCase {
	return &InitiateCheckoutUseCase{
		Profiles:        profiles,
		Payments:        payments,
		Orders:          orders,
		Services:        services,
		Sessions:        sessions,
		EmailService:    emailService,
		CheckoutBaseURL: checkoutBaseURL,
	}
}

// Execute validates the purchase, resolves the price, provisions the buyer
// account when needed and creates the pending payment + processing order
// pair. Nothing is written until every precondition has passed.
func (uc *InitiateCheckoutUseCase) Execute(ctx context.Context, input InitiateCheckoutInput) (*InitiateCheckoutOutput, error) {
	validationErrors := ValidateCheckoutInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: strings.TrimSuffix(errMsg, ", "),
		}
	}

	// Admins run the shop, they do not buy from it. Checked before any
	// write so a rejected attempt leaves the store untouched.
	buyer, err := uc.Profiles.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, entity.ErrProfileNotFound) {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to look up buyer profile: " + err.Error(),
		}
	}
	if buyer != nil && buyer.IsAdmin() {
		return nil, &AuthorizationError{
			Message: "administrator accounts cannot purchase services",
		}
	}

	amount, packageName, reference, err := uc.resolveSelection(ctx, input)
	if err != nil {
		return nil, err
	}

	newAccount := false
	if buyer == nil {
		buyer = entity.NewCustomerProfile(input.Email, input.Name)
		newAccount = true
	}

	payment, err := entity.NewPayment(buyer.ID, amount, input.Method, packageName, reference)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	order, err := entity.NewOrder(buyer.ID, packageName, amount)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	session := entity.NewCheckoutSession(payment.ID, order.ID)

	txn := NewTransaction()

	if newAccount {
		txn.AddOperation("create_profile", func(ctx context.Context) error {
			return uc.Profiles.Create(ctx, buyer)
		})
		txn.AddCompensation("delete_profile", func(ctx context.Context) error {
			return uc.Profiles.Delete(ctx, buyer.ID)
		})
	}

	txn.AddOperation("create_payment", func(ctx context.Context) error {
		return uc.Payments.Create(ctx, payment)
	})
	txn.AddCompensation("delete_payment", func(ctx context.Context) error {
		return uc.Payments.Delete(ctx, payment.ID)
	})

	txn.AddOperation("create_order", func(ctx context.Context) error {
		return uc.Orders.Create(ctx, order)
	})
	txn.AddCompensation("delete_order", func(ctx context.Context) error {
		return uc.Orders.Delete(ctx, order.ID)
	})

	txn.AddOperation("create_session", func(ctx context.Context) error {
		return uc.Sessions.Create(ctx, session)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist checkout: " + err.Error(),
		}
	}

	if newAccount && uc.EmailService != nil {
		go func() {
			if err := uc.EmailService.SendMagicLink(buyer.Email, buyer.FullName); err != nil {
				log.Printf("failed to send magic link to %s: %v", buyer.Email, err)
			}
		}()
	}

	return &InitiateCheckoutOutput{
		URL: uc.CheckoutBaseURL + "/pay/" + session.ID,
	}, nil
}

// resolveSelection turns the request into a concrete amount. Catalog
// services apply the discount arithmetic; fixed packages use the listed
// price string as-is.
func (uc *InitiateCheckoutUseCase) resolveSelection(ctx context.Context, input InitiateCheckoutInput) (amount int64, packageName, reference string, err error) {
	if input.ServiceID != "" {
		svc, findErr := uc.Services.FindByID(ctx, input.ServiceID)
		if findErr != nil {
			if errors.Is(findErr, entity.ErrServiceNotFound) {
				return 0, "", "", &DomainError{
					Code:    CodeServiceNotFound,
					Message: "unknown service: " + input.ServiceID,
				}
			}
			return 0, "", "", &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to resolve service: " + findErr.Error(),
			}
		}

		if svc.IsCustomQuote() {
			return 0, "", "", &DomainError{
				Code:    CodeCustomQuote,
				Message: "this service requires a custom quote, please request a proposal instead",
			}
		}

		return svc.EffectivePrice(), svc.Title, svc.ID, nil
	}

	amount, err = ParsePackagePrice(input.Price)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			return 0, "", "", &DomainError{Code: CodeValidation, Message: ve.Error()}
		}
		return 0, "", "", err
	}
	return amount, input.Name, "", nil
}
