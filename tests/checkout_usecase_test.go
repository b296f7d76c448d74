package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

func newCheckoutFixture() (*usecase.InitiateCheckoutUseCase, *MockProfileRepository, *MockPaymentRepository, *MockOrderRepository, *MockServiceRepository, *MockSessionRepository) {
	profiles := new(MockProfileRepository)
	payments := new(MockPaymentRepository)
	orders := new(MockOrderRepository)
	services := new(MockServiceRepository)
	sessions := new(MockSessionRepository)

	uc := usecase.NewInitiateCheckoutUseCase(
		profiles, payments, orders, services, sessions,
		nil, "https://wetraineducattiontech.com",
	)
	return uc, profiles, payments, orders, services, sessions
}

func int64Ptr(v int64) *int64 { return &v }

func TestCheckoutBlocksAdministrators(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, orders, _, sessions := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "admin@x.com").Return(&entity.Profile{
		ID:    "admin-1",
		Email: "admin@x.com",
		Role:  entity.RoleAdmin,
	}, nil)

	output, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "admin@x.com",
		Method: entity.PaymentMethodBkash,
	})

	assert.Nil(t, output)
	assert.Error(t, err)
	assert.True(t, usecase.IsAuthorizationError(err))

	// The rejection must leave the store untouched.
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutRejectsCustomQuoteService(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, orders, services, _ := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "buyer@example.com").Return(nil, entity.ErrProfileNotFound)
	services.On("FindByID", ctx, "custom-software").Return(&entity.Service{
		ID:    "custom-software",
		Title: "Custom Software Development",
		Price: nil, // custom quote
	}, nil)

	output, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Email:     "buyer@example.com",
		ServiceID: "custom-software",
		Method:    entity.PaymentMethodBank,
	})

	assert.Nil(t, output)
	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeCustomQuote, domainErr.Code)

	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutRejectsCustomPackagePrice(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, _, _, _ := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "buyer@example.com").Return(nil, entity.ErrProfileNotFound)

	_, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Enterprise",
		Price:  "Custom pricing",
		Email:  "buyer@example.com",
		Method: entity.PaymentMethodBank,
	})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeCustomQuote, domainErr.Code)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutAppliesDiscountArithmetic(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		price    int64
		discount int64
		want     int64
	}{
		{"discounted", 15999, 2000, 13999},
		{"no discount", 12999, 0, 12999},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, profiles, payments, orders, services, sessions := newCheckoutFixture()

			profiles.On("FindByEmail", ctx, "student@example.com").Return(&entity.Profile{
				ID:    "cust-1",
				Email: "student@example.com",
				Role:  entity.RoleCustomer,
			}, nil)
			services.On("FindByID", ctx, "svc-1").Return(&entity.Service{
				ID:       "svc-1",
				Title:    "Full-Stack Course",
				Price:    int64Ptr(tc.price),
				Discount: tc.discount,
			}, nil)

			var createdAmount int64
			payments.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
				createdAmount = args.Get(1).(*entity.Payment).Amount
			}).Return(nil)
			orders.On("Create", ctx, mock.Anything).Return(nil)
			sessions.On("Create", ctx, mock.Anything).Return(nil)

			output, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
				Email:     "student@example.com",
				ServiceID: "svc-1",
				Method:    entity.PaymentMethodNagad,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.want, createdAmount)
			assert.Contains(t, output.URL, "https://wetraineducattiontech.com/pay/")
		})
	}
}

func TestCheckoutParsesPackagePriceString(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, orders, _, sessions := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "buyer@example.com").Return(&entity.Profile{
		ID:    "cust-2",
		Email: "buyer@example.com",
		Role:  entity.RoleCustomer,
	}, nil)

	var payment *entity.Payment
	payments.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		payment = args.Get(1).(*entity.Payment)
	}).Return(nil)
	orders.On("Create", ctx, mock.Anything).Return(nil)
	sessions.On("Create", ctx, mock.Anything).Return(nil)

	_, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "buyer@example.com",
		Method: entity.PaymentMethodBkash,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(4999), payment.Amount)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)
}

func TestCheckoutProvisionsNewBuyerAccount(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, orders, _, sessions := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "new@example.com").Return(nil, entity.ErrProfileNotFound)

	var created *entity.Profile
	profiles.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Profile)
	}).Return(nil)
	payments.On("Create", ctx, mock.Anything).Return(nil)
	orders.On("Create", ctx, mock.Anything).Return(nil)
	sessions.On("Create", ctx, mock.Anything).Return(nil)

	_, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "new@example.com",
		Method: entity.PaymentMethodCard,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, entity.RoleCustomer, created.Role)
	assert.Equal(t, "new@example.com", created.Email)
}

func TestCheckoutValidatesEmailAndMethod(t *testing.T) {
	ctx := context.Background()
	uc, profiles, _, _, _, _ := newCheckoutFixture()

	_, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "not-an-email",
		Method: entity.PaymentMethodBkash,
	})
	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeValidation, domainErr.Code)

	_, err = uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "buyer@example.com",
		Method: "paypal",
	})
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, usecase.CodeValidation, domainErr.Code)

	// Validation failures must not even hit the profile lookup.
	profiles.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestCheckoutRollsBackOnOrderFailure(t *testing.T) {
	ctx := context.Background()
	uc, profiles, payments, orders, _, sessions := newCheckoutFixture()

	profiles.On("FindByEmail", ctx, "buyer@example.com").Return(&entity.Profile{
		ID:    "cust-3",
		Email: "buyer@example.com",
		Role:  entity.RoleCustomer,
	}, nil)
	payments.On("Create", ctx, mock.Anything).Return(nil)
	orders.On("Create", ctx, mock.Anything).Return(assert.AnError)
	payments.On("Delete", ctx, mock.Anything).Return(nil)

	_, err := uc.Execute(ctx, usecase.InitiateCheckoutInput{
		Name:   "Starter",
		Price:  "৳4,999",
		Email:  "buyer@example.com",
		Method: entity.PaymentMethodBkash,
	})

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	payments.AssertCalled(t, "Delete", ctx, mock.Anything)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
