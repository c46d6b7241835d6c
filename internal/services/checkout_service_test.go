package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/payment"
	"storefront-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutInput(method domain.PaymentMethod, amount string) CheckoutInput {
	return CheckoutInput{
		Method:    method,
		OrderRef:  "PAYPAL-REF-1",
		PaymentID: "PAYMENT-1",
		Amount:    decimal.RequireFromString(amount),
		Shipping: ShippingDetails{
			Address: "1 Claw St",
			City:    "Portland",
			State:   "OR",
			ZipCode: "97201",
			Email:   "buyer@example.com",
			Phone:   "555-0100",
		},
	}
}

func testCartWithTwoLines() *domain.Cart {
	hoodie := mockProduct(1, "shadow-hoodie", "89.99", 10, "M")
	tee := mockProduct(2, "night-rider-tee", "39.99", 45, "M")
	return mockCart(testCartID, testUserID,
		mockCartItem(1, hoodie, "M", 2),
		mockCartItem(2, tee, "L", 1),
	)
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	t.Run("empty cart never creates an order", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)
		carts.On("FindByUser", testUserID).Return(nil, nil)

		service := NewCheckoutService(carts, orders, publisher)
		service.RegisterVerifier(domain.PaymentCard, payment.CardVerifier{})

		order, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentCard, "219.97"))

		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, order)
		orders.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cart with no lines never creates an order", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		carts.On("FindByUser", testUserID).Return(mockCart(testCartID, testUserID), nil)

		service := NewCheckoutService(carts, orders, new(mocks.MockPublisher))
		service.RegisterVerifier(domain.PaymentCard, payment.CardVerifier{})

		_, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentCard, "219.97"))

		assert.ErrorIs(t, err, ErrEmptyCart)
		orders.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
	})

	t.Run("verification failure leaves the cart untouched", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)
		verifier := new(mocks.MockVerifier)
		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)
		verifier.On("Verify", mock.Anything, "PAYPAL-REF-1", mock.Anything).Return(false, nil)

		service := NewCheckoutService(carts, orders, publisher)
		service.RegisterVerifier(domain.PaymentPayPal, verifier)

		order, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentPayPal, "219.97"))

		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.Nil(t, order)
		orders.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
		carts.AssertNotCalled(t, "ClearItems", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway errors fail closed", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		verifier := new(mocks.MockVerifier)
		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)
		verifier.On("Verify", mock.Anything, "PAYPAL-REF-1", mock.Anything).Return(false, errors.New("connection refused"))

		service := NewCheckoutService(carts, orders, new(mocks.MockPublisher))
		service.RegisterVerifier(domain.PaymentPayPal, verifier)

		_, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentPayPal, "219.97"))

		assert.ErrorIs(t, err, ErrPaymentFailed)
		orders.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
	})

	t.Run("successful paypal checkout snapshots the cart", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)
		verifier := new(mocks.MockVerifier)

		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)
		verifier.On("Verify", mock.Anything, "PAYPAL-REF-1", decimal.RequireFromString("219.97")).Return(true, nil)
		orders.On("CreateFromCart", mock.AnythingOfType("*domain.Order"), testCartID).Return(nil).Run(func(args mock.Arguments) {
			order := args.Get(0).(*domain.Order)
			order.ID = 42
		})
		publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()

		service := NewCheckoutService(carts, orders, publisher)
		service.RegisterVerifier(domain.PaymentPayPal, verifier)

		order, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentPayPal, "219.97"))

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, uint(42), order.ID)
		assert.Equal(t, testUserID, order.UserID)
		assert.Equal(t, domain.StatusCompleted, order.Status)
		assert.Equal(t, domain.PaymentPayPal, order.PaymentMethod)
		assert.Equal(t, "PAYMENT-1", order.PaymentID)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("219.97")))
		assert.Equal(t, "1 Claw St, Portland, OR 97201", order.ShippingAddress)

		// one snapshot line per cart line, prices frozen at sale time
		assert.Len(t, order.Items, 2)
		assert.Equal(t, uint(1), order.Items[0].ProductID)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.Equal(t, "M", order.Items[0].Size)
		assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("89.99")))
		assert.True(t, order.Items[1].Price.Equal(decimal.RequireFromString("39.99")))

		time.Sleep(100 * time.Millisecond)
		carts.AssertExpectations(t)
		orders.AssertExpectations(t)
		verifier.AssertExpectations(t)
	})

	t.Run("card checkout is trusted and derives its payment reference", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)

		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)
		orders.On("CreateFromCart", mock.AnythingOfType("*domain.Order"), testCartID).Return(nil)
		publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()

		service := NewCheckoutService(carts, orders, publisher)
		service.RegisterVerifier(domain.PaymentCard, payment.CardVerifier{})

		order, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentCard, "219.97"))

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentCard, order.PaymentMethod)
		assert.Equal(t, fmt.Sprintf("card_%d", testCartID), order.PaymentID)

		time.Sleep(100 * time.Millisecond)
		orders.AssertExpectations(t)
	})

	t.Run("rejects an unregistered payment method", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)

		service := NewCheckoutService(carts, new(mocks.MockOrderRepository), new(mocks.MockPublisher))

		_, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentMethod("crypto"), "219.97"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported payment method")
	})

	t.Run("storage failure surfaces and publishes nothing", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)

		carts.On("FindByUser", testUserID).Return(testCartWithTwoLines(), nil)
		orders.On("CreateFromCart", mock.AnythingOfType("*domain.Order"), testCartID).Return(errors.New("database error"))

		service := NewCheckoutService(carts, orders, publisher)
		service.RegisterVerifier(domain.PaymentCard, payment.CardVerifier{})

		order, err := service.PlaceOrder(context.Background(), testUserID, checkoutInput(domain.PaymentCard, "219.97"))

		assert.Error(t, err)
		assert.Nil(t, order)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_OrderForUser(t *testing.T) {
	tests := []struct {
		name          string
		orderID       uint
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError error
	}{
		{
			name:    "returns the caller's order",
			orderID: 42,
			setupMocks: func(orders *mocks.MockOrderRepository) {
				orders.On("FindByIDForUser", uint(42), testUserID).Return(&domain.Order{ID: 42, UserID: testUserID}, nil)
			},
		},
		{
			name:    "someone else's order looks missing",
			orderID: 43,
			setupMocks: func(orders *mocks.MockOrderRepository) {
				orders.On("FindByIDForUser", uint(43), testUserID).Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name:    "repository error",
			orderID: 42,
			setupMocks: func(orders *mocks.MockOrderRepository) {
				orders.On("FindByIDForUser", uint(42), testUserID).Return(nil, errors.New("database connection error"))
			},
			expectedError: errors.New("database connection error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			tt.setupMocks(orders)

			service := NewCheckoutService(new(mocks.MockCartRepository), orders, new(mocks.MockPublisher))
			order, err := service.OrderForUser(context.Background(), testUserID, tt.orderID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.orderID, order.ID)
			}
			orders.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_OrderHistory(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	orders.On("FindByUser", testUserID).Return([]domain.Order{{ID: 2}, {ID: 1}}, nil)

	service := NewCheckoutService(new(mocks.MockCartRepository), orders, new(mocks.MockPublisher))
	result, err := service.OrderHistory(context.Background(), testUserID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, uint(2), result[0].ID)
	orders.AssertExpectations(t)
}
