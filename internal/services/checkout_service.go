package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/payment"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrPaymentFailed = errors.New("payment verification failed")
)

type ShippingDetails struct {
	Address string
	City    string
	State   string
	ZipCode string
	Email   string
	Phone   string
}

func (s ShippingDetails) FormatAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", s.Address, s.City, s.State, s.ZipCode)
}

type CheckoutInput struct {
	Method    domain.PaymentMethod
	OrderRef  string // gateway order reference, verified for PayPal
	PaymentID string
	Amount    decimal.Decimal
	Shipping  ShippingDetails
}

// CheckoutService drives the one-shot checkout flow: validate the cart,
// verify payment, convert cart to order atomically, announce the order.
type CheckoutService struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	publisher rabbitmq.PublisherInterface
	verifiers map[domain.PaymentMethod]payment.VerifierInterface
}

func NewCheckoutService(carts repository.CartRepository, orders repository.OrderRepository, publisher rabbitmq.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		verifiers: make(map[domain.PaymentMethod]payment.VerifierInterface),
	}
}

func (s *CheckoutService) RegisterVerifier(method domain.PaymentMethod, v payment.VerifierInterface) {
	s.verifiers[method] = v
}

// PlaceOrder runs the whole checkout. On verification failure the cart is
// left untouched so the user may retry; there is no retry or backoff here.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, input CheckoutInput) (*domain.Order, error) {
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	verifier, ok := s.verifiers[input.Method]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method %q", input.Method)
	}

	verified, err := verifier.Verify(ctx, input.OrderRef, input.Amount)
	if err != nil {
		log.Printf("payment verification error: %v", err)
		return nil, ErrPaymentFailed
	}
	if !verified {
		return nil, ErrPaymentFailed
	}

	paymentID := input.PaymentID
	if input.Method == domain.PaymentCard {
		paymentID = fmt.Sprintf("card_%d", cart.ID)
	}

	order := &domain.Order{
		UserID:          userID,
		TotalAmount:     input.Amount,
		PaymentMethod:   input.Method,
		PaymentID:       paymentID,
		Status:          domain.StatusCompleted,
		ShippingAddress: input.Shipping.FormatAddress(),
		Email:           input.Shipping.Email,
		Phone:           input.Shipping.Phone,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     item.Product.Price,
		})
	}

	if err := s.orders.CreateFromCart(order, cart.ID); err != nil {
		return nil, err
	}

	go s.publishOrderPlaced(context.Background(), order)

	return order, nil
}

func (s *CheckoutService) publishOrderPlaced(ctx context.Context, order *domain.Order) {
	evt := domain.OrderPlacedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, "order.placed", evt); err != nil {
		log.Printf("Failed to publish order.placed event: %v", err)
	}
}

// OrderForUser enforces ownership: an order belonging to someone else is
// indistinguishable from a missing one.
func (s *CheckoutService) OrderForUser(ctx context.Context, userID, orderID uint) (*domain.Order, error) {
	o, err := s.orders.FindByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *CheckoutService) OrderHistory(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orders.FindByUser(userID)
}
