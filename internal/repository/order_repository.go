package repository

import (
	"storefront-service/internal/domain"
)

type OrderRepository interface {
	// CreateFromCart writes the order with its items and clears the cart's
	// lines in a single transaction. No partial order is ever visible.
	CreateFromCart(order *domain.Order, cartID uint) error
	FindByIDForUser(id, userID uint) (*domain.Order, error)
	FindByUser(userID uint) ([]domain.Order, error)
}
