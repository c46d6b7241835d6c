package repository

import (
	"storefront-service/internal/domain"
)

type CartRepository interface {
	FindByUser(userID uint) (*domain.Cart, error)
	FindBySession(sessionKey string) (*domain.Cart, error)
	Create(cart *domain.Cart) error
	FindItem(cartID, productID uint, size string) (*domain.CartItem, error)
	CreateItem(item *domain.CartItem) error
	// IncrementItemQuantity adds delta to the line's quantity only if the
	// result stays within stock. Returns false when the guard rejects the
	// update; the line is left unchanged.
	IncrementItemQuantity(itemID uint, delta, stock int) (bool, error)
	ClearItems(cartID uint) error
}
