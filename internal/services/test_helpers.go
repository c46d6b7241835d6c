package services

import (
	"encoding/json"

	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
)

func mockProduct(id uint, name, price string, stock int, sizes ...string) *domain.Product {
	data, _ := json.Marshal(sizes)
	return &domain.Product{
		ID:             id,
		Name:           name,
		Slug:           name,
		Price:          decimal.RequireFromString(price),
		Description:    "test product description",
		AvailableSizes: data,
		Stock:          stock,
	}
}

func mockCart(id uint, userID uint, items ...domain.CartItem) *domain.Cart {
	return &domain.Cart{
		ID:     id,
		UserID: &userID,
		Items:  items,
	}
}

func mockCartItem(id uint, product *domain.Product, size string, quantity int) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		ProductID: product.ID,
		Product:   *product,
		Size:      size,
		Quantity:  quantity,
	}
}

const (
	testUserID    = uint(7)
	testCartID    = uint(3)
	testProductID = uint(1)
)
