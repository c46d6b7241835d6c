package http

import (
	"github.com/shopspring/decimal"

	"storefront-service/internal/services"
)

type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type ShippingData struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
}

func (s ShippingData) toDetails() services.ShippingDetails {
	return services.ShippingDetails{
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		ZipCode: s.ZipCode,
		Email:   s.Email,
		Phone:   s.Phone,
	}
}

type ProcessPaymentRequest struct {
	OrderID      string          `json:"orderID"`
	PaymentID    string          `json:"paymentID"`
	Amount       decimal.Decimal `json:"amount"`
	ShippingData ShippingData    `json:"shipping_data" binding:"required"`
}
