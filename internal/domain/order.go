package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
)

// Order is the append-only purchase record. Everything except Status is
// immutable once written.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint            `json:"userId" gorm:"not null;index"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" gorm:"size:10;not null"`
	PaymentID       string          `json:"paymentId" gorm:"size:100"`
	Status          OrderStatus     `json:"status" gorm:"size:10;default:'pending'"`
	ShippingAddress string          `json:"shippingAddress" gorm:"type:text"`
	Email           string          `json:"email" gorm:"size:254"`
	Phone           string          `json:"phone" gorm:"size:20"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots a cart line at purchase time. Price is the frozen sale
// price, decoupled from later catalog price changes.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `json:"-" gorm:"not null;index"`
	ProductID uint            `json:"productId" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Size      string          `json:"size" gorm:"size:3;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
