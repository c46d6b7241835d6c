package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Identity is the owner of a cart: an authenticated user or, before login,
// an anonymous session token. At least one side must be set.
type Identity struct {
	UserID     uint
	SessionKey string
}

func (i Identity) Valid() bool {
	return i.UserID != 0 || i.SessionKey != ""
}

type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     *uint      `json:"userId,omitempty" gorm:"uniqueIndex"`
	SessionKey *string    `json:"-" gorm:"size:40;index"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TotalPrice sums quantity x current product price over all lines. Items must
// be loaded with their products.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

type CartItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID    uint    `json:"-" gorm:"not null;uniqueIndex:idx_cart_product_size"`
	ProductID uint    `json:"productId" gorm:"not null;uniqueIndex:idx_cart_product_size"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Size      string  `json:"size" gorm:"size:3;not null;uniqueIndex:idx_cart_product_size"`
	Quantity  int     `json:"quantity" gorm:"not null"`
}

func (i *CartItem) TotalPrice() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
