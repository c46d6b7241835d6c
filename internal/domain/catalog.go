package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	MaxStock          = 9999
	MinDescriptionLen = 10
)

// Sizes a product may offer. Carts and orders only ever reference one of these.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

func ValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:100;not null;uniqueIndex"`
}

type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string          `json:"name" gorm:"size:200;not null"`
	Slug           string          `json:"slug" gorm:"size:200;not null;uniqueIndex"`
	CategoryID     uint            `json:"categoryId" gorm:"not null;index"`
	Category       Category        `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description    string          `json:"description" gorm:"type:text"`
	ImageURL       string          `json:"imageUrl" gorm:"size:500"`
	AvailableSizes datatypes.JSON  `json:"availableSizes"`
	Stock          int             `json:"stock" gorm:"not null;default:0"`
	Featured       bool            `json:"featured" gorm:"index"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}

// HasSize reports whether the product is offered in the given size.
func (p *Product) HasSize(size string) bool {
	var sizes []string
	if err := json.Unmarshal(p.AvailableSizes, &sizes); err != nil {
		return false
	}
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if len(strings.TrimSpace(p.Description)) < MinDescriptionLen {
		return fmt.Errorf("description must be at least %d characters", MinDescriptionLen)
	}
	if p.Price.Sign() <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	if p.Stock < 0 || p.Stock > MaxStock {
		return fmt.Errorf("stock must be between 0 and %d", MaxStock)
	}
	return nil
}
