package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) findOne(query string, arg any) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.Where(query, arg).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id")
		}).
		Preload("Items.Product").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart lookup error: %v", err)
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) FindByUser(userID uint) (*domain.Cart, error) {
	return r.findOne("user_id = ?", userID)
}

func (r *cartRepo) FindBySession(sessionKey string) (*domain.Cart, error) {
	return r.findOne("session_key = ?", sessionKey)
}

func (r *cartRepo) Create(cart *domain.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		log.Printf("cart create error: %v", err)
		return err
	}
	return nil
}

func (r *cartRepo) FindItem(cartID, productID uint, size string) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart item lookup error: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) CreateItem(item *domain.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		log.Printf("cart item create error: %v", err)
		return err
	}
	return nil
}

// Single conditional UPDATE so concurrent adds on the same line cannot lose
// updates or overshoot stock.
func (r *cartRepo) IncrementItemQuantity(itemID uint, delta, stock int) (bool, error) {
	result := r.db.Model(&domain.CartItem{}).
		Where("id = ? AND quantity + ? <= ?", itemID, delta, stock).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		log.Printf("cart item increment error: %v", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepo) ClearItems(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		log.Printf("cart clear error: %v", err)
		return err
	}
	return nil
}
