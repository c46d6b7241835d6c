package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CreateFromCart writes the order (items included via the association) and
// empties the cart inside one transaction. Any failure rolls the whole unit
// back so no partial order exists.
func (r *orderRepo) CreateFromCart(order *domain.Order, cartID uint) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		log.Printf("order create error: %v", err)
		return err
	}
	if order.ID == 0 {
		tx.Rollback()
		return errors.New("failed to assign order ID")
	}

	if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		tx.Rollback()
		log.Printf("cart clear error during checkout: %v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("order commit error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) FindByIDForUser(id, userID uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByIDForUser error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(userID uint) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}
