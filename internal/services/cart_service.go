package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

var (
	ErrNoIdentity      = errors.New("cart requires a user or session identity")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidSize     = errors.New("size not available for this product")
	ErrOutOfStock      = errors.New("not enough stock available")
)

type CartService struct {
	carts       repository.CartRepository
	catalog     repository.CatalogRepository
	redisClient *redis.Client
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

func (s *CartService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CartService) findCart(identity domain.Identity) (*domain.Cart, error) {
	if identity.UserID != 0 {
		return s.carts.FindByUser(identity.UserID)
	}
	if identity.SessionKey != "" {
		return s.carts.FindBySession(identity.SessionKey)
	}
	return nil, ErrNoIdentity
}

// ResolveCart returns the identity's cart, creating it lazily on first use.
// It never returns a cart belonging to a different identity.
func (s *CartService) ResolveCart(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}

	cart, err := s.findCart(identity)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &domain.Cart{}
	if identity.UserID != 0 {
		userID := identity.UserID
		cart.UserID = &userID
	} else {
		sessionKey := identity.SessionKey
		cart.SessionKey = &sessionKey
	}
	if err := s.carts.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem validates the request against the current catalog and either
// creates a new line or accumulates quantity onto an existing one. Nothing is
// written when any check fails.
func (s *CartService) AddItem(ctx context.Context, identity domain.Identity, productID uint, size string, quantity int) error {
	if productID == 0 || size == "" {
		return ErrMissingFields
	}
	if quantity < domain.MinQuantity || quantity > domain.MaxQuantity {
		return ErrInvalidQuantity
	}

	product, err := s.productByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !domain.ValidSize(size) || !product.HasSize(size) {
		return ErrInvalidSize
	}
	if quantity > product.Stock {
		return ErrOutOfStock
	}

	cart, err := s.ResolveCart(ctx, identity)
	if err != nil {
		return err
	}

	item, err := s.carts.FindItem(cart.ID, productID, size)
	if err != nil {
		return err
	}
	if item == nil {
		return s.carts.CreateItem(&domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Size:      size,
			Quantity:  quantity,
		})
	}

	ok, err := s.carts.IncrementItemQuantity(item.ID, quantity, product.Stock)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOutOfStock
	}
	return nil
}

// GetCart returns the identity's cart with items and current product rows
// loaded, or nil when no cart exists yet.
func (s *CartService) GetCart(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoIdentity
	}
	return s.findCart(identity)
}

// CartTotal is computed fresh from the loaded product prices; prices may have
// changed since the lines were added.
func (s *CartService) CartTotal(cart *domain.Cart) decimal.Decimal {
	if cart == nil {
		return decimal.Zero
	}
	return cart.TotalPrice()
}

// Clear removes every line. Clearing a missing or already-empty cart is a
// no-op.
func (s *CartService) Clear(ctx context.Context, identity domain.Identity) error {
	cart, err := s.findCart(identity)
	if err != nil || cart == nil {
		return err
	}
	return s.carts.ClearItems(cart.ID)
}

func (s *CartService) productByID(ctx context.Context, id uint) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.catalog.FindProductByID(id)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && p != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return p, nil
}
