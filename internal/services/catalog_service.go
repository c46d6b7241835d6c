package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// FeaturedLimit bounds the featured set shown on the homepage.
const FeaturedLimit = 9

const featuredCacheKey = "catalog:featured"

type CatalogService struct {
	repo        repository.CatalogRepository
	redisClient *redis.Client
}

func NewCatalogService(r repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: r}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAllProducts()
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, featuredCacheKey).Result()
		if err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.repo.FindFeaturedProducts(FeaturedLimit)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, featuredCacheKey, data, time.Minute)
		}
	}

	return products, nil
}

// ProductsByCategory distinguishes an unknown category from an empty one.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categorySlug string) ([]domain.Product, *domain.Category, error) {
	category, err := s.repo.FindCategoryBySlug(categorySlug)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, ErrCategoryNotFound
	}

	products, err := s.repo.FindProductsByCategory(categorySlug)
	if err != nil {
		return nil, nil, err
	}
	return products, category, nil
}

func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.repo.FindProductBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.FindAllCategories()
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	c, err := s.repo.FindCategoryBySlug(slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// WarmupCatalogCache primes the per-product cache entries the cart service
// reads during add-to-cart.
func (s *CatalogService) WarmupCatalogCache(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}

	products, err := s.repo.FindAllProducts()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range products {
		p := products[i]
		g.Go(func() error {
			data, err := json.Marshal(p)
			if err != nil {
				log.Printf("Failed to warm up cache for product %d: %v", p.ID, err)
				return nil
			}
			s.redisClient.Set(ctx, fmt.Sprintf("product:%d", p.ID), data, 5*time.Minute)
			return nil
		})
	}
	return g.Wait()
}
