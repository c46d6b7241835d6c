package repository

import (
	"storefront-service/internal/domain"
)

// CatalogRepository is a read-mostly view of products and categories. The
// Save methods exist only for seeding the fixture catalog at startup.
type CatalogRepository interface {
	FindAllProducts() ([]domain.Product, error)
	FindFeaturedProducts(limit int) ([]domain.Product, error)
	FindProductsByCategory(categorySlug string) ([]domain.Product, error)
	FindProductBySlug(slug string) (*domain.Product, error)
	FindProductByID(id uint) (*domain.Product, error)
	FindAllCategories() ([]domain.Category, error)
	FindCategoryBySlug(slug string) (*domain.Category, error)
	CountProducts() (int64, error)
	SaveCategory(category *domain.Category) error
	SaveProduct(product *domain.Product) error
}
