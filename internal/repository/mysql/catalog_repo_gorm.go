package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) FindAllProducts() ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Preload("Category").Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("FindAllProducts error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) FindFeaturedProducts(limit int) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Preload("Category").
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		log.Printf("FindFeaturedProducts error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) FindProductsByCategory(categorySlug string) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Preload("Category").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.slug = ?", categorySlug).
		Order("products.created_at DESC").
		Find(&out).Error; err != nil {
		log.Printf("FindProductsByCategory error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) FindProductBySlug(slug string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindProductBySlug error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) FindProductByID(id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindProductByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) FindAllCategories() ([]domain.Category, error) {
	var out []domain.Category
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		log.Printf("FindAllCategories error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) FindCategoryBySlug(slug string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindCategoryBySlug error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepo) CountProducts() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *catalogRepo) SaveCategory(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepo) SaveProduct(product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return r.db.Create(product).Error
}
