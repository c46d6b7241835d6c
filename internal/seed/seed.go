package seed

import (
	"encoding/json"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/shopspring/decimal"
)

type productFixture struct {
	name        string
	slug        string
	category    string
	price       string
	description string
	image       string
	sizes       []string
	stock       int
	featured    bool
}

var categoryFixtures = []domain.Category{
	{Name: "Hoodies", Slug: "hoodies"},
	{Name: "T-Shirts", Slug: "t-shirts"},
	{Name: "Jackets", Slug: "jackets"},
	{Name: "Pants", Slug: "pants"},
	{Name: "Accessories", Slug: "accessories"},
}

var productFixtures = []productFixture{
	{
		name:        "Shadow Hoodie",
		slug:        "shadow-hoodie",
		category:    "hoodies",
		price:       "89.99",
		description: "Premium heavyweight hoodie with embroidered CLAWS logo. Made from 100% organic cotton for ultimate comfort and durability.",
		image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400&h=400&fit=crop",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		stock:       25,
		featured:    true,
	},
	{
		name:        "Urban Cargo Pants",
		slug:        "urban-cargo-pants",
		category:    "pants",
		price:       "129.99",
		description: "Military-inspired cargo pants with multiple pockets and adjustable straps. Perfect for the urban explorer.",
		image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400&h=400&fit=crop",
		sizes:       []string{"S", "M", "L", "XL"},
		stock:       18,
		featured:    true,
	},
	{
		name:        "Stealth Bomber Jacket",
		slug:        "stealth-bomber-jacket",
		category:    "jackets",
		price:       "199.99",
		description: "Classic bomber jacket with modern street aesthetic. Water-resistant fabric with premium hardware.",
		image:       "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400&h=400&fit=crop",
		sizes:       []string{"M", "L", "XL"},
		stock:       12,
		featured:    true,
	},
	{
		name:        "Night Rider Tee",
		slug:        "night-rider-tee",
		category:    "t-shirts",
		price:       "39.99",
		description: "Soft cotton tee with bold graphic print. Essential piece for any streetwear collection.",
		image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop",
		sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		stock:       45,
		featured:    true,
	},
	{
		name:        "Rebel Denim Jacket",
		slug:        "rebel-denim-jacket",
		category:    "jackets",
		price:       "149.99",
		description: "Vintage-inspired denim jacket with distressed details and custom patches.",
		image:       "https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=400&h=400&fit=crop",
		sizes:       []string{"S", "M", "L", "XL"},
		stock:       20,
		featured:    true,
	},
	{
		name:        "Street Runner Joggers",
		slug:        "street-runner-joggers",
		category:    "pants",
		price:       "79.99",
		description: "Comfortable joggers with tapered fit and reflective details. Perfect for active lifestyle.",
		image:       "https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=400&h=400&fit=crop",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		stock:       30,
		featured:    true,
	},
	{
		name:        "Underground Tank",
		slug:        "underground-tank",
		category:    "t-shirts",
		price:       "29.99",
		description: "Lightweight tank top with minimalist design. Perfect for layering or wearing solo.",
		image:       "https://images.unsplash.com/photo-1618354691373-d851c5c3a990?w=400&h=400&fit=crop",
		sizes:       []string{"XS", "S", "M", "L", "XL"},
		stock:       35,
		featured:    true,
	},
}

// Run writes the fixture catalog once, on an empty products table. The
// catalog stays read-only afterwards; there is no mutable global holding it.
func Run(repo repository.CatalogRepository) error {
	count, err := repo.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categoryIDs := make(map[string]uint, len(categoryFixtures))
	for i := range categoryFixtures {
		category := categoryFixtures[i]
		if err := repo.SaveCategory(&category); err != nil {
			return err
		}
		categoryIDs[category.Slug] = category.ID
	}

	for _, f := range productFixtures {
		sizes, err := json.Marshal(f.sizes)
		if err != nil {
			return err
		}
		product := domain.Product{
			Name:           f.name,
			Slug:           f.slug,
			CategoryID:     categoryIDs[f.category],
			Price:          decimal.RequireFromString(f.price),
			Description:    f.description,
			ImageURL:       f.image,
			AvailableSizes: sizes,
			Stock:          f.stock,
			Featured:       f.featured,
		}
		if err := repo.SaveProduct(&product); err != nil {
			return err
		}
	}

	log.Printf("Seeded catalog with %d categories and %d products", len(categoryFixtures), len(productFixtures))
	return nil
}
