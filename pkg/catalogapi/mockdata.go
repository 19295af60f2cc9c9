package catalogapi

import (
	"github.com/shopspring/decimal"

	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/utils"
)

// MockProducts returns the static demo dataset served when the upstream is
// unreachable and mock fallback is enabled.
func MockProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Diamond Ring",
			Price:       decimal.NewFromFloat(2499.99),
			Stock:       3,
			Category:    "Rings",
			Description: "18k white gold band with a brilliant-cut solitaire diamond",
			Image:       "https://cdn.mirastore.dev/demo/diamond-ring.jpg",
		},
		{
			ID:          2,
			Name:        "Gold Necklace",
			Price:       decimal.NewFromFloat(899.00),
			Stock:       12,
			Category:    "Necklaces",
			Description: "Handcrafted 14k gold chain necklace, 45cm",
			Image:       "https://cdn.mirastore.dev/demo/gold-necklace.jpg",
		},
		{
			ID:          3,
			Name:        "Silver Bracelet",
			Price:       decimal.NewFromFloat(149.50),
			Stock:       27,
			Category:    "Bracelets",
			Description: "Sterling silver charm bracelet with adjustable clasp",
			Image:       "https://cdn.mirastore.dev/demo/silver-bracelet.jpg",
		},
		{
			ID:          4,
			Name:        "Pearl Earrings",
			Price:       decimal.NewFromFloat(320.00),
			Stock:       8,
			Category:    "Earrings",
			Description: "Freshwater pearl stud earrings with silver posts",
			Image:       "https://cdn.mirastore.dev/demo/pearl-earrings.jpg",
		},
	}
}

// MockProduct returns the mock product with the given id.
func MockProduct(id int) (*models.Product, error) {
	for _, p := range MockProducts() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

// MockCategories returns the static demo categories.
func MockCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Rings"},
		{ID: 2, Name: "Necklaces"},
		{ID: 3, Name: "Bracelets"},
		{ID: 4, Name: "Earrings"},
	}
}
