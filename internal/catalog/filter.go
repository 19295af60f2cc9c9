package catalog

import (
	"strings"

	"github.com/mirastore/catalog_api/internal/models"
)

// Matches reports whether a product matches the given search term and
// category filter. The search term is a case-insensitive substring match
// against name or description; the category filter, when set, must match
// exactly.
func Matches(p *models.Product, search, category string) bool {
	if category != "" && p.Category != category {
		return false
	}
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Filter returns the products matching the search term and category filter,
// preserving input order.
func Filter(products []models.Product, search, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if Matches(&products[i], search, category) {
			out = append(out, products[i])
		}
	}
	return out
}
