// Package store abstracts catalog persistence behind one interface with two
// implementations: the Postgres system of record and the file-backed local
// fallback store. A record is owned exclusively by whichever store the
// service was configured with; there is no cross-store mutation.
package store

import (
	"context"

	"github.com/mirastore/catalog_api/internal/models"
)

// ProductFilter holds listing filters. Search matches case-insensitively as
// a substring of name or description; Category must match exactly when set.
// Page begins at 1.
type ProductFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// CatalogStore is the persistence contract shared by both tiers.
type CatalogStore interface {
	ListProducts(ctx context.Context, filter *ProductFilter) ([]models.Product, int, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
	RelatedProducts(ctx context.Context, category string, excludeID, limit int) ([]models.Product, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) error
}
