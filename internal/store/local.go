package store

import (
	"context"
	"errors"
	"time"

	"github.com/mirastore/catalog_api/internal/catalog"
	"github.com/mirastore/catalog_api/internal/localstore"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/utils"
)

// LocalStore implements CatalogStore on top of the file-backed JSON store.
// Every write rewrites the full collection atomically, so a failed save
// leaves prior state untouched.
type LocalStore struct {
	store *localstore.Store
}

// NewLocalStore creates a LocalStore over the given localstore.Store.
func NewLocalStore(store *localstore.Store) *LocalStore {
	return &LocalStore{store: store}
}

func (s *LocalStore) ListProducts(_ context.Context, filter *ProductFilter) ([]models.Product, int, error) {
	all := s.store.LoadProducts()
	filtered := catalog.Filter(all, filter.Search, filter.Category)
	page := catalog.Paginate(len(filtered), filter.Page, filter.Limit)
	return filtered[page.Start:page.End], len(filtered), nil
}

func (s *LocalStore) GetProduct(_ context.Context, id int) (*models.Product, error) {
	for _, p := range s.store.LoadProducts() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (s *LocalStore) CreateProduct(_ context.Context, product *models.Product) error {
	products := s.store.LoadProducts()
	product.ID = nextProductID(products)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	return s.saveProducts(append(products, *product))
}

func (s *LocalStore) UpdateProduct(_ context.Context, product *models.Product) error {
	products := s.store.LoadProducts()
	for i := range products {
		if products[i].ID == product.ID {
			product.CreatedAt = products[i].CreatedAt
			product.UpdatedAt = time.Now()
			products[i] = *product
			return s.saveProducts(products)
		}
	}
	return utils.ErrProductNotFound
}

func (s *LocalStore) DeleteProduct(_ context.Context, id int) error {
	products := s.store.LoadProducts()
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return utils.ErrProductNotFound
	}
	return s.saveProducts(kept)
}

func (s *LocalStore) RelatedProducts(_ context.Context, category string, excludeID, limit int) ([]models.Product, error) {
	var related []models.Product
	for _, p := range s.store.LoadProducts() {
		if p.Category == category && p.ID != excludeID {
			related = append(related, p)
			if len(related) == limit {
				break
			}
		}
	}
	return related, nil
}

func (s *LocalStore) ListCategories(_ context.Context) ([]models.Category, error) {
	return s.store.LoadCategories(), nil
}

func (s *LocalStore) GetCategory(_ context.Context, id int) (*models.Category, error) {
	for _, c := range s.store.LoadCategories() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, utils.ErrCategoryNotFound
}

func (s *LocalStore) CreateCategory(_ context.Context, category *models.Category) error {
	categories := s.store.LoadCategories()
	category.ID = nextCategoryID(categories)
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	return s.saveCategories(append(categories, *category))
}

func (s *LocalStore) UpdateCategory(_ context.Context, category *models.Category) error {
	categories := s.store.LoadCategories()
	for i := range categories {
		if categories[i].ID == category.ID {
			category.CreatedAt = categories[i].CreatedAt
			category.UpdatedAt = time.Now()
			categories[i] = *category
			return s.saveCategories(categories)
		}
	}
	return utils.ErrCategoryNotFound
}

func (s *LocalStore) DeleteCategory(_ context.Context, id int) error {
	categories := s.store.LoadCategories()
	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(categories) {
		return utils.ErrCategoryNotFound
	}
	return s.saveCategories(kept)
}

func (s *LocalStore) saveProducts(products []models.Product) error {
	if err := s.store.SaveProducts(products); err != nil {
		return mapQuotaErr(err)
	}
	return nil
}

func (s *LocalStore) saveCategories(categories []models.Category) error {
	if err := s.store.SaveCategories(categories); err != nil {
		return mapQuotaErr(err)
	}
	return nil
}

func mapQuotaErr(err error) error {
	if errors.Is(err, localstore.ErrQuotaExceeded) {
		return utils.ErrStorageQuota
	}
	return err
}

func nextProductID(products []models.Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func nextCategoryID(categories []models.Category) int {
	max := 0
	for _, c := range categories {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
