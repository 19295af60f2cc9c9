package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/repository"
	"github.com/mirastore/catalog_api/internal/utils"
)

// PostgresStore implements CatalogStore on top of the sqlx repositories.
type PostgresStore struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
}

// NewPostgresStore creates a PostgresStore over the given connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		products:   repository.NewProductRepository(db),
		categories: repository.NewCategoryRepository(db),
	}
}

// UpsertProduct writes a product under its upstream id. Used by the sync
// worker.
func (s *PostgresStore) UpsertProduct(product *models.Product) error {
	return s.products.Upsert(product)
}

// UpsertCategory writes a category keyed by name. Used by the sync worker.
func (s *PostgresStore) UpsertCategory(category *models.Category) error {
	return s.categories.Upsert(category)
}

// SyncProductSequence moves the products id sequence past the synced rows.
func (s *PostgresStore) SyncProductSequence() error {
	return s.products.SyncSequence()
}

func (s *PostgresStore) ListProducts(_ context.Context, filter *ProductFilter) ([]models.Product, int, error) {
	return s.products.List(&repository.ProductFilter{
		Search:   filter.Search,
		Category: filter.Category,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

func (s *PostgresStore) GetProduct(_ context.Context, id int) (*models.Product, error) {
	p, err := s.products.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrProductNotFound
	}
	return p, err
}

func (s *PostgresStore) CreateProduct(_ context.Context, product *models.Product) error {
	return s.products.Create(product)
}

func (s *PostgresStore) UpdateProduct(_ context.Context, product *models.Product) error {
	if err := s.products.Update(product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *PostgresStore) DeleteProduct(_ context.Context, id int) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *PostgresStore) RelatedProducts(_ context.Context, category string, excludeID, limit int) ([]models.Product, error) {
	return s.products.GetByCategory(category, excludeID, limit)
}

func (s *PostgresStore) ListCategories(_ context.Context) ([]models.Category, error) {
	return s.categories.GetAll()
}

func (s *PostgresStore) GetCategory(_ context.Context, id int) (*models.Category, error) {
	c, err := s.categories.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrCategoryNotFound
	}
	return c, err
}

func (s *PostgresStore) CreateCategory(_ context.Context, category *models.Category) error {
	return s.categories.Create(category)
}

func (s *PostgresStore) UpdateCategory(_ context.Context, category *models.Category) error {
	if err := s.categories.Update(category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *PostgresStore) DeleteCategory(_ context.Context, id int) error {
	if err := s.categories.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
