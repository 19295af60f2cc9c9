package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/mirastore/catalog_api/internal/models"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll returns all categories ordered by name.
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`
	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	const q = `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	var c models.Category
	if err := r.db.Get(&c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByName returns a single category by name.
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	const q = `SELECT * FROM categories WHERE name = $1 LIMIT 1`
	var c models.Category
	if err := r.db.Get(&c, q, name); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	const q = `INSERT INTO categories (name, image)
              VALUES ($1, $2)
              RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, category.Name, category.Image).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// Update updates an existing category in place by id.
func (r *CategoryRepository) Update(category *models.Category) error {
	const q = `UPDATE categories
              SET name = $1, image = $2, updated_at = NOW()
              WHERE id = $3
              RETURNING updated_at`
	return r.db.QueryRowx(q, category.Name, category.Image, category.ID).
		Scan(&category.UpdatedAt)
}

// Upsert inserts or updates a category by name. Used by the sync worker.
func (r *CategoryRepository) Upsert(category *models.Category) error {
	const q = `
        INSERT INTO categories (name, image)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET
            image = EXCLUDED.image,
            updated_at = NOW()`
	_, err := r.db.Exec(q, category.Name, category.Image)
	return err
}

// Delete deletes a category by ID. Products referencing the category are
// left untouched; a dangling reference is tolerated.
func (r *CategoryRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
