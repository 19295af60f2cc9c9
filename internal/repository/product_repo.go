package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/mirastore/catalog_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter holds listing filters. Search is matched case-insensitively
// as a substring of name or description; Category must match exactly when
// set. Page begins at 1.
type ProductFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// List returns products matching the filter plus the total match count.
func (r *ProductRepository) List(filter *ProductFilter) ([]models.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	offset := (filter.Page - 1) * filter.Limit

	const baseWhere = `WHERE ($1 = '' OR category = $1)
        AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, filter.Category, filter.Search); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT * FROM products ` + baseWhere + `
        ORDER BY id LIMIT $3 OFFSET $4`
	var products []models.Product
	if err := r.db.Select(&products, listQuery, filter.Category, filter.Search, filter.Limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByCategory returns products in the given category, excluding one id.
// Used for the storefront "related products" strip.
func (r *ProductRepository) GetByCategory(category string, excludeID, limit int) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE category = $1 AND id != $2 ORDER BY id LIMIT $3`
	var products []models.Product
	if err := r.db.Select(&products, q, category, excludeID, limit); err != nil {
		return nil, err
	}
	return products, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `INSERT INTO products (name, price, stock, category, description, image)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.Price,
		product.Stock,
		product.Category,
		product.Description,
		product.Image,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// Update updates an existing product in place by id.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `UPDATE products
              SET name = $1, price = $2, stock = $3, category = $4,
                  description = $5, image = $6, updated_at = NOW()
              WHERE id = $7
              RETURNING updated_at`

	return r.db.QueryRowx(q,
		product.Name,
		product.Price,
		product.Stock,
		product.Category,
		product.Description,
		product.Image,
		product.ID,
	).Scan(&product.UpdatedAt)
}

// Upsert inserts or updates a product by id, keeping upstream ids stable.
// Used by the sync worker.
func (r *ProductRepository) Upsert(product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, price, stock, category, description, image)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            price = EXCLUDED.price,
            stock = EXCLUDED.stock,
            category = EXCLUDED.category,
            description = EXCLUDED.description,
            image = EXCLUDED.image,
            updated_at = NOW()`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		product.ID,
		product.Name,
		product.Price,
		product.Stock,
		product.Category,
		product.Description,
		product.Image,
	)
	return err
}

// SyncSequence advances the products id sequence past the largest explicit
// id, so inserts through Create cannot collide with rows the sync worker
// wrote with upstream ids.
func (r *ProductRepository) SyncSequence() error {
	const q = `SELECT setval(pg_get_serial_sequence('products', 'id'),
              COALESCE((SELECT MAX(id) FROM products), 0) + 1, false)`
	_, err := r.db.Exec(q)
	return err
}

// Delete deletes a product by ID. Returns sql.ErrNoRows when nothing was
// deleted.
func (r *ProductRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
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
