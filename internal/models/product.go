package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel classifies how much stock a product has left.
type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// Product represents a product in the storefront catalog.
// Fields are tagged for both DB scanning and JSON serialization.
// Image holds either an external URL or an inline data URL produced by the
// image ingestion pipeline; empty means "no image".
type Product struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Category    string          `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Image       string          `db:"image" json:"image"`
	CreatedAt   time.Time       `db:"created_at" json:"-"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}
