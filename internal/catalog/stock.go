package catalog

import "github.com/mirastore/catalog_api/internal/models"

// Stock classification thresholds.
const (
	lowStockMax    = 5
	mediumStockMax = 20
)

// ClassifyStock maps a stock count to its level: <=5 low, <=20 medium,
// otherwise high.
func ClassifyStock(stock int) models.StockLevel {
	switch {
	case stock <= lowStockMax:
		return models.StockLow
	case stock <= mediumStockMax:
		return models.StockMedium
	default:
		return models.StockHigh
	}
}
