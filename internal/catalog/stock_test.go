package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirastore/catalog_api/internal/models"
)

func TestClassifyStock(t *testing.T) {
	testCases := []struct {
		name     string
		stock    int
		expected models.StockLevel
	}{
		{name: "zero stock is low", stock: 0, expected: models.StockLow},
		{name: "boundary of low", stock: 5, expected: models.StockLow},
		{name: "just above low", stock: 6, expected: models.StockMedium},
		{name: "boundary of medium", stock: 20, expected: models.StockMedium},
		{name: "just above medium", stock: 21, expected: models.StockHigh},
		{name: "large stock is high", stock: 1000, expected: models.StockHigh},
		{name: "negative stock is low", stock: -1, expected: models.StockLow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyStock(tc.stock))
		})
	}
}
