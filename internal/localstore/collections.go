package localstore

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mirastore/catalog_api/internal/models"
)

// LoadProducts returns the stored product collection, empty when missing or
// malformed.
func (s *Store) LoadProducts() []models.Product {
	return decodeRecords[models.Product](s.Load(KeyProducts), KeyProducts)
}

// SaveProducts overwrites the stored product collection.
func (s *Store) SaveProducts(products []models.Product) error {
	records, err := encodeRecords(products)
	if err != nil {
		return err
	}
	return s.Save(KeyProducts, records)
}

// LoadCategories returns the stored category collection, empty when missing
// or malformed.
func (s *Store) LoadCategories() []models.Category {
	return decodeRecords[models.Category](s.Load(KeyCategories), KeyCategories)
}

// SaveCategories overwrites the stored category collection.
func (s *Store) SaveCategories(categories []models.Category) error {
	records, err := encodeRecords(categories)
	if err != nil {
		return err
	}
	return s.Save(KeyCategories, records)
}

func encodeRecords[T any](items []T) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(items))
	for i := range items {
		data, err := json.Marshal(&items[i])
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, nil
}

// decodeRecords drops individual records that fail to decode instead of
// failing the whole load.
func decodeRecords[T any](records []json.RawMessage, key string) []T {
	items := make([]T, 0, len(records))
	for _, raw := range records {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Warn().Str("key", key).Err(err).Msg("Skipping malformed local store record")
			continue
		}
		items = append(items, item)
	}
	return items
}
