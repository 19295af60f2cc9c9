package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirastore/catalog_api/internal/models"
)

func newStore(t *testing.T, quota int64) *Store {
	t.Helper()
	s, err := New(t.TempDir(), quota)
	require.NoError(t, err)
	return s
}

func record(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newStore(t, 0)
	assert.Empty(t, s.Load(KeyProducts))
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	s := newStore(t, 0)
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "products.json"), []byte("{not json"), 0o644))
	assert.Empty(t, s.Load(KeyProducts))
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newStore(t, 0)

	records := []json.RawMessage{
		record(t, map[string]interface{}{"id": 1, "name": "Diamond Ring"}),
		record(t, map[string]interface{}{"id": 2, "name": "Gold Necklace"}),
	}
	require.NoError(t, s.Save(KeyProducts, records))

	got := s.Load(KeyProducts)
	require.Len(t, got, 2)
	assert.JSONEq(t, string(records[0]), string(got[0]))
	assert.JSONEq(t, string(records[1]), string(got[1]))
}

func TestSaveOverwritesPreviousContents(t *testing.T) {
	s := newStore(t, 0)

	require.NoError(t, s.Save(KeyProducts, []json.RawMessage{record(t, map[string]int{"id": 1})}))
	require.NoError(t, s.Save(KeyProducts, []json.RawMessage{record(t, map[string]int{"id": 2})}))

	got := s.Load(KeyProducts)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":2}`, string(got[0]))
}

func TestSaveReclaimsSiblingSpace(t *testing.T) {
	s := newStore(t, 2048)

	// Fill most of the quota with categories.
	categories := make([]json.RawMessage, 8)
	for i := range categories {
		categories[i] = record(t, map[string]interface{}{
			"id":   i,
			"name": fmt.Sprintf("category-%d-%s", i, strings.Repeat("x", 180)),
		})
	}
	require.NoError(t, s.Save(KeyCategories, categories))

	// The product write does not fit until the sibling is truncated.
	products := []json.RawMessage{
		record(t, map[string]interface{}{"id": 1, "name": strings.Repeat("x", 600)}),
	}
	require.NoError(t, s.Save(KeyProducts, products))

	remaining := s.Load(KeyCategories)
	assert.Len(t, remaining, 4, "sibling collection should be halved, keeping the first half")
	assert.JSONEq(t, string(categories[0]), string(remaining[0]))

	got := s.Load(KeyProducts)
	require.Len(t, got, 1)
}

func TestSaveAbandonsWriteWhenReclaimIsNotEnough(t *testing.T) {
	s := newStore(t, 256)

	small := []json.RawMessage{record(t, map[string]int{"id": 1})}
	require.NoError(t, s.Save(KeyProducts, small))

	huge := []json.RawMessage{
		record(t, map[string]interface{}{"id": 2, "blob": strings.Repeat("x", 4096)}),
	}
	err := s.Save(KeyProducts, huge)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// The prior contents survive an abandoned write.
	got := s.Load(KeyProducts)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":1}`, string(got[0]))
}

func TestZeroQuotaDisablesLimit(t *testing.T) {
	s := newStore(t, 0)
	big := []json.RawMessage{
		record(t, map[string]interface{}{"blob": strings.Repeat("x", 1<<20)}),
	}
	assert.NoError(t, s.Save(KeyProducts, big))
}

func TestProductCollectionRoundTrip(t *testing.T) {
	s := newStore(t, 0)

	products := []models.Product{
		{ID: 1, Name: "Diamond Ring", Stock: 3, Category: "Rings"},
		{ID: 2, Name: "Gold Necklace", Stock: 12, Category: "Necklaces"},
	}
	require.NoError(t, s.SaveProducts(products))

	got := s.LoadProducts()
	require.Len(t, got, 2)
	assert.Equal(t, "Diamond Ring", got[0].Name)
	assert.Equal(t, 12, got[1].Stock)
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	s := newStore(t, 0)
	payload := `[{"id":1,"name":"Diamond Ring"},{"id":"not-a-number"}]`
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "products.json"), []byte(payload), 0o644))

	got := s.LoadProducts()
	require.Len(t, got, 1)
	assert.Equal(t, "Diamond Ring", got[0].Name)
}
