package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mirastore/catalog_api/internal/models"
)

type fakeSource struct {
	available  bool
	products   []models.Product
	categories []models.Category
	err        error
}

func (f *fakeSource) Available() bool { return f.available }

func (f *fakeSource) GetProducts(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeSource) GetCategories(context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

type fakeTarget struct {
	products      []models.Product
	categories    []models.Category
	sequenceSyncs int
}

func (f *fakeTarget) UpsertProduct(p *models.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeTarget) UpsertCategory(c *models.Category) error {
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeTarget) SyncProductSequence() error {
	f.sequenceSyncs++
	return nil
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return nil
}

func TestSyncRunPersistsCatalogAndAdvancesSequence(t *testing.T) {
	source := &fakeSource{
		available:  true,
		categories: []models.Category{{ID: 1, Name: "Rings"}},
		products: []models.Product{
			{ID: 7, Name: "Gold Band", Price: decimal.NewFromFloat(120.00), Category: "Rings"},
			{ID: 8, Name: "Silver Band", Price: decimal.NewFromFloat(45.50), Category: "Rings"},
		},
	}
	target := &fakeTarget{}
	invalidator := &fakeInvalidator{}

	w := NewSyncWorker(source, target, invalidator, time.Minute)
	w.run(context.Background())

	assert.Len(t, target.categories, 1)
	assert.Len(t, target.products, 2)
	assert.Equal(t, 7, target.products[0].ID)
	assert.Equal(t, 1, target.sequenceSyncs, "id sequence must be advanced after writing upstream ids")
	assert.Equal(t, 1, invalidator.calls)
}

func TestSyncRunSkipsCycleOnUpstreamError(t *testing.T) {
	source := &fakeSource{available: true, err: errors.New("connection refused")}
	target := &fakeTarget{}
	invalidator := &fakeInvalidator{}

	w := NewSyncWorker(source, target, invalidator, time.Minute)
	w.run(context.Background())

	assert.Empty(t, target.products)
	assert.Empty(t, target.categories)
	assert.Zero(t, target.sequenceSyncs)
	assert.Zero(t, invalidator.calls, "a failed cycle must not touch the cache")
}

func TestSyncRunSkipsWhenUpstreamUnconfigured(t *testing.T) {
	source := &fakeSource{available: false}
	target := &fakeTarget{}

	w := NewSyncWorker(source, target, &fakeInvalidator{}, time.Minute)
	w.run(context.Background())

	assert.Empty(t, target.products)
	assert.Zero(t, target.sequenceSyncs)
}
