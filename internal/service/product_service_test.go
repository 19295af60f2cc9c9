package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirastore/catalog_api/internal/localstore"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/internal/utils"
)

type productFixture struct {
	svc      *ProductService
	cache    *fakeCache
	notifier *fakeNotifier
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	local, err := localstore.New(t.TempDir(), 0)
	require.NoError(t, err)

	cache := newFakeCache()
	notifier := &fakeNotifier{}
	svc := NewProductService(store.NewLocalStore(local), cache, newFakeConfirmer(), notifier)
	return &productFixture{svc: svc, cache: cache, notifier: notifier}
}

func (f *productFixture) mustCreate(t *testing.T, req *CreateProductRequest) *models.Product {
	t.Helper()
	p, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	return p
}

func TestProductCreate(t *testing.T) {
	f := newProductFixture(t)

	p := f.mustCreate(t, &CreateProductRequest{
		Name:     "Diamond Ring",
		Price:    decimal.RequireFromString("2499.99"),
		Stock:    3,
		Category: "Rings",
	})

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Diamond Ring", p.Name)

	got, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StockLow, got.StockLevel)
	assert.Equal(t, 1, f.cache.invalidated, "create must invalidate cached listings")
	assert.Equal(t, []string{"product:created"}, f.notifier.changed)
}

func TestProductCreateValidation(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(context.Background(), &CreateProductRequest{
		Name:  "Bad Price",
		Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidPrice)

	_, err = f.svc.Create(context.Background(), &CreateProductRequest{
		Name:  "Bad Stock",
		Stock: -5,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidStock)

	// Nothing was persisted.
	views, _, err := f.svc.List(context.Background(), "", "", 1)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestProductListFiltersAndClassifies(t *testing.T) {
	f := newProductFixture(t)
	f.mustCreate(t, &CreateProductRequest{Name: "Diamond Ring", Stock: 3, Category: "Rings"})
	f.mustCreate(t, &CreateProductRequest{Name: "Gold Necklace", Stock: 12, Category: "Necklaces"})
	f.mustCreate(t, &CreateProductRequest{Name: "Pearl Earrings", Stock: 40, Category: "Earrings", Description: "earring pair"})

	views, page, err := f.svc.List(context.Background(), "ring", "", 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Diamond Ring", views[0].Name)
	assert.Equal(t, models.StockLow, views[0].StockLevel)
	assert.Equal(t, "Pearl Earrings", views[1].Name)
	assert.Equal(t, models.StockHigh, views[1].StockLevel)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductUpdatePartial(t *testing.T) {
	f := newProductFixture(t)
	p := f.mustCreate(t, &CreateProductRequest{
		Name:        "Silver Bracelet",
		Price:       decimal.RequireFromString("89.50"),
		Stock:       27,
		Category:    "Bracelets",
		Description: "Sterling silver",
	})

	newStock := 4
	updated, err := f.svc.Update(context.Background(), p.ID, &UpdateProductRequest{Stock: &newStock})
	require.NoError(t, err)

	assert.Equal(t, "Silver Bracelet", updated.Name, "unset fields keep their value")
	assert.True(t, decimal.RequireFromString("89.50").Equal(updated.Price))
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, "Sterling silver", updated.Description)
}

func TestProductUpdateRejectsNegativePrice(t *testing.T) {
	f := newProductFixture(t)
	p := f.mustCreate(t, &CreateProductRequest{Name: "Item", Price: decimal.RequireFromString("10")})

	bad := decimal.RequireFromString("-10")
	_, err := f.svc.Update(context.Background(), p.ID, &UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, utils.ErrInvalidPrice)

	got, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10").Equal(got.Price), "failed update must leave the record untouched")
}

func TestProductUpdateMissing(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.svc.Update(context.Background(), 99, &UpdateProductRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestProductDeleteFlow(t *testing.T) {
	f := newProductFixture(t)
	p := f.mustCreate(t, &CreateProductRequest{Name: "Doomed"})

	token, err := f.svc.RequestDelete(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// A wrong token is rejected and the record survives.
	err = f.svc.ConfirmDelete(context.Background(), p.ID, "bogus")
	assert.ErrorIs(t, err, utils.ErrInvalidConfirm)
	_, err = f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.ConfirmDelete(context.Background(), p.ID, token))
	_, err = f.svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	// The token is single use.
	err = f.svc.ConfirmDelete(context.Background(), p.ID, token)
	assert.ErrorIs(t, err, utils.ErrInvalidConfirm)
}

func TestProductCreateQuotaEscalatesToStorageAlert(t *testing.T) {
	local, err := localstore.New(t.TempDir(), 16)
	require.NoError(t, err)
	notifier := &fakeNotifier{}
	svc := NewProductService(store.NewLocalStore(local), newFakeCache(), newFakeConfirmer(), notifier)

	_, err = svc.Create(context.Background(), &CreateProductRequest{
		Name:        "Too Big",
		Description: "this record does not fit in the quota",
	})
	assert.ErrorIs(t, err, utils.ErrStorageQuota)
	require.Len(t, notifier.alerts, 1)
	assert.Empty(t, notifier.changed)
}

func TestProductRequestDeleteMissing(t *testing.T) {
	f := newProductFixture(t)
	_, err := f.svc.RequestDelete(context.Background(), 42)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}
