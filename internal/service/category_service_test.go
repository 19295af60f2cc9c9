package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirastore/catalog_api/internal/localstore"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/internal/utils"
)

func newCategoryService(t *testing.T) *CategoryService {
	t.Helper()
	local, err := localstore.New(t.TempDir(), 0)
	require.NoError(t, err)
	return NewCategoryService(store.NewLocalStore(local), newFakeCache(), newFakeConfirmer(), &fakeNotifier{})
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	svc := newCategoryService(t)

	_, err := svc.Create(context.Background(), &CategoryRequest{Name: "Rings"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &CategoryRequest{Name: "Rings"})
	assert.ErrorIs(t, err, utils.ErrDuplicateName)
}

func TestCategoryUpdateAllowsKeepingOwnName(t *testing.T) {
	svc := newCategoryService(t)

	created, err := svc.Create(context.Background(), &CategoryRequest{Name: "Rings"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &CategoryRequest{Name: "Necklaces"})
	require.NoError(t, err)

	// Renaming to itself is fine; renaming onto a sibling is not.
	_, err = svc.Update(context.Background(), created.ID, &CategoryRequest{Name: "Rings"})
	assert.NoError(t, err)
	_, err = svc.Update(context.Background(), created.ID, &CategoryRequest{Name: "Necklaces"})
	assert.ErrorIs(t, err, utils.ErrDuplicateName)
}

func TestCategoryDeleteFlow(t *testing.T) {
	svc := newCategoryService(t)
	created, err := svc.Create(context.Background(), &CategoryRequest{Name: "Bracelets"})
	require.NoError(t, err)

	token, err := svc.RequestDelete(context.Background(), created.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ConfirmDelete(context.Background(), created.ID, "wrong"), utils.ErrInvalidConfirm)
	require.NoError(t, svc.ConfirmDelete(context.Background(), created.ID, token))

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

// quotaWrapStore fails category writes with a wrapped quota error, the way
// a store layer that annotates its errors would.
type quotaWrapStore struct {
	store.CatalogStore
}

func (s quotaWrapStore) CreateCategory(ctx context.Context, _ *models.Category) error {
	return fmt.Errorf("save categories: %w", utils.ErrStorageQuota)
}

func TestCategoryCreateQuotaEscalatesToStorageAlert(t *testing.T) {
	local, err := localstore.New(t.TempDir(), 0)
	require.NoError(t, err)
	notifier := &fakeNotifier{}
	svc := NewCategoryService(quotaWrapStore{store.NewLocalStore(local)}, newFakeCache(), newFakeConfirmer(), notifier)

	_, err = svc.Create(context.Background(), &CategoryRequest{Name: "Rings"})
	assert.ErrorIs(t, err, utils.ErrStorageQuota)
	assert.Len(t, notifier.alerts, 1)
	assert.Empty(t, notifier.errors, "quota exhaustion escalates past the generic error toast")
	assert.Empty(t, notifier.changed)
}
