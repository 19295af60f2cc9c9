package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirastore/catalog_api/internal/cache"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/sse"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/internal/utils"
)

// CategoryService handles admin category CRUD operations.
type CategoryService struct {
	store    store.CatalogStore
	cache    CatalogCache
	pending  DeleteConfirmer
	notifier sse.CatalogNotifier
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(st store.CatalogStore, productCache CatalogCache, pending DeleteConfirmer, notifier sse.CatalogNotifier) *CategoryService {
	return &CategoryService{
		store:    st,
		cache:    productCache,
		pending:  pending,
		notifier: notifier,
	}
}

// CategoryRequest represents create and update payloads for a category.
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// Get returns a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// Create persists a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if taken, err := s.nameTaken(ctx, req.Name, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, utils.ErrDuplicateName
	}

	category := &models.Category{Name: req.Name, Image: req.Image}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		s.notifyFailure("create", err)
		return nil, err
	}
	s.afterWrite(ctx, category.ID, "created", fmt.Sprintf("Category %q created", category.Name))
	return category, nil
}

// Update applies an update to a category.
func (s *CategoryService) Update(ctx context.Context, id int, req *CategoryRequest) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if taken, err := s.nameTaken(ctx, req.Name, id); err != nil {
		return nil, err
	} else if taken {
		return nil, utils.ErrDuplicateName
	}
	category.Name = req.Name
	if req.Image != "" {
		category.Image = req.Image
	}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		s.notifyFailure("update", err)
		return nil, err
	}
	s.afterWrite(ctx, category.ID, "updated", fmt.Sprintf("Category %q updated", category.Name))
	return category, nil
}

// RequestDelete records a pending delete selection for the category.
func (s *CategoryService) RequestDelete(ctx context.Context, id int) (string, error) {
	if _, err := s.store.GetCategory(ctx, id); err != nil {
		return "", err
	}
	token, err := utils.GenerateConfirmToken()
	if err != nil {
		return "", err
	}
	if err := s.pending.Put(ctx, cache.KindCategory, id, token); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmDelete consumes the pending selection and deletes the category.
// Products referencing it are untouched: the dangling reference is
// tolerated.
func (s *CategoryService) ConfirmDelete(ctx context.Context, id int, token string) error {
	if !s.pending.Consume(ctx, cache.KindCategory, id, token) {
		return utils.ErrInvalidConfirm
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		s.notifyFailure("delete", err)
		return err
	}
	s.afterWrite(ctx, id, "deleted", fmt.Sprintf("Category %d deleted", id))
	return nil
}

func (s *CategoryService) nameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *CategoryService) afterWrite(ctx context.Context, id int, action, message string) {
	_ = s.cache.Invalidate(ctx)
	s.notifier.NotifyChanged(cache.KindCategory, id, action, message)
}

func (s *CategoryService) notifyFailure(action string, err error) {
	if errors.Is(err, utils.ErrStorageQuota) {
		s.notifier.NotifyStorageAlert("Local storage is full: the " + action + " was abandoned after space reclaim failed")
		return
	}
	s.notifier.NotifyError(cache.KindCategory, "Failed to "+action+" category")
}
