package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mirastore/catalog_api/internal/cache"
	"github.com/mirastore/catalog_api/internal/catalog"
	"github.com/mirastore/catalog_api/internal/imaging"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/sse"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/internal/utils"
)

// ProductService handles admin product CRUD operations.
type ProductService struct {
	store    store.CatalogStore
	cache    CatalogCache
	pending  DeleteConfirmer
	notifier sse.CatalogNotifier
}

// NewProductService constructs a ProductService.
func NewProductService(st store.CatalogStore, productCache CatalogCache, pending DeleteConfirmer, notifier sse.CatalogNotifier) *ProductService {
	return &ProductService{
		store:    st,
		cache:    productCache,
		pending:  pending,
		notifier: notifier,
	}
}

// ProductView is a product plus its derived stock classification.
type ProductView struct {
	models.Product
	StockLevel models.StockLevel `json:"stockLevel"`
}

// CreateProductRequest represents the request to create a new product.
// Price accepts a JSON number or numeric string; Stock must be an integer.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	ImageData   string          `json:"imageData"` // base64 file contents, run through the ingestion pipeline
	ImageMime   string          `json:"imageMime"`
}

// UpdateProductRequest represents the request to update a product. Nil or
// empty fields keep their current value.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Image       *string          `json:"image"`
	ImageData   string           `json:"imageData"`
	ImageMime   string           `json:"imageMime"`
}

// List returns one page of products matching the search term and category
// filter, each with its stock classification, plus the resolved page.
func (s *ProductService) List(ctx context.Context, search, category string, page int) ([]ProductView, catalog.Page, error) {
	items, total, err := s.store.ListProducts(ctx, &store.ProductFilter{
		Search:   search,
		Category: category,
		Page:     page,
		Limit:    catalog.DefaultPageSize,
	})
	if err != nil {
		return nil, catalog.Page{}, err
	}
	resolved := catalog.Paginate(total, page, catalog.DefaultPageSize)

	views := make([]ProductView, 0, len(items))
	for _, p := range items {
		views = append(views, ProductView{Product: p, StockLevel: catalog.ClassifyStock(p.Stock)})
	}
	return views, resolved, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id int) (*ProductView, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: *p, StockLevel: catalog.ClassifyStock(p.Stock)}, nil
}

// Create validates and persists a new product. On success the catalog cache
// is invalidated and a notification is broadcast; on failure prior state is
// untouched.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, utils.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, utils.ErrInvalidStock
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Description: req.Description,
		Image:       resolveImage(req.Image, req.ImageData, req.ImageMime),
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		s.writeFailed(cache.KindProduct, "create", err)
		return nil, err
	}

	s.afterWrite(ctx, cache.KindProduct, product.ID, "created", fmt.Sprintf("Product %q created", product.Name))
	return product, nil
}

// Update applies a partial update to a product.
func (s *ProductService) Update(ctx context.Context, id int, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, utils.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, utils.ErrInvalidStock
		}
		product.Stock = *req.Stock
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if img := resolveImage("", req.ImageData, req.ImageMime); img != "" {
		product.Image = img
	} else if req.Image != nil {
		product.Image = *req.Image
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		s.writeFailed(cache.KindProduct, "update", err)
		return nil, err
	}

	s.afterWrite(ctx, cache.KindProduct, product.ID, "updated", fmt.Sprintf("Product %q updated", product.Name))
	return product, nil
}

// RequestDelete records a pending delete selection for the product and
// returns the confirmation token the caller must echo back.
func (s *ProductService) RequestDelete(ctx context.Context, id int) (string, error) {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return "", err
	}
	token, err := utils.GenerateConfirmToken()
	if err != nil {
		return "", err
	}
	if err := s.pending.Put(ctx, cache.KindProduct, id, token); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmDelete consumes the pending selection and deletes the product.
func (s *ProductService) ConfirmDelete(ctx context.Context, id int, token string) error {
	if !s.pending.Consume(ctx, cache.KindProduct, id, token) {
		return utils.ErrInvalidConfirm
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		s.writeFailed(cache.KindProduct, "delete", err)
		return err
	}
	s.afterWrite(ctx, cache.KindProduct, id, "deleted", fmt.Sprintf("Product %d deleted", id))
	return nil
}

// afterWrite invalidates cached catalog payloads and broadcasts the change.
func (s *ProductService) afterWrite(ctx context.Context, kind string, id int, action, message string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
	s.notifier.NotifyChanged(kind, id, action, message)
}

// writeFailed emits the failure notification; quota exhaustion in the local
// tier is escalated to a blocking storage alert.
func (s *ProductService) writeFailed(kind, action string, err error) {
	if errors.Is(err, utils.ErrStorageQuota) {
		s.notifier.NotifyStorageAlert("Local storage is full: the " + action + " was abandoned after space reclaim failed")
		return
	}
	s.notifier.NotifyError(kind, "Failed to "+action+" "+kind)
}

// resolveImage runs uploaded file contents through the ingestion pipeline,
// or passes a pre-encoded image reference straight through. An undecodable
// upload means "no image".
func resolveImage(image, imageData, imageMime string) string {
	if imageData != "" {
		raw, err := base64.StdEncoding.DecodeString(imageData)
		if err != nil {
			log.Warn().Err(err).Msg("Invalid base64 image upload, storing without image")
			return ""
		}
		return imaging.Ingest(raw, imageMime)
	}
	return image
}
