package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mirastore/catalog_api/internal/catalog"
	"github.com/mirastore/catalog_api/internal/models"
	"github.com/mirastore/catalog_api/internal/store"
	"github.com/mirastore/catalog_api/pkg/catalogapi"
)

// relatedLimit caps the "related products" strip on the detail page.
const relatedLimit = 4

// StorefrontService serves the public product-display endpoints. When an
// upstream catalog API is configured it is the source of truth (with the
// client's short timeout and mock fallback); otherwise the local store tier
// serves directly. Responses are cached.
type StorefrontService struct {
	store    store.CatalogStore
	upstream *catalogapi.Client
	cache    CatalogCache
}

// NewStorefrontService constructs a StorefrontService.
func NewStorefrontService(st store.CatalogStore, upstream *catalogapi.Client, productCache CatalogCache) *StorefrontService {
	return &StorefrontService{
		store:    st,
		upstream: upstream,
		cache:    productCache,
	}
}

// ProductListing is a cached storefront listing page.
type ProductListing struct {
	Products []ProductView `json:"products"`
	Page     catalog.Page  `json:"page"`
}

// ProductDetail is the storefront product page payload.
type ProductDetail struct {
	ProductView
	Related []ProductView `json:"related"`
}

// ListProducts returns one filtered, paginated page of storefront products.
func (s *StorefrontService) ListProducts(ctx context.Context, search, category string, page int) (*ProductListing, error) {
	var cached ProductListing
	if s.cache.GetList(ctx, search, category, page, &cached) {
		return &cached, nil
	}

	var listing *ProductListing
	if s.upstream.Available() {
		all, err := s.upstream.GetProducts(ctx)
		if err != nil {
			return nil, err
		}
		filtered := catalog.Filter(all, search, category)
		resolved := catalog.Paginate(len(filtered), page, catalog.DefaultPageSize)
		listing = &ProductListing{
			Products: toViews(filtered[resolved.Start:resolved.End]),
			Page:     resolved,
		}
	} else {
		items, total, err := s.store.ListProducts(ctx, &store.ProductFilter{
			Search:   search,
			Category: category,
			Page:     page,
			Limit:    catalog.DefaultPageSize,
		})
		if err != nil {
			return nil, err
		}
		listing = &ProductListing{
			Products: toViews(items),
			Page:     catalog.Paginate(total, page, catalog.DefaultPageSize),
		}
	}

	if err := s.cache.SetList(ctx, search, category, page, listing); err != nil {
		log.Warn().Err(err).Msg("Failed to cache storefront listing")
	}
	return listing, nil
}

// GetProductDetail returns the product page payload: the product with its
// stock classification plus related products from the same category.
func (s *StorefrontService) GetProductDetail(ctx context.Context, id int) (*ProductDetail, error) {
	var cached ProductDetail
	if s.cache.GetDetail(ctx, id, &cached) {
		return &cached, nil
	}

	var product *models.Product
	var related []models.Product
	var err error

	if s.upstream.Available() {
		product, err = s.upstream.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		all, err := s.upstream.GetProducts(ctx)
		if err == nil {
			for _, p := range all {
				if p.Category == product.Category && p.ID != product.ID {
					related = append(related, p)
					if len(related) == relatedLimit {
						break
					}
				}
			}
		}
	} else {
		product, err = s.store.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		related, err = s.store.RelatedProducts(ctx, product.Category, product.ID, relatedLimit)
		if err != nil {
			log.Warn().Err(err).Int("id", id).Msg("Failed to load related products")
			related = nil
		}
	}

	detail := &ProductDetail{
		ProductView: ProductView{Product: *product, StockLevel: catalog.ClassifyStock(product.Stock)},
		Related:     toViews(related),
	}
	if err := s.cache.SetDetail(ctx, id, detail); err != nil {
		log.Warn().Err(err).Msg("Failed to cache storefront detail")
	}
	return detail, nil
}

// ListCategories returns the storefront category filter options.
func (s *StorefrontService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if s.upstream.Available() {
		return s.upstream.GetCategories(ctx)
	}
	return s.store.ListCategories(ctx)
}

func toViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, StockLevel: catalog.ClassifyStock(p.Stock)})
	}
	return views
}
