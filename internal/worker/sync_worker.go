package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mirastore/catalog_api/internal/models"
)

// catalogSource is the upstream surface the worker reads from. It must
// report outages as errors; a source that substitutes fallback data would
// make the worker persist that data as if it came from the upstream.
type catalogSource interface {
	Available() bool
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// syncTarget persists the synced catalog.
type syncTarget interface {
	UpsertCategory(category *models.Category) error
	UpsertProduct(product *models.Product) error
	SyncProductSequence() error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SyncWorker periodically pulls the upstream catalog into the local database
// so the storefront can serve from it when the upstream is unreachable.
type SyncWorker struct {
	upstream catalogSource
	store    syncTarget
	cache    cacheInvalidator
	interval time.Duration
}

// NewSyncWorker constructs a SyncWorker.
func NewSyncWorker(
	upstream catalogSource,
	target syncTarget,
	productCache cacheInvalidator,
	interval time.Duration,
) *SyncWorker {
	return &SyncWorker{
		upstream: upstream,
		store:    target,
		cache:    productCache,
		interval: interval,
	}
}

// Start begins the periodic sync loop until context is canceled.
func (w *SyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog sync worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Sync once on startup so a fresh deployment has data immediately.
	w.run(ctx)

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog sync worker stopped")
			return
		}
	}
}

func (w *SyncWorker) run(ctx context.Context) {
	if !w.upstream.Available() {
		return
	}

	categories, err := w.upstream.GetCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch upstream categories")
		return
	}
	for i := range categories {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := w.store.UpsertCategory(&categories[i]); err != nil {
			log.Error().Err(err).Str("category", categories[i].Name).Msg("Failed to upsert category")
		}
	}

	products, err := w.upstream.GetProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch upstream products")
		return
	}
	for i := range products {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := w.store.UpsertProduct(&products[i]); err != nil {
			log.Error().Err(err).Int("product_id", products[i].ID).Msg("Failed to upsert product")
		}
	}

	// The upserts write upstream ids directly, which leaves the serial
	// sequence behind the table. Advance it so admin creates get fresh ids.
	if err := w.store.SyncProductSequence(); err != nil {
		log.Error().Err(err).Msg("Failed to advance product id sequence")
	}

	if err := w.cache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to invalidate catalog cache after sync")
	}

	log.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Msg("Catalog sync completed")
}
