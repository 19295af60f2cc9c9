package service

import "context"

// CatalogCache caches rendered storefront payloads, invalidated wholesale on
// any admin write. Satisfied by cache.ProductCache.
type CatalogCache interface {
	GetList(ctx context.Context, search, category string, page int, dst interface{}) bool
	SetList(ctx context.Context, search, category string, page int, value interface{}) error
	GetDetail(ctx context.Context, id int, dst interface{}) bool
	SetDetail(ctx context.Context, id int, value interface{}) error
	Invalidate(ctx context.Context) error
}

// DeleteConfirmer holds short-lived, single-use delete confirmation tokens.
// Satisfied by cache.PendingDeleteCache.
type DeleteConfirmer interface {
	Put(ctx context.Context, kind string, id int, token string) error
	Consume(ctx context.Context, kind string, id int, token string) bool
	Clear(ctx context.Context, kind string, id int)
}
