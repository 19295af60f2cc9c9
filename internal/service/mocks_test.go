package service

import (
	"context"
	"fmt"
	"sync"
)

// fakeCache is an in-memory CatalogCache recording invalidations.
type fakeCache struct {
	mu          sync.Mutex
	lists       map[string]interface{}
	details     map[int]interface{}
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		lists:   make(map[string]interface{}),
		details: make(map[int]interface{}),
	}
}

func (c *fakeCache) GetList(_ context.Context, search, category string, page int, dst interface{}) bool {
	return false
}

func (c *fakeCache) SetList(_ context.Context, search, category string, page int, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[search+"|"+category] = value
	return nil
}

func (c *fakeCache) GetDetail(_ context.Context, id int, dst interface{}) bool {
	return false
}

func (c *fakeCache) SetDetail(_ context.Context, id int, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[id] = value
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

// fakeConfirmer is an in-memory DeleteConfirmer.
type fakeConfirmer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeConfirmer() *fakeConfirmer {
	return &fakeConfirmer{tokens: make(map[string]string)}
}

func (f *fakeConfirmer) key(kind string, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

func (f *fakeConfirmer) Put(_ context.Context, kind string, id int, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[f.key(kind, id)] = token
	return nil
}

func (f *fakeConfirmer) Consume(_ context.Context, kind string, id int, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.key(kind, id)
	if f.tokens[key] != token || token == "" {
		return false
	}
	delete(f.tokens, key)
	return true
}

func (f *fakeConfirmer) Clear(_ context.Context, kind string, id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, f.key(kind, id))
}

// fakeNotifier records broadcast notifications.
type fakeNotifier struct {
	mu      sync.Mutex
	changed []string
	errors  []string
	alerts  []string
}

func (n *fakeNotifier) NotifyChanged(kind string, recordID int, action, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, kind+":"+action)
}

func (n *fakeNotifier) NotifyError(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, kind+":"+message)
}

func (n *fakeNotifier) NotifyStorageAlert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}
