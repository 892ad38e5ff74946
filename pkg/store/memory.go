package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quantpane/quantpane/pkg/errors"
)

// MemoryStore is an in-memory Store for tests and local preview.
// All collections are safe for concurrent use.
type MemoryStore struct {
	pages    *memCollection[Page, *Page]
	charts   *memCollection[Chart, *Chart]
	partners *memCollection[Partner, *Partner]
	events   *memCollection[Event, *Event]
	syncJobs *memCollection[SyncJob, *SyncJob]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages:    newMemCollection[Page, *Page]("page", errors.ErrCodePageNotFound),
		charts:   newMemCollection[Chart, *Chart]("chart", errors.ErrCodeChartNotFound),
		partners: newMemCollection[Partner, *Partner]("partner", errors.ErrCodePartnerNotFound),
		events:   newMemCollection[Event, *Event]("event", errors.ErrCodeNotFound),
		syncJobs: newMemCollection[SyncJob, *SyncJob]("sync job", errors.ErrCodeNotFound),
	}
}

func (s *MemoryStore) Pages() Collection[Page]       { return s.pages }
func (s *MemoryStore) Charts() Collection[Chart]     { return s.charts }
func (s *MemoryStore) Partners() Collection[Partner] { return s.partners }
func (s *MemoryStore) Events() Collection[Event]     { return s.events }
func (s *MemoryStore) SyncJobs() Collection[SyncJob] { return s.syncJobs }

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// memCollection holds one entity kind keyed by ID.
type memCollection[T any, PT pentity[T]] struct {
	name     string
	notFound errors.Code

	mu    sync.RWMutex
	items map[string]T
}

func newMemCollection[T any, PT pentity[T]](name string, notFound errors.Code) *memCollection[T, PT] {
	return &memCollection[T, PT]{
		name:     name,
		notFound: notFound,
		items:    make(map[string]T),
	}
}

// Get returns a copy of the stored document.
func (c *memCollection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if err := errors.ValidateEntityID(id); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, errors.New(c.notFound, "%s %s not found", c.name, id)
	}
	return &item, nil
}

// List returns all documents ordered by ID.
func (c *memCollection[T, PT]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out, nil
}

// Put inserts or replaces a document, assigning an ID when missing.
func (c *memCollection[T, PT]) Put(ctx context.Context, item *T) error {
	p := PT(item)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	if err := errors.ValidateEntityID(p.GetID()); err != nil {
		return err
	}
	p.stamp(time.Now().UTC())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[p.GetID()] = *item
	return nil
}

// Delete removes a document by ID.
func (c *memCollection[T, PT]) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateEntityID(id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return errors.New(c.notFound, "%s %s not found", c.name, id)
	}
	delete(c.items, id)
	return nil
}
