// Package viewmodel hands out relation-resolved view objects by collection
// and id. Repositories register one builder per collection together with the
// collections that builder reads; built views are cached until a change to
// the record itself, or to anything it depends on, evicts them.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/plenum/internal/cachemanager"
	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/pubsub"
)

var (
	ErrDuplicateBuilder = errors.New("builder already registered for collection")
	ErrNoBuilder        = errors.New("no builder registered for collection")
	ErrNotFound         = errors.New("record not found")
	ErrWrongRecordType  = errors.New("builder rejected record type")
)

// ViewModel is a presentation-ready object wrapping one record.
type ViewModel interface {
	ID() int
	Collection() string
	VerboseName(plural bool) string
}

// Builder turns a raw record into its view. ok is false when the record is
// not of the type the builder expects.
type Builder func(rec models.Record) (view ViewModel, ok bool)

// Key addresses one cached view.
type Key string

// KeyOf returns the cache key for a record.
func KeyOf(collection string, id int) Key {
	return Key(collection + ":" + strconv.Itoa(id))
}

// Collection returns the collection part of the key.
func (k Key) Collection() string {
	c, _, _ := strings.Cut(string(k), ":")
	return c
}

type registration struct {
	build Builder
	deps  []string
}

// Store is the view-model registry.
type Store struct {
	records *datastore.Store

	mu            sync.RWMutex
	registrations map[string]registration

	cache  *cachemanager.InMemoryCacheManager[Key, ViewModel]
	reader *cachemanager.ReadThroughCache[Key, ViewModel]
}

type options struct {
	ttl       time.Duration
	cleanup   time.Duration
	skipCache bool
}

// Option configures a Store.
type Option func(*options)

// WithCacheTTL sets how long built views are kept.
func WithCacheTTL(ttl, cleanup time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
		o.cleanup = cleanup
	}
}

// WithoutCache rebuilds every view on every lookup.
func WithoutCache() Option {
	return func(o *options) { o.skipCache = true }
}

// New creates a registry reading records from records. Every change to
// records evicts the affected views before the mutating call returns.
func New(records *datastore.Store, opts ...Option) *Store {
	o := options{ttl: cachemanager.DefaultExpiration, cleanup: cachemanager.DefaultCleanupInterval}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		records:       records,
		registrations: make(map[string]registration),
		cache:         cachemanager.NewInMemoryCacheManager[Key, ViewModel]("viewmodels", o.ttl, o.cleanup),
	}
	s.reader = cachemanager.NewReadThroughCache[Key, ViewModel](s.cache, s.load,
		cachemanager.WithTTL(o.ttl), cachemanager.Bypass(o.skipCache))
	records.OnChange(s.Invalidate)
	return s
}

// Register installs the builder for collection. deps lists the collections
// the builder resolves relations from.
func (s *Store) Register(collection string, deps []string, build Builder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registrations[collection]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBuilder, collection)
	}
	s.registrations[collection] = registration{build: build, deps: append([]string(nil), deps...)}
	log.Debug(log.CatViewModel, "builder registered", "collection", collection, "deps", strings.Join(deps, ","))
	return nil
}

// Registered reports whether a builder exists for collection.
func (s *Store) Registered(collection string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registrations[collection]
	return ok
}

// Dependencies returns the collections the builder for collection declared.
func (s *Store) Dependencies(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.registrations[collection].deps...)
}

// Get returns the view for one record.
func (s *Store) Get(collection string, id int) (ViewModel, bool) {
	view, err := s.reader.Get(context.Background(), KeyOf(collection, id))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.ErrorErr(log.CatViewModel, "view lookup failed", err, "collection", collection, "id", id)
		}
		return nil, false
	}
	return view, true
}

// GetMany returns views for ids in order. Ids that cannot be resolved are
// skipped.
func (s *Store) GetMany(collection string, ids []int) []ViewModel {
	out := make([]ViewModel, 0, len(ids))
	for _, id := range ids {
		if view, ok := s.Get(collection, id); ok {
			out = append(out, view)
		}
	}
	return out
}

// GetAll returns views for every record of collection, ordered by id.
func (s *Store) GetAll(collection string) []ViewModel {
	records := s.records.GetAll(collection)
	ids := make([]int, len(records))
	for i, rec := range records {
		ids[i] = rec.GetID()
	}
	return s.GetMany(collection, ids)
}

func (s *Store) load(_ context.Context, key Key) (ViewModel, error) {
	collection := key.Collection()

	s.mu.RLock()
	reg, ok := s.registrations[collection]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoBuilder, collection)
	}

	_, rawID, _ := strings.Cut(string(key), ":")
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("bad key %q: %w", key, err)
	}

	rec, ok := s.records.Get(collection, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	view, ok := reg.build(rec)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWrongRecordType, key)
	}
	return view, nil
}

// Invalidate evicts views affected by one store event. The changed record is
// evicted, and so is every cached view of a collection that depends on the
// changed collection, directly or through other collections. Views still
// being built when Invalidate runs are not cached.
func (s *Store) Invalidate(kind pubsub.EventType, change datastore.Change) {
	ctx := context.Background()
	if kind == pubsub.ResetEvent {
		s.reader.Invalidate(func(cache cachemanager.CacheManager[Key, ViewModel]) {
			_ = cache.Flush(ctx)
		})
		log.Debug(log.CatViewModel, "cache flushed after reset")
		return
	}

	affected := s.dependents(change.Collection)
	removed := 0
	s.reader.Invalidate(func(cache cachemanager.CacheManager[Key, ViewModel]) {
		_ = cache.Delete(ctx, KeyOf(change.Collection, change.ID))
		if len(affected) > 0 {
			removed = cache.DeleteFunc(ctx, func(k Key) bool {
				_, hit := affected[k.Collection()]
				return hit
			})
		}
	})
	if removed > 0 {
		log.Debug(log.CatViewModel, "evicted dependent views",
			"collection", change.Collection, "id", change.ID, "removed", removed)
	}
}

// dependents returns every collection whose views may embed a view of
// collection.
func (s *Store) dependents(collection string) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{})
	queue := []string{collection}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for c, reg := range s.registrations {
			if _, seen := out[c]; seen {
				continue
			}
			for _, dep := range reg.deps {
				if dep == current {
					out[c] = struct{}{}
					queue = append(queue, c)
					break
				}
			}
		}
	}
	return out
}

// CachedCount returns the number of cached views.
func (s *Store) CachedCount() int {
	return s.cache.Len()
}

// CacheStats returns hit and miss counts of view lookups.
func (s *Store) CacheStats() cachemanager.Stats {
	return s.reader.Stats()
}

// Get returns the view for one record asserted to V.
func Get[V ViewModel](s *Store, collection string, id int) (V, bool) {
	var zero V
	view, ok := s.Get(collection, id)
	if !ok {
		return zero, false
	}
	typed, ok := view.(V)
	if !ok {
		log.Error(log.CatViewModel, "view has unexpected type", "collection", collection, "id", id)
		return zero, false
	}
	return typed, true
}

// GetMany returns the views for ids asserted to V, keeping id order and
// skipping ids that cannot be resolved.
func GetMany[V ViewModel](s *Store, collection string, ids []int) []V {
	out := make([]V, 0, len(ids))
	for _, view := range s.GetMany(collection, ids) {
		if typed, ok := view.(V); ok {
			out = append(out, typed)
		}
	}
	return out
}
