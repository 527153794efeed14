// Package datastore holds the in-memory replica of server records, keyed by
// collection and id, and announces every change to subscribers.
package datastore

import (
	"context"
	"sort"
	"sync"

	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/pubsub"
)

// Change identifies one record that was created, updated or deleted.
// A ResetEvent carries a zero Change.
type Change struct {
	Collection string
	ID         int
}

// ChangeFunc observes one change synchronously.
type ChangeFunc func(kind pubsub.EventType, change Change)

// Store is the keyed record store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[int]models.Record
	broker      *pubsub.Broker[Change]

	hooksMu sync.RWMutex
	hooks   []ChangeFunc
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[int]models.Record),
		broker:      pubsub.NewBroker[Change](),
	}
}

// OnChange registers fn to run for every change before the mutating call
// returns. Unlike Subscribe, hooks never miss an event. fn must not mutate
// the store.
func (s *Store) OnChange(fn ChangeFunc) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify(kind pubsub.EventType, change Change) {
	s.hooksMu.RLock()
	hooks := s.hooks
	s.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(kind, change)
	}
	s.broker.Publish(kind, change)
}

// Add inserts or replaces records. Each record produces one change event.
func (s *Store) Add(records ...models.Record) {
	type pending struct {
		kind   pubsub.EventType
		change Change
	}
	events := make([]pending, 0, len(records))

	s.mu.Lock()
	for _, rec := range records {
		if rec == nil {
			continue
		}
		collection := rec.Collection()
		byID, ok := s.collections[collection]
		if !ok {
			byID = make(map[int]models.Record)
			s.collections[collection] = byID
		}
		kind := pubsub.CreatedEvent
		if _, exists := byID[rec.GetID()]; exists {
			kind = pubsub.UpdatedEvent
		}
		byID[rec.GetID()] = rec
		events = append(events, pending{kind, Change{collection, rec.GetID()}})
	}
	s.mu.Unlock()

	for _, e := range events {
		log.Debug(log.CatStore, "record stored", "collection", e.change.Collection, "id", e.change.ID, "event", e.kind)
		s.notify(e.kind, e.change)
	}
}

// Remove deletes records by id. Unknown ids are ignored.
func (s *Store) Remove(collection string, ids ...int) {
	var removed []int

	s.mu.Lock()
	byID := s.collections[collection]
	for _, id := range ids {
		if _, ok := byID[id]; ok {
			delete(byID, id)
			removed = append(removed, id)
		}
	}
	s.mu.Unlock()

	for _, id := range removed {
		log.Debug(log.CatStore, "record removed", "collection", collection, "id", id)
		s.notify(pubsub.DeletedEvent, Change{collection, id})
	}
}

// Replace swaps the whole content of the store for records and publishes a
// single reset event.
func (s *Store) Replace(records ...models.Record) {
	fresh := make(map[string]map[int]models.Record)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		byID, ok := fresh[rec.Collection()]
		if !ok {
			byID = make(map[int]models.Record)
			fresh[rec.Collection()] = byID
		}
		byID[rec.GetID()] = rec
	}

	s.mu.Lock()
	s.collections = fresh
	s.mu.Unlock()

	log.Info(log.CatStore, "store replaced", "records", len(records))
	s.notify(pubsub.ResetEvent, Change{})
}

// Clear removes every record.
func (s *Store) Clear() {
	s.Replace()
}

// Get returns one record.
func (s *Store) Get(collection string, id int) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	return rec, ok
}

// GetMany returns the records for ids in the order of ids. Ids that are not
// in the store are skipped.
func (s *Store) GetMany(collection string, ids []int) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.collections[collection]
	out := make([]models.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// GetAll returns every record of a collection ordered by id.
func (s *Store) GetAll(collection string) []models.Record {
	return s.Filter(collection, nil)
}

// Filter returns the records of collection accepted by pred, ordered by id.
// A nil pred accepts everything.
func (s *Store) Filter(collection string, pred func(models.Record) bool) []models.Record {
	s.mu.RLock()
	byID := s.collections[collection]
	out := make([]models.Record, 0, len(byID))
	for _, rec := range byID {
		if pred == nil || pred(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out
}

// Count returns the number of records in collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// MaxID returns the highest id in collection, or 0 when it is empty.
func (s *Store) MaxID(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest := 0
	for id := range s.collections[collection] {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// Collections returns the non-empty collections, sorted.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.collections))
	for c, byID := range s.collections {
		if len(byID) > 0 {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Records returns a copy of every record in the store, grouped by collection
// order and then by id.
func (s *Store) Records() []models.Record {
	var out []models.Record
	for _, c := range s.Collections() {
		out = append(out, s.GetAll(c)...)
	}
	return out
}

// Subscribe streams change events until ctx is cancelled. Delivery is best
// effort: a subscriber that falls behind loses events. Use OnChange for
// anything that must see every change.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// SubscriberCount returns the number of live change subscriptions.
func (s *Store) SubscriberCount() int {
	return s.broker.SubscriberCount()
}

// Close releases subscribers.
func (s *Store) Close() {
	s.broker.Close()
}

// Ensure Store satisfies the subscriber contract.
var _ pubsub.Subscriber[Change] = (*Store)(nil)

// GetAs returns one record asserted to M.
func GetAs[M models.Record](s *Store, collection string, id int) (M, bool) {
	var zero M
	rec, ok := s.Get(collection, id)
	if !ok {
		return zero, false
	}
	typed, ok := rec.(M)
	if !ok {
		log.Error(log.CatStore, "record has unexpected type", "collection", collection, "id", id)
		return zero, false
	}
	return typed, true
}
