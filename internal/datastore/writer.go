package datastore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrImmutableID  = errors.New("record id cannot be changed")
	ErrInvalidPatch = errors.New("invalid patch")
	ErrNilRecord    = errors.New("nil record")
)

// LocalWriter applies writes directly to a Store. It stands in for the
// server round trip when the client runs against a local snapshot.
type LocalWriter struct {
	// mu serializes read-modify-write sequences so concurrent creates get
	// distinct ids and concurrent updates do not lose each other's fields.
	mu    sync.Mutex
	store *Store
}

// NewLocalWriter creates a writer over store.
func NewLocalWriter(store *Store) *LocalWriter {
	return &LocalWriter{store: store}
}

// Create assigns the next free id in the record's collection and stores it.
// The passed record is not modified.
func (w *LocalWriter) Create(ctx context.Context, rec models.Record) (models.Identifiable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rec == nil {
		return nil, ErrNilRecord
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.store.MaxID(rec.Collection()) + 1
	copied, err := withID(rec, id)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", rec.Collection(), err)
	}
	stored, err := models.Clone(copied)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", rec.Collection(), err)
	}

	w.store.Add(stored)
	log.Info(log.CatRepo, "record created", "collection", rec.Collection(), "id", id)
	return models.ID(id), nil
}

// Update merges patch into a copy of the stored record using the record's
// json field names, then stores the copy.
func (w *LocalWriter) Update(ctx context.Context, collection string, id int, patch map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := patch["id"]; ok {
		return ErrImmutableID
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	current, ok := w.store.Get(collection, id)
	if !ok {
		return fmt.Errorf("update %s/%d: %w", collection, id, ErrNotFound)
	}
	updated, err := models.Clone(current)
	if err != nil {
		return fmt.Errorf("update %s/%d: %w", collection, id, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           updated,
		ErrorUnused:      true,
		ZeroFields:       true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(patch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	w.store.Add(updated)
	log.Info(log.CatRepo, "record updated", "collection", collection, "id", id, "fields", len(patch))
	return nil
}

// Delete removes the record.
func (w *LocalWriter) Delete(ctx context.Context, collection string, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.store.Get(collection, id); !ok {
		return fmt.Errorf("delete %s/%d: %w", collection, id, ErrNotFound)
	}
	w.store.Remove(collection, id)
	log.Info(log.CatRepo, "record deleted", "collection", collection, "id", id)
	return nil
}

// withID returns a copy of rec carrying id.
func withID(rec models.Record, id int) (models.Record, error) {
	switch r := rec.(type) {
	case *models.Assignment:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	case *models.User:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	case *models.Item:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	case *models.Tag:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	case *models.Motion:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	case *models.Category:
		if r == nil {
			return nil, ErrNilRecord
		}
		c := *r
		c.ID = id
		return &c, nil
	}
	return nil, fmt.Errorf("%w: %s", models.ErrUnknownCollection, rec.Collection())
}
