// Package repository builds view objects from records and is the single entry
// point for writes to a collection.
//
// Every repository embeds Base, which registers the repository's
// CreateViewModel with the view-model registry along with the collections it
// resolves relations from. Repositories created without a Writer are
// read-only: Create, Update and Delete return ErrNotSupported and touch
// nothing.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/i18n"
	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/views"
)

var (
	// ErrNotSupported is returned by write operations of read-only
	// repositories. It does not mean the write failed remotely.
	ErrNotSupported = errors.New("operation not supported for this collection")
	ErrNilView      = errors.New("view is nil")
)

// Writer persists record changes. The datastore LocalWriter applies them to
// the local replica; a network client would send them to the server.
type Writer interface {
	Create(ctx context.Context, rec models.Record) (models.Identifiable, error)
	Update(ctx context.Context, collection string, id int, patch map[string]any) error
	Delete(ctx context.Context, collection string, id int) error
}

var _ Writer = (*datastore.LocalWriter)(nil)

// Deps are the collaborators shared by all repositories.
type Deps struct {
	Records    *datastore.Store
	ViewModels *viewmodel.Store
	Translator i18n.Translator
	// Writer is optional; without it every repository is read-only.
	Writer Writer
}

// Base implements the collection-independent part of a repository.
type Base[M models.Record, V viewmodel.ViewModel] struct {
	records      *datastore.Store
	viewModels   *viewmodel.Store
	translator   i18n.Translator
	writer       Writer
	collection   string
	dependencies []string
}

func newBase[M models.Record, V viewmodel.ViewModel](
	d Deps,
	collection string,
	dependencies []string,
	writable bool,
	build func(M) V,
) (*Base[M, V], error) {
	translator := d.Translator
	if translator == nil {
		translator = i18n.Identity
	}
	b := &Base[M, V]{
		records:      d.Records,
		viewModels:   d.ViewModels,
		translator:   translator,
		collection:   collection,
		dependencies: dependencies,
	}
	if writable {
		b.writer = d.Writer
	}

	err := d.ViewModels.Register(collection, dependencies, func(rec models.Record) (viewmodel.ViewModel, bool) {
		m, ok := rec.(M)
		if !ok {
			return nil, false
		}
		return build(m), true
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Collection returns the collection this repository serves.
func (b *Base[M, V]) Collection() string { return b.collection }

// Dependencies returns the collections CreateViewModel resolves relations
// from.
func (b *Base[M, V]) Dependencies() []string {
	return append([]string(nil), b.dependencies...)
}

// ReadOnly reports whether writes are rejected with ErrNotSupported.
func (b *Base[M, V]) ReadOnly() bool { return b.writer == nil }

// ViewModel returns the view for id.
func (b *Base[M, V]) ViewModel(id int) (V, bool) {
	return viewmodel.Get[V](b.viewModels, b.collection, id)
}

// ViewModels returns the views of every record, ordered by id.
func (b *Base[M, V]) ViewModels() []V {
	records := b.records.GetAll(b.collection)
	ids := make([]int, len(records))
	for i, rec := range records {
		ids[i] = rec.GetID()
	}
	return viewmodel.GetMany[V](b.viewModels, b.collection, ids)
}

// Create persists a new record and returns its assigned id.
func (b *Base[M, V]) Create(ctx context.Context, rec M) (models.Identifiable, error) {
	if b.writer == nil {
		return nil, ErrNotSupported
	}
	id, err := b.writer.Create(ctx, rec)
	if err != nil {
		log.ErrorErr(log.CatRepo, "create failed", err, "collection", b.collection)
		return nil, fmt.Errorf("create %s: %w", b.collection, err)
	}
	return id, nil
}

// Update applies patch, keyed by json field names, to the record behind view.
func (b *Base[M, V]) Update(ctx context.Context, patch map[string]any, view V) error {
	if b.writer == nil {
		return ErrNotSupported
	}
	if any(view) == nil {
		return ErrNilView
	}
	if err := b.writer.Update(ctx, b.collection, view.ID(), patch); err != nil {
		log.ErrorErr(log.CatRepo, "update failed", err, "collection", b.collection, "id", view.ID())
		return fmt.Errorf("update %s/%d: %w", b.collection, view.ID(), err)
	}
	return nil
}

// Delete removes the record behind view.
func (b *Base[M, V]) Delete(ctx context.Context, view V) error {
	if b.writer == nil {
		return ErrNotSupported
	}
	if any(view) == nil {
		return ErrNilView
	}
	if err := b.writer.Delete(ctx, b.collection, view.ID()); err != nil {
		log.ErrorErr(log.CatRepo, "delete failed", err, "collection", b.collection, "id", view.ID())
		return fmt.Errorf("delete %s/%d: %w", b.collection, view.ID(), err)
	}
	return nil
}

// names returns a translated singular/plural name strategy.
func (b *Base[M, V]) names(singular, plural string) views.NameFunc {
	return i18n.Plural(b.translator, singular, plural)
}
