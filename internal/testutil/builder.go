// Package testutil provides fixtures for record store tests.
package testutil

import (
	"testing"

	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/models"
)

// Builder accumulates records and adds them to a store in one batch.
type Builder struct {
	t       *testing.T
	store   *datastore.Store
	records []models.Record
}

// NewBuilder creates a builder for the given store.
func NewBuilder(t *testing.T, store *datastore.Store) *Builder {
	t.Helper()
	return &Builder{t: t, store: store}
}

// NewStore returns an empty store closed when the test ends.
func NewStore(t *testing.T) *datastore.Store {
	t.Helper()
	s := datastore.New()
	t.Cleanup(s.Close)
	return s
}

// WithUser adds a participant.
func (b *Builder) WithUser(id int, first, last string, opts ...Option) *Builder {
	return b.with(&models.User{ID: id, FirstName: first, LastName: last, IsActive: true}, opts)
}

// WithTag adds a tag.
func (b *Builder) WithTag(id int, name string) *Builder {
	return b.with(&models.Tag{ID: id, Name: name}, nil)
}

// WithItem adds an agenda item.
func (b *Builder) WithItem(id int, title string, opts ...Option) *Builder {
	return b.with(&models.Item{ID: id, Title: title, Type: models.ItemAgenda}, opts)
}

// WithAssignment adds an election.
func (b *Builder) WithAssignment(id int, title string, opts ...Option) *Builder {
	return b.with(&models.Assignment{ID: id, Title: title, OpenPosts: 1}, opts)
}

// WithCategory adds a motion category.
func (b *Builder) WithCategory(id int, name, prefix string) *Builder {
	return b.with(&models.Category{ID: id, Name: name, Prefix: prefix}, nil)
}

// WithMotion adds a motion.
func (b *Builder) WithMotion(id int, identifier, title string, opts ...Option) *Builder {
	return b.with(&models.Motion{ID: id, Identifier: identifier, Title: title}, opts)
}

func (b *Builder) with(rec models.Record, opts []Option) *Builder {
	for _, opt := range opts {
		opt(rec)
	}
	b.records = append(b.records, rec)
	return b
}

// Records returns the accumulated records without adding them.
func (b *Builder) Records() []models.Record {
	return append([]models.Record(nil), b.records...)
}

// Build adds all accumulated records to the store.
func (b *Builder) Build() *datastore.Store {
	b.t.Helper()
	b.store.Add(b.records...)
	return b.store
}
