// Package search runs case-insensitive substring search over the record
// types registered with a Registry.
package search

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/zjrosen/plenum/internal/i18n"
	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
)

var (
	ErrDuplicateCollection = errors.New("collection already registered for search")
	ErrNilModel            = errors.New("model constructor returned nil")
)

// Records is the keyed record store searched by the registry.
type Records interface {
	Filter(collection string, pred func(models.Record) bool) []models.Record
}

// Model describes one searchable collection.
type Model struct {
	Collection          string
	VerboseNameSingular string
	VerboseNamePlural   string
	DisplayOrder        int
}

// Result holds the matches of one collection. VerboseName is singular when
// exactly one record matched and plural otherwise.
type Result struct {
	Collection  string
	VerboseName string
	Models      []models.Searchable
}

// capabilities is what the registry needs from a searchable type.
type capabilities struct {
	singular  string
	plural    string
	fragments func(models.Record) ([]string, bool)
}

type entry struct {
	collection string
	order      int
	caps       capabilities
}

// Registry is the catalog of searchable collections, kept sorted by display
// order. Collections with equal display order keep registration order.
type Registry struct {
	records    Records
	translator i18n.Translator

	mu      sync.RWMutex
	entries []entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithTranslator translates the verbose names reported by the registry.
func WithTranslator(tr i18n.Translator) Option {
	return func(r *Registry) {
		if tr != nil {
			r.translator = tr
		}
	}
}

// NewRegistry creates an empty registry searching records.
func NewRegistry(records Records, opts ...Option) *Registry {
	r := &Registry{
		records:    records,
		translator: i18n.Identity,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterModel adds collection to the catalog. newModel is called once to
// read the verbose names of the type.
func (r *Registry) RegisterModel(collection string, newModel func() models.Searchable, displayOrder int) error {
	sample := newModel()
	if sample == nil {
		return fmt.Errorf("%w: %s", ErrNilModel, collection)
	}

	e := entry{
		collection: collection,
		order:      displayOrder,
		caps: capabilities{
			singular: sample.VerboseName(false),
			plural:   sample.VerboseName(true),
			fragments: func(rec models.Record) ([]string, bool) {
				s, ok := rec.(models.Searchable)
				if !ok {
					return nil, false
				}
				return s.FormatForSearch(), true
			},
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.collection == collection {
			return fmt.Errorf("%w: %s", ErrDuplicateCollection, collection)
		}
	}
	r.entries = append(r.entries, e)
	slices.SortStableFunc(r.entries, func(a, b entry) int { return cmp.Compare(a.order, b.order) })

	log.Debug(log.CatSearch, "model registered", "collection", collection, "order", displayOrder)
	return nil
}

// RegisteredModels returns the catalog in display order.
func (r *Registry) RegisteredModels() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Model, len(r.entries))
	for i, e := range r.entries {
		out[i] = Model{
			Collection:          e.collection,
			VerboseNameSingular: r.translator.Translate(e.caps.singular),
			VerboseNamePlural:   r.translator.Translate(e.caps.plural),
			DisplayOrder:        e.order,
		}
	}
	return out
}

// Search returns one result per registered collection listed in in, in
// display order. A record matches when any of its search fragments contains
// query, ignoring case. Collections in in that were never registered are
// ignored.
func (r *Registry) Search(query string, in []string) []Result {
	if len(in) == 0 {
		return []Result{}
	}
	// Casers are stateful; one per call keeps Search safe for concurrent use.
	fold := cases.Fold()
	needle := fold.String(query)

	r.mu.RLock()
	entries := slices.Clone(r.entries)
	r.mu.RUnlock()

	results := make([]Result, 0, len(in))
	for _, e := range entries {
		if !slices.Contains(in, e.collection) {
			continue
		}

		matches := r.records.Filter(e.collection, func(rec models.Record) bool {
			fragments, ok := e.caps.fragments(rec)
			if !ok {
				return false
			}
			return slices.ContainsFunc(fragments, func(f string) bool {
				return strings.Contains(fold.String(f), needle)
			})
		})

		found := make([]models.Searchable, 0, len(matches))
		for _, m := range matches {
			found = append(found, m.(models.Searchable))
		}

		name := e.caps.plural
		if len(found) == 1 {
			name = e.caps.singular
		}
		results = append(results, Result{
			Collection:  e.collection,
			VerboseName: r.translator.Translate(name),
			Models:      found,
		})
	}

	log.Debug(log.CatSearch, "search", "query", query, "collections", strings.Join(in, ","), "results", len(results))
	return results
}
