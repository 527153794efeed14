// Package app wires the record replica, view-model registry, repositories,
// search registry, snapshot and tracing into one application handle.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/plenum/internal/cachemanager"
	"github.com/zjrosen/plenum/internal/config"
	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/i18n"
	"github.com/zjrosen/plenum/internal/infrastructure/sqlite"
	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/paths"
	"github.com/zjrosen/plenum/internal/repository"
	"github.com/zjrosen/plenum/internal/search"
	"github.com/zjrosen/plenum/internal/tracing"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/watcher"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrNoSnapshot = errors.New("no snapshot configured")
)

type options struct {
	tracing  []tracing.Option
	inMemory bool
}

// Option configures New.
type Option func(*options)

// WithTracingOptions forwards options to the tracing provider.
func WithTracingOptions(opts ...tracing.Option) Option {
	return func(o *options) { o.tracing = append(o.tracing, opts...) }
}

// InMemory skips the snapshot database; the replica starts empty.
func InMemory() Option {
	return func(o *options) { o.inMemory = true }
}

// App is the application handle.
type App struct {
	cfg        config.Config
	translator i18n.Translator
	records    *datastore.Store
	views      *viewmodel.Store
	repos      *repository.Set
	registry   *search.Registry
	db         *sqlite.DB
	snapshot   *sqlite.SnapshotRepository
	tracer     *tracing.Provider

	closeOnce sync.Once
}

// New builds the application from cfg and loads the snapshot into the
// replica.
func New(cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.SnapshotPath = paths.ResolveSnapshot(cfg.SnapshotPath)

	translator, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("loading locale %q: %w", cfg.Locale, err)
	}

	records := datastore.New()
	views := viewmodel.New(records, viewModelOptions(cfg.Cache)...)

	repos, err := repository.NewSet(repository.Deps{
		Records:    records,
		ViewModels: views,
		Translator: translator,
		Writer:     datastore.NewLocalWriter(records),
	})
	if err != nil {
		records.Close()
		return nil, fmt.Errorf("creating repositories: %w", err)
	}

	registry := search.NewRegistry(records, search.WithTranslator(translator))
	for _, m := range cfg.Search.Enabled() {
		if err := registry.RegisterModel(m.Collection, searchable(m.Collection), m.DisplayOrder); err != nil {
			records.Close()
			return nil, fmt.Errorf("registering %s for search: %w", m.Collection, err)
		}
	}

	tracer, err := tracing.NewProvider(cfg.Tracing, o.tracing...)
	if err != nil {
		records.Close()
		return nil, fmt.Errorf("creating tracer: %w", err)
	}

	a := &App{
		cfg:        cfg,
		translator: translator,
		records:    records,
		views:      views,
		repos:      repos,
		registry:   registry,
		tracer:     tracer,
	}

	if !o.inMemory && cfg.SnapshotPath != "" {
		db, err := sqlite.NewDB(cfg.SnapshotPath)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		a.db = db
		a.snapshot = db.SnapshotRepository()
	}

	if a.snapshot != nil {
		if _, err := a.Reload(context.Background()); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return a, nil
}

func viewModelOptions(c config.CacheConfig) []viewmodel.Option {
	if c.Disabled {
		return []viewmodel.Option{viewmodel.WithoutCache()}
	}
	if c.Expiration > 0 {
		return []viewmodel.Option{viewmodel.WithCacheTTL(c.Expiration, c.CleanupInterval)}
	}
	return nil
}

// searchable returns a constructor for blank searchable records of
// collection. Unknown collections yield nil, which RegisterModel rejects.
func searchable(collection string) func() models.Searchable {
	return func() models.Searchable {
		rec, err := models.New(collection)
		if err != nil {
			return nil
		}
		s, _ := rec.(models.Searchable)
		return s
	}
}

// Repositories returns the per-collection repositories.
func (a *App) Repositories() *repository.Set { return a.repos }

// Registry returns the search registry.
func (a *App) Registry() *search.Registry { return a.registry }

// Records returns the record replica.
func (a *App) Records() *datastore.Store { return a.records }

// Translator returns the display-name translator.
func (a *App) Translator() i18n.Translator { return a.translator }

// Search runs query against the collections in in. An empty in searches
// every registered collection.
func (a *App) Search(ctx context.Context, query string, in []string) []search.Result {
	if len(in) == 0 {
		for _, m := range a.registry.RegisteredModels() {
			in = append(in, m.Collection)
		}
	}

	_, span := a.tracer.Tracer().Start(ctx, tracing.SpanSearch)
	defer span.End()

	results := a.registry.Search(query, in)

	matches := 0
	for _, r := range results {
		matches += len(r.Models)
	}
	span.SetAttributes(
		attribute.String(tracing.AttrSearchQuery, query),
		attribute.String(tracing.AttrSearchIn, strings.Join(in, ",")),
		attribute.Int(tracing.AttrSearchResults, len(results)),
		attribute.Int(tracing.AttrSearchMatches, matches),
	)
	return results
}

// View returns the view object of one record.
func (a *App) View(ctx context.Context, collection string, id int) (viewmodel.ViewModel, error) {
	_, span := a.tracer.Tracer().Start(ctx, tracing.SpanView)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrCollection, collection),
		attribute.Int(tracing.AttrRecordID, id),
	)

	view, ok := a.views.Get(collection, id)
	if !ok {
		err := fmt.Errorf("%w: %s/%d", ErrNotFound, collection, id)
		tracing.RecordError(span, err)
		return nil, err
	}
	return view, nil
}

// Reload replaces the replica with the snapshot contents and returns the
// number of records loaded.
func (a *App) Reload(ctx context.Context) (int, error) {
	if a.snapshot == nil {
		return 0, ErrNoSnapshot
	}
	ctx, span := a.tracer.Tracer().Start(ctx, tracing.SpanReload)
	defer span.End()

	recs, err := a.snapshot.Load(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return 0, fmt.Errorf("loading snapshot: %w", err)
	}
	a.records.Replace(recs...)
	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(recs)))
	log.Info(log.CatSnapshot, "replica reloaded", "records", len(recs))
	return len(recs), nil
}

// Import saves recs to the snapshot, when one is configured, and adds them
// to the replica.
func (a *App) Import(ctx context.Context, recs ...models.Record) error {
	ctx, span := a.tracer.Tracer().Start(ctx, tracing.SpanImport)
	defer span.End()
	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(recs)))

	if a.snapshot != nil {
		if err := a.snapshot.Save(ctx, recs...); err != nil {
			tracing.RecordError(span, err)
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}
	a.records.Add(recs...)
	return nil
}

// ImportFile imports a JSON bundle shaped {"collection": [records...]}.
func (a *App) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied import file
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	recs, err := models.DecodeBundle(data)
	if err != nil {
		return 0, err
	}
	if err := a.Import(ctx, recs...); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Remove deletes records from the snapshot, when one is configured, and from
// the replica. It returns how many snapshot rows were deleted.
func (a *App) Remove(ctx context.Context, collection string, ids ...int) (int64, error) {
	ctx, span := a.tracer.Tracer().Start(ctx, tracing.SpanRemove)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrCollection, collection),
		attribute.Int(tracing.AttrRecordCount, len(ids)),
	)

	var deleted int64
	if a.snapshot != nil {
		n, err := a.snapshot.Delete(ctx, collection, ids...)
		if err != nil {
			tracing.RecordError(span, err)
			return 0, fmt.Errorf("deleting from snapshot: %w", err)
		}
		deleted = n
	}
	a.records.Remove(collection, ids...)
	return deleted, nil
}

// Status describes the replica and its snapshot.
type Status struct {
	// SnapshotPath is empty when running without a snapshot.
	SnapshotPath string
	// SavedAt is zero when the snapshot was never written.
	SavedAt      time.Time
	Records      map[string]int
	Dependencies map[string][]string
	Cache        cachemanager.Stats
	CachedViews  int
}

// Status reports record counts per collection, repository dependencies,
// view cache counters and when the snapshot was last saved.
func (a *App) Status(ctx context.Context) (Status, error) {
	st := Status{
		Records:      make(map[string]int),
		Dependencies: a.repos.Describe(),
		Cache:        a.views.CacheStats(),
		CachedViews:  a.views.CachedCount(),
	}
	for _, c := range a.records.Collections() {
		st.Records[c] = a.records.Count(c)
	}
	if a.snapshot == nil {
		return st, nil
	}

	st.SnapshotPath = a.cfg.SnapshotPath
	at, ok, err := a.snapshot.SavedAt(ctx)
	if err != nil {
		return st, fmt.Errorf("reading snapshot metadata: %w", err)
	}
	if ok {
		st.SavedAt = at
	}
	return st, nil
}

// Persist writes the whole replica to the snapshot, including changes made
// through writable repositories.
func (a *App) Persist(ctx context.Context) error {
	if a.snapshot == nil {
		return ErrNoSnapshot
	}
	ctx, span := a.tracer.Tracer().Start(ctx, tracing.SpanSnapshot)
	defer span.End()

	recs := a.records.Records()
	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(recs)))
	if err := a.snapshot.Clear(ctx); err != nil {
		tracing.RecordError(span, err)
		return err
	}
	if err := a.snapshot.Save(ctx, recs...); err != nil {
		tracing.RecordError(span, err)
		return err
	}
	return nil
}

// Watch reloads the replica whenever the snapshot file changes, until ctx
// is cancelled. It returns immediately when auto reload is off or no
// snapshot is configured.
func (a *App) Watch(ctx context.Context) error {
	if !a.cfg.AutoReload || a.snapshot == nil {
		return nil
	}

	w, err := watcher.New(watcher.DefaultConfig(a.cfg.SnapshotPath))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			log.Debug(log.CatWatcher, "snapshot changed", "files", strings.Join(c.Files, ","))
			if _, err := a.Reload(ctx); err != nil {
				log.ErrorErr(log.CatWatcher, "reload after change failed", err)
			}
		}
	}
}

// Close releases the change subscribers, the snapshot and the tracer.
func (a *App) Close() error {
	var errs []error
	a.closeOnce.Do(func() {
		a.records.Close()
		if a.db != nil {
			errs = append(errs, a.db.Close())
		}
		errs = append(errs, a.tracer.Shutdown(context.Background()))
	})
	return errors.Join(errs...)
}
