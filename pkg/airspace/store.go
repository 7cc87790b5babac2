package airspace

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultSelectCacheSize is the default number of memoised selections.
const DefaultSelectCacheSize = 64

// Store holds the current catalog for a session and swaps in new ones.
//
// Reload builds the new catalog completely before publishing it with a
// single atomic store, so Select and Compose always see either the old or
// the new catalog, never a half-built one. Any number of goroutines may
// read while one reloads.
//
// Example:
//
//	store, err := airspace.NewStore(airspace.DefaultStoreOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	warnings, err := store.Reload(sources)
//	selection := store.Select(rule, airspace.DefaultLabelOptions())
type Store struct {
	current atomic.Pointer[snapshot]
	reload  sync.Mutex // serialises reloads; readers never take it

	opts   StoreOptions
	cache  *expirable.LRU[string, SelectionResult]
	logger *zap.Logger
}

// snapshot is one published catalog.
type snapshot struct {
	catalog    *Catalog
	generation uint64
	warnings   []Warning
}

// StoreOptions configures a Store.
type StoreOptions struct {
	// Load is passed to LoadCatalog on every reload.
	Load LoadOptions

	// CacheSize is the number of selections memoised. Zero or negative
	// disables the cache.
	CacheSize int

	// Logger receives reload events. Defaults to zap.L().
	Logger *zap.Logger
}

// DefaultStoreOptions returns store options with defaults.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Load:      DefaultLoadOptions(),
		CacheSize: DefaultSelectCacheSize,
	}
}

// NewStore returns a store holding an empty catalog at generation 0.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Load.Workers < 0 {
		return nil, eris.Errorf("store: negative worker count %d", opts.Load.Workers)
	}

	s := &Store{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = zap.L()
	}
	if opts.CacheSize > 0 {
		// No TTL: keys carry the generation, so entries for a replaced
		// catalog are simply never hit again and age out.
		s.cache = expirable.NewLRU[string, SelectionResult](opts.CacheSize, nil, 0)
	}

	s.current.Store(&snapshot{catalog: newCatalog(nil)})
	return s, nil
}

// Reload loads sources into a new catalog and publishes it. The returned
// warnings are those of the new load. An empty source list is an error and
// leaves the current catalog in place.
func (s *Store) Reload(sources []Source) ([]Warning, error) {
	if len(sources) == 0 {
		return nil, eris.New("store: reload with no sources")
	}

	s.reload.Lock()
	defer s.reload.Unlock()

	catalog, warnings := LoadCatalog(sources, s.opts.Load)

	prev := s.current.Load()
	next := &snapshot{
		catalog:    catalog,
		generation: prev.generation + 1,
		warnings:   warnings,
	}
	s.current.Store(next)

	s.logger.Info("airspace catalog reloaded",
		zap.Uint64("generation", next.generation),
		zap.Int("sources", len(sources)),
		zap.Int("volumes", catalog.Len()),
		zap.Int("warnings", len(warnings)),
		zap.Bool("unchanged", catalog.Equal(prev.catalog)),
	)
	for kind, n := range CountWarnings(warnings) {
		s.logger.Debug("load warnings", zap.Stringer("kind", kind), zap.Int("count", n))
	}

	return warnings, nil
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *Catalog {
	return s.current.Load().catalog
}

// Generation returns the number of successful reloads.
func (s *Store) Generation() uint64 {
	return s.current.Load().generation
}

// Warnings returns the warnings of the load that built the current
// catalog.
func (s *Store) Warnings() []Warning {
	w := s.current.Load().warnings
	out := make([]Warning, len(w))
	copy(out, w)
	return out
}

// Select runs SelectWithOptions against the current catalog, memoising the
// result per catalog generation, rule and options.
func (s *Store) Select(rule FilterRule, opts LabelOptions) SelectionResult {
	return s.selectIn(s.current.Load(), rule, opts)
}

// Compose selects and composes against one catalog snapshot, so a reload
// between the two steps cannot mix catalogs.
func (s *Store) Compose(rule FilterRule, labels LabelOptions, overlays []Source, opts ComposeOptions) (*DrawableSet, []Warning) {
	snap := s.current.Load()
	sel := s.selectIn(snap, rule, labels)
	return ComposeWithOptions(snap.catalog, sel, overlays, opts)
}

func (s *Store) selectIn(snap *snapshot, rule FilterRule, opts LabelOptions) SelectionResult {
	if s.cache == nil {
		return SelectWithOptions(snap.catalog, rule, opts)
	}

	key := selectKey(snap.generation, rule, opts)
	if sel, ok := s.cache.Get(key); ok {
		return sel
	}
	sel := SelectWithOptions(snap.catalog, rule, opts)
	s.cache.Add(key, sel)
	return sel
}

func selectKey(generation uint64, rule FilterRule, opts LabelOptions) string {
	return strconv.FormatUint(generation, 10) + "|" + rule.fingerprint() +
		"|w" + strconv.Itoa(opts.Width) +
		"|b" + strconv.Itoa(opts.Budget) +
		"|r" + strconv.FormatBool(opts.Radio)
}
