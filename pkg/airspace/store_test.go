package airspace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	opts := DefaultStoreOptions()
	opts.Load = serialOptions()
	opts.Logger = zap.NewNop()

	s, err := NewStore(opts)
	require.NoError(t, err)
	return s
}

func TestNewStore(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, uint64(0), s.Generation())
	assert.Equal(t, 0, s.Catalog().Len())
	assert.Empty(t, s.Warnings())
	assert.Equal(t, 0, s.Select(FilterRule{Classes: AllClasses(), Window: Everything()}, DefaultLabelOptions()).Len())

	opts := DefaultStoreOptions()
	opts.Load.Workers = -1
	_, err := NewStore(opts)
	assert.Error(t, err)
}

func TestStoreReload(t *testing.T) {
	s := newTestStore(t)

	warnings, err := s.Reload(ukSources())
	require.NoError(t, err)
	assert.Equal(t, []WarningKind{WarningCatalogConflict}, kinds(warnings))
	assert.Equal(t, uint64(1), s.Generation())
	assert.Equal(t, 5, s.Catalog().Len())
	assert.Equal(t, warnings, s.Warnings())

	first := s.Catalog()

	_, err = s.Reload(ukSources())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Generation())
	assert.NotSame(t, first, s.Catalog())
	assert.True(t, first.Equal(s.Catalog()))
}

func TestStoreReloadNoSources(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Reload(ukSources())
	require.NoError(t, err)
	before := s.Catalog()

	_, err = s.Reload(nil)
	assert.Error(t, err)
	assert.Equal(t, uint64(1), s.Generation())
	assert.Same(t, before, s.Catalog())
}

func TestStoreSelectCache(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Reload(ukSources())
	require.NoError(t, err)

	opts := DefaultLabelOptions()
	a := s.Select(FilterRule{Classes: []Class{ClassA, ClassD}, Window: Everything()}, opts)
	b := s.Select(FilterRule{Classes: []Class{ClassD, ClassA}, Window: Everything()}, opts)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 1, s.cache.Len())

	s.Select(FilterRule{Classes: []Class{ClassA, ClassD}, Window: Everything()}, LabelOptions{Radio: true})
	assert.Equal(t, 2, s.cache.Len())

	_, err = s.Reload(ukSources()[:1])
	require.NoError(t, err)
	c := s.Select(FilterRule{Classes: []Class{ClassA, ClassD}, Window: Everything()}, opts)
	assert.Equal(t, 3, s.cache.Len())
	assert.Equal(t, 3, c.Len())
	assert.False(t, a.Equal(c))
}

func TestStoreSelectCacheSeparatesNameLists(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Reload(ukSources())
	require.NoError(t, err)

	opts := DefaultLabelOptions()
	joined := FilterRule{Classes: AllClasses(), Window: Everything(), Excluded: []string{"LONDON CTR,D123"}}
	split := FilterRule{Classes: AllClasses(), Window: Everything(), Excluded: []string{"LONDON CTR", "D123"}}

	a := s.Select(joined, opts)
	b := s.Select(split, opts)
	assert.Equal(t, 2, s.cache.Len())
	assert.Len(t, a.Visible(), 5)
	assert.True(t, b.Equal(SelectWithOptions(s.Catalog(), split, opts)))
	assert.Equal(t, []string{"EGR101", "SOLENT CTA", "BIGGIN HILL ATZ"}, names(b.Visible()))

	hidden := s.Select(FilterRule{Classes: AllClasses(), Window: Everything(), Hidden: []string{"ATZ,CTR"}}, opts)
	assert.Len(t, hidden.Visible(), 5)
}

func TestStoreWithoutCache(t *testing.T) {
	opts := DefaultStoreOptions()
	opts.Load = serialOptions()
	opts.CacheSize = 0
	opts.Logger = zap.NewNop()

	s, err := NewStore(opts)
	require.NoError(t, err)
	assert.Nil(t, s.cache)

	_, err = s.Reload(ukSources())
	require.NoError(t, err)
	rule := FilterRule{Classes: AllClasses(), Window: Everything()}
	assert.True(t, s.Select(rule, DefaultLabelOptions()).Equal(Select(s.Catalog(), rule)))
}

func TestStoreCompose(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Reload(ukSources())
	require.NoError(t, err)

	set, warnings := s.Compose(
		FilterRule{Classes: []Class{ClassA}, Window: Everything()},
		DefaultLabelOptions(),
		overlaySources(),
		ComposeOptions{Enabled: []string{"LOA"}},
	)
	assert.Equal(t, []string{"LONDON CTR", "DANGER ARC", "CTR STUB", "LOA NORTH"}, drawableNames(set))
	assert.Len(t, warnings, 1)
}

// TestStoreConcurrentReaders selects continuously while another goroutine
// swaps between two catalogs; every reader sees one whole catalog.
func TestStoreConcurrentReaders(t *testing.T) {
	s := newTestStore(t)
	full := ukSources()
	partial := ukSources()[:1]
	_, err := s.Reload(full)
	require.NoError(t, err)

	rule := FilterRule{Classes: AllClasses(), Window: Everything()}
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				n := s.Select(rule, DefaultLabelOptions()).Len()
				if n != 3 && n != 5 {
					t.Errorf("reader saw %d entries", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		src := full
		if i%2 == 0 {
			src = partial
		}
		_, err := s.Reload(src)
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()

	assert.Equal(t, uint64(51), s.Generation())
	assert.Equal(t, 5, s.Catalog().Len())
}
