/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package methodarea

import (
	"sync"
	"sync/atomic"
	"testing"

	"jvmcore/class"

	"github.com/stretchr/testify/require"
)

func TestLookupAbsentReturnsNil(t *testing.T) {
	s := New()
	require.Nil(t, s.Lookup("A"))
}

func TestInsertThenLookup(t *testing.T) {
	s := New()
	entry := &class.ClassEntry{Name: "A"}
	entry.State.AdvanceTo(class.LOADING)
	entry.State.AdvanceTo(class.LOADED)
	s.Insert("A", entry)

	got := s.Lookup("A")
	require.Same(t, entry, got)
	require.Equal(t, 1, s.Count())
}

func TestLoadOnceCollapsesConcurrentLoads(t *testing.T) {
	s := New()
	var loadCount int32

	var wg sync.WaitGroup
	results := make([]*class.ClassEntry, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			entry, err := s.LoadOnce("A", func() (*class.ClassEntry, error) {
				atomic.AddInt32(&loadCount, 1)
				e := &class.ClassEntry{Name: "A"}
				e.State.AdvanceTo(class.LOADING)
				e.State.AdvanceTo(class.LOADED)
				return e, nil
			})
			require.NoError(t, err)
			results[idx] = entry
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), loadCount)
	for _, r := range results {
		require.Same(t, results[0], r)
	}
}

func TestLoadOnceReturnsExistingWithoutReload(t *testing.T) {
	s := New()
	entry := &class.ClassEntry{Name: "A"}
	entry.State.AdvanceTo(class.LOADING)
	entry.State.AdvanceTo(class.LOADED)
	s.Insert("A", entry)

	calls := 0
	got, err := s.LoadOnce("A", func() (*class.ClassEntry, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	require.Same(t, entry, got)
	require.Equal(t, 0, calls)
}
