// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package safe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAndBasicOperations(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)

	x0, x1 := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(x0, x1)
	ok, err := bdd.Evaluate(f, []bool{true, true, false})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUnwrapSharesState(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	raw := bdd.Unwrap()
	require.True(t, raw.Equal(raw.True(), bdd.True()))
}

// TestConcurrentWriters exercises the exclusive lock by hammering the BDD
// from many goroutines at once: every node built this way must stay valid,
// and the engine must never be left with a torn internal state.
func TestConcurrentWriters(t *testing.T) {
	bdd, err := New(10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	const workers = 20
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				a := bdd.Ithvar(i % 10)
				b := bdd.Ithvar((i + w) % 10)
				n := bdd.And(a, b)
				require.True(t, bdd.IsValid(n))
			}
		}(w)
	}
	wg.Wait()
}

// TestConcurrentReaders checks that many readers can safely call read-only
// methods in parallel once the shared diagram has been built.
func TestConcurrentReaders(t *testing.T) {
	bdd, err := New(4)
	require.NoError(t, err)
	f := bdd.Or(bdd.And(bdd.Ithvar(0), bdd.Ithvar(1)), bdd.Ithvar(2))

	var wg sync.WaitGroup
	const readers = 20
	wg.Add(readers)
	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			count, err := bdd.Satcount(f)
			require.NoError(t, err)
			require.True(t, count.Int64() > 0)
		}()
	}
	wg.Wait()
}
