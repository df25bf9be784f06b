// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReferenceDiscipline builds a long chain of intermediates with
// UpdateWith, holds only the final reference, forces a GC, and checks the
// final node is still valid and correct.
func TestReferenceDiscipline(t *testing.T) {
	bdd, err := New(10, Nodesize(17), Cachesize(17))
	require.NoError(t, err)

	acc := bdd.Reference(bdd.True())
	for i := 0; i < 1000; i++ {
		v := bdd.Ithvar(i % 10)
		next := bdd.Xor(acc, v)
		bdd.UpdateWith(&acc, next)
	}

	// force a GC cycle directly, simulating table exhaustion
	bdd.gbc()

	require.True(t, bdd.IsValid(acc))
	// each variable is xored 100 times into True, so acc is True again
	ok, err := bdd.Evaluate(acc, make([]bool, 10))
	require.NoError(t, err)
	require.True(t, ok)
}

// TestGCPreservesSatcount builds a parity function over 10 variables with a
// deliberately tiny node table, forcing GC and resize mid-construction, and
// checks the satisfying-assignment count still comes out correct.
func TestGCPreservesSatcount(t *testing.T) {
	bdd, err := New(10, Nodesize(5), Cachesize(5), Maxnodeincrease(8))
	require.NoError(t, err)

	parity := bdd.Reference(bdd.False())
	for i := 0; i < 10; i++ {
		next := bdd.Xor(parity, bdd.Ithvar(i))
		bdd.Reference(next)
		bdd.Dereference(parity)
		parity = next
	}
	count, err := bdd.Satcount(parity)
	require.NoError(t, err)
	require.Equal(t, int64(512), count.Int64())
}

// TestInvariantsAfterGC walks the whole live node table after a forced GC
// and checks invariants I1 (low != high) and I3 (children strictly deeper).
func TestInvariantsAfterGC(t *testing.T) {
	bdd, err := New(6, Nodesize(11), Cachesize(11))
	require.NoError(t, err)

	f := bdd.Reference(bdd.True())
	for i := 0; i < 6; i++ {
		next := bdd.Consume(bdd.Or(bdd.And(f, bdd.Ithvar(i)), bdd.Not(bdd.Ithvar(i))))
		bdd.Reference(next)
		f = next
	}
	bdd.gbc()

	err = bdd.Allnodes(func(id, level, low, high int) error {
		if id < 2 {
			return nil
		}
		require.NotEqual(t, low, high)
		if low >= 2 {
			require.Greater(t, bdd.Variable(bdd.retnode(low)), level)
		}
		if high >= 2 {
			require.Greater(t, bdd.Variable(bdd.retnode(high)), level)
		}
		return nil
	})
	require.NoError(t, err)
}

// TestMakenodeHashConsing checks invariant I2: building the same triple
// twice always returns the same index.
func TestMakenodeHashConsing(t *testing.T) {
	bdd, err := New(4)
	require.NoError(t, err)
	a := bdd.And(bdd.Ithvar(0), bdd.Ithvar(1))
	b := bdd.And(bdd.Ithvar(0), bdd.Ithvar(1))
	require.Equal(t, *a, *b)
}

// TestSaturatedNodesSurviveGC checks that constants and variable literals
// report a sticky, saturated reference count and survive even an aggressive
// GC with nothing else externally referenced.
func TestSaturatedNodesSurviveGC(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	require.Equal(t, -1, bdd.ReferenceCount(bdd.True()))
	require.Equal(t, -1, bdd.ReferenceCount(bdd.Ithvar(0)))
	bdd.gbc()
	require.True(t, bdd.IsValid(bdd.Ithvar(0)))
	require.True(t, bdd.Equal(bdd.Ithvar(0), bdd.Ithvar(0)))
}
