// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIteratorCardinalityMatchesSatcount checks the enumeration law
// |Solutions(n)| == Satcount(n).
func TestIteratorCardinalityMatchesSatcount(t *testing.T) {
	bdd, err := New(4)
	require.NoError(t, err)
	x0, x1, x2, x3 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)
	f := bdd.Or(bdd.And(x0, x1), bdd.And(x2, bdd.Not(x3)))

	count, err := bdd.Satcount(f)
	require.NoError(t, err)

	it, err := bdd.Solutions(f)
	require.NoError(t, err)
	n := 0
	for it.Next() {
		n++
	}
	require.Equal(t, count.Int64(), int64(n))
}

// TestIteratorNoDuplicatesAndAllTrue checks the other two enumeration laws:
// every yielded assignment is distinct, and every assignment it yields
// really does satisfy n (and, by the cardinality check above holding
// elsewhere, every satisfying assignment is covered).
func TestIteratorNoDuplicatesAndAllTrue(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Or(bdd.And(x0, x1), x2)

	it, err := bdd.Solutions(f)
	require.NoError(t, err)

	seen := map[[3]bool]bool{}
	for it.Next() {
		a := it.Assignment()
		key := [3]bool{a[0], a[1], a[2]}
		require.False(t, seen[key], "assignment %v yielded twice", a)
		seen[key] = true

		ok, err := bdd.Evaluate(f, a)
		require.NoError(t, err)
		require.True(t, ok, "assignment %v yielded but does not satisfy f", a)
	}

	// independently enumerate all 8 assignments and check every true one was
	// seen by the iterator.
	for a := 0; a < 8; a++ {
		assignment := []bool{a&1 != 0, a&2 != 0, a&4 != 0}
		ok, err := bdd.Evaluate(f, assignment)
		require.NoError(t, err)
		if ok {
			key := [3]bool{assignment[0], assignment[1], assignment[2]}
			require.True(t, seen[key], "true assignment %v missing from iterator", assignment)
		}
	}
}

// TestIteratorOnFalseIsEmpty checks the degenerate case: False has no
// satisfying assignment, so HasNext must report false immediately.
func TestIteratorOnFalseIsEmpty(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	it, err := bdd.Solutions(bdd.False())
	require.NoError(t, err)
	require.False(t, it.HasNext())
	require.False(t, it.Next())
}

// TestIteratorOnTrueCoversFullCube checks that True over n variables yields
// all 2^n assignments, one of which is the all-free path with no literal.
func TestIteratorOnTrueCoversFullCube(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	count := 0
	err = bdd.ForEachSolution(bdd.True(), func(assignment []bool) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 8, count)
}

// TestForEachPathMatchesCubeCount walks every root-to-True path of
// f = x0 & x1 | x2 and checks the path count against a hand count: three
// paths, [!x0, x2], [x0, !x1, x2] and [x0, x1]. f is referenced because the
// Cube calls in the callback can trigger a garbage collection.
func TestForEachPathMatchesCubeCount(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Reference(bdd.Or(bdd.And(x0, x1), x2))

	paths := 0
	err = bdd.ForEachPath(f, func(positive, negative []int) error {
		paths++
		cube := bdd.Cube(positive, negative)
		require.True(t, bdd.Equal(bdd.Restrict(f, cube), bddone))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, paths)
}

// TestForEachMinimalSolutionDropsRedundantLiterals checks that minimizing
// f = x0 & x1 | x2 produces cubes that do not mention any variable whose
// value does not matter to satisfy f along that path. f is referenced
// because minimizing builds cubes, which can trigger a garbage collection.
func TestForEachMinimalSolutionDropsRedundantLiterals(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Reference(bdd.Or(bdd.And(x0, x1), x2))

	var minimal [][2][]int
	err = bdd.ForEachMinimalSolution(f, func(positive, negative []int) error {
		minimal = append(minimal, [2][]int{positive, negative})
		return nil
	})
	require.NoError(t, err)
	for _, m := range minimal {
		require.LessOrEqual(t, len(m[0])+len(m[1]), 2)
		cube := bdd.Cube(m[0], m[1])
		require.True(t, bdd.Equal(bdd.Restrict(f, cube), bddone))
	}
}
