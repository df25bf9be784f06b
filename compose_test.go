// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCubeAndScanset(t *testing.T) {
	bdd, err := New(5)
	require.NoError(t, err)

	c := bdd.Cube([]int{1, 3}, []int{0, 4})
	require.Equal(t, []int{0, 1, 3, 4}, bdd.Scanset(c))

	ok, err := bdd.Evaluate(c, []bool{false, true, false, true, false})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bdd.Evaluate(c, []bool{true, true, false, true, false})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCubeRejectsDuplicateVariable(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	res := bdd.Cube([]int{0, 1}, []int{1})
	require.Nil(t, res)
	require.True(t, bdd.Errored())
}

func TestRestrictIsGeneralizedCofactor(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Or(bdd.And(x0, x1), x2)

	onX0True := bdd.Cube([]int{0}, nil)
	restricted := bdd.Restrict(f, onX0True)
	expected := bdd.Or(x1, x2)
	require.True(t, bdd.Equal(restricted, expected))
}

func TestSupportBoundsToLimit(t *testing.T) {
	bdd, err := New(6)
	require.NoError(t, err)
	f := bdd.And(bdd.Ithvar(0), bdd.Ithvar(2), bdd.Ithvar(4))
	full := bdd.Support(f)
	require.Equal(t, []int{0, 2, 4}, full)
	bounded := bdd.SupportUpTo(f, 2)
	require.Len(t, bounded, 2)
}

func TestComposeIndependentOfOutsideSupport(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	f := bdd.Ithvar(0)
	// substituting variable 2, which f does not depend on, must be a no-op
	res := bdd.ComposeVar(f, 2, bdd.Ithvar(1))
	require.True(t, bdd.Equal(res, f))
}

// TestComposeIsSimultaneous checks that Compose substitutes every target
// variable against the SAME original n, not against the result of a prior
// substitution: for f = x0 & !x1 with subst = {0: x1, 1: x0} (a swap), the
// simultaneous result is x1 & !x0, never the constant False a sequential
// fold of two single-variable substitutions would produce.
func TestComposeIsSimultaneous(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	x0, x1 := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(x0, bdd.Not(x1))

	res := bdd.Compose(f, []Node{x1, x0})
	expected := bdd.And(x1, bdd.Not(x0))
	require.True(t, bdd.Equal(res, expected))
	require.False(t, bdd.Equal(res, bdd.False()))
}

func TestReplacePreservesOrderAndSemantics(t *testing.T) {
	bdd, err := New(4)
	require.NoError(t, err)
	f := bdd.And(bdd.Ithvar(0), bdd.Not(bdd.Ithvar(1)))
	r, err := bdd.NewReplacer([]int{0, 1}, []int{2, 3})
	require.NoError(t, err)
	replaced := bdd.Replace(f, r)
	expected := bdd.And(bdd.Ithvar(2), bdd.Not(bdd.Ithvar(3)))
	require.True(t, bdd.Equal(replaced, expected))
}
