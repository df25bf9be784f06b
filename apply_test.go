// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioXorYAndOrNotXZ checks an end-to-end scenario:
// f = (x0 & x1) | (!x0 & x2) over three variables.
func TestScenarioXorYAndOrNotXZ(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)

	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Or(bdd.And(x0, x1), bdd.And(bdd.Not(x0), x2))

	count, err := bdd.Satcount(f)
	require.NoError(t, err)
	require.Equal(t, int64(4), count.Int64())

	ok, err := bdd.Evaluate(f, []bool{true, true, false})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bdd.Evaluate(f, []bool{false, false, true})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bdd.Evaluate(f, []bool{false, true, false})
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, []int{0, 1, 2}, bdd.Support(f))
}

// TestXorCommutes checks that xor(x0,x1) == xor(x1,x0) as the same node
// index, and that its solutions are exactly {01, 10}.
func TestXorCommutes(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	x0, x1 := bdd.Ithvar(0), bdd.Ithvar(1)

	a := bdd.Xor(x0, x1)
	b := bdd.Xor(x1, x0)
	require.True(t, bdd.Equal(a, b))

	it, err := bdd.Solutions(a)
	require.NoError(t, err)
	var got [][]bool
	for it.Next() {
		got = append(got, it.Assignment())
	}
	require.Len(t, got, 2)
	require.ElementsMatch(t, [][]bool{{false, true}, {true, false}}, got)
}

// TestExactlyKOfN builds a 20-choose-3 counting scenario.
func TestExactlyKOfN(t *testing.T) {
	const n, k = 20, 3
	bdd, err := New(n, Nodesize(5000), Cachesize(2000))
	require.NoError(t, err)

	// count of true bits among x0..x(n-1) equals k, built via a simple
	// counter automaton unrolled as a BDD: state[i][j] means "exactly j of
	// the first i variables are true".
	state := make([][]Node, n+1)
	state[0] = make([]Node, k+1)
	state[0][0] = bdd.True()
	for j := 1; j <= k; j++ {
		state[0][j] = bdd.False()
	}
	for i := 1; i <= n; i++ {
		state[i] = make([]Node, k+1)
		xi := bdd.Ithvar(i - 1)
		for j := 0; j <= k; j++ {
			keepZero := bdd.And(bdd.Not(xi), state[i-1][j])
			var incr Node
			if j > 0 {
				incr = bdd.And(xi, state[i-1][j-1])
			} else {
				incr = bdd.False()
			}
			state[i][j] = bdd.Or(keepZero, incr)
		}
	}
	f := state[n][k]
	count, err := bdd.Satcount(f)
	require.NoError(t, err)
	require.Equal(t, int64(1140), count.Int64())
}

// TestAlgebraicLaws checks commutativity, associativity, De Morgan,
// identities, Ite-as-and-or, double negation, implication and quantification.
func TestAlgebraicLaws(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	require.True(t, bdd.Equal(bdd.And(a, b), bdd.And(b, a)))
	require.True(t, bdd.Equal(bdd.Or(a, b), bdd.Or(b, a)))
	require.True(t, bdd.Equal(bdd.Xor(a, b), bdd.Xor(b, a)))
	require.True(t, bdd.Equal(bdd.Equiv(a, b), bdd.Equiv(b, a)))
	require.True(t, bdd.Equal(bdd.Nand(a, b), bdd.Nand(b, a)))

	require.True(t, bdd.Equal(bdd.And(a, bdd.And(b, c)), bdd.And(bdd.And(a, b), c)))

	require.True(t, bdd.Equal(bdd.Not(bdd.And(a, b)), bdd.Or(bdd.Not(a), bdd.Not(b))))

	require.True(t, bdd.Equal(bdd.And(a, bdd.True()), a))
	require.True(t, bdd.Equal(bdd.Or(a, bdd.False()), a))
	require.True(t, bdd.Equal(bdd.Xor(a, bdd.False()), a))
	require.True(t, bdd.Equal(bdd.Xor(a, a), bdd.False()))

	require.True(t, bdd.Equal(bdd.Ite(a, b, c), bdd.Or(bdd.And(a, b), bdd.And(bdd.Not(a), c))))

	require.True(t, bdd.Equal(bdd.Not(bdd.Not(a)), a))

	varset := bdd.Makeset([]int{0})
	implied := bdd.Or(bdd.Not(a), b)
	require.Equal(t, bdd.Equal(implied, bdd.True()), bdd.Implies(a, b))

	exist := bdd.Exist(a, varset)
	cube1 := bdd.Cube([]int{0}, nil)
	cube0 := bdd.Cube(nil, []int{0})
	restrict1 := bdd.Restrict(a, cube1)
	restrict0 := bdd.Restrict(a, cube0)
	require.True(t, bdd.Equal(exist, bdd.Or(restrict1, restrict0)))
}

// TestComposeOnVariable checks compose(variableNode(v), subst) == subst[v].
func TestComposeOnVariable(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	v0 := bdd.Ithvar(0)
	v1 := bdd.Ithvar(1)
	res := bdd.ComposeVar(v0, 0, v1)
	require.True(t, bdd.Equal(res, v1))
}

// TestForallDual checks Forall is the De Morgan dual of Exist.
func TestForallDual(t *testing.T) {
	bdd, err := New(2)
	require.NoError(t, err)
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.Or(a, b)
	varset := bdd.Makeset([]int{0})

	forall := bdd.Forall(f, varset)
	expected := bdd.Not(bdd.Exist(bdd.Not(f), varset))
	require.True(t, bdd.Equal(forall, expected))
}

// TestTruthTableBuiltTwoWays builds the same Boolean function top-down (as
// x0&x1 | !x0&x2, the And/Or form of Ite(x0, x1, x2)) and bottom-up (OR of
// minterms); the two node indices must be identical by hash-consing. Both
// results are referenced, since building the minterms triggers garbage
// collections in this small table.
func TestTruthTableBuiltTwoWays(t *testing.T) {
	bdd, err := New(3)
	require.NoError(t, err)
	x0, x1, x2 := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	topDown := bdd.Reference(bdd.Or(bdd.And(x0, x1), bdd.And(bdd.Not(x0), x2)))

	lit := func(v Node, want bool) Node {
		if want {
			return v
		}
		return bdd.Not(v)
	}
	bottomUp := bdd.False()
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				av, bv, cv := a == 1, b == 1, c == 1
				if (av && bv) || (!av && cv) {
					minterm := bdd.And(lit(x0, av), lit(x1, bv), lit(x2, cv))
					bdd.UpdateWith(&bottomUp, bdd.Or(bottomUp, minterm))
				}
			}
		}
	}
	require.True(t, bdd.Equal(topDown, bottomUp))
	require.Equal(t, *topDown, *bottomUp)
}
