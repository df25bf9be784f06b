// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"math/big"
	"sort"
)

// Satcount returns the number of satisfying assignments of n over all
// Varnum() declared variables, as a big.Int (the count can grow well beyond
// the range of a machine int). The recurrence is the classic BuDDy one:
// every "skipped" variable between a node and one of its children
// contributes a factor of two, and the root itself contributes a factor of
// 2^Variable(root) to account for the variables ordered above it.
func (b *BDD) Satcount(n Node) (*big.Int, error) {
	if b.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	memo := make(map[int]*big.Int)
	res := b.satcountrec(*n, memo)
	if *n < 2 {
		return res, nil
	}
	shift := uint(b.level(*n))
	return new(big.Int).Lsh(res, shift), nil
}

func (b *BDD) satcountrec(n int, memo map[int]*big.Int) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	if n == 1 {
		return big.NewInt(1)
	}
	if v, ok := memo[n]; ok {
		return v
	}
	lvl := b.level(n)
	low, high := b.low(n), b.high(n)
	lowCount := new(big.Int).Lsh(b.satcountrec(low, memo), uint(b.level(low)-lvl-1))
	highCount := new(big.Int).Lsh(b.satcountrec(high, memo), uint(b.level(high)-lvl-1))
	res := new(big.Int).Add(lowCount, highCount)
	memo[n] = res
	return res
}

// SatcountSet is the variant of Satcount that restricts the exponent base
// to the variables named in varset (a node built by Cube or Makeset),
// rather than every declared variable: it counts satisfying assignments
// projected onto varset, which must be a superset of Support(n).
func (b *BDD) SatcountSet(n, varset Node) (*big.Int, error) {
	if b.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	if b.checkptr(varset) != nil {
		return nil, ErrInvalidNode
	}
	scanned := b.Scanset(varset)
	memo := make(map[int]*big.Int)
	res := b.satcountsetrec(*n, scanned, memo)
	if *n < 2 {
		return res, nil
	}
	before := countBetween(scanned, -1, int(b.level(*n)))
	return new(big.Int).Lsh(res, uint(before)), nil
}

func (b *BDD) satcountsetrec(n int, scanned []int, memo map[int]*big.Int) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	if n == 1 {
		return big.NewInt(1)
	}
	if v, ok := memo[n]; ok {
		return v
	}
	lvl := int(b.level(n))
	low, high := b.low(n), b.high(n)
	lowGap := countBetween(scanned, lvl, int(b.level(low)))
	highGap := countBetween(scanned, lvl, int(b.level(high)))
	lowCount := new(big.Int).Lsh(b.satcountsetrec(low, scanned, memo), uint(lowGap))
	highCount := new(big.Int).Lsh(b.satcountsetrec(high, scanned, memo), uint(highGap))
	res := new(big.Int).Add(lowCount, highCount)
	memo[n] = res
	return res
}

// countBetween returns the number of elements of the sorted slice scanned
// strictly between lo and hi.
func countBetween(scanned []int, lo, hi int) int {
	start := sort.Search(len(scanned), func(i int) bool { return scanned[i] > lo })
	end := sort.Search(len(scanned), func(i int) bool { return scanned[i] >= hi })
	if end < start {
		return 0
	}
	return end - start
}

// *************************************************************************

// Evaluate walks n according to a full assignment (indexed by variable, one
// bool per declared variable) and returns the resulting truth value.
func (b *BDD) Evaluate(n Node, assignment []bool) (bool, error) {
	if b.checkptr(n) != nil {
		return false, ErrInvalidNode
	}
	if len(assignment) < int(b.varnum) {
		b.seterror(ErrBadVariable, "assignment has %d entries, need %d", len(assignment), b.varnum)
		return false, b.error
	}
	cur := *n
	for cur >= 2 {
		if assignment[b.level(cur)] {
			cur = b.high(cur)
		} else {
			cur = b.low(cur)
		}
	}
	return cur == 1, nil
}

// AnySat returns one satisfying assignment of n: descend from the root,
// taking the low edge
// whenever it is not the False terminal, the high edge otherwise, fixing
// one bit per step. Variables never visited along the chosen path (those
// not in Support(n)) are reported as false, an arbitrary but deterministic
// choice. It fails with ErrNoSolution when n is the False constant.
func (b *BDD) AnySat(n Node) ([]bool, error) {
	if b.checkptr(n) != nil {
		return nil, ErrInvalidNode
	}
	if *n == 0 {
		return nil, ErrNoSolution
	}
	res := make([]bool, b.varnum)
	cur := *n
	for cur >= 2 {
		if b.low(cur) == 0 {
			res[b.level(cur)] = true
			cur = b.high(cur)
		} else {
			res[b.level(cur)] = false
			cur = b.low(cur)
		}
	}
	return res, nil
}
