// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package set provides a higher-level, set-theoretic view over a robdd.BDD:
// a Node is treated as the set of assignments satisfying it, and Set exposes
// union/intersection/complement-style convenience methods built entirely on
// top of the public node-level API of package robdd; it never reaches into
// engine internals.
package set

import (
	"math/big"

	"github.com/go-robdd/robdd"
)

// Set wraps a *robdd.BDD and views its nodes as sets of assignments rather
// than as Boolean functions, adding variadic convenience constructors on top
// of the engine's own And/Or (which already accept any number of arguments).
type Set struct {
	*robdd.BDD
}

// New creates a Set over a fresh engine with varnum variables and the
// default sizing. Callers who need Nodesize/Cachesize/... should build the
// engine with robdd.New directly and wrap it with From.
func New(varnum int) (Set, error) {
	b, err := robdd.New(varnum)
	if err != nil {
		return Set{}, err
	}
	return Set{b}, nil
}

// From wraps an existing engine as a Set, without creating a new one.
func From(b *robdd.BDD) Set {
	return Set{b}
}

// Union returns the set containing every assignment in any of n.
func (s Set) Union(n ...robdd.Node) robdd.Node {
	return s.Or(n...)
}

// Intersect returns the set containing every assignment common to all of n.
func (s Set) Intersect(n ...robdd.Node) robdd.Node {
	return s.And(n...)
}

// Complement returns the set of every assignment not in n.
func (s Set) Complement(n robdd.Node) robdd.Node {
	return s.Not(n)
}

// Contains reports whether assignment x belongs to the set denoted by n.
func (s Set) Contains(n robdd.Node, x []bool) (bool, error) {
	return s.Evaluate(n, x)
}

// IsEmpty reports whether n denotes the empty set (the constant False).
func (s Set) IsEmpty(n robdd.Node) bool {
	return s.Equal(n, s.False())
}

// IsFull reports whether n denotes the full set over every declared
// variable (the constant True).
func (s Set) IsFull(n robdd.Node) bool {
	return s.Equal(n, s.True())
}

// Minus returns the set difference n1 \ n2, i.e. every assignment in n1 that
// is not also in n2.
func (s Set) Minus(n1, n2 robdd.Node) robdd.Node {
	return s.And(n1, s.Not(n2))
}

// Cardinality returns the number of assignments in the set denoted by n, the
// set-theoretic name for robdd.BDD.Satcount.
func (s Set) Cardinality(n robdd.Node) (*big.Int, error) {
	return s.Satcount(n)
}
