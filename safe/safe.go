// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package safe serialises access to a robdd.BDD through a
// sync.RWMutex, classifying every engine method as read-only or
// read-write: a read-write call is any operation that can allocate a
// node (including Support, which builds auxiliary work storage even
// though it never calls the engine's hash-consing table directly). The
// core engine itself remains single-threaded and non-reentrant by
// design; this wrapper makes it safe to share one BDD across
// goroutines.
package safe

import (
	"math/big"
	"sync"

	"github.com/go-robdd/robdd"
)

// BDD wraps a *robdd.BDD with a sync.RWMutex. The zero value is not usable;
// construct one with New.
type BDD struct {
	mu sync.RWMutex
	b  *robdd.BDD
}

// New creates a new synchronised BDD, forwarding to robdd.New.
func New(varnum int) (*BDD, error) {
	b, err := robdd.New(varnum)
	if err != nil {
		return nil, err
	}
	return &BDD{b: b}, nil
}

// Unwrap returns the underlying engine. Callers that use it directly are
// responsible for their own synchronisation; Unwrap exists for code that
// wants to pass the raw engine to a single-threaded helper.
func (s *BDD) Unwrap() *robdd.BDD {
	return s.b
}

// *************************************************************************
// Read-only: no node is ever allocated, so callers may run these
// concurrently with one another (but never with a read-write call below).

func (s *BDD) Varnum() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Varnum()
}

func (s *BDD) True() robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.True()
}

func (s *BDD) False() robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.False()
}

func (s *BDD) Ithvar(i int) robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Ithvar(i)
}

func (s *BDD) NIthvar(i int) robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.NIthvar(i)
}

func (s *BDD) IsVar(n robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.IsVar(n)
}

func (s *BDD) IsNVar(n robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.IsNVar(n)
}

func (s *BDD) IsVarOrNVar(n robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.IsVarOrNVar(n)
}

func (s *BDD) Low(n robdd.Node) robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Low(n)
}

func (s *BDD) High(n robdd.Node) robdd.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.High(n)
}

func (s *BDD) Variable(n robdd.Node) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Variable(n)
}

func (s *BDD) IsConst(n robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.IsConst(n)
}

func (s *BDD) IsValid(n robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.IsValid(n)
}

func (s *BDD) Equal(n1, n2 robdd.Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Equal(n1, n2)
}

func (s *BDD) Evaluate(n robdd.Node, assignment []bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Evaluate(n, assignment)
}

func (s *BDD) AnySat(n robdd.Node) ([]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.AnySat(n)
}

func (s *BDD) Satcount(n robdd.Node) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Satcount(n)
}

func (s *BDD) SatcountSet(n, varset robdd.Node) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.SatcountSet(n, varset)
}

// Solutions builds an iterator snapshotting n's diagram. Constructing it is
// read-only, but the caller must not call Next/Assignment concurrently with
// any read-write call on the wrapped BDD: the iterator walks live node
// indices that a GC or resize could otherwise invalidate mid-traversal.
func (s *BDD) Solutions(n robdd.Node) (*robdd.SolutionIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Solutions(n)
}

func (s *BDD) ReferenceCount(n robdd.Node) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.ReferenceCount(n)
}

func (s *BDD) Stats() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Stats()
}

func (s *BDD) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Error()
}

func (s *BDD) Errored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.Errored()
}

// ForEachSolution, ForEachPath and ForEachNonEmptyPath walk a snapshot of
// n's diagram without allocating, so they take only the read lock; like
// Solutions, the caller must not run them concurrently with a read-write
// call on the wrapped BDD.

func (s *BDD) ForEachSolution(n robdd.Node, f func(assignment []bool) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.ForEachSolution(n, f)
}

func (s *BDD) ForEachPath(n robdd.Node, f func(positive, negative []int) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.ForEachPath(n, f)
}

func (s *BDD) ForEachNonEmptyPath(n robdd.Node, f func(positive, negative []int) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b.ForEachNonEmptyPath(n, f)
}

// ForEachMinimalSolution takes the write lock, unlike its siblings above:
// its greedy literal-dropping pass calls Cube and Restrict, both of which
// can allocate a node.
func (s *BDD) ForEachMinimalSolution(n robdd.Node, f func(positive, negative []int) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.ForEachMinimalSolution(n, f)
}

// *************************************************************************
// Read-write: every operation below may call makeNode (directly or via a
// GC/resize it triggers), so it takes the exclusive lock. Support is listed
// here, not above, since its DFS builds auxiliary work storage even though
// it never allocates a BDD node.

func (s *BDD) CreateVar() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.CreateVar()
}

func (s *BDD) CreateVars(num int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.CreateVars(num)
}

func (s *BDD) Not(n robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Not(n)
}

func (s *BDD) Apply(n1, n2 robdd.Node, op robdd.Operator) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Apply(n1, n2, op)
}

func (s *BDD) And(n ...robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.And(n...)
}

func (s *BDD) Or(n ...robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Or(n...)
}

func (s *BDD) Xor(n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Xor(n1, n2)
}

func (s *BDD) Nand(n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Nand(n1, n2)
}

func (s *BDD) Nor(n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Nor(n1, n2)
}

func (s *BDD) Imp(n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Imp(n1, n2)
}

// Implies takes the write lock: it returns without allocating when n1 is
// False or n2 is True, and otherwise calls Imp, which can allocate a node.
func (s *BDD) Implies(n1, n2 robdd.Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Implies(n1, n2)
}

func (s *BDD) Equiv(n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Equiv(n1, n2)
}

func (s *BDD) Ite(f, g, h robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Ite(f, g, h)
}

func (s *BDD) Exist(n, varset robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Exist(n, varset)
}

func (s *BDD) Forall(n, varset robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Forall(n, varset)
}

func (s *BDD) AppEx(n1, n2 robdd.Node, op robdd.Operator, varset robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.AppEx(n1, n2, op, varset)
}

func (s *BDD) AndExist(varset, n1, n2 robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.AndExist(varset, n1, n2)
}

func (s *BDD) Compose(n robdd.Node, subst []robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Compose(n, subst)
}

func (s *BDD) ComposeVar(n robdd.Node, variable int, replacement robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.ComposeVar(n, variable, replacement)
}

func (s *BDD) Restrict(n, cube robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Restrict(n, cube)
}

func (s *BDD) Cube(positives, negatives []int) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Cube(positives, negatives)
}

func (s *BDD) Makeset(varset []int) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Makeset(varset)
}

func (s *BDD) Support(n robdd.Node) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Support(n)
}

func (s *BDD) SupportUpTo(n robdd.Node, limit int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.SupportUpTo(n, limit)
}

func (s *BDD) NewReplacer(oldvars, newvars []int) (robdd.Replacer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.NewReplacer(oldvars, newvars)
}

func (s *BDD) Replace(n robdd.Node, r robdd.Replacer) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Replace(n, r)
}

func (s *BDD) Reference(n robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Reference(n)
}

func (s *BDD) Dereference(n robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Dereference(n)
}

func (s *BDD) Consume(n robdd.Node) robdd.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Consume(n)
}

func (s *BDD) UpdateWith(dst *robdd.Node, src robdd.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.UpdateWith(dst, src)
}
