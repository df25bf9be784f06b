// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "github.com/sirupsen/logrus"

// gcstat stores status information about garbage collections: a stack
// (slice) recording a snapshot of the node table at each collection.
type gcstat struct {
	history []gcpoint
}

type gcpoint struct {
	nodes     int // total number of allocated nodes in the node table
	freenodes int // number of free nodes in the node table
}

// *************************************************************************
// Explicit, user-driven reference counting. Nothing here depends on when
// the Go runtime happens to collect a Node: the caller decides.

// Reference increases the reference count on n and returns n so calls can
// be chained. It never fails, even on an invalid or out-of-range node: it
// is simply a no-op in that case.
func (b *BDD) Reference(n Node) Node {
	if n == nil || *n < 2 || *n >= len(b.nodes) || b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou++
	}
	return n
}

// Dereference decreases the reference count on n and returns n so calls can
// be chained. Like Reference, it never fails.
func (b *BDD) Dereference(n Node) Node {
	if n == nil || *n < 0 || *n >= len(b.nodes) || b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou <= 0 {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou--
	}
	return n
}

// ReferenceCount returns the current external reference count of n, or -1
// for any saturated node (the constants, and declared variables, whose
// refcou is pinned at _MAXREFCOUNT and is never checked for collection).
func (b *BDD) ReferenceCount(n Node) int {
	if b.checkptr(n) != nil {
		return 0
	}
	if *n < 2 || b.nodes[*n].refcou == _MAXREFCOUNT {
		return -1
	}
	return int(b.nodes[*n].refcou)
}

// Consume dereferences n and returns it. It takes a single node: it does not
// reference any other node, and it releases no operand. It drops a reference
// the caller took itself, for example on the accumulator of a loop built with
// UpdateWith; if that was the last reference, the returned node is
// unreferenced and a later garbage collection can reclaim it. A freshly built
// result carries no reference, so Consume leaves its count unchanged.
func (b *BDD) Consume(n Node) Node {
	return b.Dereference(n)
}

// UpdateWith dereferences *dst, references src, and stores src into *dst.
// It is the idiomatic replacement for an assignment like `dst = src` that
// also keeps reference counts balanced, since the old value of *dst would
// otherwise leak a reference.
func (b *BDD) UpdateWith(dst *Node, src Node) {
	b.Reference(src)
	if *dst != nil {
		b.Dereference(*dst)
	}
	*dst = src
}

// *************************************************************************
// gbc performs a mark-and-sweep garbage collection, invoked from makenode
// whenever the free list is empty. Live nodes (those with a positive
// refcount, or reachable from the internal refstack of a computation in
// progress) are kept; everything else is returned to the free list.
func (b *BDD) gbc() {
	b.log.Debug("starting GC")
	b.logTable()

	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:     len(b.nodes),
		freenodes: b.freenum,
	})

	for _, r := range b.refstack {
		b.markrec(r)
	}
	for k := range b.nodes {
		if b.nodes[k].refcou > 0 {
			b.markrec(k)
		}
		b.nodes[k].hash = 0
	}
	b.freepos = 0
	b.freenum = 0
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.ismarked(n) && (b.nodes[n].low != -1) {
			b.unmarknode(n)
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else {
			b.nodes[n].low = -1
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	b.cachereset()
	b.log.WithFields(logrus.Fields{"freenum": b.freenum}).Debug("end GC")
	b.logTable()
}

func (b *BDD) markrec(n int) {
	if n < 2 || b.ismarked(n) || (b.nodes[n].low == -1) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low)
	b.markrec(b.nodes[n].high)
}

func (b *BDD) unmarkall() {
	for k, v := range b.nodes {
		if k < 2 || !b.ismarked(k) || (v.low == -1) {
			continue
		}
		b.unmarknode(k)
	}
}

// *************************************************************************
// internal refstack: protects nodes being built (e.g. the intermediate
// results of an apply) from being reclaimed mid-computation, without
// requiring the caller to hold an external reference on them.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *BDD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
