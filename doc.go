// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package robdd defines a concrete type for Reduced Ordered Binary Decision
Diagrams (ROBDD), a canonical data structure for representing Boolean
functions over a fixed set of variables, or equivalently, sets of Boolean
vectors of a fixed size.

Basics

Each BDD has a number of variables, Varnum, declared when it is initialized
(using New) and increased only by CreateVar or CreateVars; variables are
never removed. Each variable is represented by an (integer)
index in the interval [0..Varnum), called a level. The library supports the
creation of multiple independent BDDs with possibly different numbers of
variables.

Most operations over a BDD return a Node, a pointer to a vertex in the
diagram's DAG that denotes a variable level and the addresses of its low
(false) and high (true) branches. We use integers to represent the address of
nodes internally, with the convention that 0 is the address of the constant
False and 1 is the address of the constant True.

Implementation

The node table is a single growable array combining a hash-chain based
unicity table (ensuring two structurally identical nodes are always the same
node, the defining property of a *reduced* diagram) with a free-list of
reclaimed slots, directly adapted from the data structures found in the
C library BuDDy, by Jorn Lind-Nielsen.

Memory management

Unlike some other pure-Go BDD packages, we do not piggy-back on the Go
garbage collector to decide when a node can be reclaimed: external
references are managed explicitly, with Reference and Dereference, so that
the number of live nodes at any point in a computation is fully under the
caller's control and does not depend on finalizer scheduling. Internal,
transient references created while building a result (e.g. during Apply or
Ite) are tracked on an internal reference stack and never escape to callers.
*/
package robdd
