// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"
	"unsafe"
)

// data4n is one slot of a cache keyed on up to three integers (a, b, c)
// plus the cached result.
type data4n struct {
	res int
	a   int
	b   int
	c   int
}

type data4ncache struct {
	ratio  int
	opHit  int // entries found in the cache
	opMiss int // entries not found in the cache
	table  []data4n
}

func (bc *data4ncache) init(size, ratio int) {
	size = primeGte(size)
	bc.table = make([]data4n, size)
	bc.ratio = ratio
	bc.reset()
}

func (bc *data4ncache) resize(size int) {
	if bc.ratio > 0 {
		size = primeGte((size * bc.ratio) / 100)
		bc.table = make([]data4n, size)
	}
	bc.reset()
}

func (bc *data4ncache) reset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// data3n is the same idea but keyed on just (a, c), used by caches whose
// hash function only needs a single node id (Replace, Compose).
type data3n struct {
	res int
	a   int
	c   int
}

type data3ncache struct {
	ratio  int
	opHit  int
	opMiss int
	table  []data3n
}

func (bc *data3ncache) init(size, ratio int) {
	size = primeGte(size)
	bc.table = make([]data3n, size)
	bc.ratio = ratio
	bc.reset()
}

func (bc *data3ncache) resize(size int) {
	if bc.ratio > 0 {
		size = primeGte((size * bc.ratio) / 100)
		bc.table = make([]data3n, size)
	}
	bc.reset()
}

func (bc *data3ncache) reset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and shutdown

func (b *BDD) cacheinit(c *configs) {
	size := 10000
	if c.cachesize != 0 {
		size = c.cachesize
	}
	size = primeGte(size)
	b.applycache = &applycache{}
	b.applycache.init(size, c.cacheratio)
	b.itecache = &itecache{}
	b.itecache.init(size, c.cacheratio)
	b.quantcache = &quantcache{}
	b.quantcache.init(size, c.cacheratio)
	b.quantset = make([]int32, b.varnum)
	b.quantsetID = 0
	b.appexcache = &appexcache{}
	b.appexcache.init(size, c.cacheratio)
	b.replacecache = &replacecache{}
	b.replacecache.init(size, c.cacheratio)
	b.composecache = &composecache{}
	b.composecache.init(size, c.cacheratio)
	b.restrictcache = &restrictcache{}
	b.restrictcache.init(size, c.cacheratio)
}

func (b *BDD) cachereset() {
	b.applycache.reset()
	b.itecache.reset()
	b.quantcache.reset()
	b.appexcache.reset()
	b.replacecache.reset()
	b.composecache.reset()
	b.restrictcache.reset()
}

func (b *BDD) cacheresize(nodesize int) {
	b.applycache.resize(nodesize)
	b.itecache.resize(nodesize)
	b.quantcache.resize(nodesize)
	b.appexcache.resize(nodesize)
	b.replacecache.resize(nodesize)
	b.composecache.resize(nodesize)
	b.restrictcache.resize(nodesize)
}

// *************************************************************************
// Quantification Cache

// quantset2cache takes a variable list, similar to the ones generated with
// Cube or Makeset, and records the variables it contains in the
// quantification cache.
func (b *BDD) quantset2cache(n int) error {
	if n < 2 {
		b.seterror(ErrBadVariable, "illegal variable (%d) in varset", n)
		return b.error
	}
	b.quantsetID++
	if b.quantsetID == maxQuantID {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	for i := n; i > 1; i = b.high(i) {
		b.quantset[b.level(i)] = b.quantsetID
		b.quantlast = b.level(i)
	}
	return nil
}

const maxQuantID = 1<<31 - 1

// The hash function for Apply is #(left, right, applycache.op).

type applycache struct {
	data4ncache
	op int // Current operation during an apply
}

func (bc *applycache) matchapply(left, right int) int {
	entry := bc.table[_TRIPLE(left, right, bc.op, len(bc.table))]
	if entry.a == left && entry.b == right && entry.c == bc.op {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *applycache) setapply(left, right, res int) int {
	bc.table[_TRIPLE(left, right, bc.op, len(bc.table))] = data4n{
		a:   left,
		b:   right,
		c:   bc.op,
		res: res,
	}
	return res
}

// The hash function for Not(n) is simply n.

func (bc *applycache) matchnot(n int) int {
	entry := bc.table[n%len(bc.table)]
	if entry.a == n && entry.c == int(opnot) {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *applycache) setnot(n, res int) int {
	bc.table[n%len(bc.table)] = data4n{
		a:   n,
		c:   int(opnot),
		res: res,
	}
	return res
}

func (bc applycache) String() string {
	return cacheStatString("Apply", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for ITE is #(f,g,h).

type itecache struct {
	data4ncache
}

func (bc *itecache) matchite(f, g, h int) int {
	entry := bc.table[_TRIPLE(f, g, h, len(bc.table))]
	if entry.a == f && entry.b == g && entry.c == h {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *itecache) setite(f, g, h, res int) int {
	bc.table[_TRIPLE(f, g, h, len(bc.table))] = data4n{
		a:   f,
		b:   g,
		c:   h,
		res: res,
	}
	return res
}

func (bc itecache) String() string {
	return cacheStatString("ITE", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for quantification is (n, varset, quantid).

type quantcache struct {
	data4ncache         // Cache for exist/forall results
	quantset    []int32 // Current variable set for quant.
	quantsetID  int32   // Current id used in quantset
	quantlast   int32   // Current last variable to be quant.
	id          int     // Current cache id for quantifications
}

func (bc *quantcache) matchquant(n, varset int) int {
	entry := bc.table[_PAIR(n, varset, len(bc.table))]
	if entry.a == n && entry.b == varset && entry.c == bc.id {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *quantcache) setquant(n, varset, res int) int {
	bc.table[_PAIR(n, varset, len(bc.table))] = data4n{
		a:   n,
		b:   varset,
		c:   bc.id,
		res: res,
	}
	return res
}

func (bc quantcache) String() string {
	return cacheStatString("Quant", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for AppEx is #(left, right, id) where id mixes the
// varset and the operator, so a single table serves every combination.

type appexcache struct {
	data4ncache     // Cache for appex results
	op          int // Current operator for appex
	id          int // Current id
}

func (bc *appexcache) matchappex(left, right int) int {
	entry := bc.table[_TRIPLE(left, right, bc.id, len(bc.table))]
	if entry.a == left && entry.b == right && entry.c == bc.id {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *appexcache) setappex(left, right, res int) int {
	bc.table[_TRIPLE(left, right, bc.id, len(bc.table))] = data4n{
		a:   left,
		b:   right,
		c:   bc.id,
		res: res,
	}
	return res
}

func (bc appexcache) String() string {
	return cacheStatString("AppEx", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for Replace(n) is simply n.

type replacecache struct {
	data3ncache     // Cache for replace results
	id          int // Current cache id for replace
}

func (bc *replacecache) matchreplace(n int) int {
	entry := bc.table[n%len(bc.table)]
	if entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *replacecache) setreplace(n, res int) int {
	bc.table[n%len(bc.table)] = data3n{
		a:   n,
		c:   bc.id,
		res: res,
	}
	return res
}

func (bc replacecache) String() string {
	return cacheStatString("Replace", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for Compose(n) is simply n, disambiguated by id (a
// counter bumped once per top-level Compose call, so cache entries from one
// substitution array never leak into the next).

type composecache struct {
	data3ncache
	id int
}

func (bc *composecache) matchcompose(n int) int {
	entry := bc.table[n%len(bc.table)]
	if entry.a == n && entry.c == bc.id {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *composecache) setcompose(n, res int) int {
	bc.table[n%len(bc.table)] = data3n{
		a:   n,
		c:   bc.id,
		res: res,
	}
	return res
}

func (bc composecache) String() string {
	return cacheStatString("Compose", len(bc.table), bc.opHit, bc.opMiss)
}

// The hash function for Restrict is #(n, cube); unlike Compose, the pair
// (n, cube) alone fully determines the operation, so no extra id is needed.

type restrictcache struct {
	data4ncache
}

func (bc *restrictcache) matchrestrict(n, cube int) int {
	entry := bc.table[_PAIR(n, cube, len(bc.table))]
	if entry.a == n && entry.b == cube {
		bc.opHit++
		return entry.res
	}
	bc.opMiss++
	return -1
}

func (bc *restrictcache) setrestrict(n, cube, res int) int {
	bc.table[_PAIR(n, cube, len(bc.table))] = data4n{
		a:   n,
		b:   cube,
		res: res,
	}
	return res
}

func (bc restrictcache) String() string {
	return cacheStatString("Restrict", len(bc.table), bc.opHit, bc.opMiss)
}

func cacheStatString(name string, size, hit, miss int) string {
	res := fmt.Sprintf("== %-8s cache %d (%s)\n", name, size, humanSize(size, unsafe.Sizeof(data4n{})))
	total := hit + miss
	if total == 0 {
		res += " Operator Hits: 0 (0.0%)\n"
		res += " Operator Miss: 0\n"
		return res
	}
	res += fmt.Sprintf(" Operator Hits: %d (%.1f%%)\n", hit, (float64(hit)*100)/float64(total))
	res += fmt.Sprintf(" Operator Miss: %d\n", miss)
	return res
}
