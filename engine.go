// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"math"

	"github.com/sirupsen/logrus"
)

// BDD is a family of Reduced Ordered Binary Decision Diagrams sharing a
// single node table, variable order, and set of result caches. Create one
// with New; it is not safe for concurrent use without the wrapper in
// package safe, which classifies each method as read-only or read-write.
type BDD struct {
	nodes    []node // node table; constants are always at index 0 and 1
	freenum  int    // number of free slots
	freepos  int    // first free slot
	produced int     // total number of new nodes ever produced

	varnum int32     // number of declared variables
	varset [][2]int  // varset[i] == [Ithvar(i), NIthvar(i)]

	refstack []int // transient references held during a computation

	applycache   *applycache
	itecache     *itecache
	quantcache   *quantcache
	appexcache   *appexcache
	replacecache *replacecache
	composecache *composecache
	restrictcache *restrictcache
	quantset     []int32
	quantsetID   int32
	quantlast    int32

	configs // tunable sizing parameters
	gcstat  // garbage collection history

	log   *logrus.Entry
	error error
}

// New creates a BDD with varnum variables. The initial size of the node
// table is not critical: it grows automatically whenever too few nodes
// remain free after a garbage collection. Configuration options (Nodesize,
// Cachesize, Maxnodesize, ...) tune the initial sizes and growth policy.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	if (varnum < 1) || (varnum > int(_MAXVAR)) {
		return nil, ErrBadVariable
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b := &BDD{}
	b.log = config.logger.WithField("component", "robdd")
	b.configs = *config
	b.varnum = int32(varnum)
	b.varset = make([][2]int, varnum)
	b.refstack = make([]int, 0, 2*varnum+4)
	b.initref()

	nodesize := primeGte(config.nodesize)
	b.nodes = make([]node, nodesize)
	for k := range b.nodes {
		b.nodes[k] = node{low: -1, next: k + 1}
	}
	b.nodes[nodesize-1].next = 0
	b.nodes[0].refcou = _MAXREFCOUNT
	b.nodes[1].refcou = _MAXREFCOUNT
	b.nodes[0].low, b.nodes[0].high = 0, 0
	b.nodes[1].low, b.nodes[1].high = 1, 1
	b.nodes[0].level = int32(varnum)
	b.nodes[1].level = int32(varnum)
	b.freepos = 2
	b.freenum = nodesize - 2
	b.gcstat.history = []gcpoint{}

	for k := 0; k < varnum; k++ {
		v0 := b.makenode(int32(k), 0, 1)
		if v0 < 0 {
			return nil, b.error
		}
		b.nodes[v0].refcou = _MAXREFCOUNT
		b.pushref(v0)
		v1 := b.makenode(int32(k), 1, 0)
		if v1 < 0 {
			return nil, b.error
		}
		b.nodes[v1].refcou = _MAXREFCOUNT
		b.popref(1)
		b.varset[k] = [2]int{v0, v1}
	}
	b.cacheinit(config)
	b.log.WithField("varnum", varnum).Debug("BDD created")
	return b, nil
}

// Varnum returns the number of declared variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// True returns the Node for the constant True.
func (b *BDD) True() Node {
	return bddone
}

// False returns the Node for the constant False.
func (b *BDD) False() Node {
	return bddzero
}

// From returns the constant Node corresponding to v.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns the Node for the i'th variable, in positive form. i must be
// in [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if i < 0 || i >= int(b.varnum) {
		return b.seterror(ErrBadVariable, "variable index %d out of range [0..%d)", i, b.varnum)
	}
	return b.retnode(b.varset[i][0])
}

// NIthvar returns the Node for the negation of the i'th variable.
func (b *BDD) NIthvar(i int) Node {
	if i < 0 || i >= int(b.varnum) {
		return b.seterror(ErrBadVariable, "variable index %d out of range [0..%d)", i, b.varnum)
	}
	return b.retnode(b.varset[i][1])
}

// IsVar returns true if n is exactly the positive literal for some
// variable, i.e. n == Ithvar(Variable(n)).
func (b *BDD) IsVar(n Node) bool {
	if b.checkptr(n) != nil || *n < 2 {
		return false
	}
	return *n == b.varset[b.level(*n)][0]
}

// IsNVar returns true if n is exactly the negative literal for some
// variable, i.e. n == NIthvar(Variable(n)).
func (b *BDD) IsNVar(n Node) bool {
	if b.checkptr(n) != nil || *n < 2 {
		return false
	}
	return *n == b.varset[b.level(*n)][1]
}

// IsVarOrNVar returns true if n is either the positive or the negative
// literal for some variable.
func (b *BDD) IsVarOrNVar(n Node) bool {
	return b.IsVar(n) || b.IsNVar(n)
}

// Low returns the false branch of n, or nil if n is invalid.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Low (%v)", n)
	}
	if *n < 2 {
		return nil
	}
	return b.retnode(b.low(*n))
}

// High returns the true branch of n, or nil if n is invalid.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to High (%v)", n)
	}
	if *n < 2 {
		return nil
	}
	return b.retnode(b.high(*n))
}

// Variable returns the level (the variable index) of n, or -1 if n is one
// of the two constants.
func (b *BDD) Variable(n Node) int {
	if b.checkptr(n) != nil || *n < 2 {
		return -1
	}
	return int(b.level(*n))
}

// IsConst returns true if n denotes one of the two constant functions.
func (b *BDD) IsConst(n Node) bool {
	return b.checkptr(n) == nil && *n < 2
}

// IsValid returns true if n refers to a live node in this BDD.
func (b *BDD) IsValid(n Node) bool {
	return b.checkptr(n) == nil
}

// CreateVar extends the BDD with one new variable and returns its index.
func (b *BDD) CreateVar() (int, error) {
	vars, err := b.CreateVars(1)
	if err != nil {
		return -1, err
	}
	return vars[0], nil
}

// CreateVars extends the BDD with num new variables and returns their
// indices.
func (b *BDD) CreateVars(num int) ([]int, error) {
	if num < 0 {
		return nil, ErrBadVariable
	}
	oldvarnum := b.varnum
	newvarnum := b.varnum + int32(num)
	if newvarnum > _MAXVAR {
		return nil, ErrBadVariable
	}
	tmpvarset := b.varset
	b.varset = make([][2]int, newvarnum)
	copy(b.varset, tmpvarset)

	b.nodes[0].level = newvarnum
	b.nodes[1].level = newvarnum

	b.refstack = make([]int, 0, 2*newvarnum+4)
	b.initref()

	added := make([]int, 0, num)
	for ; b.varnum < newvarnum; b.varnum++ {
		v0 := b.makenode(b.varnum, 0, 1)
		if v0 < 0 {
			b.varnum = oldvarnum
			return nil, b.error
		}
		b.pushref(v0)
		v1 := b.makenode(b.varnum, 1, 0)
		if v1 < 0 {
			b.varnum = oldvarnum
			return nil, b.error
		}
		b.popref(1)
		b.varset[b.varnum] = [2]int{v0, v1}
		b.nodes[v0].refcou = _MAXREFCOUNT
		b.nodes[v1].refcou = _MAXREFCOUNT
		added = append(added, int(b.varnum))
	}

	b.quantset = make([]int32, b.varnum)
	b.quantsetID = 0
	b.log.WithField("varnum", b.varnum).Debug("BDD extended with new variables")
	return added, nil
}

// *************************************************************************
// Node table: unicity (hash-consing), resizing

// makenode returns the unique node for (level, low, high), creating it if
// necessary. If low == high the node is redundant and its child is
// returned directly, the defining reduction rule of a ROBDD. On failure
// (table exhausted and unable to grow) it records ErrMemory on b and
// returns -1; callers propagate this the same way as the rest of the
// package, by checking for a negative node index.
func (b *BDD) makenode(level int32, low, high int) int {
	if low == high {
		return low
	}
	hash := b.nodehash(level, low, high)
	res := b.nodes[hash].hash
	for res != 0 {
		if b.nodes[res].level&0x1FFFFF == level && b.nodes[res].low == low && b.nodes[res].high == high {
			return res
		}
		res = b.nodes[res].next
	}
	if b.freepos == 0 {
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if b.noderesize() != nil {
				b.seterror(ErrMemory, "unable to resize BDD")
				return -1
			}
			hash = b.nodehash(level, low, high)
		}
		if b.freepos == 0 {
			b.seterror(ErrMemory, "unable to free memory")
			return -1
		}
	}
	res = b.freepos
	b.freepos = b.nodes[b.freepos].next
	b.freenum--
	b.produced++
	b.nodes[res].level = level
	b.nodes[res].low = low
	b.nodes[res].high = high
	b.nodes[res].next = b.nodes[hash].hash
	b.nodes[hash].hash = res
	return res
}

func (b *BDD) noderesize() error {
	oldsize := len(b.nodes)
	nodesize := oldsize
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return ErrMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	nodesize = primeGte(nodesize)
	if nodesize <= oldsize {
		return ErrMemory
	}

	b.log.WithFields(logrus.Fields{"from": oldsize, "to": nodesize}).Debug("resizing node table")

	tmp := b.nodes
	b.nodes = make([]node, nodesize)
	copy(b.nodes, tmp)
	for n := 0; n < oldsize; n++ {
		b.nodes[n].hash = 0
	}
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = node{low: -1, next: n + 1}
	}
	b.nodes[nodesize-1].next = 0

	b.freepos = 0
	b.freenum = 0
	for n := nodesize - 1; n > 1; n-- {
		if b.nodes[n].low != -1 {
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else {
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	b.cacheresize(nodesize)
	return nil
}

func (b *BDD) size() int {
	return len(b.nodes)
}
