// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

// Not returns the negation of n, by exchanging every reference to the
// False-terminal with a reference to the True-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Not (%v)", n)
	}
	b.initref()
	b.pushref(*n)
	res := b.not(*n)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) not(n int) int {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	if res := b.applycache.matchnot(n); res >= 0 {
		return res
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	res := b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.applycache.setnot(n, res)
}

// Apply computes the result of op applied pointwise to n1 and n2, e.g.
// Apply(n1, n2, OPand) computes n1 & n2. See type Operator for the full
// list of supported binary operations.
func (b *BDD) Apply(n1, n2 Node, op Operator) Node {
	if b.checkptr(n1) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Apply %s(n1: %v, n2: ...)", op, n1)
	}
	if b.checkptr(n2) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Apply %s(n1: ..., n2: %v)", op, n2)
	}
	b.applycache.op = int(op)
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	res := b.apply(*n1, *n2)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) apply(left int, right int) int {
	switch Operator(b.applycache.op) {
	case OPand:
		if left == right {
			return left
		}
		if (left == 0) || (right == 0) {
			return 0
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == 1) || (right == 1) {
			return 1
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPnand:
		if (left == 0) || (right == 0) {
			return 1
		}
	case OPnor:
		if (left == 1) || (right == 1) {
			return 0
		}
	case OPimp:
		if left == 0 {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	case OPbiimp:
		if left == right {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPdiff:
		if left == right {
			return 0
		}
		if right == 1 {
			return 0
		}
		if left == 0 {
			return 0
		}
	case OPless:
		if (left == right) || (left == 1) {
			return 0
		}
		if left == 0 {
			return right
		}
	case OPinvimp:
		if right == 0 {
			return 1
		}
		if right == 1 {
			return left
		}
		if left == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	default:
		b.seterror(ErrBadVariable, "unauthorized operation (%s) in apply", Operator(b.applycache.op))
		return -1
	}

	if left < 0 || right < 0 {
		return -1
	}
	if (left < 2) && (right < 2) {
		return opres[b.applycache.op][left][right]
	}
	if res := b.applycache.matchapply(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.apply(b.low(left), b.low(right)))
		high := b.pushref(b.apply(b.high(left), b.high(right)))
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.pushref(b.apply(b.low(left), right))
		high := b.pushref(b.apply(b.high(left), right))
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.pushref(b.apply(left, b.low(right)))
		high := b.pushref(b.apply(left, b.high(right)))
		res = b.makenode(rightlvl, low, high)
	}
	b.popref(2)
	return b.applycache.setapply(left, right, res)
}

// And returns the logical conjunction of a sequence of nodes. And() with no
// arguments is the constant True.
func (b *BDD) And(n ...Node) Node {
	switch len(n) {
	case 0:
		return bddone
	case 1:
		return n[0]
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPand)
	}
	return res
}

// Or returns the logical disjunction of a sequence of nodes. Or() with no
// arguments is the constant False.
func (b *BDD) Or(n ...Node) Node {
	switch len(n) {
	case 0:
		return bddzero
	case 1:
		return n[0]
	}
	res := n[0]
	for _, m := range n[1:] {
		res = b.Apply(res, m, OPor)
	}
	return res
}

// Xor returns the logical exclusive-or of n1 and n2.
func (b *BDD) Xor(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPxor)
}

// Nand returns the negation of the conjunction of n1 and n2.
func (b *BDD) Nand(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPnand)
}

// Nor returns the negation of the disjunction of n1 and n2.
func (b *BDD) Nor(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPnor)
}

// Imp returns the logical implication n1 -> n2.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Implies reports whether n1 implies n2, i.e. whether implication(n1,n2) is
// the constant True, distinct from Imp which builds the implication node
// itself. Short-circuits without building any new node when n1 is already
// the constant False or n2 the constant True.
func (b *BDD) Implies(n1, n2 Node) bool {
	if b.checkptr(n1) != nil || b.checkptr(n2) != nil {
		return false
	}
	if *n1 == 0 || *n2 == 1 {
		return true
	}
	return b.Equal(b.Imp(n1, n2), bddone)
}

// Equiv returns the logical bi-implication (equivalence) of n1 and n2.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal tests structural equivalence between nodes: since the unicity table
// guarantees canonicity, two nodes denote the same function iff they are
// the same index.
func (b *BDD) Equal(n1, n2 Node) bool {
	if n1 == n2 {
		return true
	}
	if n1 == nil || n2 == nil {
		return false
	}
	return *n1 == *n2
}

// Ite (if-then-else) computes [(f & g) | (!f & h)], more efficiently than
// performing the three operations separately.
func (b *BDD) Ite(f, g, h Node) Node {
	if b.checkptr(f) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Ite (f: %v)", f)
	}
	if b.checkptr(g) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Ite (g: %v)", g)
	}
	if b.checkptr(h) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Ite (h: %v)", h)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) iteLow(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) iteHigh(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest of p, q and r; used by ite to find the top
// variable level among the three operands.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case (g == 1) && (h == 0):
		return f
	case (g == 0) && (h == 1):
		return b.not(f)
	}
	if f < 0 || g < 0 || h < 0 {
		return -1
	}
	if res := b.itecache.matchite(f, g, h); res >= 0 {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.iteLow(p, q, r, f), b.iteLow(q, p, r, g), b.iteLow(r, p, q, h)))
	high := b.pushref(b.ite(b.iteHigh(p, q, r, f), b.iteHigh(q, p, r, g), b.iteHigh(r, p, q, h)))
	res := b.makenode(min3(p, q, r), low, high)
	b.popref(2)
	return b.itecache.setite(f, g, h, res)
}

// Exist returns the existential quantification of n over the variables in
// varset, a node built with Cube or Makeset: Exist(n, varset) computes
// (∃ varset . n).
func (b *BDD) Exist(n, varset Node) Node {
	return b.quantify(n, varset, OPor, cacheidEXIST)
}

// Forall returns the universal quantification of n over the variables in
// varset: Forall(n, varset) computes (∀ varset . n). It is the dual of
// Exist, using conjunction instead of disjunction at quantified levels.
func (b *BDD) Forall(n, varset Node) Node {
	return b.quantify(n, varset, OPand, cacheidFORALL)
}

func (b *BDD) quantify(n, varset Node, op Operator, id int) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong node in quantification (n: %v)", n)
	}
	if b.checkptr(varset) != nil {
		return b.seterror(ErrInvalidNode, "wrong varset in quantification (%v)", varset)
	}
	if *varset < 2 {
		return n
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}
	b.quantcache.id = id
	b.applycache.op = int(op)
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n, *varset)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) quant(n, varset int) int {
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	if res := b.quantcache.matchquant(n, varset); res >= 0 {
		return res
	}
	low := b.pushref(b.quant(b.low(n), varset))
	high := b.pushref(b.quant(b.high(n), varset))
	var res int
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(b.level(n), low, high)
	}
	b.popref(2)
	return b.quantcache.setquant(n, varset, res)
}

// AppEx applies the binary operator op to n1 and n2, then existentially
// quantifies the variables in varset: it computes (∃ varset . n1 op n2) in
// a single bottom-up pass, which is considerably cheaper than an Apply
// followed by an Exist. When op is OPand, this is the relational product of
// n1 and n2, used to compute image/pre-image during state-space exploration
// (see AndExist).
func (b *BDD) AppEx(n1, n2 Node, op Operator, varset Node) Node {
	if op > OPnor {
		return b.seterror(ErrBadVariable, "operator %s not supported in AppEx", op)
	}
	if b.checkptr(varset) != nil {
		return b.seterror(ErrInvalidNode, "wrong varset in call to AppEx (%v)", varset)
	}
	if *varset < 2 {
		return b.Apply(n1, n2, op)
	}
	if b.checkptr(n1) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to AppEx %s(left: %v)", op, n1)
	}
	if b.checkptr(n2) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to AppEx %s(right: %v)", op, n2)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.applycache.op = int(OPor)
	b.appexcache.op = int(op)
	b.appexcache.id = (*varset << 2) | b.appexcache.op
	b.quantcache.id = (b.appexcache.id << 3) | cacheidAPPEX
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	b.pushref(*varset)
	res := b.appquant(*n1, *n2, *varset)
	b.popref(3)
	return b.retnode(res)
}

// AndExist returns the relational product of n1 and n2 with respect to
// varset, i.e. the result of (∃ varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}

func (b *BDD) appquant(left, right, varset int) int {
	switch Operator(b.appexcache.op) {
	case OPand:
		if left == 0 || right == 0 {
			return 0
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == 1 {
			return b.quant(right, varset)
		}
		if right == 1 {
			return b.quant(left, varset)
		}
	case OPor:
		if left == 1 || right == 1 {
			return 1
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == 0 {
			return b.quant(right, varset)
		}
		if right == 0 {
			return b.quant(left, varset)
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return b.quant(right, varset)
		}
		if right == 0 {
			return b.quant(left, varset)
		}
	case OPnand:
		if left == 0 || right == 0 {
			return 1
		}
	case OPnor:
		if left == 1 || right == 1 {
			return 0
		}
	default:
		b.seterror(ErrBadVariable, "unauthorized operation (%s) in AppEx", Operator(b.appexcache.op))
		return -1
	}

	if left < 0 || right < 0 {
		return -1
	}
	if (left < 2) && (right < 2) {
		return opres[b.appexcache.op][left][right]
	}
	if (b.level(left) > b.quantlast) && (b.level(right) > b.quantlast) {
		oldop := b.applycache.op
		b.applycache.op = b.appexcache.op
		res := b.apply(left, right)
		b.applycache.op = oldop
		return res
	}
	if res := b.appexcache.matchappex(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.appquant(b.low(left), b.low(right), varset))
		high := b.pushref(b.appquant(b.high(left), b.high(right), varset))
		if b.quantset[leftlvl] == b.quantsetID {
			res = b.apply(low, high)
		} else {
			res = b.makenode(leftlvl, low, high)
		}
	case leftlvl < rightlvl:
		low := b.pushref(b.appquant(b.low(left), right, varset))
		high := b.pushref(b.appquant(b.high(left), right, varset))
		if b.quantset[leftlvl] == b.quantsetID {
			res = b.apply(low, high)
		} else {
			res = b.makenode(leftlvl, low, high)
		}
	default:
		low := b.pushref(b.appquant(left, b.low(right), varset))
		high := b.pushref(b.appquant(left, b.high(right), varset))
		if b.quantset[rightlvl] == b.quantsetID {
			res = b.apply(low, high)
		} else {
			res = b.makenode(rightlvl, low, high)
		}
	}
	b.popref(2)
	return b.appexcache.setappex(left, right, res)
}
