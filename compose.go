// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "math"

var composeID = 1

// Compose computes the result of simultaneously substituting, for every
// variable i in [0..len(subst)), variable i with the node subst[i] inside
// n; a nil entry (or any entry past the end of a shorter subst) means
// "keep variable i", the sentinel spec.md describes as -1. This is a
// genuinely simultaneous substitution, not a fold of single-variable
// substitutions: the recursion below computes compose(low(n)) and
// compose(high(n)) against the same, unmodified subst at every level, so
// one substituted variable can never see another substitution's result.
// Unlike Replace, which performs a pure renaming of variables (and so
// never changes the shape of the diagram beyond relabeling), Compose
// substitutes variables by arbitrary nodes and must rebuild the diagram
// below each substituted level using Ite.
func (b *BDD) Compose(n Node, subst []Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Compose (n: %v)", n)
	}
	if len(subst) > int(b.varnum) {
		return b.seterror(ErrBadVariable, "substitution array longer than Varnum (%d) in Compose", b.varnum)
	}
	repl := make([]int, b.varnum)
	for i := range repl {
		repl[i] = -1
	}
	b.initref()
	b.pushref(*n)
	held := 1
	for i, r := range subst {
		if r == nil {
			continue
		}
		if b.checkptr(r) != nil {
			return b.seterror(ErrInvalidNode, "wrong replacement for variable %d in Compose", i)
		}
		repl[i] = *r
		b.pushref(*r)
		held++
	}
	if composeID == (math.MaxInt32 >> 3) {
		composeID = 1
	}
	b.composecache.id = (composeID << 1) ^ cacheidCOMPOSE
	composeID++
	res := b.compose(*n, repl)
	b.popref(held)
	return b.retnode(res)
}

// ComposeVar is the single-variable case of Compose: substituting just
// variable with replacement is equivalent to calling the array-based
// Compose with every other entry left at the "keep variable i" sentinel.
func (b *BDD) ComposeVar(n Node, variable int, replacement Node) Node {
	if variable < 0 || variable >= int(b.varnum) {
		return b.seterror(ErrBadVariable, "variable index %d out of range in Compose", variable)
	}
	subst := make([]Node, variable+1)
	subst[variable] = replacement
	return b.Compose(n, subst)
}

func (b *BDD) compose(n int, repl []int) int {
	if n < 2 {
		return n
	}
	lvl := b.level(n)
	if res := b.composecache.matchcompose(n); res >= 0 {
		return res
	}
	var res int
	if g := repl[lvl]; g >= 0 {
		low := b.pushref(b.compose(b.low(n), repl))
		high := b.pushref(b.compose(b.high(n), repl))
		res = b.ite(g, high, low)
		b.popref(2)
	} else {
		low := b.pushref(b.compose(b.low(n), repl))
		high := b.pushref(b.compose(b.high(n), repl))
		res = b.makenode(lvl, low, high)
		b.popref(2)
	}
	return b.composecache.setcompose(n, res)
}

// *************************************************************************

// Cube returns the node corresponding to the conjunction of the literals
// described by positives (in their positive form) and negatives (negated).
// It generalizes Makeset, which only ever produced positive literals. The
// result is nil, with the error flag set, if a variable is out of range or
// appears in both lists.
func (b *BDD) Cube(positives, negatives []int) Node {
	seen := make(map[int]bool, len(positives)+len(negatives))
	res := b.True()
	for _, v := range positives {
		if v < 0 || v >= int(b.varnum) {
			return b.seterror(ErrBadVariable, "variable index %d out of range in Cube", v)
		}
		if seen[v] {
			return b.seterror(ErrBadVariable, "variable %d appears twice in Cube", v)
		}
		seen[v] = true
		res = b.Apply(res, b.Ithvar(v), OPand)
	}
	for _, v := range negatives {
		if v < 0 || v >= int(b.varnum) {
			return b.seterror(ErrBadVariable, "variable index %d out of range in Cube", v)
		}
		if seen[v] {
			return b.seterror(ErrBadVariable, "variable %d appears twice in Cube", v)
		}
		seen[v] = true
		res = b.Apply(res, b.NIthvar(v), OPand)
	}
	return res
}

// Makeset returns a node corresponding to the conjunction of all the
// variables in varset, in their positive form. It is a convenience
// shorthand for Cube(varset, nil), used throughout to build quantification
// sets.
func (b *BDD) Makeset(varset []int) Node {
	return b.Cube(varset, nil)
}

// Scanset returns the set of variable levels found by descending n along
// its non-False branch at each step, the dual of Makeset/Cube: it recovers
// the full variable set of a cube regardless of the polarity recorded at
// each level. The result is sorted by increasing level.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) != nil || *n < 2 {
		return nil
	}
	res := []int{}
	for i := *n; i > 1; {
		res = append(res, int(b.level(i)))
		if b.high(i) != 0 {
			i = b.high(i)
		} else {
			i = b.low(i)
		}
	}
	return res
}

// *************************************************************************

// Restrict computes the cofactor of n with respect to the single-path cube
// built by Cube: every variable mentioned by cube is fixed to the polarity
// it has there, and the rest of n is otherwise unchanged. This computes the
// generalized cofactor of n with an assignment, not a full quantification.
func (b *BDD) Restrict(n, cube Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror(ErrInvalidNode, "wrong operand in call to Restrict (n: %v)", n)
	}
	if b.checkptr(cube) != nil {
		return b.seterror(ErrInvalidNode, "wrong cube in call to Restrict (%v)", cube)
	}
	b.initref()
	b.pushref(*n)
	b.pushref(*cube)
	res := b.restrict(*n, *cube)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) restrict(n, cube int) int {
	if n < 2 || cube < 2 {
		return n
	}
	if res := b.restrictcache.matchrestrict(n, cube); res >= 0 {
		return res
	}
	nlevel := b.level(n)
	clevel := b.level(cube)
	var res int
	switch {
	case nlevel < clevel:
		low := b.pushref(b.restrict(b.low(n), cube))
		high := b.pushref(b.restrict(b.high(n), cube))
		res = b.makenode(nlevel, low, high)
		b.popref(2)
	case nlevel == clevel:
		if b.high(cube) == 0 {
			res = b.restrict(b.low(n), b.low(cube))
		} else {
			res = b.restrict(b.high(n), b.high(cube))
		}
	default: // nlevel > clevel: cube mentions a variable absent from n here
		if b.high(cube) == 0 {
			res = b.restrict(n, b.low(cube))
		} else {
			res = b.restrict(n, b.high(cube))
		}
	}
	return b.restrictcache.setrestrict(n, cube, res)
}

// *************************************************************************

// Support returns the sorted list of variable levels that occur in the cone
// of influence of n (i.e. the variables n actually depends on). It uses an
// explicit work stack, rather than native recursion, since a cone can be
// much deeper than the variable order bound that keeps apply/ite shallow.
func (b *BDD) Support(n Node) []int {
	return b.supportUpTo(n, -1)
}

// SupportUpTo is the bounded variant of Support: it stops the traversal
// early, once limit distinct variables have been found, to bound the work
// done on very large diagrams. A negative limit means no bound.
func (b *BDD) SupportUpTo(n Node, limit int) []int {
	return b.supportUpTo(n, limit)
}

func (b *BDD) supportUpTo(n Node, limit int) []int {
	if b.checkptr(n) != nil || *n < 2 {
		return nil
	}
	seen := make(map[int]bool)
	found := make(map[int32]bool)
	res := []int32{}
	stack := []int{*n}
	for len(stack) > 0 {
		if limit >= 0 && len(res) >= limit {
			break
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top < 2 || seen[top] {
			continue
		}
		seen[top] = true
		lvl := b.level(top)
		if !found[lvl] {
			found[lvl] = true
			res = append(res, lvl)
		}
		stack = append(stack, b.low(top), b.high(top))
	}
	out := make([]int, len(res))
	for i, v := range res {
		out[i] = int(v)
	}
	sortInts(out)
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
