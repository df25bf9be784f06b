// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "github.com/sirupsen/logrus"

// configs stores the value of the different tunable parameters of a BDD.
type configs struct {
	varnum          int // number of BDD variables
	nodesize        int // initial number of nodes in the table
	cachesize       int // initial cache size (general)
	cacheratio      int // initial ratio (general, 0 if size constant) between cache size and node table
	maxnodesize     int // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int // Maximum number of nodes that can be added to the table at each resize (0 if no limit)
	minfreenodes    int // Minimum number of nodes that should be left after GC before triggering a resize
	logger          *logrus.Logger
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	// we build enough nodes to include all the variables in varset
	c.nodesize = 2*varnum + 2
	c.logger = DefaultLogger
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New,
// it sets a preferred initial size for the node table. The size of the BDD
// can increase during computation. By default we create a table large
// enough to include the two constants and the variables used in the call to
// Ithvar and NIthvar.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in
// New, it sets a limit to the number of nodes in the BDD. An operation
// trying to raise the number of nodes above this limit returns ErrMemory.
// The default value (0) means there is no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter
// in New, it sets a limit on the increase in size of the node table. Below
// this limit we typically double the size of the node list on every resize.
// The default value is about a million nodes. Set it to zero to remove the
// limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in
// New, it sets the ratio of free nodes (%) that must be left after a garbage
// collection, below which we resize instead of relying on the just-freed
// slots. The default value is 20%.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize is a configuration option (function). Used as a parameter in
// New, it sets the initial number of entries in the operation caches. The
// default value is 10 000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in
// New, it sets a ratio (%) so caches grow proportionally every time the node
// table is resized: with a ratio of r there are r available cache entries
// for every 100 slots in the node table. The default value (0) means the
// cache size never grows.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}
