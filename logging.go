// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"github.com/sirupsen/logrus"
)

// DefaultLogger is the logrus logger used by BDDs created without an
// explicit Logger option. Debug-level tracing (GC cycles, resizes, cache
// pressure) is silent by default; callers can raise the level on
// DefaultLogger, or pass a dedicated logger with the Logger option, to get
// runtime-toggleable debug tracing without recompiling.
var DefaultLogger = logrus.New()

func init() {
	DefaultLogger.SetLevel(logrus.WarnLevel)
}

// Logger is a configuration option (function). Used as a parameter in New,
// it sets the logrus logger used to trace GC cycles, node table resizes, and
// cache statistics for this BDD. The default is DefaultLogger.
func Logger(l *logrus.Logger) func(*configs) {
	return func(c *configs) {
		c.logger = l
	}
}

func (b *BDD) logTable() {
	b.log.WithFields(logrus.Fields{
		"allocated": len(b.nodes),
		"free":      b.freenum,
		"produced":  b.produced,
	}).Debug("node table snapshot")
}
