// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "math/big"

// _PAIR bijectively maps a pair of integers (a, b) onto a single integer
// using Cantor's pairing function, then folds it into [0..len) with a
// modulo. _TRIPLE composes two applications of _PAIR to mix three values.
func _PAIR(a, b, len int) int {
	ua := uint64(a)
	ub := uint64(b)
	return int(((((ua + ub) * (ua + ub + 1)) / 2) + ua) % uint64(len))
}

func _TRIPLE(a, b, c, len int) int {
	return _PAIR(c, _PAIR(a, b, len), len)
}

// Hash value modifiers for replace/compose: each Replacer/Compose call gets
// a fresh id so cache entries from a previous substitution never leak into
// the next one.
const cacheidREPLACE int = 0x0
const cacheidCOMPOSE int = 0x1

// Hash value modifiers for quantification.
const cacheidEXIST int = 0x0
const cacheidFORALL int = 0x1
const cacheidAPPEX int = 0x3

// *************************************************************************
// Prime-sized tables: both the node table and the result caches are sized to
// a prime to keep the modulo-based hashing above well distributed.

func hasFactor(src int, n int) bool {
	return (src != n) && (src%n == 0)
}

func hasEasyFactors(src int) bool {
	return hasFactor(src, 3) || hasFactor(src, 5) || hasFactor(src, 7) || hasFactor(src, 11) || hasFactor(src, 13)
}

// primeGte returns the smallest prime greater than or equal to src.
func primeGte(src int) int {
	if src%2 == 0 {
		src++
	}
	for {
		if hasEasyFactors(src) {
			src += 2
			continue
		}
		// ProbablyPrime is 100% accurate for inputs less than 2^64.
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}

// primeLte returns the largest prime less than or equal to src.
func primeLte(src int) int {
	if src == 0 {
		return 1
	}
	if src%2 == 0 {
		src--
	}
	for {
		if hasEasyFactors(src) {
			src -= 2
			continue
		}
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src -= 2
	}
}
