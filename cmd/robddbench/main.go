// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command robddbench is a benchmark harness: it drives the robdd engine on
// a handful of classic BDD benchmarks (N-Queens, Milner's cyclers, and an
// arbitrary DIMACS CNF file) and reports timing and node-table statistics.
// It consumes only the public API of package robdd.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-robdd/robdd"
	"github.com/go-robdd/robdd/dimacs"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "robddbench",
		Usage: "benchmark harness for the robdd engine",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "print engine statistics after each run"},
		},
		Commands: []*cli.Command{
			nqueensCommand,
			milnerCommand,
			dimacsCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("robddbench failed")
	}
}

var nqueensCommand = &cli.Command{
	Name:      "nqueens",
	Usage:     "count solutions to the N-Queens problem",
	ArgsUsage: "N",
	Action: func(c *cli.Context) error {
		n := 8
		if c.Args().Len() > 0 {
			fmt.Sscanf(c.Args().First(), "%d", &n)
		}
		start := time.Now()
		count, bdd, err := nqueens(n)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"n": n, "elapsed": time.Since(start)}).Info("nqueens done")
		fmt.Printf("solutions(%d) = %s\n", n, count)
		if c.Bool("verbose") {
			fmt.Print(bdd.Stats())
		}
		return nil
	},
}

var milnerCommand = &cli.Command{
	Name:      "milner",
	Usage:     "compute the reachable state space of Milner's cyclers",
	ArgsUsage: "N",
	Action: func(c *cli.Context) error {
		n := 8
		if c.Args().Len() > 0 {
			fmt.Sscanf(c.Args().First(), "%d", &n)
		}
		start := time.Now()
		count, bdd, err := milner(n)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"n": n, "elapsed": time.Since(start)}).Info("milner done")
		fmt.Printf("reachable states(%d) = %s\n", n, count)
		if c.Bool("verbose") {
			fmt.Print(bdd.Stats())
		}
		return nil
	},
}

var dimacsCommand = &cli.Command{
	Name:      "dimacs",
	Usage:     "count satisfying assignments of a DIMACS CNF file",
	ArgsUsage: "file.cnf",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return cli.Exit("dimacs requires exactly one file argument", 1)
		}
		contents, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		nvars, err := scanVarCount(contents)
		if err != nil {
			return err
		}
		bdd, err := robdd.New(nvars + 1)
		if err != nil {
			return err
		}
		probe, err := dimacs.Parse(bdd, bytes.NewReader(contents))
		if err != nil {
			return err
		}
		count, err := bdd.Satcount(probe.Formula)
		if err != nil {
			return err
		}
		// the engine has one variable more than the file declares, and that
		// unconstrained variable doubles the count
		count.Rsh(count, 1)
		fmt.Printf("satisfying assignments = %s (of %d variables)\n", count, probe.Variables)
		if c.Bool("verbose") {
			fmt.Print(bdd.Stats())
		}
		return nil
	},
}

// scanVarCount reads just far enough into a DIMACS file to find its "p cnf"
// header and return the declared variable count, so the caller can size the
// engine before the real parse in dimacs.Parse.
func scanVarCount(contents []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(text, "p ") {
			fields := strings.Fields(text)
			if len(fields) != 4 {
				return 0, fmt.Errorf("dimacs: malformed header %q", text)
			}
			return strconv.Atoi(fields[2])
		}
	}
	return 0, fmt.Errorf("dimacs: no 'p cnf' header found")
}

// nqueens builds the BDD counting placements of N non-attacking queens on
// an NxN board, following the classic column/row/diagonal encoding (see
// nqueens_test.go for the same construction used in the engine's own test
// suite).
func nqueens(n int) (*big.Int, *robdd.BDD, error) {
	bdd, err := robdd.New(n*n, robdd.Nodesize(n*n*256), robdd.Cachesize(n*n*64), robdd.Cacheratio(30))
	if err != nil {
		return nil, nil, err
	}
	x := make([][]robdd.Node, n)
	for i := range x {
		x[i] = make([]robdd.Node, n)
		for j := range x[i] {
			x[i][j] = bdd.Ithvar(i*n + j)
		}
	}
	queen := bdd.True()
	for i := 0; i < n; i++ {
		e := bdd.False()
		for j := 0; j < n; j++ {
			e = bdd.Or(e, x[i][j])
		}
		queen = bdd.And(queen, e)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := bdd.True()
			for k := 0; k < n; k++ {
				if k != j {
					a = bdd.And(a, bdd.Imp(x[i][j], bdd.Not(x[i][k])))
				}
			}
			b := bdd.True()
			for k := 0; k < n; k++ {
				if k != i {
					b = bdd.And(b, bdd.Imp(x[i][j], bdd.Not(x[k][j])))
				}
			}
			d1 := bdd.True()
			for k := 0; k < n; k++ {
				l := k - i + j
				if l >= 0 && l < n && k != i {
					d1 = bdd.And(d1, bdd.Imp(x[i][j], bdd.Not(x[k][l])))
				}
			}
			d2 := bdd.True()
			for k := 0; k < n; k++ {
				l := i + j - k
				if l >= 0 && l < n && k != i {
					d2 = bdd.And(d2, bdd.Imp(x[i][j], bdd.Not(x[k][l])))
				}
			}
			queen = bdd.And(queen, a, b, d1, d2)
		}
	}
	count, err := bdd.Satcount(queen)
	if err != nil {
		return nil, nil, err
	}
	return count, bdd, nil
}

// milner builds the transition relation for a ring of n Milner cyclers and
// computes the reachable state space by iterating AndExist/Replace to a
// fixpoint, exactly the way milner_test.go does for the engine's own
// correctness tests.
func milner(n int) (*big.Int, *robdd.BDD, error) {
	bdd, err := robdd.New(n * 6)
	if err != nil {
		return nil, nil, err
	}
	c := make([]robdd.Node, n)
	cp := make([]robdd.Node, n)
	t := make([]robdd.Node, n)
	tp := make([]robdd.Node, n)
	h := make([]robdd.Node, n)
	hp := make([]robdd.Node, n)
	for i := 0; i < n; i++ {
		c[i] = bdd.Ithvar(i * 6)
		cp[i] = bdd.Ithvar(i*6 + 1)
		t[i] = bdd.Ithvar(i*6 + 2)
		tp[i] = bdd.Ithvar(i*6 + 3)
		h[i] = bdd.Ithvar(i*6 + 4)
		hp[i] = bdd.Ithvar(i*6 + 5)
	}
	nvar := make([]int, n*3)
	pvar := make([]int, n*3)
	for i := 0; i < n*3; i++ {
		nvar[i] = i * 2
		pvar[i] = i*2 + 1
	}
	replacer, err := bdd.NewReplacer(pvar, nvar)
	if err != nil {
		return nil, nil, err
	}

	// same()'s accumulator, and every Node held across a loop iteration or an
	// intervening And/Or call below, is explicitly referenced (same() returns
	// its result still referenced, and that reference is never released,
	// since the results of several same() calls in one argument list are
	// held while the later ones run): this package
	// uses the engine's explicit Reference/Dereference discipline rather
	// than automatic reclaiming, so an unreferenced intermediate can be
	// swept by a garbage collection triggered by a later call.
	same := func(x, y []robdd.Node, z int) robdd.Node {
		res := bdd.Reference(bdd.True())
		for i := 0; i < n; i++ {
			if i != z {
				bdd.UpdateWith(&res, bdd.And(res, bdd.Equiv(x[i], y[i])))
			}
		}
		return res
	}

	initial := bdd.Reference(bdd.And(c[0], bdd.Not(h[0]), bdd.Not(t[0])))
	for i := 1; i < n; i++ {
		bdd.UpdateWith(&initial, bdd.And(initial, bdd.Not(c[i]), bdd.Not(h[i]), bdd.Not(t[i])))
	}

	trans := bdd.Reference(bdd.False())
	for i := 0; i < n; i++ {
		p1 := bdd.Reference(bdd.And(c[i], bdd.Not(cp[i]), tp[i], bdd.Not(t[i]), hp[i], same(c, cp, i), same(t, tp, i), same(h, hp, i)))
		p2 := bdd.Reference(bdd.And(h[i], bdd.Not(hp[i]), cp[(i+1)%n], same(c, cp, (i+1)%n), same(h, hp, i), same(t, tp, n)))
		e := bdd.Reference(bdd.And(t[i], bdd.Not(tp[i]), same(t, tp, i), same(h, hp, n), same(c, cp, n)))
		bdd.UpdateWith(&trans, bdd.Or(trans, p1, bdd.Or(p2, e)))
		bdd.Dereference(p1)
		bdd.Dereference(p2)
		bdd.Dereference(e)
	}

	reach := initial // already referenced above
	normvar := bdd.Reference(bdd.Makeset(nvar))
	for {
		prev := reach
		next := bdd.Or(bdd.Replace(bdd.AndExist(normvar, reach, trans), replacer), reach)
		bdd.UpdateWith(&reach, next)
		if bdd.Equal(prev, reach) {
			break
		}
	}
	bdd.Dereference(normvar)
	bdd.Dereference(trans)
	count, err := bdd.Satcount(reach)
	if err != nil {
		return nil, nil, err
	}
	return count, bdd, nil
}
