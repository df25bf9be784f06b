// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package dimacs implements a DIMACS CNF front-end: it reads a file in the
// standard DIMACS CNF format and builds the robdd.Node representing the
// conjunction of its clauses. Parse errors never reach into the engine's
// internal state; the engine stays usable even after a malformed file.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-robdd/robdd"
	"github.com/pkg/errors"
)

// FormatError reports a malformed DIMACS file, tagged with the line at which
// the problem was detected.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Message)
}

func formatErrorf(line int, format string, a ...interface{}) error {
	return errors.WithStack(&FormatError{Line: line, Message: fmt.Sprintf(format, a...)})
}

// Result describes the CNF instance extracted from a DIMACS file: the
// number of variables and clauses declared by the header, and the BDD node
// representing the conjunction of every clause.
type Result struct {
	Variables int
	Clauses   int
	Formula   robdd.Node
}

// Parse reads a DIMACS CNF file from r and builds its conjunction of clauses
// as a node of bdd. Variables in the file are 1-indexed; DIMACS variable i
// maps to bdd variable i-1, so bdd must have been created with at least as
// many variables as the file's header declares (the number of variables in
// a BDD is append-only, so a bdd with too few variables is a usage error
// here, not something this parser grows on the caller's behalf). The
// returned Formula holds one reference, taken while parsing so that garbage
// collections triggered by later clauses cannot reclaim it.
func Parse(bdd *robdd.BDD, r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	res := &Result{}
	headerSeen := false
	remaining := 0
	line := 0
	formula := bdd.Reference(bdd.True())

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch text[0] {
		case 'c':
			continue // comment line
		case 'p':
			if headerSeen {
				return nil, formatErrorf(line, "duplicate header line")
			}
			fields := strings.Fields(text)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, formatErrorf(line, "malformed header %q, expected 'p cnf <vars> <clauses>'", text)
			}
			nvars, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, formatErrorf(line, "non-integer variable count %q", fields[2])
			}
			nclauses, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, formatErrorf(line, "non-integer clause count %q", fields[3])
			}
			if nvars < 0 || nclauses < 0 {
				return nil, formatErrorf(line, "negative count in header")
			}
			if nvars > bdd.Varnum() {
				return nil, formatErrorf(line, "header declares %d variables, bdd only has %d", nvars, bdd.Varnum())
			}
			res.Variables = nvars
			res.Clauses = nclauses
			remaining = nclauses
			headerSeen = true
		default:
			// one clause per non-comment, non-header line, terminated by 0
			if !headerSeen {
				return nil, formatErrorf(line, "clause before header")
			}
			clause, err := parseClause(bdd, text, line, res.Variables)
			if err != nil {
				return nil, err
			}
			if clause == nil {
				continue // blank line of only whitespace
			}
			bdd.UpdateWith(&formula, bdd.And(formula, clause))
			remaining--
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "dimacs: read error")
	}
	if !headerSeen {
		return nil, formatErrorf(line, "missing 'p cnf' header")
	}
	if remaining != 0 {
		return nil, formatErrorf(line, "header declared a different number of clauses than found in the file")
	}
	res.Formula = formula
	return res, nil
}

// parseClause parses one line of literals terminated by 0 into the node
// representing their disjunction.
func parseClause(bdd *robdd.BDD, text string, line, nvars int) (robdd.Node, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	disj := bdd.False()
	seenZero := false
	for _, f := range fields {
		lit, err := strconv.Atoi(f)
		if err != nil {
			return nil, formatErrorf(line, "non-integer literal %q", f)
		}
		if lit == 0 {
			seenZero = true
			break
		}
		v := lit
		if v < 0 {
			v = -v
		}
		if v < 1 || v > nvars {
			return nil, formatErrorf(line, "literal %d out of declared range [1..%d]", lit, nvars)
		}
		if lit > 0 {
			disj = bdd.Or(disj, bdd.Ithvar(lit-1))
		} else {
			disj = bdd.Or(disj, bdd.NIthvar(v-1))
		}
	}
	if !seenZero {
		return nil, formatErrorf(line, "clause not terminated by 0")
	}
	return disj, nil
}
