package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/limaJavier/qbf/internal/formula"
	"github.com/samber/lo"
)

// Parse reads a QDIMACS formula: comment lines, an informational problem line,
// "a"/"e" quantifier blocks and clause lines, each terminated by 0. Ordering in
// the input defines the prefix order. Clause variables must be explicitly
// quantified.
func Parse(in io.Reader) (*formula.Formula, error) {
	f := formula.New()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, fmt.Errorf("malformed problem line: %q", line)
			}
			continue // Problem line is informational
		}

		switch {
		case strings.HasPrefix(line, "a"), strings.HasPrefix(line, "e"):
			quantifier := formula.ForAll
			if line[0] == 'e' {
				quantifier = formula.Exists
			}
			variables, err := readBlock(line)
			if err != nil {
				return nil, err
			}
			if err := f.AddBlock(quantifier, variables); err != nil {
				return nil, err
			}
		default:
			clause, err := readClause(line)
			if err != nil {
				return nil, err
			}
			f.AddClause(clause)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	//** Every clause variable must belong to a quantifier block
	for _, clause := range f.Clauses() {
		for _, lit := range clause {
			if !f.Quantified(lit.Variable) {
				return nil, fmt.Errorf("variable x%v appears in a clause but is not quantified", lit.Variable)
			}
		}
	}

	return f, nil
}

func readBlock(line string) ([]formula.Variable, error) {
	values, err := readValues(line[1:], line)
	if err != nil {
		return nil, err
	}
	return lo.Map(values, func(value int, _ int) formula.Variable {
		return formula.Variable(value)
	}), nil
}

func readClause(line string) (formula.Clause, error) {
	values, err := readValues(line, line)
	if err != nil {
		return nil, err
	}
	return lo.Map(values, func(value int, _ int) formula.Literal {
		if value < 0 {
			return formula.NewLiteral(formula.Variable(-value), true)
		}
		return formula.NewLiteral(formula.Variable(value), false)
	}), nil
}

// readValues parses a 0-terminated run of nonzero integers.
func readValues(body, line string) ([]int, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, fmt.Errorf("line is not terminated by 0: %q", line)
	}

	values := make([]int, 0, len(fields)-1)
	for _, field := range fields[:len(fields)-1] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid token %q in line %q", field, line)
		}
		if value == 0 {
			return nil, fmt.Errorf("unexpected 0 before the end of line %q", line)
		}
		values = append(values, value)
	}
	return values, nil
}

// Write renders the formula back to QDIMACS. Parsing the output yields an
// equivalent formula.
func Write(out io.Writer, f *formula.Formula) error {
	maxVariable := formula.Variable(0)
	for _, block := range f.Blocks() {
		for _, variable := range block.Variables {
			if variable > maxVariable {
				maxVariable = variable
			}
		}
	}

	if _, err := fmt.Fprintf(out, "p cnf %v %v\n", maxVariable, len(f.Clauses())); err != nil {
		return err
	}

	for _, block := range f.Blocks() {
		prefix := "a"
		if block.Quantifier == formula.Exists {
			prefix = "e"
		}
		variables := lo.Map(block.Variables, func(variable formula.Variable, _ int) string {
			return strconv.Itoa(int(variable))
		})
		if _, err := fmt.Fprintf(out, "%v %v 0\n", prefix, strings.Join(variables, " ")); err != nil {
			return err
		}
	}

	for _, clause := range f.Clauses() {
		literals := lo.Map(clause, func(lit formula.Literal, _ int) string {
			if lit.Negated {
				return strconv.Itoa(-int(lit.Variable))
			}
			return strconv.Itoa(int(lit.Variable))
		})
		literals = append(literals, "0")
		if _, err := fmt.Fprintln(out, strings.Join(literals, " ")); err != nil {
			return err
		}
	}
	return nil
}
