package formula

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Variable int

type Quantifier int

const (
	Exists Quantifier = iota
	ForAll
)

func (q Quantifier) String() string {
	if q == Exists {
		return "∃"
	}
	return "∀"
}

type Literal struct {
	Variable Variable
	Negated  bool
}

func NewLiteral(variable Variable, negated bool) Literal {
	return Literal{Variable: variable, Negated: negated}
}

func (lit Literal) Complement() Literal {
	return Literal{Variable: lit.Variable, Negated: !lit.Negated}
}

func (lit Literal) String() string {
	if lit.Negated {
		return fmt.Sprintf("¬x%v", lit.Variable)
	}
	return fmt.Sprintf("x%v", lit.Variable)
}

type Clause []Literal

func (clause Clause) Contains(lit Literal) bool {
	return lo.Contains(clause, lit)
}

// Tautology reports whether the clause holds a literal together with its complement
func (clause Clause) Tautology() bool {
	return lo.SomeBy(clause, func(lit Literal) bool { return clause.Contains(lit.Complement()) })
}

func (clause Clause) Copy() Clause {
	copied := make(Clause, len(clause))
	copy(copied, clause)
	return copied
}

func (clause Clause) String() string {
	literals := lo.Map(clause, func(lit Literal, _ int) string { return lit.String() })
	return "(" + strings.Join(literals, " ∨ ") + ")"
}

type Block struct {
	Quantifier Quantifier
	Variables  []Variable
}

func (block Block) String() string {
	variables := lo.Map(block.Variables, func(variable Variable, _ int) string { return fmt.Sprintf("x%v", variable) })
	return fmt.Sprintf("%v %v", block.Quantifier, strings.Join(variables, ", "))
}

type Formula struct {
	blocks        []Block
	clauses       []Clause
	varQuantifier map[Variable]Quantifier
	varBlock      map[Variable]int
}

func New() *Formula {
	return &Formula{
		varQuantifier: make(map[Variable]Quantifier),
		varBlock:      make(map[Variable]int),
	}
}

// AddBlock appends a quantifier block to the prefix and keeps the derived indices in sync
func (f *Formula) AddBlock(quantifier Quantifier, variables []Variable) error {
	if len(variables) == 0 {
		return fmt.Errorf("a quantifier block must hold at least one variable")
	}

	for _, variable := range variables {
		if variable <= 0 {
			return fmt.Errorf("variables must be positive: %v", variable)
		}
		if _, ok := f.varBlock[variable]; ok {
			return fmt.Errorf("variable x%v is already quantified", variable)
		}
	}

	blockIndex := len(f.blocks)
	f.blocks = append(f.blocks, Block{Quantifier: quantifier, Variables: variables})
	for _, variable := range variables {
		f.varQuantifier[variable] = quantifier
		f.varBlock[variable] = blockIndex
	}
	return nil
}

func (f *Formula) AddClause(clause Clause) {
	f.clauses = append(f.clauses, clause)
}

func (f *Formula) Blocks() []Block {
	return f.blocks
}

func (f *Formula) Clauses() []Clause {
	return f.clauses
}

func (f *Formula) VarQuantifier() map[Variable]Quantifier {
	return f.varQuantifier
}

func (f *Formula) VarBlock() map[Variable]int {
	return f.varBlock
}

func (f *Formula) Quantified(variable Variable) bool {
	_, ok := f.varBlock[variable]
	return ok
}

func (f *Formula) String() string {
	prefix := lo.Map(f.blocks, func(block Block, _ int) string { return block.String() })
	matrix := lo.Map(f.clauses, func(clause Clause, _ int) string { return clause.String() })
	return strings.TrimSpace(strings.Join(prefix, " ") + " " + strings.Join(matrix, " ∧ "))
}
