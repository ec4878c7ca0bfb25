package preprocess

import (
	"sort"

	"github.com/limaJavier/qbf/internal/formula"
	"github.com/samber/lo"
)

type preprocessorImplementation struct {
	blocks        []formula.Block
	clauses       []formula.Clause
	varQuantifier map[formula.Variable]formula.Quantifier
	varBlock      map[formula.Variable]int
	assignments   formula.Assignment
}

func newPreprocessorImplementation(f *formula.Formula) *preprocessorImplementation {
	// Work on a deep copy: the input formula stays frozen
	clauses := lo.Map(f.Clauses(), func(clause formula.Clause, _ int) formula.Clause { return clause.Copy() })

	return &preprocessorImplementation{
		blocks:        f.Blocks(),
		clauses:       clauses,
		varQuantifier: f.VarQuantifier(),
		varBlock:      f.VarBlock(),
		assignments:   make(formula.Assignment),
	}
}

func (preprocessor *preprocessorImplementation) Preprocess() bool {
	for {
		if preprocessor.hasEmptyClause() {
			return false
		}

		changed := preprocessor.unitPropagate()
		changed = preprocessor.pureLiteralElimination() || changed

		if !changed {
			break
		}
	}
	return !preprocessor.hasEmptyClause()
}

func (preprocessor *preprocessorImplementation) Blocks() []formula.Block {
	return preprocessor.blocks
}

func (preprocessor *preprocessorImplementation) Clauses() []formula.Clause {
	return preprocessor.clauses
}

func (preprocessor *preprocessorImplementation) Assignments() formula.Assignment {
	return preprocessor.assignments
}

func (preprocessor *preprocessorImplementation) hasEmptyClause() bool {
	return lo.SomeBy(preprocessor.clauses, func(clause formula.Clause) bool { return len(clause) == 0 })
}

// unitPropagate assigns the literals of unit clauses whose propagation is safe
// under the quantifier prefix, innermost blocks first, until no unit fires.
func (preprocessor *preprocessorImplementation) unitPropagate() bool {
	changed := false

	for {
		foundUnit := false

		//** Collect unit literals together with their block indices
		type unitLiteral struct {
			lit        formula.Literal
			blockIndex int
		}
		units := make([]unitLiteral, 0)
		for _, clause := range preprocessor.clauses {
			if len(clause) == 1 {
				units = append(units, unitLiteral{lit: clause[0], blockIndex: preprocessor.varBlock[clause[0].Variable]})
			}
		}

		//** Process inner blocks first to maximize the number of safe propagations
		sort.SliceStable(units, func(i, j int) bool { return units[i].blockIndex > units[j].blockIndex })

		for _, unit := range units {
			variable := unit.lit.Variable
			if preprocessor.assignments.Assigned(variable) {
				continue
			}
			if !preprocessor.canPropagate(variable) {
				continue
			}

			//** Propagate: the unit literal must be true
			preprocessor.assignments.Assign(variable, !unit.lit.Negated)

			// Remove clauses satisfied by the unit literal
			preprocessor.clauses = lo.Filter(preprocessor.clauses, func(clause formula.Clause, _ int) bool {
				return !clause.Contains(unit.lit)
			})

			// Strip the falsified complement from the remaining clauses; a clause
			// stripped to nothing stays as the empty clause
			complement := unit.lit.Complement()
			for i, clause := range preprocessor.clauses {
				preprocessor.clauses[i] = lo.Filter(clause, func(lit formula.Literal, _ int) bool {
					return lit != complement
				})
			}

			changed = true
			foundUnit = true
			break
		}

		if !foundUnit {
			break
		}
	}

	return changed
}

// canPropagate applies the QBF safety rule for unit propagation: an existential
// unit is blocked by an unassigned universal from an earlier block occurring in
// any clause of the variable, a universal unit is blocked by an unassigned
// existential from a later block.
func (preprocessor *preprocessorImplementation) canPropagate(variable formula.Variable) bool {
	blockIndex := preprocessor.varBlock[variable]
	quantifier := preprocessor.varQuantifier[variable]

	for _, clause := range preprocessor.relevantClauses(variable) {
		for _, lit := range clause {
			if lit.Variable == variable || preprocessor.assignments.Assigned(lit.Variable) {
				continue
			}

			litBlockIndex := preprocessor.varBlock[lit.Variable]
			litQuantifier := preprocessor.varQuantifier[lit.Variable]

			if quantifier == formula.Exists && litBlockIndex < blockIndex && litQuantifier == formula.ForAll {
				return false // An earlier universal could still satisfy the clause
			}
			if quantifier == formula.ForAll && litBlockIndex > blockIndex && litQuantifier == formula.Exists {
				return false // A later existential may satisfy the clause for either value
			}
		}
	}
	return true
}

func (preprocessor *preprocessorImplementation) relevantClauses(variable formula.Variable) []formula.Clause {
	return lo.Filter(preprocessor.clauses, func(clause formula.Clause, _ int) bool {
		return lo.SomeBy(clause, func(lit formula.Literal) bool { return lit.Variable == variable })
	})
}

// pureLiteralElimination assigns every eligible pure literal its satisfying
// value, inner blocks first. A variable is eligible only once every variable of
// every earlier block is assigned.
func (preprocessor *preprocessorImplementation) pureLiteralElimination() bool {
	changed := false

	for blockIndex := len(preprocessor.blocks) - 1; blockIndex >= 0; blockIndex-- {
		block := preprocessor.blocks[blockIndex]

		for _, variable := range block.Variables {
			if preprocessor.assignments.Assigned(variable) {
				continue
			}
			if !preprocessor.canEliminate(variable) {
				continue
			}

			positivePure := preprocessor.isPureLiteral(formula.NewLiteral(variable, false))
			negativePure := preprocessor.isPureLiteral(formula.NewLiteral(variable, true))

			if positivePure || negativePure {
				// Either quantifier gets the satisfying polarity
				preprocessor.assignments.Assign(variable, positivePure)
				changed = true
			}
		}
	}

	if changed {
		preprocessor.simplifyClauses()
	}
	return changed
}

func (preprocessor *preprocessorImplementation) isPureLiteral(lit formula.Literal) bool {
	found := false
	for _, clause := range preprocessor.clauses {
		for _, currentLit := range clause {
			if currentLit.Variable == lit.Variable {
				if currentLit.Negated != lit.Negated {
					return false // Found the complement, not pure
				}
				found = true
			}
		}
	}
	return found
}

func (preprocessor *preprocessorImplementation) canEliminate(variable formula.Variable) bool {
	blockIndex := preprocessor.varBlock[variable]
	for i := 0; i < blockIndex; i++ {
		for _, earlier := range preprocessor.blocks[i].Variables {
			if !preprocessor.assignments.Assigned(earlier) {
				return false
			}
		}
	}
	return true
}

// simplifyClauses drops satisfied clauses and strips falsified literals under
// the current assignments. A clause stripped to nothing reduces the whole
// matrix to a single empty clause.
func (preprocessor *preprocessorImplementation) simplifyClauses() {
	simplified := make([]formula.Clause, 0, len(preprocessor.clauses))

	for _, clause := range preprocessor.clauses {
		satisfied := false
		remaining := make(formula.Clause, 0, len(clause))

		for _, lit := range clause {
			value, assigned := preprocessor.assignments.Satisfies(lit)
			if !assigned {
				remaining = append(remaining, lit)
			} else if value {
				satisfied = true
				break
			}
		}

		if satisfied {
			continue
		}
		if len(remaining) == 0 {
			preprocessor.clauses = []formula.Clause{{}}
			return
		}
		simplified = append(simplified, remaining)
	}

	preprocessor.clauses = simplified
}
