package search

import (
	"github.com/limaJavier/qbf/internal/formula"
	"github.com/samber/lo"
)

// Engine runs the recursive DPLL search over the quantifier prefix. It owns its
// working copy of the matrix and assignments for the lifetime of one Search
// call; the engine is not re-entrant.
type Engine struct {
	blocks        []formula.Block
	clauses       []formula.Clause
	assignments   formula.Assignment
	varQuantifier map[formula.Variable]formula.Quantifier
	varBlock      map[formula.Variable]int
	tracer        Tracer
	Statistics    *Statistics
}

func NewEngine(blocks []formula.Block, clauses []formula.Clause, assignments formula.Assignment, tracer Tracer) *Engine {
	if tracer == nil {
		tracer = NewNopTracer()
	}

	//** Rebuild the derived indices from the prefix
	varQuantifier := make(map[formula.Variable]formula.Quantifier)
	varBlock := make(map[formula.Variable]int)
	for blockIndex, block := range blocks {
		for _, variable := range block.Variables {
			varQuantifier[variable] = block.Quantifier
			varBlock[variable] = blockIndex
		}
	}

	engine := &Engine{
		blocks:        blocks,
		clauses:       lo.Map(clauses, func(clause formula.Clause, _ int) formula.Clause { return clause.Copy() }),
		assignments:   assignments.Copy(),
		varQuantifier: varQuantifier,
		varBlock:      varBlock,
		tracer:        tracer,
		Statistics:    &Statistics{},
	}

	//** Fold the seed assignments into the matrix so the residual only mentions
	//** unassigned variables
	for variable, value := range engine.assignments {
		engine.simplify(variable, value)
	}

	return engine
}

func (engine *Engine) Search() Verdict {
	return engine.search(0)
}

func (engine *Engine) Assignments() formula.Assignment {
	return engine.assignments
}

func (engine *Engine) search(depth int) Verdict {
	if depth > engine.Statistics.MaxDepth {
		engine.Statistics.MaxDepth = depth
	}

	//** Base cases: an empty clause falsifies the matrix, an empty matrix is true
	if engine.hasEmptyClause() {
		engine.tracer.Verdict(depth, Unsat)
		return Unsat
	}
	if len(engine.clauses) == 0 {
		engine.tracer.Verdict(depth, Sat)
		return Sat
	}

	variable, ok := engine.nextUnassigned()
	if !ok {
		// Every literal of the residual matrix belongs to an unassigned variable,
		// so a nonempty matrix always yields a decision variable
		engine.tracer.Verdict(depth, Sat)
		return Sat
	}

	if engine.varQuantifier[variable] == formula.Exists {
		return engine.branchExistential(variable, depth)
	}
	return engine.branchUniversal(variable, depth)
}

// branchExistential succeeds as soon as one branch succeeds.
func (engine *Engine) branchExistential(variable formula.Variable, depth int) Verdict {
	snapshot := engine.snapshot()

	engine.decide(variable, true, depth)
	if engine.search(depth+1) == Sat {
		return Sat
	}

	engine.restore(snapshot)
	engine.decide(variable, false, depth)
	if engine.search(depth+1) == Sat {
		return Sat
	}

	engine.restore(snapshot)
	return Unsat
}

// branchUniversal fails as soon as one branch fails.
func (engine *Engine) branchUniversal(variable formula.Variable, depth int) Verdict {
	snapshot := engine.snapshot()

	engine.decide(variable, true, depth)
	if engine.search(depth+1) == Unsat {
		engine.restore(snapshot)
		return Unsat
	}

	engine.restore(snapshot)
	engine.decide(variable, false, depth)
	if engine.search(depth+1) == Unsat {
		engine.restore(snapshot)
		return Unsat
	}

	return Sat
}

func (engine *Engine) decide(variable formula.Variable, value bool, depth int) {
	engine.Statistics.DecisionCount++
	engine.tracer.Decision(depth, variable, engine.varQuantifier[variable], value)
	engine.assignments.Assign(variable, value)
	engine.simplify(variable, value)
}

// simplify transforms the matrix under variable := value: satisfied clauses are
// dropped, falsified literals are stripped, and a clause stripped to nothing
// stays in the list as the contradiction signal.
func (engine *Engine) simplify(variable formula.Variable, value bool) {
	satisfied := formula.NewLiteral(variable, !value)
	falsified := formula.NewLiteral(variable, value)

	engine.clauses = lo.FilterMap(engine.clauses, func(clause formula.Clause, _ int) (formula.Clause, bool) {
		if clause.Contains(satisfied) {
			return nil, false
		}
		return lo.Filter(clause, func(lit formula.Literal, _ int) bool { return lit != falsified }), true
	})
}

// nextUnassigned scans the prefix outermost block first, insertion order within
// a block.
func (engine *Engine) nextUnassigned() (formula.Variable, bool) {
	for _, block := range engine.blocks {
		for _, variable := range block.Variables {
			if !engine.assignments.Assigned(variable) {
				return variable, true
			}
		}
	}
	return 0, false
}

func (engine *Engine) hasEmptyClause() bool {
	return lo.SomeBy(engine.clauses, func(clause formula.Clause) bool { return len(clause) == 0 })
}

// engineState holds the matrix and the assignments saved before a decision;
// restoring it also undoes every decision made further down the branch.
type engineState struct {
	clauses     []formula.Clause
	assignments formula.Assignment
}

func (engine *Engine) snapshot() engineState {
	engine.Statistics.SnapshotCount++
	return engineState{
		clauses:     lo.Map(engine.clauses, func(clause formula.Clause, _ int) formula.Clause { return clause.Copy() }),
		assignments: engine.assignments.Copy(),
	}
}

func (engine *Engine) restore(state engineState) {
	engine.Statistics.BacktrackCount++
	engine.clauses = lo.Map(state.clauses, func(clause formula.Clause, _ int) formula.Clause { return clause.Copy() })
	engine.assignments = state.assignments.Copy()
}
