package solver

import (
	"github.com/limaJavier/qbf/internal/formula"
	"github.com/limaJavier/qbf/internal/preprocess"
	"github.com/limaJavier/qbf/internal/search"
)

// Solver decides the truth of a prenex-CNF QBF.
type Solver interface {
	Decide(f *formula.Formula) search.Verdict
}

type Options struct {
	Tracer search.Tracer
}

func NewSolver(options Options) Solver {
	return &dpllSolver{options: options}
}

type dpllSolver struct {
	options Options
}

func (solver *dpllSolver) Decide(f *formula.Formula) search.Verdict {
	//** Simplify first: the preprocessor may already settle the verdict
	preprocessor := preprocess.NewPreprocessor(f)
	if !preprocessor.Preprocess() {
		return search.Unsat
	}

	//** Search the residual formula under the published state
	engine := search.NewEngine(
		preprocessor.Blocks(),
		preprocessor.Clauses(),
		preprocessor.Assignments(),
		solver.options.Tracer,
	)
	return engine.Search()
}
