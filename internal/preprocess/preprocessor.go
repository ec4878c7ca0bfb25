package preprocess

import "github.com/limaJavier/qbf/internal/formula"

// Preprocessor simplifies a QBF under quantifier-order constraints. Preprocess
// returns false when the matrix holds an empty clause at the fixed point, that
// is, when the formula is already proven unsatisfiable.
type Preprocessor interface {
	Preprocess() bool
	Blocks() []formula.Block
	Clauses() []formula.Clause
	Assignments() formula.Assignment
}

func NewPreprocessor(f *formula.Formula) Preprocessor {
	return newPreprocessorImplementation(f)
}
