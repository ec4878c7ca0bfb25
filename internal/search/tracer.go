package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/qbf/internal/formula"
)

// Tracer receives human-readable search events. Trace output is a side-channel:
// nothing in the engine depends on it.
type Tracer interface {
	Decision(depth int, variable formula.Variable, quantifier formula.Quantifier, value bool)
	Verdict(depth int, verdict Verdict)
}

type nopTracer struct{}

func (nopTracer) Decision(int, formula.Variable, formula.Quantifier, bool) {}

func (nopTracer) Verdict(int, Verdict) {}

func NewNopTracer() Tracer {
	return nopTracer{}
}

type writerTracer struct {
	out io.Writer
}

// NewWriterTracer writes one line per event, indented two spaces per depth.
func NewWriterTracer(out io.Writer) Tracer {
	return &writerTracer{out: out}
}

func (tracer *writerTracer) Decision(depth int, variable formula.Variable, quantifier formula.Quantifier, value bool) {
	fmt.Fprintf(tracer.out, "%v%v x%v := %v\n", strings.Repeat("  ", depth), quantifier, variable, value)
}

func (tracer *writerTracer) Verdict(depth int, verdict Verdict) {
	fmt.Fprintf(tracer.out, "%v=> %v\n", strings.Repeat("  ", depth), verdict)
}
