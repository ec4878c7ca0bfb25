package qdimacs

import (
	"strings"
	"testing"

	"github.com/limaJavier/qbf/internal/formula"
	"github.com/onsi/gomega"
)

func TestParse(t *testing.T) {
	g := gomega.NewWithT(t)

	input := `c a small alternating instance
p cnf 3 2

e 1 0
a 2 0
e 3 0
1 -2 3 0
-1 2 0
`

	f, err := Parse(strings.NewReader(input))
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(f.Blocks()).To(gomega.HaveLen(3))
	g.Expect(f.Blocks()[0].Quantifier).To(gomega.Equal(formula.Exists))
	g.Expect(f.Blocks()[1].Quantifier).To(gomega.Equal(formula.ForAll))
	g.Expect(f.Blocks()[1].Variables).To(gomega.Equal([]formula.Variable{2}))

	g.Expect(f.Clauses()).To(gomega.Equal([]formula.Clause{
		{formula.NewLiteral(1, false), formula.NewLiteral(2, true), formula.NewLiteral(3, false)},
		{formula.NewLiteral(1, true), formula.NewLiteral(2, false)},
	}))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "clause not terminated by 0",
			input: "e 1 0\n1 -1\n",
		},
		{
			name:  "block not terminated by 0",
			input: "e 1 2\n",
		},
		{
			name:  "unexpected 0 inside a clause",
			input: "e 1 2 0\n1 0 2 0\n",
		},
		{
			name:  "invalid token",
			input: "e 1 0\n1 x 0\n",
		},
		{
			name:  "malformed problem line",
			input: "p cnf 3\ne 1 0\n1 0\n",
		},
		{
			name:  "variable quantified twice",
			input: "e 1 0\na 1 0\n1 0\n",
		},
		{
			name:  "clause over an unquantified variable",
			input: "e 1 0\n1 2 0\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			_, err := Parse(strings.NewReader(test.input))
			g.Expect(err).To(gomega.HaveOccurred())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	g := gomega.NewWithT(t)

	f := formula.New()
	g.Expect(f.AddBlock(formula.ForAll, []formula.Variable{1, 2})).To(gomega.Succeed())
	g.Expect(f.AddBlock(formula.Exists, []formula.Variable{3})).To(gomega.Succeed())
	f.AddClause(formula.Clause{formula.NewLiteral(1, false), formula.NewLiteral(3, true)})
	f.AddClause(formula.Clause{formula.NewLiteral(2, true), formula.NewLiteral(3, false)})

	var rendered strings.Builder
	g.Expect(Write(&rendered, f)).To(gomega.Succeed())

	parsed, err := Parse(strings.NewReader(rendered.String()))
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(parsed.Blocks()).To(gomega.Equal(f.Blocks()))
	g.Expect(parsed.Clauses()).To(gomega.Equal(f.Clauses()))
	g.Expect(parsed.VarBlock()).To(gomega.Equal(f.VarBlock()))
	g.Expect(parsed.VarQuantifier()).To(gomega.Equal(f.VarQuantifier()))
}
