package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/urfave/cli"

	"github.com/limaJavier/qbf/internal/formula"
	"github.com/limaJavier/qbf/internal/preprocess"
	"github.com/limaJavier/qbf/internal/qdimacs"
	"github.com/limaJavier/qbf/internal/search"
	"github.com/limaJavier/qbf/internal/solver"
)

// colorTracer renders search events to the trace sink, two spaces of
// indentation per depth.
type colorTracer struct {
	out        io.Writer
	exists     *color.Color
	forAll     *color.Color
	conclusion *color.Color
}

func newColorTracer(out io.Writer) search.Tracer {
	return &colorTracer{
		out:        out,
		exists:     color.New(color.FgGreen),
		forAll:     color.New(color.FgBlue),
		conclusion: color.New(color.FgYellow),
	}
}

func (tracer *colorTracer) Decision(depth int, variable formula.Variable, quantifier formula.Quantifier, value bool) {
	painter := tracer.exists
	if quantifier == formula.ForAll {
		painter = tracer.forAll
	}
	fmt.Fprint(tracer.out, strings.Repeat("  ", depth))
	painter.Fprintf(tracer.out, "%v x%v := %v\n", quantifier, variable, value)
}

func (tracer *colorTracer) Verdict(depth int, verdict search.Verdict) {
	fmt.Fprint(tracer.out, strings.Repeat("  ", depth))
	tracer.conclusion.Fprintf(tracer.out, "=> %v\n", verdict)
}

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "Trace every decision and verdict of the search",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "Dump the preprocessed formula state before searching",
		},
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	inputFile := c.Args().First()
	fp, err := os.Open(inputFile)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("cannot open input file: %v", err), 1)
	}
	defer fp.Close()

	f, err := qdimacs.Parse(fp)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("cannot parse input file: %v", err), 1)
	}

	if c.Bool("debug") {
		preprocessor := preprocess.NewPreprocessor(f)
		possiblySatisfiable := preprocessor.Preprocess()
		pp.Fprintln(os.Stderr, map[string]any{
			"possiblySatisfiable": possiblySatisfiable,
			"assignments":         preprocessor.Assignments(),
			"residualClauses":     preprocessor.Clauses(),
		})
	}

	options := solver.Options{}
	if c.Bool("verbose") {
		options.Tracer = newColorTracer(os.Stderr)
	}

	verdict := solver.NewSolver(options).Decide(f)
	fmt.Println(verdict)

	if verdict == search.Unsat {
		os.Exit(1)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "qbf"
	app.Usage = "A QDIMACS QBF solver"
	app.ArgsUsage = "<file>"
	app.Flags = getFlags()
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
