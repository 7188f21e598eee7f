package runner

import (
	"fmt"
	"os"

	"swppasm/pkg/color"
	"swppasm/pkg/interpreter"
	"swppasm/pkg/lexer"
	"swppasm/pkg/parser"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output
	NoColor    bool   // Disable colored output
	YAML       bool   // Emit the run report as YAML
	MaxDepth   int    // Interpreted call depth limit (0 = default)
	MaxSteps   int    // Interpreted statement limit (0 = unlimited)
	SourceFile string // Path to the source file
}

// Run parses the source file, interprets it and prints the cost report.
// Nothing of the cost report is printed when the run faults: partial logs
// are not well-formed.
func (opts *Runner) Run() error {
	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", opts.SourceFile, "error", err)
	}

	l := lexer.NewLexer(string(input))
	p := parser.NewParser(l)
	program := p.Parse()

	if syntaxErrors := p.Errors(); len(syntaxErrors) > 0 {
		fmt.Println(color.BrightRedText("=== Syntax Errors ==="))
		fmt.Println(syntaxErrors[0])
		return fmt.Errorf("parsing failed with %d errors", len(syntaxErrors))
	}

	log.Info("Parsed program", "functions", program.NumFunctions())

	stateOpts := []interpreter.Option{}
	if opts.MaxDepth > 0 {
		stateOpts = append(stateOpts, interpreter.WithMaxDepth(opts.MaxDepth))
	}
	if opts.MaxSteps > 0 {
		stateOpts = append(stateOpts, interpreter.WithMaxSteps(opts.MaxSteps))
	}

	state := interpreter.NewState(program, stateOpts...)
	result, err := state.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.BrightRedText("=== Runtime Error ==="))
		fmt.Fprintln(os.Stderr, color.RedText(err.Error()))
		return err
	}

	log.Info("Run finished", "result", result, "cost", state.CostValue())

	if opts.YAML {
		out, err := yaml.Marshal(state.BuildReport(result))
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Printf("Returned: %d\n", result)
	fmt.Printf("Total cost: %.4f\n", state.CostValue())
	fmt.Printf("Total wait cost: %.4f\n", state.TotalWaitCost())
	fmt.Printf("Max allocated size: %d\n", state.MaxAllocedSize())

	fmt.Println(color.GreenText("\n=== Call Tree ==="))
	fmt.Print(state.CostTree().Render(""))

	fmt.Println(color.GreenText("\n=== Instruction Costs ==="))
	fmt.Print(state.InstLogString())

	return nil
}
