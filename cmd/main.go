package main

import (
	"flag"
	"fmt"
	"os"

	"swppasm/internal/logger"
	"swppasm/internal/runner"
	"swppasm/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the swppasm interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.YAML, "y", false, "Emit the run report as YAML")
	flag.IntVar(&options.MaxDepth, "d", 0, "Call depth limit (0 = default)")
	flag.IntVar(&options.MaxSteps, "s", 0, "Executed statement limit (0 = unlimited)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	err := options.Run()
	if err != nil {
		log.Fatal("Interpretation failed", "error", err)
	}
}
