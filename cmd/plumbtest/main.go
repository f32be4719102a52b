// Command plumbtest runs layout conformance fixtures against plumbgeom.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/conformance"
)

func main() {
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("v", false, "Log script console output")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <fixture.html|dir>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s conformance/testdata\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -json conformance/testdata/dot_endpoint.html\n", os.Args[0])
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	runner := conformance.NewRunner(logger)
	for _, path := range flag.Args() {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		before := len(runner.Results)
		if info.IsDir() {
			if err := runner.RunDir(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		} else {
			runner.RunFile(path)
		}

		if !*jsonOutput {
			for _, result := range runner.Results[before:] {
				fmt.Println()
				fmt.Print(conformance.Format(result))
			}
		}
	}

	passed, failed := runner.Summary()
	if *jsonOutput {
		data, err := runner.ExportJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("\nSummary: %d passed, %d failed\n", passed, failed)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

