// Command qalc is the qalc calculation notebook CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"qalctxt.net/qalc/pkg/qalc"
)

func main() {
	var (
		evalStr = flag.String("e", "", "Evaluate notebook text")
		file    = flag.String("f", "", "Evaluate a notebook file")
		dbPath  = flag.String("db", "", "SQLite database path for persistence")
		outPath = flag.String("o", "", "Write the annotated document to a file")
		stats   = flag.Bool("stats", false, "Print result statistics after evaluation")
	)

	flag.Parse()

	var opts []qalc.Option
	if *dbPath != "" {
		opts = append(opts, qalc.WithSQLiteStore(*dbPath), qalc.WithAutoSave())
	}

	nb := qalc.New(opts...)
	defer nb.Close()

	switch {
	case *file != "":
		results, err := nb.EvalFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		printResults(results)

	case *evalStr != "":
		printResults(nb.Eval(*evalStr))

	case !term.IsTerminal(int(os.Stdin.Fd())):
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		printResults(nb.Eval(string(input)))

	default:
		if *dbPath != "" {
			if err := nb.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
				os.Exit(1)
			}
			printResults(nb.RecomputeAll())
		}
		runREPL(nb)
	}

	if *outPath != "" {
		if err := nb.SaveFile(*outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outPath, err)
			os.Exit(1)
		}
	}

	if *stats {
		st := nb.Stats()
		fmt.Printf("%d line(s): %d ok, %d with multiple solutions, %d failed\n",
			st.Total, st.Succeeded, st.Equations, st.Errors)
	}
}

func printResults(results []qalc.LineResult) {
	for _, r := range results {
		if r.Output == "" {
			fmt.Println(r.Input)
			continue
		}
		fmt.Printf("%s  # = %s\n", r.Input, r.Output)
	}
}
