package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"qalctxt.net/qalc/pkg/qalc"
)

func printBanner() {
	fmt.Println("qalc REPL (Ctrl+D to exit)")
	fmt.Println()
	fmt.Println("Each line becomes the next numbered notebook line.")
	fmt.Println("Reference earlier results as @N, or @N.M for one solution.")
	fmt.Println("Commands: :list  :recompute  :save  :quit")
	fmt.Println()
}

func runREPL(nb *qalc.Notebook) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		printBanner()
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("[%d] ", nb.Len()+1)

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := runCommand(nb, strings.TrimSpace(line)); quit {
				return
			}
			continue
		}

		r := nb.EvalLine(line)
		if r.Output != "" {
			fmt.Printf("@%d = %s\n", r.Index, r.Output)
		}
	}
}

func runCommand(nb *qalc.Notebook, cmd string) (quit bool) {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":list", ":l":
		if _, err := nb.WriteTo(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	case ":recompute", ":r":
		for _, r := range nb.RecomputeAll() {
			if r.Output != "" {
				fmt.Printf("@%d = %s\n", r.Index, r.Output)
			}
		}
	case ":save", ":s":
		if err := nb.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %s\n", cmd)
	}
	return false
}
