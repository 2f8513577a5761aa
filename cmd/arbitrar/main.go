// Command arbitrar is the CLI entry point for the slicing, symbolic
// execution, and feature extraction pipeline. Grounded on the teacher's
// thin-main idiom (cmd/gormreuse/main.go: `singlechecker.Main(...)`),
// generalized to a multi-command tree the way weiihann/chunk-analysis
// organizes its cmd/ package.
package main

import (
	"fmt"
	"os"

	"github.com/purs3lab/arbitrar/cmd/arbitrar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
