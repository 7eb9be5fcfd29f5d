// Command riskctl computes statistics and reports for a site described in a
// JSON file, without a server or database.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
