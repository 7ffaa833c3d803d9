// Command meikidict is the offline companion to meikipopd: it builds the
// binary dictionary artifact (spec §4.6) and offers ad-hoc lookup/inspect
// subcommands for testing it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
