package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meikidict",
	Short: "Build and inspect meikipop's binary dictionary artifact",
	Long: `meikidict builds the binary dictionary artifact meikipopd loads at
startup from JMdict-shaped JSON, a deconjugation rule file, and a priority
list, and offers lookup/inspect subcommands for testing the result.`,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(inspectCmd)
}
