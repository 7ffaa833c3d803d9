package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meikipop/meikipop-go/pkg/dictionary"
)

var inspectArtifactPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print summary statistics about a binary dictionary artifact",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectArtifactPath, "artifact", "meikidict.bin", "Path to the binary dictionary artifact")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inspectArtifactPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	artifact, err := dictionary.Load(f)
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}

	fmt.Printf("entries:       %d\n", len(artifact.Index.Entries))
	fmt.Printf("lookup keys:   %d\n", len(artifact.Index.Keys))
	fmt.Printf("dec. rules:    %d\n", len(artifact.Rules))
	return nil
}
