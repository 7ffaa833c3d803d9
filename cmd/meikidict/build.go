package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meikipop/meikipop-go/pkg/dictbuild"
)

var (
	buildJMdictGlob   []string
	buildRulePath     string
	buildPriorityPath string
	buildOutputPath   string
	buildAutoFetch    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the binary dictionary artifact from JMdict + rule + priority JSON",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVar(&buildJMdictGlob, "jmdict", nil, "Path to a JMdict-shaped JSON file (repeatable)")
	buildCmd.Flags().StringVar(&buildRulePath, "rules", "data/deconjugator.json", "Path to the deconjugation rule JSON file")
	buildCmd.Flags().StringVar(&buildPriorityPath, "priority", "data/priority.json", "Path to the priority.json supplemental weights file")
	buildCmd.Flags().StringVar(&buildOutputPath, "output", "meikidict.bin", "Path to write the binary artifact to")
	buildCmd.Flags().BoolVar(&buildAutoFetch, "auto-fetch", false, "Download the latest jmdict-simplified release if no --jmdict files are given")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jmdictPaths := buildJMdictGlob
	if len(jmdictPaths) == 0 {
		const fetchedPath = "data/jmdict-eng-common.json"
		if buildAutoFetch {
			if err := dictbuild.EnsureJMdictSource(ctx, fetchedPath); err != nil {
				return fmt.Errorf("auto-fetch jmdict source: %w", err)
			}
		}
		jmdictPaths = []string{fetchedPath}
	}

	in := dictbuild.Inputs{
		JMdictPaths:  jmdictPaths,
		RulePath:     buildRulePath,
		PriorityPath: buildPriorityPath,
	}

	fmt.Println("Building dictionary artifact...")
	artifact, err := dictbuild.Build(in)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d entries, %d deconjugation rules.\n", len(artifact.Index.Entries), len(artifact.Rules))

	out, err := os.Create(buildOutputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := artifact.Save(out); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	fmt.Printf("Wrote %s.\n", buildOutputPath)
	return nil
}
