package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meikipop/meikipop-go/pkg/deconjugate"
	"github.com/meikipop/meikipop-go/pkg/dictionary"
)

var lookupArtifactPath string

var lookupCmd = &cobra.Command{
	Use:   "lookup <text>",
	Short: "Run the dictionary lookup engine against a piece of text",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupArtifactPath, "artifact", "meikidict.bin", "Path to the binary dictionary artifact")
}

func runLookup(cmd *cobra.Command, args []string) error {
	f, err := os.Open(lookupArtifactPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	artifact, err := dictionary.Load(f)
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}

	engine, err := deconjugate.NewEngine(artifact.Rules)
	if err != nil {
		return fmt.Errorf("bind rule table: %w", err)
	}

	matches := dictionary.Lookup(artifact.Index, engine, args[0])
	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s (seq=%d, matched_length=%d, process=%v, priority=%d)\n",
			m.MatchedForm, m.Entry.Seq, m.MatchedLength, m.DeconjugationProcess, m.Priority)
		for _, s := range m.Entry.Senses {
			fmt.Printf("  %v\n", s.Gloss)
		}
	}
	return nil
}
