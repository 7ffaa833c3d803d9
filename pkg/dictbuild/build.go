// Package dictbuild implements the offline dictionary build pipeline (spec
// §4.6): parsing JMdict-shaped JSON, scoring priorities, building the
// lookup index, and binding the deconjugation rule table into the
// dictionary.Artifact that the caller serializes with Artifact.Save for the
// daemon to load at startup.
package dictbuild

import (
	"fmt"
	"os"

	"github.com/meikipop/meikipop-go/pkg/deconjugate"
	"github.com/meikipop/meikipop-go/pkg/dictionary"
)

// Inputs names the three file inputs of the build pipeline (spec §4.6): one
// or more JMdict-shaped JSON files, a deconjugation rule file, and a
// priority-list file.
type Inputs struct {
	JMdictPaths  []string
	RulePath     string
	PriorityPath string
}

// CheckInputs replicates the original build script's preflight check
// (original_source/scripts/build_dictionary.py): every required file must
// exist before the expensive parse/score/index steps begin, and the error
// message names exactly what's missing.
func CheckInputs(in Inputs) error {
	if len(in.JMdictPaths) == 0 {
		return fmt.Errorf("dictbuild: no JMdict source files configured")
	}
	var missing []string
	for _, p := range in.JMdictPaths {
		if !fileExists(p) {
			missing = append(missing, p)
		}
	}
	if !fileExists(in.RulePath) {
		missing = append(missing, in.RulePath)
	}
	if !fileExists(in.PriorityPath) {
		missing = append(missing, in.PriorityPath)
	}
	if len(missing) > 0 {
		return fmt.Errorf("dictbuild: missing required input file(s) %v; place JMdict*.json, the deconjugation rule file, and priority.json in the configured data directory", missing)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Build runs spec §4.6 steps 1-5 of the pipeline and returns the
// ready-to-serve Artifact: parse and validate every JMdict file, normalize
// (delegated to dictionary.BuildIndex via pkg/normalize), score priorities,
// build the index, bind the deconjugation rules, and hand back the in-memory
// result for the caller to Save.
func Build(in Inputs) (*dictionary.Artifact, error) {
	if err := CheckInputs(in); err != nil {
		return nil, err
	}

	var allEntries []dictionary.Entry
	for _, path := range in.JMdictPaths {
		entries, err := loadJMdictFile(path)
		if err != nil {
			return nil, fmt.Errorf("dictbuild: %s: %w", path, err)
		}
		allEntries = append(allEntries, entries...)
	}

	supplemental, err := loadPriorityFile(in.PriorityPath)
	if err != nil {
		return nil, fmt.Errorf("dictbuild: %s: %w", in.PriorityPath, err)
	}

	rules, err := deconjugate.LoadRulesFile(in.RulePath)
	if err != nil {
		return nil, fmt.Errorf("dictbuild: %s: %w", in.RulePath, err)
	}
	if _, err := deconjugate.NewEngine(rules); err != nil {
		return nil, fmt.Errorf("dictbuild: rule table: %w", err)
	}

	idx := dictionary.BuildIndex(allEntries, supplemental)

	return &dictionary.Artifact{Index: idx, Rules: rules}, nil
}

// loadJMdictFile parses one JMdict-shaped JSON file and drops entries that
// have no reading, no sense, or no gloss in any sense (spec §4.6 step 1).
func loadJMdictFile(path string) ([]dictionary.Entry, error) {
	raw, err := dictionary.LoadJMdictJSON(path)
	if err != nil {
		return nil, err
	}
	entries := make([]dictionary.Entry, 0, len(raw))
	for _, e := range raw {
		entry := dictionary.ConvertJMdictEntry(e)
		if len(entry.Senses) == 0 || len(entry.Readings) == 0 {
			continue
		}
		hasGloss := false
		for _, s := range entry.Senses {
			if len(s.Gloss) > 0 {
				hasGloss = true
				break
			}
		}
		if !hasGloss {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func loadPriorityFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dictionary.LoadPriorityJSON(data)
}
