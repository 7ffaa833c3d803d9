package dictionary

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/meikipop/meikipop-go/pkg/deconjugate"
)

// binaryMagic and binaryVersion identify the on-disk artifact (spec §6): a
// magic header and version, followed by the entry table, the
// priority-scored lookup index, and the deconjugation rule table. No
// separate POS-token table is written; POS tags stay strings inside the
// entry and rule tables. Compatibility is version-gated: a
// version mismatch is a corrupt-artifact error (spec §7), not a
// best-effort load.
const (
	binaryMagic   = "MEIKIDICT"
	binaryVersion = 1
)

// Artifact is the full on-disk payload: the dictionary index plus the
// deconjugation rule table, loadable in one deserialization step at
// startup (spec §6).
type Artifact struct {
	Index *Index
	Rules []deconjugate.Rule
}

// gobHeader is the first of the four sections Save writes in order
// (header, entry table, lookup index, rule table). gob.Encoder/Decoder already length-prefixes and type-describes values
// internally, so the payload only needs our own magic+version framing
// around it to satisfy the "version-gated, not best-effort" requirement.
type gobHeader struct {
	Magic   string
	Version int
}

// Save writes the artifact to w in the fixed binary layout of spec §6.
func (a *Artifact) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := gob.NewEncoder(bw)

	if err := enc.Encode(gobHeader{Magic: binaryMagic, Version: binaryVersion}); err != nil {
		return fmt.Errorf("dictionary: write header: %w", err)
	}
	if err := enc.Encode(a.Index.Entries); err != nil {
		return fmt.Errorf("dictionary: write entry table: %w", err)
	}
	if err := enc.Encode(a.Index.Keys); err != nil {
		return fmt.Errorf("dictionary: write lookup index: %w", err)
	}
	if err := enc.Encode(a.Rules); err != nil {
		return fmt.Errorf("dictionary: write rule table: %w", err)
	}
	return bw.Flush()
}

// ErrCorruptArtifact is returned by Load on a version mismatch or malformed
// payload (spec §7: fatal, with remediation "re-run the build pipeline").
var ErrCorruptArtifact = fmt.Errorf("dictionary: corrupt or version-mismatched binary artifact")

// Load reads a binary artifact previously written by Save.
func Load(r io.Reader) (*Artifact, error) {
	dec := gob.NewDecoder(r)

	var header gobHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if header.Magic != binaryMagic || header.Version != binaryVersion {
		return nil, fmt.Errorf("%w: got magic=%q version=%d", ErrCorruptArtifact, header.Magic, header.Version)
	}

	var entries []Entry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: entry table: %v", ErrCorruptArtifact, err)
	}
	var keys map[string][]EntryRef
	if err := dec.Decode(&keys); err != nil {
		return nil, fmt.Errorf("%w: lookup index: %v", ErrCorruptArtifact, err)
	}
	var rules []deconjugate.Rule
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("%w: rule table: %v", ErrCorruptArtifact, err)
	}

	return &Artifact{
		Index: &Index{Entries: entries, Keys: keys},
		Rules: rules,
	}, nil
}
