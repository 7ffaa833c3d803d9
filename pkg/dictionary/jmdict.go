package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
)

// JMdictJSON mirrors one entry of the JMdict-shaped JSON input described in
// spec §6: { seq, k_ele[], r_ele[], sense[] }.
type JMdictJSON struct {
	Seq   int           `json:"seq"`
	KEle  []KEleJSON    `json:"k_ele"`
	REle  []REleJSON    `json:"r_ele"`
	Sense []SenseJSON   `json:"sense"`
}

// KEleJSON is one k_ele element: { keb, pri? }.
type KEleJSON struct {
	Keb string   `json:"keb"`
	Pri []string `json:"pri,omitempty"`
}

// REleJSON is one r_ele element: { reb, pri?, restr? }.
type REleJSON struct {
	Reb   string   `json:"reb"`
	Pri   []string `json:"pri,omitempty"`
	Restr []string `json:"restr,omitempty"`
}

// SenseJSON is one sense element: { gloss[], pos?, misc? }.
type SenseJSON struct {
	Gloss []string `json:"gloss"`
	POS   []string `json:"pos,omitempty"`
	Misc  []string `json:"misc,omitempty"`
}

// LoadJMdictJSON reads a single JMdict-shaped JSON file (an array of
// entries) from path. Following the teacher's decode-with-fallback pattern
// for tolerating either a bare-array file or an object wrapper, this also
// accepts either shape: a top-level array, or an object with a "entries" or
// "words" key holding the array.
func LoadJMdictJSON(path string) ([]JMdictJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read jmdict file %s: %w", path, err)
	}
	return ParseJMdictJSON(data)
}

// ParseJMdictJSON parses raw JMdict-shaped JSON bytes, per spec §6.
func ParseJMdictJSON(data []byte) ([]JMdictJSON, error) {
	var arr []JMdictJSON
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}

	var wrapper struct {
		Entries []JMdictJSON `json:"entries"`
		Words   []JMdictJSON `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("dictionary: parse jmdict json: not an array or {entries|words} object: %w", err)
	}
	if len(wrapper.Entries) > 0 {
		return wrapper.Entries, nil
	}
	return wrapper.Words, nil
}

// ConvertJMdictEntry converts one raw JMdict-shaped JSON entry into the
// in-memory Entry type (spec §4.6 step 1/2): surfaces and readings pass
// through unnormalized here (BuildIndex normalizes them when populating
// DictIndex keys), but pri/restr/pos/misc string lists become sets for O(1)
// membership tests downstream.
func ConvertJMdictEntry(raw JMdictJSON) Entry {
	entry := Entry{Seq: raw.Seq}

	for _, k := range raw.KEle {
		entry.KanjiForms = append(entry.KanjiForms, KanjiForm{
			Surface: k.Keb,
			Pri:     toSet(k.Pri),
		})
	}
	for _, r := range raw.REle {
		entry.Readings = append(entry.Readings, Reading{
			Reading:      r.Reb,
			Pri:          toSet(r.Pri),
			Restrictions: toSet(r.Restr),
		})
	}
	for _, s := range raw.Sense {
		entry.Senses = append(entry.Senses, Sense{
			Gloss: s.Gloss,
			POS:   toSet(s.POS),
			Misc:  toSet(s.Misc),
		})
	}

	return entry
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}
