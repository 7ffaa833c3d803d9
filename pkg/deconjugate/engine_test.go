package deconjugate

import "testing"

func findForm(forms []Form, surface string) (Form, bool) {
	for _, f := range forms {
		if f.Surface == surface {
			return f, true
		}
	}
	return Form{}, false
}

func TestDeconjugateAlwaysIncludesIdentity(t *testing.T) {
	eng, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	forms := eng.Deconjugate("食べる")
	if _, ok := findForm(forms, "食べる"); !ok {
		t.Fatalf("expected identity form to be present")
	}
}

func TestDeconjugateTwoStepChain(t *testing.T) {
	rules := []Rule{
		{
			Kind:   NeverFinalRule,
			Detail: "strip-c",
			DecEnd: []string{"c"}, ConEnd: []string{"y"},
			DecTag: []string{""}, ConTag: []string{"t1"},
		},
		{
			Kind:   StdRule,
			Detail: "strip-y",
			DecEnd: []string{"y"}, ConEnd: []string{"z"},
			DecTag: []string{"t1"}, ConTag: []string{"t2"},
		},
	}
	eng, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	forms := eng.Deconjugate("abc")

	if _, ok := findForm(forms, "aby"); ok {
		t.Errorf("neverfinalrule-produced form %q should not appear in output", "aby")
	}

	final, ok := findForm(forms, "abz")
	if !ok {
		t.Fatalf("expected two-step chain to reach abz; forms=%v", forms)
	}
	if len(final.Process) != 2 {
		t.Errorf("expected process chain length 2, got %d (%v)", len(final.Process), final.Process)
	}
	if final.FinalTag() != "t2" {
		t.Errorf("expected final tag t2, got %q", final.FinalTag())
	}
}

func TestDeconjugateNoRepeatSurfaceInChain(t *testing.T) {
	// A rule that maps a surface back to itself must never be applied,
	// since that would revisit a surface already in seen_text.
	rules := []Rule{
		{
			Kind:   StdRule,
			Detail: "identity-loop",
			DecEnd: []string{"abc"}, ConEnd: []string{"abc"},
			DecTag: []string{""}, ConTag: []string{""},
		},
	}
	eng, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	forms := eng.Deconjugate("abc")
	for _, f := range forms {
		seenCounts := map[string]int{}
		for s := range f.SeenText {
			seenCounts[s]++
		}
		for s, c := range seenCounts {
			if c > 1 {
				t.Errorf("surface %q appears more than once in seen_text", s)
			}
		}
	}
	// Exactly the identity form should result (the loop rule can never add anything new).
	if len(forms) != 1 {
		t.Errorf("expected only the identity form, got %d forms: %v", len(forms), forms)
	}
}

func TestDeconjugateOnlyFinalRule(t *testing.T) {
	rules := []Rule{
		{
			Kind:   OnlyFinalRule,
			Detail: "colloquial-to-dict",
			DecEnd: []string{"sa"}, ConEnd: []string{"suru"},
			DecTag: []string{""}, ConTag: []string{"vs"},
		},
		{
			Kind:   StdRule,
			Detail: "some-other-step",
			DecEnd: []string{"suru"}, ConEnd: []string{"suru2"},
			DecTag: []string{""}, ConTag: []string{"vs2"},
		},
	}
	eng, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	forms := eng.Deconjugate("xsa")
	if _, ok := findForm(forms, "xsuru"); !ok {
		t.Fatalf("expected onlyfinalrule to apply at the root; forms=%v", forms)
	}

	// onlyfinalrule must not apply again once process is non-empty: derive
	// from a form whose surface also ends in "sa" but which is already one
	// step deep.
	rules2 := []Rule{
		{
			Kind:   StdRule,
			Detail: "prefix-step",
			DecEnd: []string{"q"}, ConEnd: []string{"sa"},
			DecTag: []string{""}, ConTag: []string{"mid"},
		},
		rules[0],
	}
	eng2, err := NewEngine(rules2)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	forms2 := eng2.Deconjugate("q")
	if _, ok := findForm(forms2, "sa"); !ok {
		t.Fatalf("expected first step to reach sa; forms=%v", forms2)
	}
	if _, ok := findForm(forms2, "suru"); ok {
		t.Errorf("onlyfinalrule must not apply once process is non-empty")
	}
}

func TestDeconjugateRewriteRule(t *testing.T) {
	rules := []Rule{
		{
			Kind:   RewriteRule,
			Detail: "full-rewrite",
			DecEnd: []string{"です"}, ConEnd: []string{"だ"},
			DecTag: []string{""}, ConTag: []string{"cop"},
		},
	}
	eng, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	forms := eng.Deconjugate("です")
	if _, ok := findForm(forms, "だ"); !ok {
		t.Fatalf("expected rewriterule to replace whole surface; forms=%v", forms)
	}

	// A surface that only ends with (not equals) "です" must not match a
	// rewriterule, since rewriterule requires an exact whole-surface match.
	forms2 := eng.Deconjugate("とても です")
	if _, ok := findForm(forms2, "だ"); ok {
		t.Errorf("rewriterule must require exact surface match, not suffix match")
	}
}

func TestDeconjugateContextRuleRejectsIllegalStem(t *testing.T) {
	rules := []Rule{
		{
			Kind:        ContextRule,
			Detail:      "masu-stem-trap",
			DecEnd:      []string{"ます"},
			ConEnd:      []string{""},
			DecTag:      []string{""},
			ConTag:      []string{"stem-ren"},
			ContextName: "v1inftrap",
		},
	}
	eng, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// 食べます -> stem 食べ ends in べ (a legal ichidan stem ending) so the
	// context predicate should allow it.
	forms := eng.Deconjugate("食べます")
	if _, ok := findForm(forms, "食べ"); !ok {
		t.Errorf("expected legal ichidan stem 食べ to survive v1inftrap; forms=%v", forms)
	}

	// 読みます -> stem 読み ends in み, also legal; kept as a second sanity
	// check that the predicate isn't accidentally rejecting everything.
	forms2 := eng.Deconjugate("読みます")
	if _, ok := findForm(forms2, "読み"); !ok {
		t.Errorf("expected legal ichidan stem 読み to survive v1inftrap; forms=%v", forms2)
	}

	// 書かます -> stem 書か ends in か, which is neither an i- nor an e-row
	// kana, so the context predicate should reject it.
	forms3 := eng.Deconjugate("書かます")
	if _, ok := findForm(forms3, "書か"); ok {
		t.Errorf("expected illegal ichidan stem 書か to be rejected by v1inftrap; forms=%v", forms3)
	}
}

func TestNewEngineRejectsUnknownContextPredicate(t *testing.T) {
	rules := []Rule{
		{Kind: ContextRule, Detail: "bogus", DecEnd: []string{"x"}, ConEnd: []string{"y"}, DecTag: []string{""}, ConTag: []string{""}, ContextName: "no-such-predicate"},
	}
	if _, err := NewEngine(rules); err == nil {
		t.Fatalf("expected error for unknown context predicate")
	}
}
