package ocrprovider

import "testing"

func TestSelectReturnsNamedProvider(t *testing.T) {
	p := Default().Select("meikiocr")
	if p == nil || p.Name() != "meikiocr" {
		t.Fatalf("expected meikiocr provider, got %v", p)
	}
}

func TestSelectFallsBackToFirstRegisteredOnUnknownName(t *testing.T) {
	p := Default().Select("not-a-real-provider")
	if p == nil {
		t.Fatalf("expected a fallback provider, got nil")
	}
	if p.Name() != "googlelens" {
		t.Errorf("expected fallback to the first-registered provider (googlelens), got %q", p.Name())
	}
}

func TestSelectFallsBackOnEmptyName(t *testing.T) {
	p := Default().Select("")
	if p == nil {
		t.Fatalf("expected a fallback provider, got nil")
	}
}

func TestAllBundledProvidersAreOutOfScope(t *testing.T) {
	for _, name := range []string{"googlelens", "meikiocr", "owocr"} {
		p := Default().Select(name)
		if p.Name() != name {
			t.Fatalf("Select(%q) returned provider named %q", name, p.Name())
		}
		if _, err := p.Scan(nil, nil); err != ErrProviderOutOfScope {
			t.Errorf("%s: Scan error = %v, want ErrProviderOutOfScope", name, err)
		}
	}
}
