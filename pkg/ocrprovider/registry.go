package ocrprovider

import (
	"context"
	"image"

	"github.com/meikipop/meikipop-go/pkg/textmodel"
)

// Registry holds the closed set of providers known at build time, in
// registration order so Select has a stable fallback.
type Registry struct {
	byName map[string]Provider
	order  []Provider
}

var defaultRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

func (r *Registry) register(p Provider) {
	r.byName[p.Name()] = p
	r.order = append(r.order, p)
}

// Select returns the named provider, or the first registered provider when
// name is unknown or empty (spec §6: "falls back to a default if the
// configured choice is missing").
func (r *Registry) Select(name string) Provider {
	if p, ok := r.byName[name]; ok {
		return p
	}
	if len(r.order) == 0 {
		return nil
	}
	return r.order[0]
}

// Default is the package-level registry populated at init time with every
// bundled provider.
func Default() *Registry {
	return defaultRegistry
}

func init() {
	defaultRegistry.register(googleLensProvider{})
	defaultRegistry.register(meikiOCRProvider{})
	defaultRegistry.register(owocrProvider{})
}

// googleLensProvider, meikiOCRProvider, and owocrProvider are thin stand-ins
// for the three OCR backends meikipop supports; their actual screen-capture
// and network/model calls are out of scope (spec §1 Non-goals).
type googleLensProvider struct{}

func (googleLensProvider) Name() string { return "googlelens" }
func (googleLensProvider) Scan(ctx context.Context, img image.Image) (textmodel.OcrResult, error) {
	return nil, ErrProviderOutOfScope
}

type meikiOCRProvider struct{}

func (meikiOCRProvider) Name() string { return "meikiocr" }
func (meikiOCRProvider) Scan(ctx context.Context, img image.Image) (textmodel.OcrResult, error) {
	return nil, ErrProviderOutOfScope
}

type owocrProvider struct{}

func (owocrProvider) Name() string { return "owocr" }
func (owocrProvider) Scan(ctx context.Context, img image.Image) (textmodel.OcrResult, error) {
	return nil, ErrProviderOutOfScope
}
