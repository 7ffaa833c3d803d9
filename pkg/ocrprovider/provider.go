// Package ocrprovider defines the OCR provider contract (spec §6). Screen
// capture and the providers' network/model internals are out of scope (spec
// §1 Non-goals); only the interface obligation and the closed registry that
// selects among configured providers live here.
package ocrprovider

import (
	"context"
	"errors"
	"image"

	"github.com/meikipop/meikipop-go/pkg/textmodel"
)

// Provider scans a captured screen region and returns the recognized text
// paragraphs, in provider-native (pre-ocrpost) form.
type Provider interface {
	Name() string
	Scan(ctx context.Context, img image.Image) (textmodel.OcrResult, error)
}

// ErrProviderOutOfScope is returned by every bundled provider's Scan: the
// actual network/model calls are external collaborators (spec §1 Non-goals),
// so these stand in as the wiring point a real provider implementation
// replaces.
var ErrProviderOutOfScope = errors.New("ocrprovider: provider network/model call is out of scope")
