package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meikipop/meikipop-go/pkg/deconjugate"
	"github.com/meikipop/meikipop-go/pkg/dictionary"
	"github.com/meikipop/meikipop-go/pkg/hitscan"
	"github.com/meikipop/meikipop-go/pkg/ocrprovider"
	"github.com/meikipop/meikipop-go/pkg/textmodel"
)

// defaultProviderTimeout is spec §5's recommended OCR provider call timeout.
const defaultProviderTimeout = 10 * time.Second

// CaptureRequest is one screen-capture hand-off from the capture trigger to
// the OCR worker, tagged with a correlation ID so a single scan's path
// through the three workers can be traced in the log output.
type CaptureRequest struct {
	ScanID uuid.UUID
	Image  image.Image
	CursorX, CursorY float64
}

// OCRCompletion is the OCR worker's output, handed to the lookup worker.
type OCRCompletion struct {
	ScanID           uuid.UUID
	Result           textmodel.OcrResult
	CursorX, CursorY float64
}

// PopupPayload is the lookup worker's output: either a produced popup
// payload, or Found false when the scan or cursor hit produced
// nothing worth showing.
type PopupPayload struct {
	ScanID  uuid.UUID
	Hit     hitscan.Hit
	Matches []dictionary.Match
	Found   bool
}

// CaptureTrigger ticks on a timer or a hotkey-event channel (both injected,
// per spec §5's "polls or reacts to hotkey/auto-scan events") and enqueues
// captures onto the OCR queue, coalescing per LatestQueue semantics.
type CaptureTrigger struct {
	Ticker      <-chan time.Time
	HotkeyEvent <-chan struct{}
	Capture     func() (image.Image, float64, float64, error)
	OutQueue    *LatestQueue[CaptureRequest]
	Shutdown    *ShutdownFlag
	Log         zerolog.Logger
}

// Run blocks until ctx is done or Shutdown is signaled.
func (t *CaptureTrigger) Run(ctx context.Context) {
	for {
		if t.Shutdown.ShouldStop() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-t.Ticker:
			t.trigger()
		case <-t.HotkeyEvent:
			t.trigger()
		}
	}
}

func (t *CaptureTrigger) trigger() {
	if t.Shutdown.ShouldStop() {
		return
	}
	img, x, y, err := t.Capture()
	if err != nil {
		t.Log.Warn().Err(err).Msg("capture failed")
		return
	}
	scanID := uuid.New()
	t.Log.Debug().Str("scan_id", scanID.String()).Msg("capture enqueued")
	t.OutQueue.Enqueue(CaptureRequest{ScanID: scanID, Image: img, CursorX: x, CursorY: y})
}

// OCRWorker blocks on the capture queue, calls the selected OCR provider
// with a bounded timeout, and enqueues the result onto the hit-scan queue.
// A provider error or timeout becomes a logged "no result" rather than a
// crash, per spec §5.
type OCRWorker struct {
	InQueue  *LatestQueue[CaptureRequest]
	OutQueue *LatestQueue[OCRCompletion]
	Provider ocrprovider.Provider
	Timeout  time.Duration
	Shutdown *ShutdownFlag
	Log      zerolog.Logger
}

// Run blocks until ctx is done, Shutdown is signaled, or the input queue is
// closed.
func (w *OCRWorker) Run(ctx context.Context) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	for {
		if w.Shutdown.ShouldStop() {
			return
		}
		req, ok := w.InQueue.Dequeue()
		if !ok {
			return
		}
		if w.Shutdown.ShouldStop() {
			return
		}

		scanCtx, cancel := context.WithTimeout(ctx, timeout)
		result, err := w.Provider.Scan(scanCtx, req.Image)
		cancel()

		if err != nil {
			w.Log.Warn().Err(err).Str("scan_id", req.ScanID.String()).Msg("ocr provider call failed, continuing")
			continue
		}

		w.Log.Debug().Str("scan_id", req.ScanID.String()).Msg("ocr done")
		w.OutQueue.Enqueue(OCRCompletion{ScanID: req.ScanID, Result: result, CursorX: req.CursorX, CursorY: req.CursorY})
	}
}

// LookupWorker blocks on the hit-scan queue, runs hit-scan then dictionary
// lookup, and sends the result on the UI channel.
type LookupWorker struct {
	InQueue      *LatestQueue[OCRCompletion]
	UIChan       chan<- PopupPayload
	MaxHitLength int
	Index        *dictionary.Index
	Engine       *deconjugate.Engine
	Shutdown     *ShutdownFlag
	Log          zerolog.Logger
}

// Run blocks until ctx is done, Shutdown is signaled, or the input queue is
// closed.
func (w *LookupWorker) Run(ctx context.Context) {
	for {
		if w.Shutdown.ShouldStop() {
			return
		}
		completion, ok := w.InQueue.Dequeue()
		if !ok {
			return
		}
		if w.Shutdown.ShouldStop() {
			return
		}

		hit, found := hitscan.Scan(completion.Result, completion.CursorX, completion.CursorY, w.MaxHitLength)
		if !found {
			w.Log.Debug().Str("scan_id", completion.ScanID.String()).Msg("hit-scan found nothing under cursor")
			w.send(ctx, PopupPayload{ScanID: completion.ScanID, Found: false})
			continue
		}

		w.Log.Debug().Str("scan_id", completion.ScanID.String()).Msg("hit-scan done")

		matches := dictionary.Lookup(w.Index, w.Engine, hit.SuffixText)
		w.send(ctx, PopupPayload{ScanID: completion.ScanID, Hit: *hit, Matches: matches, Found: len(matches) > 0})
	}
}

func (w *LookupWorker) send(ctx context.Context, payload PopupPayload) {
	select {
	case w.UIChan <- payload:
	case <-ctx.Done():
	}
}
