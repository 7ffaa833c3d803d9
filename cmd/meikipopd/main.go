// Command meikipopd is the meikipop popup-dictionary daemon: it wires the
// capture trigger, OCR worker, and lookup worker (spec §5) around the
// dictionary artifact built by `meikidict build`.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meikipop/meikipop-go/pkg/applog"
	"github.com/meikipop/meikipop-go/pkg/config"
	"github.com/meikipop/meikipop-go/pkg/deconjugate"
	"github.com/meikipop/meikipop-go/pkg/dictionary"
	"github.com/meikipop/meikipop-go/pkg/ocrprovider"
	"github.com/meikipop/meikipop-go/pkg/pipeline"
	"github.com/meikipop/meikipop-go/pkg/store"

	_ "github.com/mattn/go-sqlite3"
)

// errCaptureNotConfigured stands in for the screen-capture collaborator,
// which is external to this module (spec §1 Non-goals): a real build wires
// CaptureTrigger.Capture to an OS-specific screenshot routine.
var errCaptureNotConfigured = errors.New("meikipopd: screen capture is not configured in this build")

func noCaptureConfigured() (image.Image, float64, float64, error) {
	return nil, 0, 0, errCaptureNotConfigured
}

func main() {
	configFlag := flag.String("config", "", "Path to meikipop config file")
	dictFlag := flag.String("dict", "", "Path to the binary dictionary artifact (overrides config)")
	historyDBFlag := flag.String("history-db", "meikipop-history.db", "Path to the SQLite lookup-history database")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *dictFlag != "" {
		cfg.DictPath = *dictFlag
	}

	applog.Init(cfg.LogLevel, os.Stderr)
	syncCfg := config.NewSyncConfig(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	artifact, err := loadArtifact(cfg.DictPath)
	if err != nil {
		log.Fatalf("failed to load dictionary artifact at %s: %v (run `meikidict build` first)", cfg.DictPath, err)
	}

	engine, err := deconjugate.NewEngine(artifact.Rules)
	if err != nil {
		log.Fatalf("failed to bind deconjugation rule table: %v", err)
	}

	historyDB, err := sql.Open("sqlite3", *historyDBFlag)
	if err != nil {
		log.Fatalf("failed to open history database: %v", err)
	}
	defer historyDB.Close()
	if err := store.InitDB(historyDB); err != nil {
		log.Fatalf("failed to migrate history database: %v", err)
	}
	writer := store.NewBatchWriter(historyDB, 10, 5*time.Second)
	defer writer.Close()

	provider := ocrprovider.Default().Select(syncCfg.Get().OCRProvider)

	captureQueue := pipeline.NewLatestQueue[pipeline.CaptureRequest]()
	ocrQueue := pipeline.NewLatestQueue[pipeline.OCRCompletion]()
	uiChan := make(chan pipeline.PopupPayload, 4)
	var shutdown pipeline.ShutdownFlag

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	trigger := &pipeline.CaptureTrigger{
		Ticker:      ticker.C,
		HotkeyEvent: make(chan struct{}),
		Capture:     noCaptureConfigured,
		OutQueue:    captureQueue,
		Shutdown:    &shutdown,
		Log:         applog.Component("capture-trigger"),
	}
	ocrWorker := &pipeline.OCRWorker{
		InQueue:  captureQueue,
		OutQueue: ocrQueue,
		Provider: provider,
		Shutdown: &shutdown,
		Log:      applog.Component("ocr-worker"),
	}
	lookupWorker := &pipeline.LookupWorker{
		InQueue:      ocrQueue,
		UIChan:       uiChan,
		MaxHitLength: syncCfg.Get().MaxLookupLength,
		Index:        artifact.Index,
		Engine:       engine,
		Shutdown:     &shutdown,
		Log:          applog.Component("lookup-worker"),
	}

	go trigger.Run(ctx)
	go ocrWorker.Run(ctx)
	go lookupWorker.Run(ctx)

	applog.Component("daemon").Info().Str("dict", cfg.DictPath).Msg("meikipopd started")

	recordPopups(ctx, uiChan, writer)

	shutdown.Signal()
	captureQueue.Close()
	ocrQueue.Close()
	applog.Component("daemon").Info().Msg("meikipopd shutting down")
}

// recordPopups drains the UI channel until ctx is done, submitting a
// history write for every popup that resolved to at least one match. The
// actual popup rendering is an external collaborator (spec §1 Non-goals).
func recordPopups(ctx context.Context, uiChan <-chan pipeline.PopupPayload, writer *store.BatchWriter) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-uiChan:
			if !ok {
				return
			}
			if !payload.Found || len(payload.Matches) == 0 {
				continue
			}
			top := payload.Matches[0]
			seq := int64(top.Entry.Seq)
			matchedForm := top.MatchedForm
			now := time.Now()
			if err := writer.Submit(func(ctx context.Context, tx *sql.Tx) error {
				_, err := store.RecordLookup(tx, matchedForm, matchedForm, seq, now)
				return err
			}); err != nil {
				applog.Component("daemon").Warn().Err(err).Msg("failed to submit history write")
			}
		}
	}
}

func loadArtifact(path string) (*dictionary.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dictionary.Load(f)
}
