package pipeline

import "sync/atomic"

// ShutdownFlag is the shared atomic cancellation signal of spec §5: each
// worker checks it after every queue wake-up and drains to termination
// without further processing.
type ShutdownFlag struct {
	flag atomic.Bool
}

// Signal marks the pipeline as shutting down.
func (f *ShutdownFlag) Signal() {
	f.flag.Store(true)
}

// ShouldStop reports whether shutdown has been signaled.
func (f *ShutdownFlag) ShouldStop() bool {
	return f.flag.Load()
}
