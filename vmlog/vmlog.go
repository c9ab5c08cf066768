// Package vmlog is the structured-logging façade used by the loader,
// linker, and method area: package-level Trace/Warning/Error functions,
// with Trace gated by a verbosity flag, backed by go.uber.org/zap's SugaredLogger
// instead of fmt+os.Stdout concatenation.
package vmlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	base    *zap.Logger
	sugar   *zap.SugaredLogger
	verbose bool
)

func init() {
	base, _ = zap.NewProduction()
	sugar = base.Sugar()
}

// SetVerbose toggles Trace-level output on or off for the whole process.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Trace logs a fine-grained diagnostic message; suppressed unless
// SetVerbose(true) was called.
func Trace(msg string, fields ...interface{}) {
	mu.RLock()
	v := verbose
	mu.RUnlock()
	if v {
		sugar.Debugw(msg, fields...)
	}
}

// Warning logs a recoverable anomaly (e.g. a retried resolution).
func Warning(msg string, fields ...interface{}) {
	sugar.Warnw(msg, fields...)
}

// Error logs an error from the vmerrors taxonomy before it's returned to
// the caller.
func Error(msg string, fields ...interface{}) {
	sugar.Errorw(msg, fields...)
}

// Sync flushes buffered log entries; callers invoke this once at shutdown,
// after any pool teardown so the last diagnostics aren't lost.
func Sync() {
	_ = base.Sync()
}
