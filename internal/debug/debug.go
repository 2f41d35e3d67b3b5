// Package debug is a small env-gated tracer used by the build and search
// paths to print diagnostics without committing to a logging framework
// (SPEC_FULL.md §2 "Logging", grounded on the teacher's internal/debug).
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug can be set at build time via
// -ldflags "-X .../internal/debug.EnableDebug=true".
var EnableDebug = "false"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects debug output; pass nil to silence it entirely.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether tracing is active: the build-time flag, or the
// UAT_DEBUG environment variable at runtime.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("UAT_DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Log writes a component-tagged trace line when tracing is enabled.
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogBuild traces the offline build pipeline.
func LogBuild(format string, args ...interface{}) { Log("BUILD", format, args...) }

// LogSearch traces the online query path.
func LogSearch(format string, args ...interface{}) { Log("SEARCH", format, args...) }
