// Package monitoring holds the diagnostic logger shared by the analysis
// driver and the chart renderers. Library packages that compute metrics do
// not log; they return values and errors.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Scoped returns a logger that prefixes every message with "[scope] " and
// forwards to whatever Logf is installed at call time.
func Scoped(scope string) func(format string, v ...interface{}) {
	if scope == "" {
		return func(format string, v ...interface{}) { Logf(format, v...) }
	}
	prefix := "[" + scope + "] "
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
